// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Command gitssh validates SSH settings for git-backed configuration repositories.
//
// Usage:
//
//	go run . validate --config gitssh.yaml
//	./gitssh [command] [flags]
//
// See --help for options.
package main

import (
	"os"

	"github.com/toeirei/gitssh/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
