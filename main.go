// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for gitssh.
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
