// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for gitssh using Cobra.
// It loads configuration, builds the profile tree and delegates every
// decision to the validation, sshkey, sshuri and sshalgo packages. CLI code
// only renders their results.
package cli
