// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui contains the top-level UI wiring and initialization for gitssh.
//
// The command-line interface lives in ui/cli. This package holds the
// presentation defaults every front end applies before producing output.
package ui
