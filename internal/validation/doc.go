// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package validation applies the SSH cross-field rules to a profile tree.
//
// The root profile and each of its direct overrides are checked on their
// own. Profiles whose URI is not an SSH transport are exempt. Every rule runs
// against every SSH profile, so a single call reports all violations at once.
// An invalid configuration is data (a Report), not an error.
package validation
