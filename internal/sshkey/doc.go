// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshkey checks that configured private key material is a well formed
// private key. It inspects structure only: encrypted keys are recognized
// without a passphrase and nothing is ever decrypted or written to disk.
package sshkey
