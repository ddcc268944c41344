// Copyright (c) 2025 ToeiRei
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil holds fixtures shared by package tests: generated private
// keys and an isolated home directory for config lookups.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/crypto/ssh"
)

var (
	keyOnce sync.Once
	keyPEM  string
	keyErr  error
)

// PrivateKeyPEM returns an unencrypted OpenSSH ECDSA P-256 private key.
// The key is generated once per test binary.
func PrivateKeyPEM(t testing.TB) string {
	t.Helper()
	keyOnce.Do(func() {
		k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			keyErr = err
			return
		}
		block, err := ssh.MarshalPrivateKey(k, "gitssh-test")
		if err != nil {
			keyErr = err
			return
		}
		keyPEM = string(pem.EncodeToMemory(block))
	})
	if keyErr != nil {
		t.Fatalf("generate test key: %v", keyErr)
	}
	return keyPEM
}

// WriteKeyFile writes PrivateKeyPEM to dir/name with 0600 permissions and
// returns the full path.
func WriteKeyFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(PrivateKeyPEM(t)), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

// Isolate points HOME and XDG_CONFIG_HOME at a fresh temp dir so config
// discovery never sees the developer's files. It returns that dir.
func Isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	return tmp
}
