// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshalgo holds the host key algorithms the git SSH transport accepts
// for a pinned host key.
package sshalgo

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// HostKeyAlgo is the wire name of an SSH host key algorithm.
type HostKeyAlgo string

const (
	HostKeyAlgoSSHDSS            HostKeyAlgo = ssh.KeyAlgoDSA
	HostKeyAlgoSSHRSA            HostKeyAlgo = ssh.KeyAlgoRSA
	HostKeyAlgoECDSASHA2NISTp256 HostKeyAlgo = ssh.KeyAlgoECDSA256
	HostKeyAlgoECDSASHA2NISTp384 HostKeyAlgo = ssh.KeyAlgoECDSA384
	HostKeyAlgoECDSASHA2NISTp521 HostKeyAlgo = ssh.KeyAlgoECDSA521
)

// ErrEmptyAlgorithm is returned by Validate for a blank algorithm name.
var ErrEmptyAlgorithm = errors.New("empty host key algorithm")

// ErrUnsupportedAlgorithm is returned by Validate for names outside the whitelist.
var ErrUnsupportedAlgorithm = errors.New("unsupported host key algorithm")

// supported is the ordered whitelist. Order is part of the diagnostic output.
var supported = Whitelist{
	HostKeyAlgoSSHDSS,
	HostKeyAlgoSSHRSA,
	HostKeyAlgoECDSASHA2NISTp256,
	HostKeyAlgoECDSASHA2NISTp384,
	HostKeyAlgoECDSASHA2NISTp521,
}

// String returns the algorithm name.
func (h HostKeyAlgo) String() string {
	return string(h)
}

// Validate checks h against the default whitelist.
func (h HostKeyAlgo) Validate() error {
	return supported.Validate(string(h))
}

// Whitelist is an ordered set of accepted host key algorithms.
type Whitelist []HostKeyAlgo

// Supported returns a copy of the default whitelist.
func Supported() Whitelist {
	out := make(Whitelist, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether name is in the default whitelist.
func IsSupported(name string) bool {
	return supported.Contains(name)
}

// Contains is an exact, case-sensitive membership test.
func (w Whitelist) Contains(name string) bool {
	for _, algo := range w {
		if string(algo) == name {
			return true
		}
	}
	return false
}

// Validate returns nil when name is a member of w.
func (w Whitelist) Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyAlgorithm
	}
	if !w.Contains(name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
	return nil
}

// With returns a new whitelist with extra appended, skipping duplicates.
func (w Whitelist) With(extra ...HostKeyAlgo) Whitelist {
	out := make(Whitelist, len(w), len(w)+len(extra))
	copy(out, w)
	for _, algo := range extra {
		if !out.Contains(string(algo)) {
			out = append(out, algo)
		}
	}
	return out
}

// String renders the whitelist as "[a, b, c]".
func (w Whitelist) String() string {
	names := make([]string, len(w))
	for i, algo := range w {
		names[i] = string(algo)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
