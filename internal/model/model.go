// Copyright (c) 2025 ToeiRei
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the SSH connection profile tree handed to the validator.
package model // import "github.com/toeirei/gitssh/internal/model"

import (
	"fmt"
	"iter"
	"strings"
)

// Profile is one SSH connection configuration: the root git settings or a
// named per-repository override. Blank strings mean "not set".
type Profile struct {
	URI                    string
	PrivateKey             string
	HostKey                string
	HostKeyAlgorithm       string
	IgnoreLocalSSHSettings bool
	StrictHostKeyChecking  bool
	Repos                  Repos
}

// NewProfile returns a profile for uri with the documented defaults applied.
func NewProfile(uri string) *Profile {
	return &Profile{URI: uri, StrictHostKeyChecking: true}
}

// String renders the profile for logs. Key material is never printed.
func (p *Profile) String() string {
	if p == nil {
		return "<nil>"
	}
	key := "unset"
	if HasText(p.PrivateKey) {
		key = "set"
	}
	return fmt.Sprintf("Profile(uri=%q, hostKeyAlgorithm=%q, hostKey=%q, privateKey=%s, ignoreLocalSshSettings=%t, strictHostKeyChecking=%t, repos=%v)",
		p.URI, p.HostKeyAlgorithm, p.HostKey, key, p.IgnoreLocalSSHSettings, p.StrictHostKeyChecking, p.Repos.Names())
}

// HasText reports whether s contains anything besides whitespace.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Repos is an insertion-ordered set of named override profiles.
// The zero value is empty and ready to use.
type Repos struct {
	names  []string
	byName map[string]*Profile
}

// Add stores p under name. Re-adding a name replaces the profile but keeps
// its original position.
func (r *Repos) Add(name string, p *Profile) {
	if r.byName == nil {
		r.byName = make(map[string]*Profile)
	}
	if _, ok := r.byName[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byName[name] = p
}

// Get returns the profile stored under name.
func (r Repos) Get(name string) (*Profile, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Len returns the number of overrides.
func (r Repos) Len() int {
	return len(r.names)
}

// Names returns override names in declaration order.
func (r Repos) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All iterates overrides in declaration order.
func (r Repos) All() iter.Seq2[string, *Profile] {
	return func(yield func(string, *Profile) bool) {
		for _, name := range r.names {
			if !yield(name, r.byName[name]) {
				return
			}
		}
	}
}
