// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sshuri parses git remote addresses and decides whether they are
// reached over SSH. It understands both URL forms (ssh://git@host/repo.git)
// and the scheme-less SCP-like form (git@host:org/repo.git).
package sshuri

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrEmptyURI is returned when the address is blank.
	ErrEmptyURI = errors.New("empty uri")
	// ErrInvalidURI is returned when the address matches none of the known forms.
	ErrInvalidURI = errors.New("invalid uri")
)

var (
	schemePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*)://`)
	scpPattern    = regexp.MustCompile(`^(?:([^@/\\]+)@)?(\[[^\]]+\]|[^/\\:@\[\]]+):(.+)$`)
	drivePattern  = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// URI is a parsed git remote address. Scheme keeps the case it was written in.
type URI struct {
	Scheme string
	User   string
	Host   string
	Port   string
	Path   string
}

// IsSCPLike reports whether u was written in the scheme-less user@host:path form.
func (u *URI) IsSCPLike() bool {
	return u.Scheme == "" && u.Host != ""
}

// Parse splits raw into its components.
func Parse(raw string) (*URI, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrEmptyURI
	}
	if strings.ContainsFunc(s, isControl) {
		return nil, fmt.Errorf("%w: control character in %q", ErrInvalidURI, raw)
	}

	if m := schemePattern.FindStringSubmatch(s); m != nil {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
		}
		out := &URI{
			Scheme: m[1],
			Host:   u.Hostname(),
			Port:   u.Port(),
			Path:   u.Path,
		}
		if u.User != nil {
			out.User = u.User.Username()
		}
		return out, nil
	}

	if isLocalPath(s) {
		return &URI{Path: s}, nil
	}

	m := scpPattern.FindStringSubmatch(s)
	if m == nil || strings.HasPrefix(m[3], "//") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURI, raw)
	}
	return &URI{
		User: m[1],
		Host: strings.Trim(m[2], "[]"),
		Path: m[3],
	}, nil
}

// IsSSHTransport reports whether raw addresses an SSH remote. Any explicit
// scheme other than exactly "http" or "https" counts. Without a scheme both a
// user and a host are required. Unparseable input is never SSH.
func IsSSHTransport(raw string) bool {
	u, err := Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "" {
		return u.Scheme != "http" && u.Scheme != "https"
	}
	return u.Host != "" && u.User != ""
}

func isLocalPath(s string) bool {
	switch {
	case strings.HasPrefix(s, "/"), strings.HasPrefix(s, "./"), strings.HasPrefix(s, "../"),
		strings.HasPrefix(s, "~"), strings.HasPrefix(s, `\`):
		return true
	case drivePattern.MatchString(s):
		return true
	}
	return !strings.Contains(s, ":")
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
