// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package sshuri

import (
	"errors"
	"strings"
	"testing"
)

func TestIsSSHTransport(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		want bool
	}{
		{"scp like with user", "git@github.com:org/repo.git", true},
		{"scp like ipv6 host", "git@[::1]:org/repo.git", true},
		{"scp like without user", "github.com:org/repo.git", false},
		{"ssh scheme", "ssh://git@host/repo.git", true},
		{"ssh scheme with port", "ssh://git@host:2222/repo.git", true},
		{"git scheme", "git://host/repo.git", true},
		{"ssh plus git scheme", "git+ssh://git@host/repo.git", true},
		{"file scheme counts as ssh", "file:///srv/git/repo.git", true},
		{"ftp scheme counts as ssh", "ftp://host/repo.git", true},
		{"scheme match is case sensitive", "HTTPS://github.com/org/repo.git", true},
		{"https", "https://github.com/org/repo.git", false},
		{"http", "http://github.com/org/repo.git", false},
		{"https with user", "https://user@github.com/org/repo.git", false},
		{"absolute local path", "/srv/git/repo.git", false},
		{"relative local path", "./repo", false},
		{"home path", "~/repos/config", false},
		{"windows path", `C:\repos\config`, false},
		{"user at host without path", "git@host", false},
		{"empty", "", false},
		{"blank", "   ", false},
		{"colons only", "::::", false},
		{"missing path", "git@host:", false},
		{"double slash path", "git@host://x", false},
		{"invalid port", "ssh://git@host:notaport/repo.git", false},
		{"bad escape", "ssh://git@host/%zz", false},
		{"control char", "ssh://git@host/re\x00po", false},
		{"garbage", "%%%not a uri%%%", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSSHTransport(tc.uri); got != tc.want {
				t.Fatalf("IsSSHTransport(%q) = %v, want %v", tc.uri, got, tc.want)
			}
		})
	}
}

func TestIsSSHTransport_NeverPanics(t *testing.T) {
	inputs := []string{
		"\xff\xfe", "@", ":", "@:", "a@:b", "[", "[::1", "ssh://", "ssh://[::1",
		strings.Repeat("a:", 1000), "//", `\\server\share`, "\u2028",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("IsSSHTransport(%q) panicked: %v", in, r)
				}
			}()
			_ = IsSSHTransport(in)
		}()
	}
}

func TestParse_Components(t *testing.T) {
	u, err := Parse("ssh://deploy@git.example.com:2222/org/repo.git")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if u.Scheme != "ssh" || u.User != "deploy" || u.Host != "git.example.com" || u.Port != "2222" || u.Path != "/org/repo.git" {
		t.Fatalf("unexpected components: %+v", u)
	}
	if u.IsSCPLike() {
		t.Fatal("URL form must not be reported as SCP-like")
	}

	u, err = Parse("git@github.com:org/repo.git")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if u.Scheme != "" || u.User != "git" || u.Host != "github.com" || u.Path != "org/repo.git" {
		t.Fatalf("unexpected components: %+v", u)
	}
	if !u.IsSCPLike() {
		t.Fatal("expected SCP-like form")
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptyURI) {
		t.Fatalf("expected ErrEmptyURI, got %v", err)
	}
	if _, err := Parse("host:"); !errors.Is(err, ErrInvalidURI) {
		t.Fatalf("expected ErrInvalidURI, got %v", err)
	}
	if _, err := Parse("ssh://host:port/x"); !errors.Is(err, ErrInvalidURI) {
		t.Fatalf("expected ErrInvalidURI for bad port, got %v", err)
	}
}
