// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toeirei/gitssh/internal/model"
	"github.com/toeirei/gitssh/internal/sshuri"
)

// ErrConflictingKeySources is returned when a profile sets both privateKey
// and privateKeyFile.
var ErrConflictingKeySources = errors.New("privateKey and privateKeyFile are mutually exclusive")

// RepoOrder returns the names under git.repos in the order they appear in
// the YAML document. Viper decodes mappings into Go maps and lowercases keys,
// so declaration order and spelling are recovered from the source itself.
func RepoOrder(source []byte) ([]string, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("parse config for repo order: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	repos := lookup(lookup(doc.Content[0], "git"), "repos")
	if repos == nil || repos.Kind != yaml.MappingNode {
		return nil, nil
	}
	names := make([]string, 0, len(repos.Content)/2)
	for i := 0; i+1 < len(repos.Content); i += 2 {
		names = append(names, repos.Content[i].Value)
	}
	return names, nil
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if strings.EqualFold(node.Content[i].Value, key) {
			return node.Content[i+1]
		}
	}
	return nil
}

// Builder turns decoded configuration into a model.Profile tree. It applies
// boolean defaults and reads privateKeyFile references of SSH profiles;
// other profiles never have their key files opened.
type Builder struct {
	// Order lists override names in declaration order, as returned by RepoOrder.
	Order []string
	// BaseDir resolves relative privateKeyFile paths.
	BaseDir string
	// ReadFile reads key files; os.ReadFile when nil.
	ReadFile func(name string) ([]byte, error)
}

// Build converts the root git block and its overrides.
func (b Builder) Build(pc ProfileConfig) (*model.Profile, error) {
	return b.build(pc, b.Order, "git")
}

func (b Builder) build(pc ProfileConfig, order []string, path string) (*model.Profile, error) {
	p := &model.Profile{
		URI:                    pc.URI,
		PrivateKey:             pc.PrivateKey,
		HostKey:                pc.HostKey,
		HostKeyAlgorithm:       pc.HostKeyAlgorithm,
		IgnoreLocalSSHSettings: boolOr(pc.IgnoreLocalSSHSettings, false),
		StrictHostKeyChecking:  boolOr(pc.StrictHostKeyChecking, true),
	}

	// Key files only matter where the validator will look at the key.
	if model.HasText(pc.PrivateKeyFile) && sshuri.IsSSHTransport(pc.URI) {
		if model.HasText(pc.PrivateKey) {
			return nil, fmt.Errorf("%s: %w", path, ErrConflictingKeySources)
		}
		data, err := b.readKey(pc.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%s.privateKeyFile: %w", path, err)
		}
		p.PrivateKey = string(data)
	}

	for _, r := range orderedRepos(pc.Repos, order) {
		child, err := b.build(pc.Repos[r.key], nil, path+".repos."+r.name)
		if err != nil {
			return nil, err
		}
		p.Repos.Add(r.name, child)
	}
	return p, nil
}

type namedRepo struct {
	name string // spelling from the document
	key  string // key in the decoded map
}

// orderedRepos lists the declared names that exist in repos, followed by
// any remaining keys in sorted order. Names match keys case-insensitively
// because viper lowercases them.
func orderedRepos(repos map[string]ProfileConfig, order []string) []namedRepo {
	if len(repos) == 0 {
		return nil
	}
	byLower := make(map[string]string, len(repos))
	for key := range repos {
		byLower[strings.ToLower(key)] = key
	}
	seen := make(map[string]bool, len(repos))
	out := make([]namedRepo, 0, len(repos))
	for _, name := range order {
		key, ok := byLower[strings.ToLower(name)]
		if ok && !seen[key] {
			seen[key] = true
			out = append(out, namedRepo{name: name, key: key})
		}
	}
	var rest []string
	for key := range repos {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		out = append(out, namedRepo{name: key, key: key})
	}
	return out
}

func (b Builder) readKey(name string) ([]byte, error) {
	if strings.HasPrefix(name, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		name = filepath.Join(home, name[2:])
	} else if !filepath.IsAbs(name) && b.BaseDir != "" {
		name = filepath.Join(b.BaseDir, name)
	}
	read := b.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	return read(name)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
