// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	cfg "github.com/toeirei/gitssh/internal/config"
	"github.com/toeirei/gitssh/internal/testutil"
	"github.com/toeirei/gitssh/internal/validation"
)

const sampleYAML = `git:
  uri: git@github.com:org/config.git
  privateKey: inline-key
  hostKeyAlgorithm: ssh-rsa
  hostKey: AAAAB3NzaC1yc2E
  repos:
    Zeta:
      uri: ssh://git@host/zeta.git
      strictHostKeyChecking: false
    alpha:
      uri: https://host/alpha.git
      ignoreLocalSshSettings: true
    middle:
      uri: git@host:middle.git
      privateKeyFile: keys/middle
language: de
output: json
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "cfg.yaml", sampleYAML)

	c, used, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if used != file {
		t.Fatalf("expected config file %s to be used, got %q", file, used)
	}
	if c.Language != "de" || c.Output != "json" || c.LogLevel != "info" {
		t.Fatalf("unexpected top-level settings: %+v", c)
	}
	if c.Git.URI != "git@github.com:org/config.git" || c.Git.HostKeyAlgorithm != "ssh-rsa" || c.Git.PrivateKey != "inline-key" {
		t.Fatalf("unexpected git settings: %+v", c.Git)
	}
	if len(c.Git.Repos) != 3 {
		t.Fatalf("expected 3 repos, got %d", len(c.Git.Repos))
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	tmp := testutil.Isolate(t)
	missing := filepath.Join(tmp, "nope.yaml")
	if _, _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &missing); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	testutil.Isolate(t)
	c, used, err := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if used != "" {
		t.Skipf("a gitssh.yaml outside the test sandbox was picked up: %s", used)
	}
	if c.Output != "text" || c.Language != "en" {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Git.StrictHostKeyChecking == nil || !*c.Git.StrictHostKeyChecking {
		t.Fatal("expected strictHostKeyChecking default true")
	}
}

func TestLoadConfig_EnvVarParsing(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "cfg.yaml", "git:\n  uri: https://host/repo.git\n")
	t.Setenv("GITSSH_GIT_URI", "ssh://git@env-host/repo.git")
	t.Setenv("GITSSH_GIT_HOSTKEYALGORITHM", "ecdsa-sha2-nistp256")
	t.Setenv("GITSSH_LOG_LEVEL", "debug")

	c, _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Git.URI != "ssh://git@env-host/repo.git" {
		t.Fatalf("env override not applied to git.uri: %q", c.Git.URI)
	}
	if c.Git.HostKeyAlgorithm != "ecdsa-sha2-nistp256" {
		t.Fatalf("env override not applied to git.hostKeyAlgorithm: %q", c.Git.HostKeyAlgorithm)
	}
	if c.LogLevel != "debug" {
		t.Fatalf("env override not applied to log-level: %q", c.LogLevel)
	}
}

func TestLoadConfig_FlagBindingOverridesEnv(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "cfg.yaml", "output: yaml\n")
	t.Setenv("GITSSH_OUTPUT", "json")

	cmd := &cobra.Command{}
	cmd.Flags().String("output", "text", "")
	if err := cmd.Flags().Set("output", "text"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, _, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Output != "text" {
		t.Fatalf("expected flag to win, got %q", c.Output)
	}
}

func TestLoadConfig_BrokenConfig_ReturnsParseError(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "cfg.yaml", "git: [unterminated\n")
	if _, _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestLoad_BuildsOrderedProfileTree(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "gitssh.yaml", sampleYAML)
	writeFile(t, tmp, "keys/middle", "middle-key-material")

	c, root, err := cfg.Load(&cobra.Command{}, &file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Output != "json" {
		t.Fatalf("unexpected output setting %q", c.Output)
	}
	if root.URI != "git@github.com:org/config.git" || !root.StrictHostKeyChecking || root.IgnoreLocalSSHSettings {
		t.Fatalf("unexpected root profile: %s", root)
	}

	names := root.Repos.Names()
	if strings.Join(names, ",") != "Zeta,alpha,middle" {
		t.Fatalf("repos not in declaration order: %v", names)
	}
	zeta, _ := root.Repos.Get("Zeta")
	if zeta.StrictHostKeyChecking {
		t.Fatal("explicit strictHostKeyChecking=false lost")
	}
	alpha, _ := root.Repos.Get("alpha")
	if !alpha.StrictHostKeyChecking || !alpha.IgnoreLocalSSHSettings {
		t.Fatalf("unexpected alpha defaults: %s", alpha)
	}
	middle, _ := root.Repos.Get("middle")
	if middle.PrivateKey != "middle-key-material" {
		t.Fatalf("privateKeyFile not resolved relative to config dir: %q", middle.PrivateKey)
	}
}

func TestLoad_MissingKeyFile(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "gitssh.yaml", "git:\n  uri: git@host:r.git\n  privateKeyFile: absent\n")
	_, _, err := cfg.Load(&cobra.Command{}, &file)
	if err == nil || !strings.Contains(err.Error(), "git.privateKeyFile") {
		t.Fatalf("expected privateKeyFile error, got %v", err)
	}
}

func TestLoad_DottedRepoName(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "gitssh.yaml", `git:
  uri: https://host/root.git
  repos:
    team.a:
      uri: ssh://git@host/a.git
    b:
      uri: ssh://git@host/b.git
      privateKey: inline
`)

	_, root, err := cfg.Load(&cobra.Command{}, &file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if names := root.Repos.Names(); strings.Join(names, ",") != "team.a,b" {
		t.Fatalf("dotted repo name split or reordered: %v", names)
	}
	teamA, ok := root.Repos.Get("team.a")
	if !ok || teamA.URI != "ssh://git@host/a.git" {
		t.Fatalf("team.a override lost its settings: %v", teamA)
	}

	report := validation.Validate(root)
	found := false
	for _, v := range report.Violations {
		if v.Profile == "team.a" && v.Rule == validation.RulePrivateKeyPresence {
			found = true
		}
	}
	if report.Valid || !found {
		t.Fatalf("expected missing private key on team.a, got %+v", report)
	}
}

func TestLoad_NonSSHProfileKeyFileNotRead(t *testing.T) {
	tmp := testutil.Isolate(t)
	file := writeFile(t, tmp, "gitssh.yaml", `git:
  uri: git@host:root.git
  privateKey: inline
  repos:
    web:
      uri: https://host/web.git
      privateKeyFile: absent
`)
	_, root, err := cfg.Load(&cobra.Command{}, &file)
	if err != nil {
		t.Fatalf("unreadable key file on an HTTPS profile stopped the load: %v", err)
	}
	if root.Repos.Len() != 1 {
		t.Fatalf("expected the web override, got %v", root.Repos.Names())
	}
}

func TestKey(t *testing.T) {
	if got := cfg.Key("git", "repos", "team.a", "uri"); got != "git::repos::team.a::uri" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestWriteConfigFileTo_CreatesFile(t *testing.T) {
	testutil.Isolate(t)

	c := cfg.Sample()
	path, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if err := cfg.WriteConfigFileTo(&c, path); err != nil {
		t.Fatalf("WriteConfigFileTo failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	loaded, _, err := cfg.LoadConfig[cfg.Config](nil, cfg.Defaults(), &path)
	if err != nil {
		t.Fatalf("reload written config: %v", err)
	}
	if loaded.Git.URI != c.Git.URI || loaded.Git.HostKeyAlgorithm != c.Git.HostKeyAlgorithm {
		t.Fatalf("round trip mismatch: %+v", loaded.Git)
	}
	if _, ok := loaded.Git.Repos["team-a"]; !ok {
		t.Fatalf("sample override missing after reload: %+v", loaded.Git.Repos)
	}
}

func TestGetConfigPath(t *testing.T) {
	tmp := testutil.Isolate(t)
	p, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath(false) failed: %v", err)
	}
	if !strings.HasPrefix(p, tmp) || filepath.Base(p) != "gitssh.yaml" {
		t.Fatalf("unexpected user config path: %s", p)
	}
	sys, err := cfg.GetConfigPath(true)
	if err != nil {
		t.Fatalf("GetConfigPath(true) failed: %v", err)
	}
	if filepath.Base(sys) != "gitssh.yaml" {
		t.Fatalf("unexpected system config path: %s", sys)
	}
}
