// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the gitssh configuration file and turns its git
// section into the profile tree checked by the validation package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toeirei/gitssh/internal/model"
)

// KeyDelimiter separates nested configuration keys. Repo names may contain
// dots, so viper's default "." delimiter cannot be used.
const KeyDelimiter = "::"

// Key joins path segments with KeyDelimiter, e.g. Key("git", "uri").
func Key(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}

// Config is the full gitssh configuration file.
type Config struct {
	Git      ProfileConfig `mapstructure:"git" yaml:"git"`
	Language string        `mapstructure:"language" yaml:"language"`
	LogLevel string        `mapstructure:"log-level" yaml:"log-level"`
	Output   string        `mapstructure:"output" yaml:"output"`
}

// ProfileConfig mirrors one git SSH block as written by operators. Boolean
// settings are pointers so unset values can receive their defaults.
type ProfileConfig struct {
	URI                    string                   `mapstructure:"uri" yaml:"uri,omitempty"`
	PrivateKey             string                   `mapstructure:"privateKey" yaml:"privateKey,omitempty"`
	PrivateKeyFile         string                   `mapstructure:"privateKeyFile" yaml:"privateKeyFile,omitempty"`
	HostKey                string                   `mapstructure:"hostKey" yaml:"hostKey,omitempty"`
	HostKeyAlgorithm       string                   `mapstructure:"hostKeyAlgorithm" yaml:"hostKeyAlgorithm,omitempty"`
	IgnoreLocalSSHSettings *bool                    `mapstructure:"ignoreLocalSshSettings" yaml:"ignoreLocalSshSettings,omitempty"`
	StrictHostKeyChecking  *bool                    `mapstructure:"strictHostKeyChecking" yaml:"strictHostKeyChecking,omitempty"`
	Repos                  map[string]ProfileConfig `mapstructure:"repos" yaml:"repos,omitempty"`
}

// Defaults returns the values applied before any file, environment variable
// or flag is read. Root git keys are registered so GITSSH_GIT_* variables
// are picked up by Unmarshal.
func Defaults() map[string]any {
	return map[string]any{
		Key("git", "uri"):                    "",
		Key("git", "privateKey"):             "",
		Key("git", "privateKeyFile"):         "",
		Key("git", "hostKey"):                "",
		Key("git", "hostKeyAlgorithm"):       "",
		Key("git", "ignoreLocalSshSettings"): false,
		Key("git", "strictHostKeyChecking"):  true,
		"language":                           "en",
		"log-level":                          "info",
		"output":                             "text",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "gitssh")
		default: // Linux, macOS, etc.
			configDir = "/etc/gitssh"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "gitssh")
	}

	return filepath.Join(configDir, "gitssh.yaml"), nil
}

// LoadConfig reads defaults, the first gitssh.yaml found (or the explicit
// file), GITSSH_* environment variables and the command's flags, in that
// order of precedence. It returns the decoded value and the path of the file
// that was read, which is empty when none was found.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, string, error) {
	var c T
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("gitssh")
	v.SetConfigType("yaml")

	// 3. An explicit --config path wins over the search paths.
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	// 4. Add standard config locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	// 5. Read in the primary config file.
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, "", err
		}
	}
	used := v.ConfigFileUsed()

	// 6. Merge a hidden .gitssh.yaml from the current directory.
	mergeLegacyConfig(v)

	// 7. Read from environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("gitssh")
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_", ".", "_", "-", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, used, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, used, err
	}

	return c, used, nil
}

// mergeLegacyConfig checks for a `.gitssh.yaml` file in the current directory
// and merges it into the viper configuration if found.
func mergeLegacyConfig(v *viper.Viper) {
	legacyConfigFile := ".gitssh.yaml"
	if _, err := os.Stat(legacyConfigFile); err == nil {
		v.SetConfigFile(legacyConfigFile)
		// A malformed hidden file must not prevent startup.
		_ = v.MergeInConfig()
		v.SetConfigFile("")
	}
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may carry private key material.
	return os.WriteFile(path, data, 0600)
}

// Sample returns an example configuration with one override.
func Sample() Config {
	strict := true
	return Config{
		Git: ProfileConfig{
			URI:                   "git@github.com:example/config-repo.git",
			PrivateKeyFile:        "~/.ssh/id_ecdsa",
			HostKeyAlgorithm:      "ecdsa-sha2-nistp256",
			HostKey:               "AAAAE2VjZHNhLXNoYTItbmlzdHAyNTYAAAAIbmlzdHAyNTYAAABBBEmKSENjQEezOmxkZMy7opKgwFB9nkt5YRrYMjNuG5N87uRgg6CLrbo5wAdT/y6v0mKV0U2w0WZ2YB/++Tpockg=",
			StrictHostKeyChecking: &strict,
			Repos: map[string]ProfileConfig{
				"team-a": {
					URI:            "ssh://git@git.example.com/team-a/config.git",
					PrivateKeyFile: "~/.ssh/team_a_rsa",
				},
			},
		},
		Language: "en",
		LogLevel: "info",
		Output:   "text",
	}
}

// Load reads the configuration and builds the git profile tree from it.
// configPath may be nil to search the standard locations.
func Load(cmd *cobra.Command, configPath *string) (Config, *model.Profile, error) {
	c, used, err := LoadConfig[Config](cmd, Defaults(), configPath)
	if err != nil {
		return c, nil, err
	}

	var b Builder
	if used != "" {
		source, err := os.ReadFile(used)
		if err != nil {
			return c, nil, fmt.Errorf("read %s: %w", used, err)
		}
		if b.Order, err = RepoOrder(source); err != nil {
			return c, nil, err
		}
		b.BaseDir = filepath.Dir(used)
	}

	root, err := b.Build(c.Git)
	if err != nil {
		return c, nil, err
	}
	return c, root, nil
}
