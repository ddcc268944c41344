// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for gitssh using the Cobra
// library. It defines the root command, the global flags and the
// configuration loading shared by every subcommand.

package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/toeirei/gitssh/buildvars"
	"github.com/toeirei/gitssh/internal/config"
	"github.com/toeirei/gitssh/internal/i18n"
	"github.com/toeirei/gitssh/internal/logging"
	"github.com/toeirei/gitssh/internal/model"
	"github.com/toeirei/gitssh/internal/validation"
	"github.com/toeirei/gitssh/ui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// errInvalid is returned after an invalid result has already been printed,
// so Execute only has to set the exit status.
var errInvalid = errors.New("validation failed")

// app holds the state shared between the root command and its subcommands.
type app struct {
	cfg     config.Config
	root    *model.Profile
	loadErr error
	engine  *validation.Engine
}

// Execute runs the root command.
func Execute() error {
	err := NewRootCmd().Execute()
	if errors.Is(err, errInvalid) {
		return err
	}
	if err != nil {
		logging.Errorf("%v", err)
	}
	return err
}

// NewRootCmd creates the root command with all subcommands attached. Each
// call returns an independent command tree so tests can run in isolation.
func NewRootCmd() *cobra.Command {
	a := &app{engine: validation.New()}

	cmd := &cobra.Command{
		Use:   "gitssh",
		Short: "gitssh checks SSH settings for git-backed configuration repositories.",
		Long: `gitssh validates the SSH connection settings of a configuration server
before it talks to any git remote: the root git profile and every
per-repository override under git.repos.

For each profile whose URI is an SSH transport it checks that a private key
is set and well formed, that hostKey and hostKeyAlgorithm are given together,
and that the host key algorithm is one the transport supports. No connection
is ever attempted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	cmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/gitssh/gitssh.yaml, /etc/gitssh/gitssh.yaml or ./gitssh.yaml)")
	cmd.PersistentFlags().String("language", "en", `output language ("en", "de")`)
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json, yaml)")

	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newAlgorithmsCmd(a))
	cmd.AddCommand(newInspectKeyCmd(a))
	cmd.AddCommand(newClassifyCmd(a))
	cmd.AddCommand(newInitCmd(a))

	return cmd
}

// setup loads the configuration and applies language and log level. A broken
// configuration is remembered rather than returned so commands that do not
// need the profile tree keep working.
func (a *app) setup(cmd *cobra.Command) error {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	a.cfg, a.root, a.loadErr = config.Load(cmd, path)
	if a.loadErr != nil {
		logging.Debugf("config not loaded: %v", a.loadErr)
		a.cfg = config.Config{Language: "en", LogLevel: "info", Output: "text"}
		if f := cmd.Flags().Lookup("output"); f != nil {
			a.cfg.Output = f.Value.String()
		}
	}

	ui.InitializeDefaults(a.cfg.Language, a.cfg.LogLevel)
	return nil
}

// profileTree returns the loaded tree or the error that prevented loading it.
func (a *app) profileTree() (*model.Profile, error) {
	if a.loadErr != nil {
		return nil, fmt.Errorf(i18n.T("config.error_load"), a.loadErr)
	}
	return a.root, nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		// If the flag is set but the value is empty, do nothing.
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// resolveBuildVersion picks the most specific version information available
// from the linker variables and the embedded build info.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// If Main doesn't contain the version (some build paths), try to
		// find our module in the dependencies and use that version.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/gitssh" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort, if no version was discovered, but a gitCommit was
	// provided via ldflags, show that to aid support.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
