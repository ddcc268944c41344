// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/gitssh/internal/config"
	"github.com/toeirei/gitssh/internal/i18n"
	"github.com/toeirei/gitssh/internal/model"
	"github.com/toeirei/gitssh/internal/sshalgo"
	"github.com/toeirei/gitssh/internal/sshkey"
	"github.com/toeirei/gitssh/internal/sshuri"
)

// newValidateCmd checks the loaded git profile tree and exits non-zero when
// any violation is found.
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the SSH settings of the git profile and its repos",
		Long: `Loads the configuration, flattens the root git profile and its direct
overrides under git.repos, and reports every SSH rule violation found.
The exit status is 1 when the configuration is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.profileTree()
			if err != nil {
				return err
			}
			report := a.engine.Validate(root)
			profiles := len(model.Flatten(root))
			if err := renderReport(cmd.OutOrStdout(), a.cfg.Output, report, profiles, a.engine.Whitelist()); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalid
			}
			return nil
		},
	}
}

type algorithmCheck struct {
	Name      string `json:"name" yaml:"name"`
	Supported bool   `json:"supported" yaml:"supported"`
}

// newAlgorithmsCmd lists the whitelist, or checks the given names against it.
func newAlgorithmsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms [name...]",
		Short: "List the supported host key algorithms or check names against them",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) > 0 {
				return checkAlgorithms(w, a.cfg.Output, args)
			}
			whitelist := a.engine.Whitelist()
			names := make([]string, len(whitelist))
			for i, algo := range whitelist {
				names[i] = algo.String()
			}
			if done, err := writeStructured(w, a.cfg.Output, names); done {
				return err
			}
			st := newStyles(w)
			fmt.Fprintln(w, st.header.Render(i18n.T("algorithms.header")))
			for _, name := range names {
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}

func checkAlgorithms(w io.Writer, format string, names []string) error {
	checks := make([]algorithmCheck, len(names))
	allSupported := true
	for i, name := range names {
		checks[i] = algorithmCheck{Name: name, Supported: sshalgo.IsSupported(name)}
		allSupported = allSupported && checks[i].Supported
	}
	if done, err := writeStructured(w, format, checks); done {
		if err != nil {
			return err
		}
	} else {
		st := newStyles(w)
		for _, c := range checks {
			if c.Supported {
				fmt.Fprintf(w, "%s %s: %s\n", st.ok.Render("✓"), c.Name, i18n.T("algorithms.supported"))
			} else {
				fmt.Fprintf(w, "%s %s: %s\n", st.bad.Render("✗"), c.Name, i18n.T("algorithms.unsupported"))
			}
		}
	}
	if !allSupported {
		return errInvalid
	}
	return nil
}

type keyResult struct {
	sshkey.KeyInfo `yaml:",inline"`

	Source string `json:"source" yaml:"source"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// newInspectKeyCmd reports whether private key files are structurally valid.
// "-" reads the key from stdin.
func newInspectKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect-key <file|->...",
		Short: "Check that private key files are well formed",
		Long: `Parses each private key without a passphrase and prints its format and
type. Encrypted keys are reported as valid when their structure is intact.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]keyResult, 0, len(args))
			for _, src := range args {
				data, err := readSource(cmd.InOrStdin(), src)
				if err != nil {
					return err
				}
				res := keyResult{Source: src}
				if info, err := sshkey.Inspect(data); err != nil {
					res.Error = err.Error()
				} else {
					res.Valid = true
					res.KeyInfo = info
				}
				results = append(results, res)
			}

			w := cmd.OutOrStdout()
			done, err := writeStructured(w, a.cfg.Output, results)
			if !done {
				printKeyResults(w, results)
			} else if err != nil {
				return err
			}
			for _, r := range results {
				if !r.Valid {
					return errInvalid
				}
			}
			return nil
		},
	}
}

func printKeyResults(w io.Writer, results []keyResult) {
	st := newStyles(w)
	for _, r := range results {
		if !r.Valid {
			fmt.Fprintf(w, "%s %s: %s\n", st.bad.Render("✗"), r.Source, i18n.T("key.invalid", r.Error))
			continue
		}
		detail := string(r.Format)
		if r.Type != "" {
			detail += ", " + r.Type
		}
		if r.Encrypted {
			detail += ", " + i18n.T("key.encrypted")
		}
		fmt.Fprintf(w, "%s %s: %s %s\n", st.ok.Render("✓"), r.Source, i18n.T("key.valid"), st.dim.Render("("+detail+")"))
	}
}

func readSource(stdin io.Reader, src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", src, err)
	}
	return data, nil
}

type classification struct {
	URI    string `json:"uri" yaml:"uri"`
	SSH    bool   `json:"ssh" yaml:"ssh"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	User   string `json:"user,omitempty" yaml:"user,omitempty"`
	Host   string `json:"host,omitempty" yaml:"host,omitempty"`
	Form   string `json:"form,omitempty" yaml:"form,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// uriForm names how a remote was written: "url", "scp" or "local".
func uriForm(u *sshuri.URI) string {
	switch {
	case u.IsSCPLike():
		return "scp"
	case u.Scheme != "":
		return "url"
	default:
		return "local"
	}
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <uri>...",
		Short: "Show whether git remote URIs are treated as SSH transport",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classification, 0, len(args))
			for _, raw := range args {
				c := classification{URI: raw, SSH: sshuri.IsSSHTransport(raw)}
				if u, err := sshuri.Parse(raw); err != nil {
					c.Error = err.Error()
				} else {
					c.Scheme, c.User, c.Host = u.Scheme, u.User, u.Host
					c.Form = uriForm(u)
				}
				out = append(out, c)
			}

			w := cmd.OutOrStdout()
			if done, err := writeStructured(w, a.cfg.Output, out); done {
				return err
			}
			for _, c := range out {
				verdict := i18n.T("classify.not_ssh")
				if c.SSH {
					verdict = i18n.T("classify.ssh")
				}
				fmt.Fprintf(w, "%s\t%s\n", c.URI, verdict)
			}
			return nil
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	var path string
	var system, force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				var err error
				if target, err = config.GetConfigPath(system); err != nil {
					return err
				}
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			sample := config.Sample()
			if err := config.WriteConfigFileTo(&sample, target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("init.written", target))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "where to write the file (default: user config path)")
	cmd.Flags().BoolVar(&system, "system", false, "write to the system-wide config path")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
