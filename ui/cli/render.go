// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"golang.org/x/term"

	"github.com/toeirei/gitssh/internal/i18n"
	"github.com/toeirei/gitssh/internal/sshalgo"
	"github.com/toeirei/gitssh/internal/validation"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// styles are plain unless the output is a terminal.
type styles struct {
	ok     lipgloss.Style
	bad    lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{ok: plain, bad: plain, header: plain, dim: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		bad:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		header: r.NewStyle().Bold(true),
		dim:    r.NewStyle().Faint(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeStructured encodes v as JSON or YAML. It returns false for the text
// format so the caller can render its own view.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = w.Write(data)
		return true, err
	case formatText, "":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// violationMessage returns the translated message for v, falling back to the
// English text carried by the violation.
func violationMessage(v validation.Violation, whitelist sshalgo.Whitelist) string {
	id := "violation." + v.MessageID
	if v.MessageID == "" || !i18n.Has(id) {
		return v.Message
	}
	if v.Rule == validation.RuleAlgorithmSupported {
		return i18n.T(id, whitelist.String())
	}
	return i18n.T(id)
}

func renderReport(w io.Writer, format string, report validation.Report, profiles int, whitelist sshalgo.Whitelist) error {
	if done, err := writeStructured(w, format, report); done {
		return err
	}

	st := newStyles(w)
	if report.Valid {
		_, err := fmt.Fprintln(w, st.ok.Render("✓ "+i18n.T("report.valid", profiles)))
		return err
	}

	if _, err := fmt.Fprintln(w, st.bad.Render("✗ "+i18n.T("report.invalid", len(report.Violations)))); err != nil {
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(i18n.T("report.profile"), i18n.T("report.property"), i18n.T("report.rule"), i18n.T("report.message")).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, v := range report.Violations {
		t.Row(v.ProfileLabel(), v.Property, string(v.Rule), violationMessage(v, whitelist))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
