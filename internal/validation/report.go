// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package validation

import (
	"fmt"
	"strings"
)

// PropertyPrefix is the configuration namespace the profile tree is read from.
const PropertyPrefix = "git."

// RootLabel is how the root profile is shown to operators.
const RootLabel = "(root)"

// Violation is one broken rule on one profile. Profile is empty for the root
// and the override name otherwise.
type Violation struct {
	Profile   string   `json:"profile" yaml:"profile"`
	Property  string   `json:"property" yaml:"property"`
	Rule      RuleName `json:"rule" yaml:"rule"`
	Message   string   `json:"message" yaml:"message"`
	MessageID string   `json:"-" yaml:"-"`
}

// ProfileLabel returns the override name, or RootLabel for the root profile.
func (v Violation) ProfileLabel() string {
	if v.Profile == "" {
		return RootLabel
	}
	return v.Profile
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: property '%s' %s [%s]", v.ProfileLabel(), v.Property, v.Message, v.Rule)
}

// PropertyPath returns the dotted setting name for property on the named
// profile, e.g. "git.privateKey" or "git.repos.team-a.privateKey".
func PropertyPath(profile, property string) string {
	if profile == "" {
		return PropertyPrefix + property
	}
	return PropertyPrefix + "repos." + profile + "." + property
}

// Report is the outcome of validating one profile tree.
type Report struct {
	Valid      bool        `json:"valid" yaml:"valid"`
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Err returns nil for a valid report and a *ValidationError otherwise.
func (r Report) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Violations: r.Violations}
}

// ValidationError carries every violation of an invalid configuration.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return fmt.Sprintf("invalid SSH configuration (%d violation(s)): %s", len(e.Violations), strings.Join(lines, "; "))
}
