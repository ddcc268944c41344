// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package validation

import (
	clog "github.com/charmbracelet/log"

	"github.com/toeirei/gitssh/internal/logging"
	"github.com/toeirei/gitssh/internal/model"
	"github.com/toeirei/gitssh/internal/sshalgo"
	"github.com/toeirei/gitssh/internal/sshuri"
)

// Validator checks a profile tree after it has been loaded.
type Validator interface {
	Validate(root *model.Profile) Report
}

// Engine runs the rule list over flattened profiles. It is immutable after
// New and safe for concurrent use.
type Engine struct {
	whitelist sshalgo.Whitelist
	rules     []Rule
	logger    *clog.Logger
}

var _ Validator = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithWhitelist replaces the default host key algorithm whitelist.
func WithWhitelist(w sshalgo.Whitelist) Option {
	return func(e *Engine) {
		e.whitelist = w
	}
}

// WithLogger sets the logger used for debug output. The package logger is
// used when none is given.
func WithLogger(l *clog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New returns an Engine with the default whitelist unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{whitelist: sshalgo.Supported()}
	for _, opt := range opts {
		opt(e)
	}
	e.rules = Rules(e.whitelist)
	return e
}

var defaultEngine = New()

// Validate checks root with the default engine.
func Validate(root *model.Profile) Report {
	return defaultEngine.Validate(root)
}

// Whitelist returns the algorithms this engine accepts.
func (e *Engine) Whitelist() sshalgo.Whitelist {
	return e.whitelist.With()
}

// Validate checks root and its direct overrides and returns every violation.
// A nil root is a programming error and panics.
func (e *Engine) Validate(root *model.Profile) Report {
	if root == nil {
		panic("validation: nil profile tree")
	}
	entries := model.Flatten(root)
	violations := make([]Violation, 0)
	for _, entry := range entries {
		violations = append(violations, e.Check(entry)...)
	}
	e.log().Debug("validated SSH profiles", "profiles", len(entries), "violations", len(violations))
	return Report{Valid: len(violations) == 0, Violations: violations}
}

// Check applies every rule to a single flattened profile. Profiles that are
// not addressed over SSH yield no violations.
func (e *Engine) Check(entry model.Entry) []Violation {
	p := entry.Profile
	if p == nil {
		return nil
	}
	if !sshuri.IsSSHTransport(p.URI) {
		e.log().Debug("skipping non-SSH profile", "profile", label(entry), "uri", p.URI)
		return nil
	}
	var out []Violation
	for _, rule := range e.rules {
		if rule.Violated(p) {
			out = append(out, Violation{
				Profile:   entry.Name,
				Property:  PropertyPath(entry.Name, rule.Property),
				Rule:      rule.Name,
				Message:   rule.Message,
				MessageID: rule.MessageID,
			})
		}
	}
	return out
}

func (e *Engine) log() *clog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return logging.L
}

func label(entry model.Entry) string {
	if entry.IsRoot() {
		return RootLabel
	}
	return entry.Name
}
