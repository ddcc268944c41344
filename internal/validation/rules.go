// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package validation

import (
	"github.com/toeirei/gitssh/internal/model"
	"github.com/toeirei/gitssh/internal/sshalgo"
	"github.com/toeirei/gitssh/internal/sshkey"
)

// RuleName identifies a cross-field rule in diagnostics.
type RuleName string

const (
	RulePrivateKeyPresence RuleName = "PrivateKeyPresence"
	RulePrivateKeyFormat   RuleName = "PrivateKeyFormat"
	RuleHostKeyAlgoPairing RuleName = "HostKeyAlgoPairing"
	RuleAlgorithmSupported RuleName = "AlgorithmSupported"
)

// Property names as they appear under the git configuration namespace.
const (
	PropertyPrivateKey       = "privateKey"
	PropertyHostKey          = "hostKey"
	PropertyHostKeyAlgorithm = "hostKeyAlgorithm"
)

const (
	MsgPrivateKeyMissing  = "private key must be set"
	MsgPrivateKeyInvalid  = "private key is not a valid private key"
	MsgHostKeyMissing     = "host key must be set when host key algorithm is specified"
	MsgAlgorithmMissing   = "host key algorithm must be set when host key is specified"
	msgAlgorithmNotInList = "host key algorithm must be one of "
)

// Rule is one named predicate over a profile. Violated returns true when the
// profile breaks the rule; Property is the setting the operator must fix.
// MessageID keys the translated form of Message.
type Rule struct {
	Name      RuleName
	Property  string
	Message   string
	MessageID string
	Violated  func(p *model.Profile) bool
}

// Rules returns the ordered rule list for the given algorithm whitelist.
func Rules(whitelist sshalgo.Whitelist) []Rule {
	return []Rule{
		{
			Name:      RulePrivateKeyPresence,
			Property:  PropertyPrivateKey,
			Message:   MsgPrivateKeyMissing,
			MessageID: "private_key_missing",
			Violated: func(p *model.Profile) bool {
				return !model.HasText(p.PrivateKey)
			},
		},
		{
			Name:      RulePrivateKeyFormat,
			Property:  PropertyPrivateKey,
			Message:   MsgPrivateKeyInvalid,
			MessageID: "private_key_invalid",
			Violated: func(p *model.Profile) bool {
				return model.HasText(p.PrivateKey) && !sshkey.IsStructurallyValid([]byte(p.PrivateKey))
			},
		},
		{
			Name:      RuleHostKeyAlgoPairing,
			Property:  PropertyHostKey,
			Message:   MsgHostKeyMissing,
			MessageID: "host_key_missing",
			Violated: func(p *model.Profile) bool {
				return model.HasText(p.HostKeyAlgorithm) && !model.HasText(p.HostKey)
			},
		},
		{
			Name:      RuleHostKeyAlgoPairing,
			Property:  PropertyHostKeyAlgorithm,
			Message:   MsgAlgorithmMissing,
			MessageID: "host_key_algorithm_missing",
			Violated: func(p *model.Profile) bool {
				return model.HasText(p.HostKey) && !model.HasText(p.HostKeyAlgorithm)
			},
		},
		{
			Name:      RuleAlgorithmSupported,
			Property:  PropertyHostKeyAlgorithm,
			Message:   msgAlgorithmNotInList + whitelist.String(),
			MessageID: "host_key_algorithm_unsupported",
			Violated: func(p *model.Profile) bool {
				return model.HasText(p.HostKeyAlgorithm) && !whitelist.Contains(p.HostKeyAlgorithm)
			},
		},
	}
}
