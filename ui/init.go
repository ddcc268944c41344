// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package ui

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/toeirei/gitssh/internal/i18n"
	"github.com/toeirei/gitssh/internal/logging"
)

// fallbackLanguage is used when the requested language has no translations.
const fallbackLanguage = "en"

// InitializeDefaults applies the log level and the output language. An
// unknown level is reported and replaced by "info"; a language without an
// embedded translation is reported and replaced by English.
func InitializeDefaults(lang, logLevel string) {
	if err := logging.SetLevel(logLevel); err != nil {
		logging.Warnf("%v; using info", err)
		_ = logging.SetLevel("info")
	}
	available := i18n.GetAvailableLocales()
	if !hasLanguage(available, lang) {
		logging.Warnf("unsupported language %q (available: %s); using %s", lang, strings.Join(available, ", "), fallbackLanguage)
		lang = fallbackLanguage
	}
	i18n.Init(lang)
}

// hasLanguage reports whether lang or its base language ("de" for "de-AT")
// is one of the available locale tags.
func hasLanguage(available []string, lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, a := range available {
		if strings.EqualFold(a, tag.String()) || strings.EqualFold(a, base.String()) {
			return true
		}
	}
	return false
}
