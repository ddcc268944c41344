// Copyright (c) 2025 ToeiRei
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides translated operator-facing text for gitssh.
// It uses the go-i18n library to load the embedded YAML translation files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// Init loads every embedded locale and selects lang. Unknown languages fall
// back to English.
func Init(l string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, l, language.English.String())
}

// GetAvailableLocales returns the tags of all loaded translation files.
func GetAvailableLocales() []string {
	ensureInit()
	mu.RLock()
	defer mu.RUnlock()
	tags := bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	sort.Strings(out)
	return out
}

// T translates messageID. A single map argument is passed as template data;
// any other arguments are applied with fmt.Sprintf to the translated text.
// Unknown IDs are returned unchanged.
func T(messageID string, args ...any) string {
	ensureInit()
	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	mu.RLock()
	msg, err := localizer.Localize(cfg)
	mu.RUnlock()
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Has reports whether messageID has a translation in the active language or
// the English fallback.
func Has(messageID string) bool {
	return T(messageID) != messageID
}

func ensureInit() {
	mu.RLock()
	ready := localizer != nil
	mu.RUnlock()
	if !ready {
		Init("en")
	}
}
