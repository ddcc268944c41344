// Copyright (c) 2025 ToeiRei
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter is a tool to check for missing or orphaned translation keys.
// It scans the Go source code for i18n.T() calls and rule message IDs and
// compares them against the YAML locale files to ensure consistency.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."

	// violationPrefix is prepended to a rule's MessageID by the CLI renderer.
	violationPrefix = "violation."
)

var (
	// i18n.T("some.key") and dotted string literals such as "report.valid".
	keyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z]+\.[a-z\._]+)"`)
	// MessageID: "private_key_missing" in rule tables.
	messageIDRe = regexp.MustCompile(`MessageID:\s*"([a-z_]+)"`)
)

func main() {
	fmt.Println("🔍 Running i18n linter...")

	// 1. Find all keys used in the Go source code.
	used, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("❌ Error finding used keys: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Found %d unique translation keys used in source code.\n", len(used.translated))

	// 2. Load all locale files.
	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ Error finding locale files: %v\n", err)
		os.Exit(1)
	}

	// 3. Load the primary locale as the source of truth.
	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fmt.Printf("❌ Error loading primary locale '%s': %v\n", primaryLocale, err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d keys from primary locale (%s).\n\n", len(primaryKeys), primaryLocale)

	failed := false

	fmt.Println("--- Checking for Undefined Keys (used in code but not in primary locale) ---")
	undefined := difference(used.translated, primaryKeys)
	for _, key := range sorted(undefined) {
		fmt.Printf("  - Undefined: %s\n", key)
	}
	if len(undefined) == 0 {
		fmt.Println("  ✨ None found.")
	} else {
		failed = true
	}
	fmt.Println()

	fmt.Println("--- Checking for Orphaned Keys (in primary locale but not used in code) ---")
	orphaned := difference(difference(primaryKeys, used.translated), used.literals)
	for _, key := range sorted(orphaned) {
		fmt.Printf("  - Orphaned: %s\n", key)
	}
	if len(orphaned) == 0 {
		fmt.Println("  ✨ None found.")
	}
	fmt.Println()

	fmt.Println("--- Checking for Missing Keys (in primary locale but not in others) ---")
	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}

		fmt.Printf("Checking %s:\n", file)
		secondaryKeys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("  - ❌ Error loading %s: %v\n", file, err)
			failed = true
			continue
		}

		missing := difference(primaryKeys, secondaryKeys)
		for _, key := range sorted(missing) {
			fmt.Printf("  - Missing: %s\n", key)
		}
		for _, key := range sorted(difference(secondaryKeys, primaryKeys)) {
			fmt.Printf("  - Extra: %s\n", key)
		}
		if len(missing) == 0 {
			fmt.Println("  ✨ All keys present.")
		} else {
			failed = true
		}
	}

	fmt.Println("\n--- Linter Finished ---")
	switch {
	case failed:
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	case len(orphaned) > 0:
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Println("✅ All translation files are consistent!")
	}
}

// usedKeys separates keys passed to the translator from dotted literals that
// only might be keys. Literals keep a key from being reported as orphaned but
// are never required to exist in a locale.
type usedKeys struct {
	translated map[string]struct{}
	literals   map[string]struct{}
}

func newUsedKeys() usedKeys {
	return usedKeys{translated: make(map[string]struct{}), literals: make(map[string]struct{})}
}

// findUsedKeys scans all non-test .go files below root for translation keys.
func findUsedKeys(root string) (usedKeys, error) {
	keys := newUsedKeys()

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		// Exclude the tools directory and the read-only reference trees.
		if info.IsDir() && (info.Name() == "tools" || strings.HasPrefix(info.Name(), "_")) && path != root {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		keys.collect(string(content))
		return nil
	})

	return keys, err
}

// collect records every key referenced by src.
func (u usedKeys) collect(src string) {
	for _, match := range keyRe.FindAllStringSubmatch(src, -1) {
		// match[1] is from i18n.T(), match[2] is from the general string literal
		if match[1] != "" {
			u.translated[match[1]] = struct{}{}
		} else if match[2] != "" {
			u.literals[match[2]] = struct{}{}
		}
	}
	for _, match := range messageIDRe.FindAllStringSubmatch(src, -1) {
		u.translated[violationPrefix+match[1]] = struct{}{}
	}
}

// difference returns the keys of a that are not in b.
func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for key := range a {
		if _, ok := b[key]; !ok {
			out[key] = struct{}{}
		}
	}
	return out
}

// sorted returns the keys of m in lexical order.
func sorted(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML is a recursive function to convert a nested map into a flat
// map with dot-separated keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			newPrefix := k
			if prefix != "" {
				newPrefix = prefix + "." + k
			}
			flattenYAML(newPrefix, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
