// Copyright (c) 2026 Keymaster Team
// gitssh - SSH connection profile validation
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// Entry is one profile produced by Flatten. Name is empty for the root.
type Entry struct {
	Name    string
	Profile *Profile
}

// IsRoot reports whether the entry is the root profile.
func (e Entry) IsRoot() bool {
	return e.Name == ""
}

// Flatten returns the root followed by its direct overrides in declaration
// order. Overrides nested below the first level are not included; nil
// overrides are skipped.
func Flatten(root *Profile) []Entry {
	if root == nil {
		return nil
	}
	entries := make([]Entry, 0, 1+root.Repos.Len())
	entries = append(entries, Entry{Profile: root})
	for name, p := range root.Repos.All() {
		if p == nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Profile: p})
	}
	return entries
}
