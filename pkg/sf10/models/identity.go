// Package models defines data structures for SF10 record generation.
package models

import "strings"

// Identity is the normalized (last, first, middle) decomposition of a
// student name field. Middle name is informational only: source files are
// inconsistent about including it, so it takes no part in matching.
type Identity struct {
	// LastName is the family name segment.
	LastName string `json:"last_name"`
	// FirstName is the given name segment.
	FirstName string `json:"first_name"`
	// MiddleName is the optional middle name segment.
	MiddleName string `json:"middle_name,omitempty"`
}

// MatchKey returns the tolerant matching key for this identity:
// case-folded, whitespace-collapsed last and first name. Two identities
// with equal keys refer to the same student even when the source rows
// differ in spacing or capitalization.
func (id Identity) MatchKey() string {
	return collapse(id.LastName) + "|" + collapse(id.FirstName)
}

// Same reports whether two identities refer to the same student.
func (id Identity) Same(other Identity) bool {
	return id.MatchKey() == other.MatchKey()
}

// DisplayName renders the identity back in "LAST, FIRST MIDDLE" form.
func (id Identity) DisplayName() string {
	s := id.LastName + ", " + id.FirstName
	if id.MiddleName != "" {
		s += " " + id.MiddleName
	}
	return s
}

func collapse(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
