// Package parser reads the workbook shapes the generator understands:
// grading summary sheets, learner profile sources, and previously
// generated artifacts.
package parser

import (
	"fmt"
	"strings"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

// IdentityError indicates a name field that cannot be decomposed.
// Callers treat it as a row-level problem: skip the row, keep going.
type IdentityError struct {
	Raw string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("unparsable name field %q: expected \"LAST,FIRST, MIDDLE\"", e.Raw)
}

// ParseIdentity splits a "LAST,FIRST, MIDDLE" name field into its parts.
// Commas separate the segments, surrounding whitespace is arbitrary, and
// the middle segment is optional. Input with no comma is unparsable.
func ParseIdentity(raw string) (models.Identity, error) {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return models.Identity{}, &IdentityError{Raw: raw}
	}

	id := models.Identity{
		LastName:  strings.TrimSpace(parts[0]),
		FirstName: strings.TrimSpace(parts[1]),
	}
	if len(parts) > 2 {
		// Anything past the second comma is the middle name, rejoined in
		// case it contained commas itself.
		id.MiddleName = strings.TrimSpace(strings.Join(parts[2:], " "))
	}

	if id.LastName == "" || id.FirstName == "" {
		return models.Identity{}, &IdentityError{Raw: raw}
	}
	return id, nil
}
