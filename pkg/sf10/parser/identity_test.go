package parser

import (
	"errors"
	"testing"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		input  string
		last   string
		first  string
		middle string
	}{
		{"AGOT,KHIAN CLOUD, DABLO", "AGOT", "KHIAN CLOUD", "DABLO"},
		{"DELA CRUZ,JUAN", "DELA CRUZ", "JUAN", ""},
		{"  ANDEO , JHON PAUL ,  ANITADO ", "ANDEO", "JHON PAUL", "ANITADO"},
		{"AGOT, KHIAN CLOUD,DABLO", "AGOT", "KHIAN CLOUD", "DABLO"},
	}

	for _, tt := range tests {
		id, err := ParseIdentity(tt.input)
		if err != nil {
			t.Errorf("ParseIdentity(%q) failed: %v", tt.input, err)
			continue
		}
		if id.LastName != tt.last || id.FirstName != tt.first || id.MiddleName != tt.middle {
			t.Errorf("ParseIdentity(%q) = %+v, expected {%s %s %s}",
				tt.input, id, tt.last, tt.first, tt.middle)
		}
	}
}

func TestParseIdentityInvalid(t *testing.T) {
	for _, input := range []string{"JUAN DELA CRUZ", "", "   ", ",JUAN", "DELA CRUZ,"} {
		_, err := ParseIdentity(input)
		if err == nil {
			t.Errorf("ParseIdentity(%q) should fail", input)
			continue
		}
		var idErr *IdentityError
		if !errors.As(err, &idErr) {
			t.Errorf("ParseIdentity(%q) returned %T, expected *IdentityError", input, err)
		}
	}
}

func TestIdentityMatchingTolerance(t *testing.T) {
	a, err := ParseIdentity("AGOT,KHIAN CLOUD, DABLO")
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	b, err := ParseIdentity("AGOT, KHIAN  CLOUD,DABLO")
	if err != nil {
		t.Fatalf("ParseIdentity failed: %v", err)
	}
	if !a.Same(b) {
		t.Errorf("spacing variants should match: %q vs %q", a.MatchKey(), b.MatchKey())
	}

	// Middle name is informational only.
	c := models.Identity{LastName: "AGOT", FirstName: "KHIAN CLOUD", MiddleName: "X"}
	if !a.Same(c) {
		t.Error("middle name must not affect matching")
	}

	d := models.Identity{LastName: "AGOT", FirstName: "KHIAN"}
	if a.Same(d) {
		t.Error("different first names must not match")
	}
}
