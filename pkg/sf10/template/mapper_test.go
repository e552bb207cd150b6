package template

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

// writeTemplate builds a minimal SF10 template fixture: the subject
// label block the mapper validates, the quarter header, and a few merged
// ranges to verify structural preservation.
func writeTemplate(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "K28", "Quarterly Rating")
	for q := 1; q <= 4; q++ {
		f.SetCellValue(sheet, mustCell(t, QuarterColumn(q), 29), q)
	}
	for subject, row := range SubjectRows {
		f.SetCellValue(sheet, mustCell(t, SubjectLabelCol, row), string(subject))
	}

	merges := [][2]string{
		{"A1", "D3"},
		{"E9", "P9"},
		{"Q9", "AO9"},
		{"B20", "F21"},
	}
	for _, m := range merges {
		if err := f.MergeCell(sheet, m[0], m[1]); err != nil {
			t.Fatalf("MergeCell failed: %v", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

func mustCell(t *testing.T, col, row int) string {
	t.Helper()
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("CoordinatesToCellName failed: %v", err)
	}
	return name
}

func TestNewMapperRejectsMalformedTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "not a template")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	_, err := NewMapper(path, nil, nil)
	var tmplErr *TemplateError
	if !errors.As(err, &tmplErr) {
		t.Fatalf("expected *TemplateError, got %v", err)
	}
}

func TestMapperStamp(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "SF10.xlsx")
	outPath := filepath.Join(dir, "out.xlsx")
	writeTemplate(t, tmplPath)

	m, err := NewMapper(tmplPath, nil, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	defer m.Close()

	rec := &models.StudentRecord{
		Identity: models.Identity{LastName: "AGOT", FirstName: "KHIAN CLOUD", MiddleName: "DABLO"},
		Profile:  models.Profile{LRN: "136414090001", BirthDate: "2018-03-14", Sex: "M"},
		Quarters: map[int]models.Grades{
			1: {models.SubjectLanguage: 83, models.SubjectMathematics: 86},
			3: {models.SubjectLanguage: 90},
		},
	}
	sheet, err := m.Stamp(rec)
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}

	plain := &models.StudentRecord{
		Identity: models.Identity{LastName: "DELA CRUZ", FirstName: "JUAN"},
	}
	if _, err := m.Stamp(plain); err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}

	if err := m.Finalize(outPath); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	out, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer out.Close()

	// The bare template sheet is removed from the artifact.
	for _, s := range out.GetSheetList() {
		if s == "Sheet1" {
			t.Error("template sheet must be deleted from the output")
		}
	}
	if n := len(out.GetSheetList()); n != 2 {
		t.Fatalf("expected 2 student sheets, got %d", n)
	}

	get := func(cell string) string {
		v, err := out.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) failed: %v", cell, err)
		}
		return v
	}

	if get(LastNameCell) != "AGOT" || get(FirstNameCell) != "KHIAN CLOUD" || get(MiddleNameCell) != "DABLO" {
		t.Error("name fields not stamped at fixed cells")
	}
	if get(LRNCell) != "136414090001" || get(SexCell) != "M" {
		t.Error("enrichment fields not stamped")
	}

	langRow := SubjectRows[models.SubjectLanguage]
	if get(mustCell(t, QuarterColumn(1), langRow)) != "83" {
		t.Error("Q1 Language grade not stamped")
	}
	if get(mustCell(t, QuarterColumn(1), SubjectRows[models.SubjectMathematics])) != "86" {
		t.Error("Q1 Mathematics grade not stamped")
	}
	if get(mustCell(t, QuarterColumn(3), langRow)) != "90" {
		t.Error("Q3 Language grade not stamped")
	}
	// Quarters never supplied stay exactly as the template had them.
	if v := get(mustCell(t, QuarterColumn(2), langRow)); v != "" {
		t.Errorf("Q2 cell must stay untouched, got %q", v)
	}
	if v := get(mustCell(t, QuarterColumn(1), SubjectRows[models.SubjectMakabansa])); v != "" {
		t.Errorf("ungraded subject cell must stay empty, got %q", v)
	}

	// Merged-cell geometry survives the copy on every student sheet.
	tmpl, err := excelize.OpenFile(tmplPath)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer tmpl.Close()
	want, err := tmpl.GetMergeCells("Sheet1")
	if err != nil {
		t.Fatalf("GetMergeCells failed: %v", err)
	}
	for _, s := range out.GetSheetList() {
		got, err := out.GetMergeCells(s)
		if err != nil {
			t.Fatalf("GetMergeCells(%s) failed: %v", s, err)
		}
		if len(got) != len(want) {
			t.Errorf("sheet %s: expected %d merged ranges, got %d", s, len(want), len(got))
		}
	}

	// Enrichment cells stay empty for records without a profile.
	if v, _ := out.GetCellValue("DELA CRUZ JUAN", LRNCell); v != "" {
		t.Errorf("empty profile must not stamp enrichment cells, got %q", v)
	}
}

func TestMapperSheetNames(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "SF10.xlsx")
	writeTemplate(t, tmplPath)

	m, err := NewMapper(tmplPath, nil, nil)
	if err != nil {
		t.Fatalf("NewMapper failed: %v", err)
	}
	defer m.Close()

	// Long names truncate to LAST[:15] FIRST[:10].
	long := &models.StudentRecord{
		Identity: models.Identity{LastName: "VILLANUEVA-SANTIAGO", FirstName: "MARIA CRISTINA"},
	}
	name, err := m.Stamp(long)
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}
	if name != "VILLANUEVA-SANT MARIA CRIS" {
		t.Errorf("unexpected sheet name %q", name)
	}

	// Identical display names get a numeric suffix, not a collision.
	twinA := &models.StudentRecord{Identity: models.Identity{LastName: "CRUZ", FirstName: "ANA", MiddleName: "A"}}
	twinB := &models.StudentRecord{Identity: models.Identity{LastName: "CRUZ", FirstName: "ANA", MiddleName: "B"}}
	nameA, err := m.Stamp(twinA)
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}
	nameB, err := m.Stamp(twinB)
	if err != nil {
		t.Fatalf("Stamp failed: %v", err)
	}
	if nameA == nameB {
		t.Errorf("sheet names must be unique, both %q", nameA)
	}
}
