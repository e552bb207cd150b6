package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
	"github.com/sf10tools/sf10gen-go/pkg/sf10/template"
)

// ReadArtifact rebuilds the in-memory student index from a previously
// generated artifact workbook. Sheet order becomes index order, which is
// what keeps student ordering stable across merges. Sheets without a
// readable name anchor are skipped.
func ReadArtifact(path string) (*models.Artifact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	artifact := &models.Artifact{}
	for _, sheet := range f.GetSheetList() {
		rec, ok := readStudentSheet(f, sheet)
		if !ok {
			continue
		}
		artifact.Append(rec)
	}
	return artifact, nil
}

func readStudentSheet(f *excelize.File, sheet string) (*models.StudentRecord, bool) {
	last := cellValue(f, sheet, template.LastNameCell)
	first := cellValue(f, sheet, template.FirstNameCell)
	if last == "" || first == "" {
		return nil, false
	}

	rec := &models.StudentRecord{
		Identity: models.Identity{
			LastName:   last,
			FirstName:  first,
			MiddleName: cellValue(f, sheet, template.MiddleNameCell),
		},
		Profile: models.Profile{
			LRN:       cellValue(f, sheet, template.LRNCell),
			BirthDate: cellValue(f, sheet, template.BirthDateCell),
			Sex:       cellValue(f, sheet, template.SexCell),
		},
	}

	for quarter := 1; quarter <= 4; quarter++ {
		col := template.QuarterColumn(quarter)
		grades := models.Grades{}
		for subject, row := range template.SubjectRows {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				continue
			}
			if v, ok := parseGrade(cellValue(f, sheet, cell)); ok {
				grades[subject] = v
			}
		}
		if len(grades) > 0 {
			rec.SetQuarter(quarter, grades)
		}
	}

	return rec, true
}

func cellValue(f *excelize.File, sheet, cell string) string {
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}
