package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

// SummarySheetName is the required sheet inside a grading workbook. The
// real files carry a trailing space in the name, so lookup trims.
const SummarySheetName = "SUMMARY OF QUARTERLY GRADES"

// Summary sheet geometry (1-based): student data starts at row 11, the
// name field sits in column B, and the five subject grades in columns F-J.
const (
	summaryDataStartRow  = 11
	summaryNameCol       = 2
	summaryFirstGradeCol = 6
)

// summarySubjectOrder is the fixed column order of subjects in the
// grading sheet, starting at summaryFirstGradeCol.
var summarySubjectOrder = []models.Subject{
	models.SubjectLanguage,
	models.SubjectReading,
	models.SubjectMathematics,
	models.SubjectGMRC,
	models.SubjectMakabansa,
}

// sentinelNames are section labels that appear in the name column between
// student blocks and must not be read as students.
var sentinelNames = map[string]bool{
	"MALE":            true,
	"FEMALE":          true,
	"LEARNERS' NAMES": true,
}

// SchemaError indicates a grading workbook that does not match the
// expected shape. It is fatal for that one file only.
type SchemaError struct {
	File  string
	Sheet string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required sheet %q not found", e.File, e.Sheet)
}

// FindSummarySheet locates the summary sheet by exact or
// trimmed-whitespace name match.
func FindSummarySheet(f *excelize.File) (string, bool) {
	for _, name := range f.GetSheetList() {
		if strings.TrimSpace(name) == SummarySheetName {
			return name, true
		}
	}
	return "", false
}

// ReadQuarterDataset opens a grading workbook and reads its summary sheet
// into a dataset for the given quarter. The quarter number comes from the
// caller; the sheet itself is quarter-agnostic.
func ReadQuarterDataset(path string, quarter int, fileName string) (*models.QuarterDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadSummary(f, fileName)
	if err != nil {
		return nil, err
	}
	return &models.QuarterDataset{
		Quarter:  quarter,
		FileName: fileName,
		Rows:     rows,
	}, nil
}

// ReadSummary extracts the student rows from an open grading workbook.
// Reading stops at the first row with an empty name field; section label
// rows in between are skipped. Blank or non-numeric grade cells are
// recorded as no grade, never as zero.
func ReadSummary(f *excelize.File, fileName string) ([]models.StudentGradeRow, error) {
	sheet, ok := FindSummarySheet(f)
	if !ok {
		return nil, &SchemaError{File: fileName, Sheet: SummarySheetName}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var result []models.StudentGradeRow
	for idx := summaryDataStartRow - 1; idx < len(rows); idx++ {
		row := rows[idx]
		name := strings.TrimSpace(cellAt(row, summaryNameCol))
		if name == "" {
			break
		}
		if sentinelNames[strings.ToUpper(name)] {
			continue
		}

		grades := make(models.Grades, len(summarySubjectOrder))
		for i, subject := range summarySubjectOrder {
			if v, ok := parseGrade(cellAt(row, summaryFirstGradeCol+i)); ok {
				grades[subject] = v
			}
		}

		result = append(result, models.StudentGradeRow{
			RawName: name,
			Row:     idx + 1,
			Grades:  grades,
		})
	}

	return result, nil
}

// cellAt returns the value at a 1-based column, tolerating short rows.
func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

// parseGrade parses a grade cell. Blank and non-numeric cells carry no
// grade.
func parseGrade(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
