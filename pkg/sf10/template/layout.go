// Package template knows the fixed coordinate layout of the SF10 output
// template and stamps student records onto copies of it.
package template

import "github.com/sf10tools/sf10gen-go/pkg/sf10/models"

// Fixed name-field cells on every generated sheet.
const (
	LastNameCell   = "E9"
	FirstNameCell  = "Q9"
	MiddleNameCell = "AP9"
)

// Fixed enrichment cells, directly under the name row. Written only when
// the record carries a resolved profile.
const (
	LRNCell       = "E10"
	BirthDateCell = "Q10"
	SexCell       = "AP10"
)

// Subject label column and the grade grid geometry (1-based).
const (
	SubjectLabelCol = 2  // column B
	QuarterCol1     = 11 // column K; quarters 2-4 follow in L, M, N
)

// SubjectRows maps each subject to its fixed template row.
var SubjectRows = map[models.Subject]int{
	models.SubjectLanguage:    30,
	models.SubjectReading:     31,
	models.SubjectMathematics: 32,
	models.SubjectGMRC:        33,
	models.SubjectMakabansa:   34,
}

// QuarterColumn returns the fixed column for a quarter's grades.
// Quarters outside 1-4 have no column; callers validate first.
func QuarterColumn(quarter int) int {
	return QuarterCol1 + quarter - 1
}

// Structural thresholds used when classifying an uploaded workbook as a
// previously generated artifact. A grading sheet has a handful of sheets
// and next to no merged cells; the SF10 template has hundreds.
const (
	MinArtifactSheets = 20
	MinMergedRanges   = 100
)

// SubjectKeywordRows are the rows whose column-B labels must contain
// subject keywords for a workbook to count as an artifact.
var SubjectKeywordRows = []int{30, 31, 32}

// SubjectKeywords are the words looked for in the label rows above.
var SubjectKeywords = []string{"language", "reading", "math"}
