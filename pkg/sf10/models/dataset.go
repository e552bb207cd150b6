package models

// Subject is one of the five fixed academic subjects tracked per quarter.
type Subject string

const (
	SubjectLanguage    Subject = "Language"
	SubjectReading     Subject = "Reading and Literacy"
	SubjectMathematics Subject = "Mathematics"
	SubjectGMRC        Subject = "GMRC (Good Manners and Right Conduct)"
	SubjectMakabansa   Subject = "Makabansa"
)

// Subjects lists every subject in template row order.
var Subjects = []Subject{
	SubjectLanguage,
	SubjectReading,
	SubjectMathematics,
	SubjectGMRC,
	SubjectMakabansa,
}

// Grades maps a subject to its numeric grade. A subject with no recorded
// grade is absent from the map; absence is never encoded as zero.
type Grades map[Subject]float64

// StudentGradeRow is one data row from a grading sheet: the raw name field
// exactly as typed plus whatever grades the row carried.
type StudentGradeRow struct {
	// RawName is the unparsed "LAST,FIRST, MIDDLE" cell content.
	RawName string `json:"raw_name"`
	// Row is the 1-based source row, kept for warning context.
	Row int `json:"row"`
	// Grades holds the subject grades present on the row.
	Grades Grades `json:"grades"`
}

// QuarterDataset is the content of one grading sheet for one quarter.
// It is immutable once read.
type QuarterDataset struct {
	// Quarter is the grading period (1-4) supplied by the caller.
	Quarter int `json:"quarter"`
	// FileName is the source workbook name, kept for warning context.
	FileName string `json:"file_name"`
	// Rows are the student rows in sheet order.
	Rows []StudentGradeRow `json:"rows"`
}
