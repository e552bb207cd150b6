package sf10

import (
	"errors"
	"fmt"
)

// ErrNoInput indicates a merge call with no grading datasets.
var ErrNoInput = errors.New("no grading datasets supplied")

// ErrNoStudents indicates a merge that ended with an empty student
// index: every input failed and no existing artifact seeded it. An
// artifact with zero student sheets is not a valid workbook, so this is
// surfaced instead of writing one.
var ErrNoStudents = errors.New("no student records to write")

// ErrInvalidQuarter indicates a quarter number outside 1-4. The quarter
// comes from the caller (filename convention at the upload layer), so an
// out-of-range value is a caller bug, not bad sheet data.
var ErrInvalidQuarter = errors.New("quarter must be between 1 and 4")

// Warning records a non-fatal problem encountered during a merge:
// a skipped row, an ambiguous profile match, or a grading file that
// could not be read. Warnings never abort the merge.
type Warning struct {
	// File is the input file the problem belongs to, when applicable.
	File string `json:"file,omitempty"`
	// Row is the 1-based source row, when applicable.
	Row int `json:"row,omitempty"`
	// Message describes the problem.
	Message string `json:"message"`
}

func (w Warning) String() string {
	switch {
	case w.File != "" && w.Row > 0:
		return fmt.Sprintf("%s row %d: %s", w.File, w.Row, w.Message)
	case w.File != "":
		return fmt.Sprintf("%s: %s", w.File, w.Message)
	default:
		return w.Message
	}
}
