package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/template"
)

// Kind classifies an uploaded workbook by structure.
type Kind string

const (
	// KindArtifact is a previously generated multi-student record workbook.
	KindArtifact Kind = "artifact"
	// KindGradingSheet is anything else, including every ambiguous case:
	// misreading a grading sheet as an artifact would silently discard
	// grade data, so grading sheet is the safe default.
	KindGradingSheet Kind = "grading_sheet"
)

// Classification is the result of structural detection: the decided kind,
// how many predicates matched, and which ones failed.
type Classification struct {
	Kind    Kind     `json:"kind"`
	Score   int      `json:"score"`
	Total   int      `json:"total"`
	Missing []string `json:"missing,omitempty"`
}

// IsArtifact reports whether the workbook classified as an artifact.
func (c Classification) IsArtifact() bool {
	return c.Kind == KindArtifact
}

type predicate struct {
	name  string
	match func(f *excelize.File) bool
}

// artifactPredicates are the structural signals of a generated artifact.
// All of them must hit: one sheet per student means many sheets, every
// sheet carries the fixed name anchor, the subject label block, and the
// template's dense merged-cell grid. Filenames are user-controlled and
// deliberately ignored.
var artifactPredicates = []predicate{
	{"sheet_count", func(f *excelize.File) bool {
		return len(f.GetSheetList()) >= template.MinArtifactSheets
	}},
	{"name_anchor", func(f *excelize.File) bool {
		sheet, ok := firstSheet(f)
		if !ok {
			return false
		}
		return cellValue(f, sheet, template.LastNameCell) != ""
	}},
	{"subject_labels", func(f *excelize.File) bool {
		sheet, ok := firstSheet(f)
		if !ok {
			return false
		}
		var labels []string
		for _, row := range template.SubjectKeywordRows {
			cell, err := excelize.CoordinatesToCellName(template.SubjectLabelCol, row)
			if err != nil {
				return false
			}
			labels = append(labels, strings.ToLower(cellValue(f, sheet, cell)))
		}
		joined := strings.Join(labels, " ")
		for _, kw := range template.SubjectKeywords {
			if strings.Contains(joined, kw) {
				return true
			}
		}
		return false
	}},
	{"merged_cells", func(f *excelize.File) bool {
		sheet, ok := firstSheet(f)
		if !ok {
			return false
		}
		merged, err := f.GetMergeCells(sheet)
		if err != nil {
			return false
		}
		return len(merged) > template.MinMergedRanges
	}},
}

// DetectArtifact classifies an open workbook by structural inspection.
func DetectArtifact(f *excelize.File) Classification {
	c := Classification{Kind: KindGradingSheet, Total: len(artifactPredicates)}
	for _, p := range artifactPredicates {
		if p.match(f) {
			c.Score++
		} else {
			c.Missing = append(c.Missing, p.name)
		}
	}
	if c.Score == c.Total {
		c.Kind = KindArtifact
	}
	return c
}

// DetectArtifactFile classifies a workbook on disk. Unreadable files
// classify as grading sheets.
func DetectArtifactFile(path string) Classification {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Classification{Kind: KindGradingSheet, Total: len(artifactPredicates)}
	}
	defer f.Close()
	return DetectArtifact(f)
}

func firstSheet(f *excelize.File) (string, bool) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", false
	}
	return sheets[0], true
}
