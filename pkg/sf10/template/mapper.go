package template

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

// Mapper stamps student records onto copies of the SF10 template sheet.
// One Mapper owns one output workbook in progress: it is created from the
// template file, receives one Stamp call per student, and is finalized
// into the output artifact. It is not safe for concurrent use.
type Mapper struct {
	file          *excelize.File
	templateSheet string
	templateIdx   int
	logos         []Logo
	logger        *zap.Logger
	used          map[string]int
}

// TemplateError indicates the template workbook is malformed or missing
// the fixed anchor cells the layout depends on.
type TemplateError struct {
	Path   string
	Reason string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid template %q: %s", e.Path, e.Reason)
}

// NewMapper opens the template workbook and validates its anchor cells.
// logos may be empty when no assets are configured.
func NewMapper(templatePath string, logos []Logo, logger *zap.Logger) (*Mapper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, &TemplateError{Path: templatePath, Reason: "workbook has no sheets"}
	}
	sheet := sheets[0]

	if err := validateAnchors(f, sheet); err != nil {
		f.Close()
		return nil, &TemplateError{Path: templatePath, Reason: err.Error()}
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Mapper{
		file:          f,
		templateSheet: sheet,
		templateIdx:   idx,
		logos:         logos,
		logger:        logger,
		used:          map[string]int{strings.ToLower(sheet): 1},
	}, nil
}

// validateAnchors checks the subject label block the grade grid hangs off.
func validateAnchors(f *excelize.File, sheet string) error {
	for _, row := range SubjectKeywordRows {
		cell, err := excelize.CoordinatesToCellName(SubjectLabelCol, row)
		if err != nil {
			return err
		}
		val, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return err
		}
		label := strings.ToLower(val)
		ok := false
		for _, kw := range SubjectKeywords {
			if strings.Contains(label, kw) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("subject label missing at %s", cell)
		}
	}
	return nil
}

// Stamp copies the template sheet and writes one student record onto the
// copy: name fields, enrichment fields when present, and every recorded
// (quarter, subject) grade. Quarters absent from the record are left
// exactly as the template has them. Returns the generated sheet name.
func (m *Mapper) Stamp(rec *models.StudentRecord) (string, error) {
	name := m.sheetName(rec.Identity)

	idx, err := m.file.NewSheet(name)
	if err != nil {
		return "", err
	}
	if err := m.file.CopySheet(m.templateIdx, idx); err != nil {
		return "", err
	}

	cells := map[string]string{
		LastNameCell:   rec.Identity.LastName,
		FirstNameCell:  rec.Identity.FirstName,
		MiddleNameCell: rec.Identity.MiddleName,
	}
	if !rec.Profile.Empty() {
		cells[LRNCell] = rec.Profile.LRN
		cells[BirthDateCell] = rec.Profile.BirthDate
		cells[SexCell] = rec.Profile.Sex
	}
	for cell, val := range cells {
		if err := m.file.SetCellValue(name, cell, val); err != nil {
			return "", err
		}
	}

	for quarter, grades := range rec.Quarters {
		if quarter < 1 || quarter > 4 {
			continue
		}
		col := QuarterColumn(quarter)
		for subject, grade := range grades {
			row, ok := SubjectRows[subject]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return "", err
			}
			if err := m.file.SetCellValue(name, cell, grade); err != nil {
				return "", err
			}
		}
	}

	for _, logo := range m.logos {
		if err := placeLogo(m.file, name, logo); err != nil {
			// Missing or undecodable assets never block generation.
			m.logger.Debug("skipping logo",
				zap.String("sheet", name),
				zap.String("path", logo.Path),
				zap.Error(err))
		}
	}

	return name, nil
}

// Finalize removes the bare template sheet and writes the artifact.
func (m *Mapper) Finalize(outputPath string) error {
	if err := m.file.DeleteSheet(m.templateSheet); err != nil {
		return err
	}
	m.file.SetActiveSheet(0)
	return m.file.SaveAs(outputPath)
}

// Close releases the underlying workbook.
func (m *Mapper) Close() error {
	return m.file.Close()
}

// sheetName builds an Excel-safe sheet name from the identity, in the
// "LAST FIRST" form the artifact reader relies on, deduplicated with a
// numeric suffix on collision.
func (m *Mapper) sheetName(id models.Identity) string {
	base := strings.TrimSpace(truncate(id.LastName, 15) + " " + truncate(id.FirstName, 10))
	for _, bad := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		base = strings.ReplaceAll(base, bad, "")
	}
	base = truncate(base, 28)
	if base == "" {
		base = "STUDENT"
	}

	name := base
	key := strings.ToLower(name)
	for m.used[key] > 0 {
		m.used[key]++
		name = fmt.Sprintf("%s %d", base, m.used[key])
		key = strings.ToLower(name)
	}
	m.used[strings.ToLower(name)] = 1
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
