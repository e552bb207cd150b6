package sf10

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
	"github.com/sf10tools/sf10gen-go/pkg/sf10/parser"
	"github.com/sf10tools/sf10gen-go/pkg/sf10/template"
)

// QuarterFile pairs one grading workbook with the quarter it covers.
// The quarter number is the caller's to supply; the sheet itself is
// quarter-agnostic.
type QuarterFile struct {
	Path    string
	Quarter int
}

// MergeInput is the single merge entry point's argument: one or more
// quarter files, an optional existing artifact to merge into, and an
// optional learner profile source.
type MergeInput struct {
	Files []QuarterFile
	// ExistingArtifact, when set, seeds the student index so previously
	// recorded quarters survive the merge.
	ExistingArtifact string
	// ProfilePath, when set, enriches newly introduced students with
	// LRN, birth date, and sex.
	ProfilePath string
	// OutputPath is where the regenerated artifact is written.
	OutputPath string
}

// MergeResult reports a completed merge.
type MergeResult struct {
	OutputPath      string    `json:"output_path"`
	Students        int       `json:"students"`
	QuartersTouched []int     `json:"quarters_touched"`
	Warnings        []Warning `json:"warnings,omitempty"`
	// Artifact is the merged in-memory index the output was generated
	// from. Excluded from the CLI's JSON summary.
	Artifact *models.Artifact `json:"-"`
}

// Engine folds quarterly grading datasets into a single consistent
// artifact. A merge never mutates the supplied existing artifact file;
// the whole operation is a pure function from (old artifact, datasets)
// to a brand-new output workbook.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// NewEngine creates a merge engine.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts, logger: opts.logger()}
}

// Merge runs the full pipeline: seed the index from the existing
// artifact, fold each quarter dataset in, then regenerate every student
// sheet from the template. Row-level problems degrade to warnings;
// unreadable grading files are skipped with a warning; template and
// output problems are fatal.
func (e *Engine) Merge(in MergeInput) (*MergeResult, error) {
	if len(in.Files) == 0 {
		return nil, ErrNoInput
	}
	for _, qf := range in.Files {
		if qf.Quarter < 1 || qf.Quarter > 4 {
			return nil, fmt.Errorf("%s: %w (got %d)", qf.Path, ErrInvalidQuarter, qf.Quarter)
		}
	}

	result := &MergeResult{OutputPath: in.OutputPath}

	index := &models.Artifact{}
	if in.ExistingArtifact != "" {
		existing, err := parser.ReadArtifact(in.ExistingArtifact)
		if err != nil {
			return nil, fmt.Errorf("reading existing artifact: %w", err)
		}
		index = existing
		e.logger.Info("seeded index from existing artifact",
			zap.String("path", in.ExistingArtifact),
			zap.Int("students", len(index.Records)))
	}

	profiles := e.loadProfiles(in.ProfilePath, result)

	touched := map[int]bool{}
	for _, qf := range in.Files {
		fileName := filepath.Base(qf.Path)
		dataset, err := parser.ReadQuarterDataset(qf.Path, qf.Quarter, fileName)
		if err != nil {
			// Fatal for this one file only; the other inputs still merge.
			result.Warnings = append(result.Warnings, Warning{
				File:    fileName,
				Message: err.Error(),
			})
			e.logger.Warn("skipping grading file", zap.String("file", fileName), zap.Error(err))
			continue
		}
		e.foldDataset(index, dataset, profiles, result)
		touched[qf.Quarter] = true
	}

	for q := range touched {
		result.QuartersTouched = append(result.QuartersTouched, q)
	}
	sort.Ints(result.QuartersTouched)

	if err := e.regenerate(index, in.OutputPath); err != nil {
		return nil, err
	}
	result.Students = len(index.Records)
	result.Artifact = index

	e.logger.Info("merge complete",
		zap.String("output", in.OutputPath),
		zap.Int("students", result.Students),
		zap.Ints("quarters", result.QuartersTouched),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// foldDataset applies one quarter dataset to the index. Matching is
// tolerant across the whole index, so a student found in the existing
// artifact or introduced by an earlier dataset is updated, not
// duplicated. Within one dataset, a later duplicate row wins.
func (e *Engine) foldDataset(index *models.Artifact, ds *models.QuarterDataset, profiles *parser.ProfileIndex, result *MergeResult) {
	for _, row := range ds.Rows {
		id, err := parser.ParseIdentity(row.RawName)
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{
				File:    ds.FileName,
				Row:     row.Row,
				Message: err.Error(),
			})
			continue
		}

		rec := index.Find(id)
		if rec == nil {
			rec = &models.StudentRecord{Identity: id}
			e.enrich(rec, profiles, ds.FileName, result)
			index.Append(rec)
		}
		// Only this dataset's quarter is written; every other quarter in
		// the record stays as it was.
		rec.SetQuarter(ds.Quarter, row.Grades)
	}
}

// enrich resolves profile fields for a newly introduced student.
func (e *Engine) enrich(rec *models.StudentRecord, profiles *parser.ProfileIndex, fileName string, result *MergeResult) {
	if profiles == nil {
		return
	}
	match, ambiguous := profiles.Find(rec.Identity)
	if match == nil {
		return
	}
	if ambiguous {
		result.Warnings = append(result.Warnings, Warning{
			File:    fileName,
			Message: fmt.Sprintf("multiple profile records match %s; using the first", rec.Identity.DisplayName()),
		})
	}
	rec.Profile = match.Profile
}

// loadProfiles reads the optional profile source. Profile problems never
// block grade generation, so read failures degrade to a warning.
func (e *Engine) loadProfiles(path string, result *MergeResult) *parser.ProfileIndex {
	if path == "" {
		return nil
	}
	profiles, err := parser.ReadProfiles(path)
	if err != nil {
		result.Warnings = append(result.Warnings, Warning{
			File:    filepath.Base(path),
			Message: fmt.Sprintf("learner profile source unreadable: %v", err),
		})
		return nil
	}
	return profiles
}

// regenerate stamps every indexed student onto a fresh copy of the
// template and writes the output artifact.
func (e *Engine) regenerate(index *models.Artifact, outputPath string) error {
	if len(index.Records) == 0 {
		return ErrNoStudents
	}

	mapper, err := template.NewMapper(e.opts.TemplatePath, e.opts.logos(), e.logger)
	if err != nil {
		return err
	}
	defer mapper.Close()

	for _, rec := range index.Records {
		sheet, err := mapper.Stamp(rec)
		if err != nil {
			return fmt.Errorf("stamping %s: %w", rec.Identity.DisplayName(), err)
		}
		e.logger.Debug("stamped student sheet",
			zap.String("sheet", sheet),
			zap.Int("quarters", len(rec.Quarters)))
	}

	return mapper.Finalize(outputPath)
}
