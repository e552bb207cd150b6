package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sf10tools/sf10gen-go/pkg/sf10/models"
)

// Learner profile geometry (1-based): first sheet, header in row 1, data
// from row 2. Columns: A = LRN, B = name field, C = birth date, D = sex.
const (
	profileDataStartRow = 2
	profileLRNCol       = 1
	profileNameCol      = 2
	profileBirthCol     = 3
	profileSexCol       = 4
)

// ProfileIndex holds the learner profile records of one profile source,
// in file order.
type ProfileIndex struct {
	Records []models.ProfileRecord
}

// ReadProfiles reads the optional learner profile workbook. Rows whose
// name field cannot be parsed are skipped; profile enrichment never
// blocks grade generation.
func ReadProfiles(path string) (*ProfileIndex, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &ProfileIndex{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	idx := &ProfileIndex{}
	for i := profileDataStartRow - 1; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellAt(row, profileNameCol))
		if name == "" {
			continue
		}
		id, err := ParseIdentity(name)
		if err != nil {
			continue
		}
		idx.Records = append(idx.Records, models.ProfileRecord{
			Identity: id,
			Profile: models.Profile{
				LRN:       strings.TrimSpace(cellAt(row, profileLRNCol)),
				BirthDate: strings.TrimSpace(cellAt(row, profileBirthCol)),
				Sex:       strings.TrimSpace(cellAt(row, profileSexCol)),
			},
		})
	}
	return idx, nil
}

// Find resolves the profile for an identity under tolerant matching.
// Zero matches return a nil record. Multiple matches return the first in
// file order with ambiguous set, which callers record as a warning.
func (p *ProfileIndex) Find(id models.Identity) (rec *models.ProfileRecord, ambiguous bool) {
	if p == nil {
		return nil, false
	}
	for i := range p.Records {
		if p.Records[i].Identity.Same(id) {
			if rec != nil {
				return rec, true
			}
			rec = &p.Records[i]
		}
	}
	return rec, false
}
