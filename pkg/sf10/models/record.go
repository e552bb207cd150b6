package models

// Profile holds the optional per-student enrichment fields resolved from a
// learner profile source.
type Profile struct {
	// LRN is the learner reference number.
	LRN string `json:"lrn,omitempty"`
	// BirthDate is the birth date exactly as the profile source spells it.
	BirthDate string `json:"birth_date,omitempty"`
	// Sex is the sex code (M/F) from the profile source.
	Sex string `json:"sex,omitempty"`
}

// Empty reports whether no enrichment field is set.
func (p Profile) Empty() bool {
	return p.LRN == "" && p.BirthDate == "" && p.Sex == ""
}

// ProfileRecord is one row of the learner profile source.
type ProfileRecord struct {
	Identity Identity `json:"identity"`
	Profile  Profile  `json:"profile"`
}

// StudentRecord is the durable per-student state carried by the output
// artifact: identity, optional enrichment, and grades keyed by quarter.
type StudentRecord struct {
	Identity Identity `json:"identity"`
	Profile  Profile  `json:"profile,omitempty"`
	// Quarters maps quarter number (1-4) to that quarter's grades.
	// A quarter never supplied is absent, and a merge must not invent or
	// erase it.
	Quarters map[int]Grades `json:"quarters"`
}

// SetQuarter replaces the record's grades for one quarter, leaving every
// other quarter untouched.
func (r *StudentRecord) SetQuarter(quarter int, grades Grades) {
	if r.Quarters == nil {
		r.Quarters = make(map[int]Grades)
	}
	r.Quarters[quarter] = grades
}

// Artifact is the in-memory form of the multi-student output workbook:
// one record per student, in stable first-seen order.
type Artifact struct {
	// Records are the student records in sheet order.
	Records []*StudentRecord `json:"records"`
}

// Find returns the record matching the identity under tolerant equality,
// or nil when the student is not present.
func (a *Artifact) Find(id Identity) *StudentRecord {
	for _, rec := range a.Records {
		if rec.Identity.Same(id) {
			return rec
		}
	}
	return nil
}

// Append adds a record at the end of the stable order.
func (a *Artifact) Append(rec *StudentRecord) {
	a.Records = append(a.Records, rec)
}
