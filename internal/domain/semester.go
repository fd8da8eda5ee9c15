package domain

import "time"

// Semester is a bounded administrative period scoping recurring ledgers.
// Exactly one semester per dorm is active at a time; historical semesters
// are read-mostly unless AllowHistoricalEdits is set for the dorm.
type Semester struct {
	ID       string
	DormID   string
	Label    string
	StartsOn time.Time
	EndsOn   time.Time
	Active   bool

	// AllowHistoricalEdits permits writes scoped to this semester after it
	// has been superseded.
	AllowHistoricalEdits bool

	CreatedAt time.Time
}

// Contains reports whether the date falls inside the semester's period,
// boundaries included.
func (s *Semester) Contains(date time.Time) bool {
	return !date.Before(s.StartsOn) && !date.After(s.EndsOn)
}

// ScopesEntry reports whether an entry belongs to this semester. Tagged
// entries match by id; untagged ones fall back to their posted date, so
// records written without a term still land in the period they were posted
// in. Carry-forward and clearance share this rule.
func (s *Semester) ScopesEntry(e *Entry) bool {
	if e.SemesterID != "" {
		return e.SemesterID == s.ID
	}
	return s.Contains(e.PostedAt)
}
