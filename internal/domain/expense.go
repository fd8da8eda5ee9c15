package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the approval state of an expense record.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Expense is a dorm-level spending record. Only approved expenses count
// against a semester's cash position.
type Expense struct {
	ID         string
	DormID     string
	SemesterID string
	Title      string
	Amount     decimal.Decimal
	Status     ExpenseStatus
	Note       string
	SpentAt    time.Time
	RecordedBy string
	CreatedAt  time.Time

	ApprovedBy string
	ApprovedAt *time.Time
}

// Approved reports whether the expense counts in carry-forward math.
func (e *Expense) Approved() bool {
	return e.Status == ExpenseStatusApproved
}

// Expense notes carry the import marker as free text because expenses have
// no structured metadata column.
const expenseImportMarkerPrefix = "[import:"

// ExpenseImportMarker renders the note marker for an imported expense.
func ExpenseImportMarker(key string) string {
	return expenseImportMarkerPrefix + key + "]"
}

// ParseExpenseImportKey extracts the first import key embedded in an
// expense note.
func ParseExpenseImportKey(note string) (string, bool) {
	keys := ParseExpenseImportKeys(note)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}

// ParseExpenseImportKeys extracts every import key embedded in an expense
// note. An expense folded from several source rows carries one marker per
// row.
func ParseExpenseImportKeys(note string) []string {
	var keys []string
	rest := note
	for {
		start := strings.Index(rest, expenseImportMarkerPrefix)
		if start < 0 {
			return keys
		}
		rest = rest[start+len(expenseImportMarkerPrefix):]

		end := strings.Index(rest, "]")
		if end < 0 {
			return keys
		}
		keys = append(keys, rest[:end])
		rest = rest[end+1:]
	}
}
