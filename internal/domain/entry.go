package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is a named category of financial activity. Each ledger carries
// independent balances per occupant.
type Ledger string

const (
	LedgerMaintenance   Ledger = "maintenance"
	LedgerContributions Ledger = "contributions"
	LedgerFines         Ledger = "fines"
)

// Valid reports whether l is a known ledger.
func (l Ledger) Valid() bool {
	switch l {
	case LedgerMaintenance, LedgerContributions, LedgerFines:
		return true
	}
	return false
}

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryTypeCharge     EntryType = "charge"
	EntryTypePayment    EntryType = "payment"
	EntryTypeAdjustment EntryType = "adjustment"
	EntryTypeRefund     EntryType = "refund"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeCharge, EntryTypePayment, EntryTypeAdjustment, EntryTypeRefund:
		return true
	}
	return false
}

// EntryStatus is the lifecycle state of an entry. Posted entries count in
// every aggregate; Voided is terminal and excludes the entry everywhere.
type EntryStatus string

const (
	EntryStatusPosted EntryStatus = "posted"
	EntryStatusVoided EntryStatus = "voided"
)

// Entry is one immutable financial fact. Amounts are stored as positive
// magnitudes; the direction comes from the entry type (see SignedAmount).
// The only mutation ever applied to an existing entry is voiding.
type Entry struct {
	ID         string
	DormID     string
	Ledger     Ledger
	Type       EntryType
	OccupantID string // empty for dorm-level inflows
	Amount     decimal.Decimal
	PostedAt   time.Time
	SemesterID string // empty means not term-scoped
	Method     string
	Note       string
	Metadata   Metadata
	CreatedBy  string
	CreatedAt  time.Time

	VoidedAt   *time.Time
	VoidedBy   string
	VoidReason string
}

// Status returns the entry's lifecycle state.
func (e *Entry) Status() EntryStatus {
	if e.VoidedAt != nil {
		return EntryStatusVoided
	}
	return EntryStatusPosted
}

// Voided reports whether the entry has been voided.
func (e *Entry) Voided() bool {
	return e.VoidedAt != nil
}

// SignedAmount returns the entry's contribution to a signed net balance.
// Charges and adjustments increase what is owed, payments reduce it, and
// refunds hand collected money back so they increase the net again.
// This is the single place where the sign convention lives.
func (e *Entry) SignedAmount() decimal.Decimal {
	switch e.Type {
	case EntryTypeCharge, EntryTypeAdjustment, EntryTypeRefund:
		return e.Amount
	case EntryTypePayment:
		return e.Amount.Neg()
	}
	return decimal.Zero
}

// LegacyImport reports whether the entry is a re-imported historical record.
// Such entries are excluded from carry-forward inflow because the cash they
// describe is already part of an earlier closing balance.
func (e *Entry) LegacyImport() bool {
	return e.Metadata.Import != nil && e.Metadata.Import.Legacy
}

// Metadata carries typed provenance attached by whichever operation produced
// the entry. At most one variant is set; both nil means a plain manual entry.
type Metadata struct {
	Batch  *BatchTag         `json:"batch,omitempty"`
	Import *ImportProvenance `json:"import,omitempty"`
}

// Empty reports whether no provenance is attached.
func (m Metadata) Empty() bool {
	return m.Batch == nil && m.Import == nil
}

// BatchTag marks a charge created by a contribution batch run. Entries
// sharing the same tag form the batch's virtual cohort grouping.
type BatchTag struct {
	Title    string     `json:"title"`
	EventID  string     `json:"event_id,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// Matches reports whether the tag identifies the same batch.
func (t *BatchTag) Matches(title, eventID string) bool {
	return t != nil && t.Title == title && t.EventID == eventID
}

// ImportProvenance marks an entry created by the import reconciler. Keys
// holds the fingerprint of every source row folded into the entry, so a
// later re-import recognizes each constituent row on its own.
type ImportProvenance struct {
	Keys       []string  `json:"import_keys"`
	Source     string    `json:"source"`
	RowCount   int       `json:"row_count"`
	Legacy     bool      `json:"legacy,omitempty"`
	ImportedAt time.Time `json:"imported_at"`
}
