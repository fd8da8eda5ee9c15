package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxEntryAmount  = "1000000000" // 1 billion
	MaxNoteLength   = 2000
	MaxMethodLength = 64
)

// ValidateEntry checks an entry before it is written. Validation happens
// before any write occurs; a rejected entry leaves no trace in the store.
func ValidateEntry(e *Entry) error {
	if !e.Ledger.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLedger, e.Ledger)
	}

	if !e.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEntryType, e.Type)
	}

	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	// Dorm-level inflows (payments into the contributions ledger) are the
	// only entries allowed without an occupant.
	if e.OccupantID == "" && !(e.Ledger == LedgerContributions && e.Type == EntryTypePayment) {
		return fmt.Errorf("%w: ledger %q, type %q", ErrOccupantRequired, e.Ledger, e.Type)
	}

	if len(e.Note) > MaxNoteLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrNoteTooLong, MaxNoteLength)
	}

	return nil
}

// ValidateAmount checks an entry amount. Amounts are stored as positive
// magnitudes, so zero and negative values are rejected.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return nil
}

// ValidateVoidReason checks the mandatory reason supplied with a void.
func ValidateVoidReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

// Round2 rounds a monetary value to two decimal places. Carry-forward math
// rounds after every arithmetic step, not only at the end.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
