package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUnknownLedger    = errors.New("unknown ledger")
	ErrUnknownEntryType = errors.New("unknown entry type")
	ErrOccupantRequired = errors.New("occupant required for occupant-scoped ledger")
	ErrReasonRequired   = errors.New("void reason is required")
	ErrNoteTooLong      = errors.New("note too long")
	ErrTitleRequired    = errors.New("batch title is required")

	// Not-found errors
	ErrEntryNotFound    = errors.New("ledger entry not found")
	ErrSemesterNotFound = errors.New("semester not found")
	ErrOccupantNotFound = errors.New("occupant not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrNoActiveSemester = errors.New("dorm has no active semester")

	// Conflict errors
	ErrEntryAlreadyVoided = errors.New("entry is already voided")
	ErrExpenseNotPending  = errors.New("expense is not pending")
)
