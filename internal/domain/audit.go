package domain

import (
	"encoding/json"
	"time"
)

// AuditLog is one audit trail row. Every void, batch run, and import run
// records who acted, on what, and with which outcome.
type AuditLog struct {
	ID           string
	ActorID      string // Who performed the action
	Action       string // What action (entry.void, batch.run, etc.)
	ResourceType string // Type of resource (entry, batch, import, expense)
	ResourceID   string // ID of the resource
	DormID       string
	RequestID    string // Request ID for tracing
	BeforeState  JSON   // State before the action
	AfterState   JSON   // State after the action
	Status       string // success, failure
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Entry actions
	AuditActionEntryRecord AuditAction = "entry.record"
	AuditActionEntryVoid   AuditAction = "entry.void"

	// Batch actions
	AuditActionBatchRun AuditAction = "batch.run"

	// Import actions
	AuditActionImportRun AuditAction = "import.run"

	// Expense actions
	AuditActionExpenseRecord  AuditAction = "expense.record"
	AuditActionExpenseApprove AuditAction = "expense.approve"
	AuditActionExpenseReject  AuditAction = "expense.reject"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	DormID       string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
