package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID         string          `json:"id"`
	DormID     string          `json:"dorm_id"`
	Ledger     string          `json:"ledger"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	OccupantID string          `json:"occupant_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	PostedAt   time.Time       `json:"posted_at"`
	SemesterID string          `json:"semester_id,omitempty"`
	Method     string          `json:"method,omitempty"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	VoidedAt   *time.Time      `json:"voided_at,omitempty"`
	VoidedBy   string          `json:"voided_by,omitempty"`
	VoidReason string          `json:"void_reason,omitempty"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:         e.ID,
		DormID:     e.DormID,
		Ledger:     string(e.Ledger),
		Type:       string(e.Type),
		Status:     string(e.Status()),
		OccupantID: e.OccupantID,
		Amount:     e.Amount,
		PostedAt:   e.PostedAt,
		SemesterID: e.SemesterID,
		Method:     e.Method,
		Note:       e.Note,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
		VoidedAt:   e.VoidedAt,
		VoidedBy:   e.VoidedBy,
		VoidReason: e.VoidReason,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// BalanceResponse represents a balance summary in API responses.
type BalanceResponse struct {
	Charged     decimal.Decimal `json:"charged"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Net         decimal.Decimal `json:"net"`
}

// BalanceFromSummary converts a balance summary to a response.
func BalanceFromSummary(s *usecase.BalanceSummary) *BalanceResponse {
	return &BalanceResponse{
		Charged:     s.Charged,
		Collected:   s.Collected,
		Outstanding: s.Outstanding,
		Net:         s.Net,
	}
}

// ClearanceRowResponse is one occupant's line on the clearance list.
type ClearanceRowResponse struct {
	OccupantID   string          `json:"occupant_id"`
	Name         string          `json:"name"`
	Room         string          `json:"room,omitempty"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	IsCleared    bool            `json:"is_cleared"`
}

// ClearanceResponse represents the clearance list in API responses.
type ClearanceResponse struct {
	SemesterID          string                  `json:"semester_id"`
	RequiredLedgers     []string                `json:"required_ledgers"`
	Rows                []*ClearanceRowResponse `json:"rows"`
	TotalOccupants      int                     `json:"total_occupants"`
	OccupantsCleared    int                     `json:"occupants_cleared"`
	OccupantsNotCleared int                     `json:"occupants_not_cleared"`
}

// ClearanceFromDomain converts a clearance list to a response. Occupants
// still owing sort first so the list reads as a worklist; ties break
// alphabetically.
func ClearanceFromDomain(list *usecase.ClearanceList) *ClearanceResponse {
	rows := make([]*ClearanceRowResponse, len(list.Rows))
	for i, row := range list.Rows {
		rows[i] = &ClearanceRowResponse{
			OccupantID:   row.OccupantID,
			Name:         row.Name,
			Room:         row.Room,
			TotalBalance: row.TotalBalance,
			IsCleared:    row.IsCleared,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsCleared != rows[j].IsCleared {
			return !rows[i].IsCleared
		}
		return rows[i].Name < rows[j].Name
	})

	ledgers := make([]string, len(list.RequiredLedgers))
	for i, l := range list.RequiredLedgers {
		ledgers[i] = string(l)
	}

	return &ClearanceResponse{
		SemesterID:          list.SemesterID,
		RequiredLedgers:     ledgers,
		Rows:                rows,
		TotalOccupants:      list.TotalOccupants,
		OccupantsCleared:    list.OccupantsCleared,
		OccupantsNotCleared: list.OccupantsNotCleared,
	}
}

// SnapshotResponse represents one semester's cash position.
type SnapshotResponse struct {
	SemesterID      string          `json:"semester_id"`
	Label           string          `json:"label"`
	StartsOn        time.Time       `json:"starts_on"`
	EndsOn          time.Time       `json:"ends_on"`
	Active          bool            `json:"active"`
	Inflow          decimal.Decimal `json:"inflow"`
	ApprovedExpense decimal.Decimal `json:"approved_expense"`
	Net             decimal.Decimal `json:"net"`
	HandoverIn      decimal.Decimal `json:"handover_in"`
	ClosingCash     decimal.Decimal `json:"closing_cash"`
}

// SnapshotsFromDomain converts semester snapshots to responses.
func SnapshotsFromDomain(snapshots []*usecase.SemesterSnapshot) []*SnapshotResponse {
	result := make([]*SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = &SnapshotResponse{
			SemesterID:      s.Semester.ID,
			Label:           s.Semester.Label,
			StartsOn:        s.Semester.StartsOn,
			EndsOn:          s.Semester.EndsOn,
			Active:          s.Semester.Active,
			Inflow:          s.Inflow,
			ApprovedExpense: s.ApprovedExpense,
			Net:             s.Net,
			HandoverIn:      s.HandoverIn,
			ClosingCash:     s.ClosingCash,
		}
	}
	return result
}

// BatchResultResponse represents a contribution batch run outcome.
type BatchResultResponse struct {
	CohortSize      int      `json:"cohort_size"`
	Charged         int      `json:"charged"`
	SkippedExisting int      `json:"skipped_existing"`
	Failed          int      `json:"failed"`
	FailedOccupants []string `json:"failed_occupants,omitempty"`
}

// BatchResultFromDomain converts a batch result to a response.
func BatchResultFromDomain(r *usecase.BatchResult) *BatchResultResponse {
	return &BatchResultResponse{
		CohortSize:      r.CohortSize,
		Charged:         r.Charged,
		SkippedExisting: r.SkippedExisting,
		Failed:          r.Failed,
		FailedOccupants: r.FailedOccupants,
	}
}

// ImportSummaryResponse represents an import run outcome.
type ImportSummaryResponse struct {
	RowsReceived      int `json:"rows_received"`
	RowsDropped       int `json:"rows_dropped"`
	GroupsFormed      int `json:"groups_formed"`
	SkippedDuplicates int `json:"skipped_duplicates"`
	EntriesCreated    int `json:"entries_created"`
	ExpensesCreated   int `json:"expenses_created"`
}

// ImportSummaryFromDomain converts an import summary to a response.
func ImportSummaryFromDomain(s *usecase.ImportSummary) *ImportSummaryResponse {
	return &ImportSummaryResponse{
		RowsReceived:      s.RowsReceived,
		RowsDropped:       s.RowsDropped,
		GroupsFormed:      s.GroupsFormed,
		SkippedDuplicates: s.SkippedDuplicates,
		EntriesCreated:    s.EntriesCreated,
		ExpensesCreated:   s.ExpensesCreated,
	}
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID         string          `json:"id"`
	DormID     string          `json:"dorm_id"`
	SemesterID string          `json:"semester_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	SpentAt    time.Time       `json:"spent_at"`
	RecordedBy string          `json:"recorded_by"`
	CreatedAt  time.Time       `json:"created_at"`
	ApprovedBy string          `json:"approved_by,omitempty"`
	ApprovedAt *time.Time      `json:"approved_at,omitempty"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:         e.ID,
		DormID:     e.DormID,
		SemesterID: e.SemesterID,
		Title:      e.Title,
		Amount:     e.Amount,
		Status:     string(e.Status),
		Note:       e.Note,
		SpentAt:    e.SpentAt,
		RecordedBy: e.RecordedBy,
		CreatedAt:  e.CreatedAt,
		ApprovedBy: e.ApprovedBy,
		ApprovedAt: e.ApprovedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
