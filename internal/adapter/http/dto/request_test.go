package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

func TestRecordEntryRequest_ToUseCaseInput(t *testing.T) {
	posted := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	req := &RecordEntryRequest{
		DormID:     "dorm-1",
		Ledger:     "fines",
		Type:       "payment",
		OccupantID: "occ-1",
		Amount:     decimal.RequireFromString("75.50"),
		PostedAt:   &posted,
		Method:     "gcash",
		Note:       "late curfew fine",
	}

	input := req.ToUseCaseInput("treasurer-1")

	if input.Ledger != domain.LedgerFines || input.Type != domain.EntryTypePayment {
		t.Fatalf("expected ledger and type to convert, got %+v", input)
	}
	if input.Actor != "treasurer-1" || input.PostedAt == nil || !input.PostedAt.Equal(posted) {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestCreateBatchRequest_ToUseCaseInput(t *testing.T) {
	deadline := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	req := &CreateBatchRequest{
		SemesterID:            "sem-1",
		Title:                 "Acquaintance Party",
		EventID:               "evt-1",
		Amount:                decimal.RequireFromString("150"),
		Deadline:              &deadline,
		IncludeAlreadyCharged: true,
	}

	input := req.ToUseCaseInput("dorm-1", "treasurer-1")

	if input.DormID != "dorm-1" || input.Actor != "treasurer-1" {
		t.Fatalf("expected path and context values to flow in, got %+v", input)
	}
	if !input.IncludeAlreadyCharged || input.EventID != "evt-1" {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestImportRequest_ToUseCaseInput(t *testing.T) {
	date := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	req := &ImportRequest{
		SemesterID: "sem-1",
		Legacy:     true,
		Rows: []ImportRowRequest{
			{Kind: "inflow", Source: "gcash", Counterpart: "Maria", Date: date, Amount: decimal.RequireFromString("250")},
			{Kind: "expense", Source: "bdo", Note: "cleaning supplies", Date: date, Amount: decimal.RequireFromString("-89.50")},
		},
	}

	input := req.ToUseCaseInput("dorm-1", "treasurer-1")

	if input.DormID != "dorm-1" || !input.Legacy || len(input.Rows) != 2 {
		t.Fatalf("unexpected input: %+v", input)
	}
	if input.Rows[0].Kind != usecase.RowKindInflow || input.Rows[1].Kind != usecase.RowKindExpense {
		t.Fatalf("expected row kinds to convert, got %+v", input.Rows)
	}
	if input.Rows[0].Counterpart != "Maria" || !input.Rows[1].Amount.IsNegative() {
		t.Fatalf("expected row fields to carry over, got %+v", input.Rows)
	}
}
