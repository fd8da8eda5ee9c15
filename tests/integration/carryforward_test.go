package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/adapter/repository/postgres"
	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
	"github.com/dormhub/dormledger/tests/testutil"
)

func TestCarryForwardChainsClosingBalances(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	semesterRepo := postgres.NewSemesterRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	idGen := postgres.NewULIDGenerator()

	entryUC := usecase.NewEntryUseCase(txManager, entryRepo, auditRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, auditRepo, idGen, zerolog.Nop())
	carryForwardUC := usecase.NewCarryForwardUseCase(semesterRepo, entryRepo, expenseRepo)

	dormID := "dorm-" + testutil.GenerateID()
	first := testDB.CreateTestSemester(ctx, dormID, "2025-2",
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), false)
	second := testDB.CreateTestSemester(ctx, dormID, "2026-1",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), true)

	// First semester: 1000 collected, 400 spent and approved.
	if _, err := entryUC.RecordTransaction(ctx, usecase.RecordTransactionInput{
		DormID:     dormID,
		Ledger:     domain.LedgerContributions,
		Type:       domain.EntryTypePayment,
		Amount:     decimal.NewFromInt(1000),
		SemesterID: first.ID,
		Actor:      "treasurer-1",
	}); err != nil {
		t.Fatal(err)
	}

	expense, err := expenseUC.RecordExpense(ctx, usecase.RecordExpenseInput{
		DormID:     dormID,
		SemesterID: first.ID,
		Title:      "Hallway lights",
		Amount:     decimal.NewFromInt(400),
		Actor:      "treasurer-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expenseUC.ReviewExpense(ctx, expense.ID, true, "admin-1"); err != nil {
		t.Fatal(err)
	}

	// Second semester: 600 collected so far, nothing spent.
	if _, err := entryUC.RecordTransaction(ctx, usecase.RecordTransactionInput{
		DormID:     dormID,
		Ledger:     domain.LedgerContributions,
		Type:       domain.EntryTypePayment,
		Amount:     decimal.NewFromInt(600),
		SemesterID: second.ID,
		Actor:      "treasurer-1",
	}); err != nil {
		t.Fatal(err)
	}

	snapshots, err := carryForwardUC.GetSemesterSnapshots(ctx, dormID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snapshots))
	}

	s1, s2 := snapshots[0], snapshots[1]
	if s1.Semester.ID != first.ID {
		t.Fatalf("snapshots out of order: first is %s", s1.Semester.Label)
	}

	if !s1.Net.Equal(decimal.NewFromInt(600)) {
		t.Errorf("first net = %s, want 600", s1.Net)
	}
	if !s1.ClosingCash.Equal(decimal.NewFromInt(600)) {
		t.Errorf("first closing = %s, want 600", s1.ClosingCash)
	}
	if !s2.HandoverIn.Equal(decimal.NewFromInt(600)) {
		t.Errorf("second handover = %s, want 600", s2.HandoverIn)
	}
	if !s2.ClosingCash.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("second closing = %s, want 1200", s2.ClosingCash)
	}
}

func TestCarryForwardExcludesLegacyImports(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	entryRepo := postgres.NewEntryRepository(pool)
	semesterRepo := postgres.NewSemesterRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	idGen := postgres.NewULIDGenerator()

	importUC := usecase.NewImportUseCase(entryRepo, expenseRepo, semesterRepo, auditRepo, idGen, zerolog.Nop())
	carryForwardUC := usecase.NewCarryForwardUseCase(semesterRepo, entryRepo, expenseRepo)

	dormID := "dorm-" + testutil.GenerateID()
	sem := testDB.CreateTestSemester(ctx, dormID, "2026-1",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), true)

	// A legacy re-import: the cash already sits in a prior closing balance.
	if _, err := importUC.Run(ctx, usecase.ImportInput{
		DormID:     dormID,
		SemesterID: sem.ID,
		Legacy:     true,
		Actor:      "treasurer-1",
		Rows: []usecase.ImportRow{{
			Kind:   usecase.RowKindInflow,
			Source: "Old ledger book",
			Date:   time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(2500),
		}},
	}); err != nil {
		t.Fatal(err)
	}

	snapshots, err := carryForwardUC.GetSemesterSnapshots(ctx, dormID)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snapshots))
	}
	if !snapshots[0].Inflow.IsZero() {
		t.Errorf("inflow = %s, want 0 for legacy-only imports", snapshots[0].Inflow)
	}
}
