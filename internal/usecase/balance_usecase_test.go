package usecase_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
	"github.com/dormhub/dormledger/internal/usecase/mocks"
)

func postedEntry(id, occupant string, ledger domain.Ledger, entryType domain.EntryType, amount int64) *domain.Entry {
	return &domain.Entry{
		ID:         id,
		DormID:     "dorm-1",
		Ledger:     ledger,
		Type:       entryType,
		OccupantID: occupant,
		Amount:     decimal.NewFromInt(amount),
		PostedAt:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		SemesterID: "sem-1",
	}
}

func TestBalanceUseCase_GetBalance(t *testing.T) {
	tests := []struct {
		name            string
		entries         []*domain.Entry
		query           usecase.BalanceQuery
		wantCharged     int64
		wantCollected   int64
		wantOutstanding int64
		wantNet         int64
	}{
		{
			name: "charge and partial payment",
			entries: []*domain.Entry{
				postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 500),
				postedEntry("e2", "occ-1", domain.LedgerMaintenance, domain.EntryTypePayment, 200),
			},
			query:           usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1", Ledgers: []domain.Ledger{domain.LedgerMaintenance}},
			wantCharged:     500,
			wantCollected:   200,
			wantOutstanding: 300,
			wantNet:         300,
		},
		{
			name: "overpayment clamps outstanding but not net",
			entries: []*domain.Entry{
				postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 100),
				postedEntry("e2", "occ-1", domain.LedgerMaintenance, domain.EntryTypePayment, 250),
			},
			query:           usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"},
			wantCharged:     100,
			wantCollected:   250,
			wantOutstanding: 0,
			wantNet:         -150,
		},
		{
			name: "refund cancels collection",
			entries: []*domain.Entry{
				postedEntry("e1", "occ-1", domain.LedgerFines, domain.EntryTypeCharge, 80),
				postedEntry("e2", "occ-1", domain.LedgerFines, domain.EntryTypePayment, 80),
				postedEntry("e3", "occ-1", domain.LedgerFines, domain.EntryTypeRefund, 80),
			},
			query:           usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"},
			wantCharged:     80,
			wantCollected:   0,
			wantOutstanding: 80,
			wantNet:         80,
		},
		{
			name: "adjustment counts as charged",
			entries: []*domain.Entry{
				postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 100),
				postedEntry("e2", "occ-1", domain.LedgerMaintenance, domain.EntryTypeAdjustment, 25),
			},
			query:           usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"},
			wantCharged:     125,
			wantCollected:   0,
			wantOutstanding: 125,
			wantNet:         125,
		},
		{
			name: "duplicate amounts sum, not deduplicate",
			entries: []*domain.Entry{
				postedEntry("e1", "occ-1", domain.LedgerFines, domain.EntryTypeCharge, 50),
				postedEntry("e2", "occ-1", domain.LedgerFines, domain.EntryTypeCharge, 50),
			},
			query:           usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"},
			wantCharged:     100,
			wantCollected:   0,
			wantOutstanding: 100,
			wantNet:         100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEntryRepository()
			for _, e := range tt.entries {
				if err := repo.Append(context.Background(), e); err != nil {
					t.Fatalf("seed entry: %v", err)
				}
			}

			uc := usecase.NewBalanceUseCase(repo)
			got, err := uc.GetBalance(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !got.Charged.Equal(decimal.NewFromInt(tt.wantCharged)) {
				t.Errorf("charged: want %d, got %s", tt.wantCharged, got.Charged)
			}
			if !got.Collected.Equal(decimal.NewFromInt(tt.wantCollected)) {
				t.Errorf("collected: want %d, got %s", tt.wantCollected, got.Collected)
			}
			if !got.Outstanding.Equal(decimal.NewFromInt(tt.wantOutstanding)) {
				t.Errorf("outstanding: want %d, got %s", tt.wantOutstanding, got.Outstanding)
			}
			if !got.Net.Equal(decimal.NewFromInt(tt.wantNet)) {
				t.Errorf("net: want %d, got %s", tt.wantNet, got.Net)
			}
		})
	}
}

func TestBalanceUseCase_OrderIndependence(t *testing.T) {
	entries := []*domain.Entry{
		postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 500),
		postedEntry("e2", "occ-1", domain.LedgerMaintenance, domain.EntryTypePayment, 200),
		postedEntry("e3", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 75),
		postedEntry("e4", "occ-1", domain.LedgerMaintenance, domain.EntryTypeRefund, 30),
		postedEntry("e5", "occ-1", domain.LedgerMaintenance, domain.EntryTypeAdjustment, 12),
	}

	want := usecase.Summarize(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]*domain.Entry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := usecase.Summarize(shuffled)
		if !got.Net.Equal(want.Net) || !got.Charged.Equal(want.Charged) || !got.Collected.Equal(want.Collected) {
			t.Fatalf("summary depends on entry order: want net %s, got %s", want.Net, got.Net)
		}
	}
}

func TestBalanceUseCase_VoidExclusion(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockEntryRepository()

	charge := postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 500)
	other := postedEntry("e2", "occ-2", domain.LedgerMaintenance, domain.EntryTypeCharge, 120)
	if err := repo.Append(ctx, charge); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(ctx, other); err != nil {
		t.Fatal(err)
	}

	uc := usecase.NewBalanceUseCase(repo)

	before, err := uc.GetBalance(ctx, usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"})
	if err != nil {
		t.Fatal(err)
	}
	if !before.Net.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected net 500 before void, got %s", before.Net)
	}

	if err := repo.Void(ctx, nil, "e1", "actor-1", "duplicate", time.Now().UTC()); err != nil {
		t.Fatalf("void: %v", err)
	}

	after, err := uc.GetBalance(ctx, usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-1"})
	if err != nil {
		t.Fatal(err)
	}
	if !after.Net.IsZero() {
		t.Errorf("voided entry still contributes: net %s", after.Net)
	}

	// The other occupant's aggregate is untouched.
	unrelated, err := uc.GetBalance(ctx, usecase.BalanceQuery{DormID: "dorm-1", OccupantID: "occ-2"})
	if err != nil {
		t.Fatal(err)
	}
	if !unrelated.Net.Equal(decimal.NewFromInt(120)) {
		t.Errorf("void leaked into another occupant's aggregate: net %s", unrelated.Net)
	}
}

func TestBalanceUseCase_NetByOccupant(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockEntryRepository()

	seed := []*domain.Entry{
		postedEntry("e1", "occ-1", domain.LedgerMaintenance, domain.EntryTypeCharge, 300),
		postedEntry("e2", "occ-1", domain.LedgerMaintenance, domain.EntryTypePayment, 300),
		postedEntry("e3", "occ-2", domain.LedgerFines, domain.EntryTypeCharge, 40),
		// Dorm-level inflow has no occupant and must not show up.
		postedEntry("e4", "", domain.LedgerContributions, domain.EntryTypePayment, 1000),
	}
	for _, e := range seed {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	uc := usecase.NewBalanceUseCase(repo)
	nets, err := uc.NetByOccupant(ctx, usecase.BalanceQuery{DormID: "dorm-1"})
	if err != nil {
		t.Fatal(err)
	}

	if len(nets) != 2 {
		t.Fatalf("expected 2 occupants, got %d", len(nets))
	}
	if !nets["occ-1"].IsZero() {
		t.Errorf("occ-1 net: want 0, got %s", nets["occ-1"])
	}
	if !nets["occ-2"].Equal(decimal.NewFromInt(40)) {
		t.Errorf("occ-2 net: want 40, got %s", nets["occ-2"])
	}
}
