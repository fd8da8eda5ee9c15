package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func validEntry() *Entry {
	return &Entry{
		ID:         "entry-1",
		DormID:     "dorm-1",
		Ledger:     LedgerMaintenance,
		Type:       EntryTypeCharge,
		OccupantID: "occ-1",
		Amount:     decimal.NewFromInt(500),
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr error
	}{
		{"valid", func(e *Entry) {}, nil},
		{"unknown ledger", func(e *Entry) { e.Ledger = "utilities" }, ErrUnknownLedger},
		{"unknown type", func(e *Entry) { e.Type = "transfer" }, ErrUnknownEntryType},
		{"zero amount", func(e *Entry) { e.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(e *Entry) { e.Amount = decimal.NewFromInt(-1) }, ErrInvalidAmount},
		{"missing occupant on charge", func(e *Entry) { e.OccupantID = "" }, ErrOccupantRequired},
		{
			"dorm-level contribution payment",
			func(e *Entry) {
				e.Ledger = LedgerContributions
				e.Type = EntryTypePayment
				e.OccupantID = ""
			},
			nil,
		},
		{
			"dorm-level fine rejected",
			func(e *Entry) {
				e.Ledger = LedgerFines
				e.OccupantID = ""
			},
			ErrOccupantRequired,
		},
		{
			"note too long",
			func(e *Entry) { e.Note = strings.Repeat("x", MaxNoteLength+1) },
			ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)

			err := ValidateEntry(e)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount_Maximum(t *testing.T) {
	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)

	if err := ValidateAmount(maxAmount); err != nil {
		t.Errorf("the maximum itself must be accepted: %v", err)
	}
	if err := ValidateAmount(maxAmount.Add(decimal.New(1, -2))); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("above maximum: got %v, want ErrInvalidAmount", err)
	}
}

func TestValidateVoidReason(t *testing.T) {
	if err := ValidateVoidReason("duplicate entry"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateVoidReason(""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("empty reason: got %v", err)
	}
	if err := ValidateVoidReason("   "); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("blank reason: got %v", err)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"-3.335", "-3.34"},
		{"0", "0"},
	}

	for _, tt := range tests {
		in, _ := decimal.NewFromString(tt.in)
		want, _ := decimal.NewFromString(tt.want)
		if got := Round2(in); !got.Equal(want) {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 50, 0},
		{-1, -1, 50, 0},
		{25, 10, 25, 10},
		{5000, 0, 1000, 0},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
