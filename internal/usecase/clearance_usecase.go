package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/domain"
)

// ClearanceUseCase determines occupant eligibility from aggregated balances.
type ClearanceUseCase struct {
	balances     *BalanceUseCase
	roster       OccupantRoster
	settings     DormSettings
	semesterRepo SemesterRepository
}

// NewClearanceUseCase creates a new ClearanceUseCase.
func NewClearanceUseCase(
	balances *BalanceUseCase,
	roster OccupantRoster,
	settings DormSettings,
	semesterRepo SemesterRepository,
) *ClearanceUseCase {
	return &ClearanceUseCase{
		balances:     balances,
		roster:       roster,
		settings:     settings,
		semesterRepo: semesterRepo,
	}
}

// ClearanceRow is one occupant's clearance verdict. TotalBalance is the
// signed net over the required ledgers, not the clamped display figure:
// an occupant who overpaid stays cleared.
type ClearanceRow struct {
	OccupantID   string
	Name         string
	Room         string
	TotalBalance decimal.Decimal
	IsCleared    bool
}

// ClearanceList is the dorm-wide clearance result. Rows come back in roster
// order; display sorting is a presentation concern.
type ClearanceList struct {
	SemesterID          string
	RequiredLedgers     []domain.Ledger
	Rows                []*ClearanceRow
	TotalOccupants      int
	OccupantsCleared    int
	OccupantsNotCleared int
}

// GetClearanceList evaluates every active occupant against the dorm's
// required ledgers for the given semester (the active one when semesterID is
// empty). Entries tagged with the semester count by id; untagged entries
// count when posted inside the term's period, so a charge recorded without
// a term still blocks clearance. An occupant with no entries at all has a
// zero net and is cleared.
func (uc *ClearanceUseCase) GetClearanceList(ctx context.Context, dormID, semesterID string) (*ClearanceList, error) {
	sem, err := uc.resolveSemester(ctx, dormID, semesterID)
	if err != nil {
		return nil, err
	}

	required, err := uc.settings.RequiredLedgers(ctx, dormID)
	if err != nil {
		return nil, err
	}

	occupants, err := uc.roster.ActiveByDorm(ctx, dormID)
	if err != nil {
		return nil, err
	}

	nets, err := uc.balances.NetByOccupant(ctx, BalanceQuery{
		DormID:   dormID,
		Semester: sem,
		Ledgers:  required,
	})
	if err != nil {
		return nil, err
	}

	list := &ClearanceList{
		SemesterID:      sem.ID,
		RequiredLedgers: required,
		Rows:            make([]*ClearanceRow, 0, len(occupants)),
		TotalOccupants:  len(occupants),
	}

	for _, occ := range occupants {
		net := nets[occ.ID]
		cleared := net.LessThanOrEqual(decimal.Zero)

		list.Rows = append(list.Rows, &ClearanceRow{
			OccupantID:   occ.ID,
			Name:         occ.Name,
			Room:         occ.Room,
			TotalBalance: net,
			IsCleared:    cleared,
		})

		if cleared {
			list.OccupantsCleared++
		} else {
			list.OccupantsNotCleared++
		}
	}

	return list, nil
}

// EvaluateOccupant returns a single occupant's clearance verdict.
func (uc *ClearanceUseCase) EvaluateOccupant(ctx context.Context, dormID, semesterID, occupantID string) (*ClearanceRow, error) {
	occ, err := uc.roster.GetByID(ctx, occupantID)
	if err != nil {
		return nil, err
	}

	sem, err := uc.resolveSemester(ctx, dormID, semesterID)
	if err != nil {
		return nil, err
	}

	required, err := uc.settings.RequiredLedgers(ctx, dormID)
	if err != nil {
		return nil, err
	}

	summary, err := uc.balances.GetBalance(ctx, BalanceQuery{
		DormID:     dormID,
		OccupantID: occupantID,
		Semester:   sem,
		Ledgers:    required,
	})
	if err != nil {
		return nil, err
	}

	return &ClearanceRow{
		OccupantID:   occ.ID,
		Name:         occ.Name,
		Room:         occ.Room,
		TotalBalance: summary.Net,
		IsCleared:    summary.Net.LessThanOrEqual(decimal.Zero),
	}, nil
}

// resolveSemester loads the full semester so balance scoping can fall back
// to posted dates for untagged entries.
func (uc *ClearanceUseCase) resolveSemester(ctx context.Context, dormID, semesterID string) (*domain.Semester, error) {
	if semesterID == "" {
		return uc.semesterRepo.Active(ctx, dormID)
	}
	return uc.semesterRepo.GetByID(ctx, semesterID)
}
