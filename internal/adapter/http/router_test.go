package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/handler"
	apimiddleware "github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"dorm_id":"dorm-1","ledger":"maintenance","type":"charge","occupant_id":"occ-1","amount":"100"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.ActorHeader, "treasurer-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"GET /api/v1/entries/{id}",
		"POST /api/v1/entries/{id}/void",
		"GET /api/v1/dorms/{dormID}/balances",
		"GET /api/v1/dorms/{dormID}/clearance",
		"GET /api/v1/dorms/{dormID}/snapshots",
		"POST /api/v1/dorms/{dormID}/contribution-batches",
		"POST /api/v1/dorms/{dormID}/imports",
		"POST /api/v1/expenses/",
		"POST /api/v1/expenses/{id}/approve",
		"POST /api/v1/expenses/{id}/reject",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		EntryHandler:     handler.NewEntryHandler(&stubEntryService{}),
		BalanceHandler:   handler.NewBalanceHandler(&stubBalanceService{}),
		ClearanceHandler: handler.NewClearanceHandler(&stubClearanceService{}),
		SnapshotHandler:  handler.NewSnapshotHandler(&stubSnapshotService{}),
		BatchHandler:     handler.NewBatchHandler(&stubBatchService{}),
		ImportHandler:    handler.NewImportHandler(&stubImportService{}, 100),
		ExpenseHandler:   handler.NewExpenseHandler(&stubExpenseService{}),
		HealthHandler:    &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubEntryService struct{}

func (stubEntryService) RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*domain.Entry, error) {
	return &domain.Entry{ID: "entry"}, nil
}

func (stubEntryService) VoidEntry(ctx context.Context, input usecase.VoidEntryInput) (*domain.Entry, error) {
	return &domain.Entry{ID: input.EntryID}, nil
}

func (stubEntryService) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return &domain.Entry{ID: id}, nil
}

func (stubEntryService) ListEntries(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubBalanceService struct{}

func (stubBalanceService) GetBalance(ctx context.Context, q usecase.BalanceQuery) (*usecase.BalanceSummary, error) {
	return &usecase.BalanceSummary{}, nil
}

type stubClearanceService struct{}

func (stubClearanceService) GetClearanceList(ctx context.Context, dormID, semesterID string) (*usecase.ClearanceList, error) {
	return &usecase.ClearanceList{SemesterID: semesterID}, nil
}

type stubSnapshotService struct{}

func (stubSnapshotService) GetSemesterSnapshots(ctx context.Context, dormID string) ([]*usecase.SemesterSnapshot, error) {
	return []*usecase.SemesterSnapshot{}, nil
}

type stubBatchService struct{}

func (stubBatchService) CreateContributionBatch(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error) {
	return &usecase.BatchResult{}, nil
}

type stubImportService struct{}

func (stubImportService) Run(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error) {
	return &usecase.ImportSummary{}, nil
}

type stubExpenseService struct{}

func (stubExpenseService) RecordExpense(ctx context.Context, input usecase.RecordExpenseInput) (*domain.Expense, error) {
	return &domain.Expense{ID: "expense"}, nil
}

func (stubExpenseService) ReviewExpense(ctx context.Context, id string, approve bool, actor string) (*domain.Expense, error) {
	return &domain.Expense{ID: id}, nil
}

func (stubExpenseService) ListExpenses(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error) {
	return []*domain.Expense{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
