package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/usecase"
)

type importServiceStub struct {
	runFn func(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error)
}

func (s *importServiceStub) Run(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error) {
	return s.runFn(ctx, input)
}

func importRequestBody(t *testing.T, rows int) []byte {
	t.Helper()

	req := dto.ImportRequest{Legacy: true}
	for i := 0; i < rows; i++ {
		req.Rows = append(req.Rows, dto.ImportRowRequest{
			Kind:   "inflow",
			Source: "gcash",
			Note:   "transfer",
			Date:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(250),
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestImportHandler_Run_Success(t *testing.T) {
	var captured usecase.ImportInput

	handler := NewImportHandler(&importServiceStub{
		runFn: func(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error) {
			captured = input
			return &usecase.ImportSummary{RowsReceived: 2, EntriesCreated: 2}, nil
		},
	}, 100)

	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/imports", bytes.NewReader(importRequestBody(t, 2)))
	req = setChiURLParam(req, "dormID", "dorm-1")
	req = withActor(req, "treasurer-1")
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.DormID != "dorm-1" || captured.Actor != "treasurer-1" || !captured.Legacy {
		t.Fatalf("expected input to carry dorm, actor and legacy flag, got %+v", captured)
	}

	var resp dto.ImportSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EntriesCreated != 2 {
		t.Fatalf("expected 2 entries created, got %d", resp.EntriesCreated)
	}
}

func TestImportHandler_Run_TooManyRows(t *testing.T) {
	handler := NewImportHandler(&importServiceStub{
		runFn: func(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error) {
			t.Fatal("Run should not be called over the row cap")
			return nil, nil
		},
	}, 3)

	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/imports", bytes.NewReader(importRequestBody(t, 4)))
	req = setChiURLParam(req, "dormID", "dorm-1")
	req = withActor(req, "treasurer-1")
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestImportHandler_Run_EmptyRows(t *testing.T) {
	handler := NewImportHandler(&importServiceStub{
		runFn: func(ctx context.Context, input usecase.ImportInput) (*usecase.ImportSummary, error) {
			t.Fatal("Run should not be called with no rows")
			return nil, nil
		},
	}, 100)

	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/imports", bytes.NewReader(importRequestBody(t, 0)))
	req = setChiURLParam(req, "dormID", "dorm-1")
	req = withActor(req, "treasurer-1")
	rec := httptest.NewRecorder()

	handler.Run(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
