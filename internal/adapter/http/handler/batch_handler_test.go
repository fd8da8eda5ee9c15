package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/usecase"
)

type batchServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error)
}

func (s *batchServiceStub) CreateContributionBatch(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error) {
	return s.createFn(ctx, input)
}

func TestBatchHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateContributionBatchInput

	handler := NewBatchHandler(&batchServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error) {
			captured = input
			return &usecase.BatchResult{CohortSize: 10, Charged: 10}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateBatchRequest{
		Title:  "Acquaintance Party",
		Amount: decimal.NewFromInt(150),
	})

	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/contribution-batches", bytes.NewReader(body))
	req = setChiURLParam(req, "dormID", "dorm-1")
	req = withActor(req, "treasurer-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if captured.DormID != "dorm-1" || captured.Title != "Acquaintance Party" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.BatchResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Charged != 10 {
		t.Fatalf("expected 10 charged, got %d", resp.Charged)
	}
}

func TestBatchHandler_Create_PartialFailure(t *testing.T) {
	handler := NewBatchHandler(&batchServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error) {
			return &usecase.BatchResult{
				CohortSize:      3,
				Charged:         2,
				Failed:          1,
				FailedOccupants: []string{"occ-3"},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateBatchRequest{Title: "Sportsfest", Amount: decimal.NewFromInt(100)})
	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/contribution-batches", bytes.NewReader(body))
	req = setChiURLParam(req, "dormID", "dorm-1")
	req = withActor(req, "treasurer-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d", rec.Code)
	}

	var resp dto.BatchResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.FailedOccupants) != 1 || resp.FailedOccupants[0] != "occ-3" {
		t.Fatalf("expected failed occupant list, got %+v", resp.FailedOccupants)
	}
}

func TestBatchHandler_Create_MissingActor(t *testing.T) {
	handler := NewBatchHandler(&batchServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateContributionBatchInput) (*usecase.BatchResult, error) {
			t.Fatal("CreateContributionBatch should not be called without an actor")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateBatchRequest{Title: "Sportsfest", Amount: decimal.NewFromInt(100)})
	req := httptest.NewRequest(http.MethodPost, "/dorms/dorm-1/contribution-batches", bytes.NewReader(body))
	req = setChiURLParam(req, "dormID", "dorm-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
