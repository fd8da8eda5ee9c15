package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dormhub/dormledger/internal/adapter/http/dto"
	"github.com/dormhub/dormledger/internal/adapter/http/middleware"
	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	RecordTransaction(ctx context.Context, input usecase.RecordTransactionInput) (*domain.Entry, error)
	VoidEntry(ctx context.Context, input usecase.VoidEntryInput) (*domain.Entry, error)
	GetEntry(ctx context.Context, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error)
}

// EntryHandler handles ledger entry HTTP requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// Record records a new ledger entry.
func (h *EntryHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	entry, err := h.entryUC.RecordTransaction(r.Context(), req.ToUseCaseInput(actor))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record entry", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Void voids a posted entry.
func (h *EntryHandler) Void(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.VoidEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing actor", "")
		return
	}

	entry, err := h.entryUC.VoidEntry(r.Context(), usecase.VoidEntryInput{
		EntryID: id,
		Reason:  req.Reason,
		Actor:   actor,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to void entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.entryUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists entries matching the query filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := entryFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	entries, err := h.entryUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

func entryFilterFromQuery(r *http.Request) (usecase.EntryFilter, error) {
	q := r.URL.Query()

	filter := usecase.EntryFilter{
		DormID:        q.Get("dorm_id"),
		OccupantID:    q.Get("occupant_id"),
		SemesterID:    q.Get("semester_id"),
		IncludeVoided: q.Get("include_voided") == "true",
		Limit:         parseIntQuery(r, "limit", 0),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	for _, l := range q["ledger"] {
		filter.Ledgers = append(filter.Ledgers, domain.Ledger(l))
	}
	for _, t := range q["type"] {
		filter.Types = append(filter.Types, domain.EntryType(t))
	}

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}

	return filter, nil
}
