package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dormhub/dormledger/internal/domain"
	"github.com/dormhub/dormledger/internal/usecase"
)

// MockEntryRepository is an in-memory mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	AppendFunc                func(ctx context.Context, entry *domain.Entry) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Entry, error)
	VoidFunc                  func(ctx context.Context, tx usecase.Transaction, id, actor, reason string, at time.Time) error
	QueryFunc                 func(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error)
	ImportKeysFunc            func(ctx context.Context, dormID string) (map[string]struct{}, error)
	BatchChargedOccupantsFunc func(ctx context.Context, dormID, title, eventID string) (map[string]struct{}, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Append(ctx context.Context, entry *domain.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) Void(ctx context.Context, tx usecase.Transaction, id, actor, reason string, at time.Time) error {
	if m.VoidFunc != nil {
		return m.VoidFunc(ctx, tx, id, actor, reason, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	if e.VoidedAt != nil {
		return domain.ErrEntryAlreadyVoided
	}
	e.VoidedAt = &at
	e.VoidedBy = actor
	e.VoidReason = reason
	return nil
}

func (m *MockEntryRepository) Query(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Entry
	for _, e := range m.entries {
		if !matchesFilter(e, filter) {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MockEntryRepository) ImportKeys(ctx context.Context, dormID string) (map[string]struct{}, error) {
	if m.ImportKeysFunc != nil {
		return m.ImportKeysFunc(ctx, dormID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[string]struct{})
	for _, e := range m.entries {
		if e.DormID == dormID && e.Metadata.Import != nil {
			for _, k := range e.Metadata.Import.Keys {
				keys[k] = struct{}{}
			}
		}
	}
	return keys, nil
}

func (m *MockEntryRepository) BatchChargedOccupants(ctx context.Context, dormID, title, eventID string) (map[string]struct{}, error) {
	if m.BatchChargedOccupantsFunc != nil {
		return m.BatchChargedOccupantsFunc(ctx, dormID, title, eventID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	occupants := make(map[string]struct{})
	for _, e := range m.entries {
		if e.DormID != dormID || e.VoidedAt != nil || e.Type != domain.EntryTypeCharge {
			continue
		}
		if e.Metadata.Batch.Matches(title, eventID) {
			occupants[e.OccupantID] = struct{}{}
		}
	}
	return occupants, nil
}

// Count returns the number of stored entries.
func (m *MockEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func matchesFilter(e *domain.Entry, f usecase.EntryFilter) bool {
	if !f.IncludeVoided && e.VoidedAt != nil {
		return false
	}
	if f.DormID != "" && e.DormID != f.DormID {
		return false
	}
	if f.OccupantID != "" && e.OccupantID != f.OccupantID {
		return false
	}
	if f.SemesterID != "" && e.SemesterID != f.SemesterID {
		return false
	}
	if len(f.Ledgers) > 0 && !containsLedger(f.Ledgers, e.Ledger) {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, e.Type) {
		return false
	}
	if f.From != nil && e.PostedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.PostedAt.After(*f.To) {
		return false
	}
	return true
}

func containsLedger(ledgers []domain.Ledger, l domain.Ledger) bool {
	for _, candidate := range ledgers {
		if candidate == l {
			return true
		}
	}
	return false
}

func containsType(types []domain.EntryType, t domain.EntryType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// MockExpenseRepository is an in-memory mock implementation of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense

	CreateFunc            func(ctx context.Context, expense *domain.Expense) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Expense, error)
	SetStatusFunc         func(ctx context.Context, id string, status domain.ExpenseStatus, actor string, at time.Time) error
	ListBySemesterFunc    func(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error)
	ImportMarkedNotesFunc func(ctx context.Context, dormID string) ([]string, error)
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
	}
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *expense
	m.expenses[expense.ID] = &copied
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.expenses[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) SetStatus(ctx context.Context, id string, status domain.ExpenseStatus, actor string, at time.Time) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status, actor, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	e.Status = status
	if status == domain.ExpenseStatusApproved {
		e.ApprovedBy = actor
		e.ApprovedAt = &at
	} else {
		e.ApprovedBy = ""
		e.ApprovedAt = nil
	}
	return nil
}

func (m *MockExpenseRepository) ListBySemester(ctx context.Context, dormID, semesterID string) ([]*domain.Expense, error) {
	if m.ListBySemesterFunc != nil {
		return m.ListBySemesterFunc(ctx, dormID, semesterID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Expense
	for _, e := range m.expenses {
		if e.DormID == dormID && e.SemesterID == semesterID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockExpenseRepository) ImportMarkedNotes(ctx context.Context, dormID string) ([]string, error) {
	if m.ImportMarkedNotesFunc != nil {
		return m.ImportMarkedNotesFunc(ctx, dormID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var notes []string
	for _, e := range m.expenses {
		if e.DormID != dormID {
			continue
		}
		if _, ok := domain.ParseExpenseImportKey(e.Note); ok {
			notes = append(notes, e.Note)
		}
	}
	return notes, nil
}

// Count returns the number of stored expenses.
func (m *MockExpenseRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.expenses)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateFunc   func(ctx context.Context, log *domain.AuditLog) error
	CreateTxFunc func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	return m.Create(ctx, log)
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.Logs...), nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}
