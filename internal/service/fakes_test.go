package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/interinest/marketplace/internal/domain"
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/identity"
	"github.com/interinest/marketplace/internal/repository"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) VerifyCredentials(ctx context.Context, email, password string) (*identity.Identity, error) {
	args := m.Called(ctx, email, password)
	ident, _ := args.Get(0).(*identity.Identity)
	return ident, args.Error(1)
}

func (m *mockProvider) CreateAccount(ctx context.Context, email, password string) (*identity.Identity, error) {
	args := m.Called(ctx, email, password)
	ident, _ := args.Get(0).(*identity.Identity)
	return ident, args.Error(1)
}

func (m *mockProvider) DeleteAccount(ctx context.Context, subjectID string) error {
	return m.Called(ctx, subjectID).Error(0)
}

type memAccounts struct {
	mu        sync.Mutex
	bySubject map[string]*domain.Account
	createErr error
	lookupErr error
}

func newMemAccounts(accounts ...domain.Account) *memAccounts {
	m := &memAccounts{bySubject: map[string]*domain.Account{}}
	for i := range accounts {
		a := accounts[i]
		m.bySubject[a.SubjectID] = &a
	}
	return m
}

func (m *memAccounts) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.bySubject[account.SubjectID]; ok {
		return repository.ErrDuplicate
	}
	for _, a := range m.bySubject {
		if account.Phone != "" && a.Phone == account.Phone {
			return repository.ErrDuplicate
		}
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	m.bySubject[account.SubjectID] = &cp
	return nil
}

func (m *memAccounts) Update(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySubject[account.SubjectID]; !ok {
		return pgx.ErrNoRows
	}
	for id, a := range m.bySubject {
		if id != account.SubjectID && account.Phone != "" && a.Phone == account.Phone {
			return repository.ErrDuplicate
		}
	}
	cp := *account
	m.bySubject[account.SubjectID] = &cp
	return nil
}

func (m *memAccounts) GetBySubjectID(_ context.Context, subjectID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	a, ok := m.bySubject[subjectID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return false, m.lookupErr
	}
	for _, a := range m.bySubject {
		if a.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccounts) List(_ context.Context, filter repository.AccountFilter) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.bySubject {
		if filter.Role != nil && a.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

func (m *memAccounts) SetStatus(_ context.Context, subjectID string, status domain.AccountStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.bySubject[subjectID]
	if !ok {
		return pgx.ErrNoRows
	}
	a.Status = status
	return nil
}

func (m *memAccounts) IncrementViews(_ context.Context, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.bySubject[subjectID]; ok {
		a.Views++
	}
	return nil
}

func (m *memAccounts) DesignerStats(_ context.Context) (repository.DesignerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stats repository.DesignerStats
	for _, a := range m.bySubject {
		if a.Role != domain.RoleDesigner {
			continue
		}
		stats.Total++
		stats.Views += a.Views
		if a.Status == domain.AccountStatusPending {
			stats.Pending++
		}
	}
	return stats, nil
}

type memProjects struct {
	mu   sync.Mutex
	byID map[string]*domain.Project
}

func newMemProjects() *memProjects {
	return &memProjects{byID: map[string]*domain.Project{}}
}

func (m *memProjects) Create(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project.ID = uuid.NewString()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	cp := *project
	m.byID[project.ID] = &cp
	return nil
}

func (m *memProjects) Update(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[project.ID]
	if !ok || existing.OwnerID != project.OwnerID {
		return pgx.ErrNoRows
	}
	project.UpdatedAt = time.Now()
	cp := *project
	m.byID[project.ID] = &cp
	return nil
}

func (m *memProjects) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) List(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, p := range m.byID {
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProjects) Counts(_ context.Context, ownerID *string) (repository.ProjectCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counts repository.ProjectCounts
	for _, p := range m.byID {
		if ownerID != nil && p.OwnerID != *ownerID {
			continue
		}
		counts.Total++
		if p.Status == domain.ProjectStatusPublished {
			counts.Published++
		}
	}
	return counts, nil
}

type memCredentialFlags struct {
	mu       sync.Mutex
	disabled map[string]bool
}

func newMemCredentialFlags(subjectIDs ...string) *memCredentialFlags {
	m := &memCredentialFlags{disabled: map[string]bool{}}
	for _, id := range subjectIDs {
		m.disabled[id] = false
	}
	return m
}

func (m *memCredentialFlags) Create(context.Context, *repository.Credential) error { return nil }

func (m *memCredentialFlags) GetByEmail(context.Context, string) (*repository.Credential, error) {
	return nil, pgx.ErrNoRows
}

func (m *memCredentialFlags) Delete(_ context.Context, subjectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.disabled, subjectID)
	return nil
}

func (m *memCredentialFlags) SetDisabled(_ context.Context, subjectID string, disabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.disabled[subjectID]; !ok {
		return pgx.ErrNoRows
	}
	m.disabled[subjectID] = disabled
	return nil
}

func (m *memCredentialFlags) isDisabled(subjectID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disabled[subjectID]
}

type recordingDispatcher struct {
	mu       sync.Mutex
	received []events.Event
	err      error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.received = append(d.received, event)
	return d.err
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.received))
	for _, e := range d.received {
		out = append(out, e.Type)
	}
	return out
}
