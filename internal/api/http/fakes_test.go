package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/repository"
)

type memProfiles struct {
	mu   sync.Mutex
	byID map[string]*domain.Profile
}

func (m *memProfiles) Create(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.byID[p.ID] = p
	return nil
}

func (m *memProfiles) Update(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memProfiles) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memProfiles) List(_ context.Context, _ repository.ProfileFilter) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

// memProfileCache is an in-process ProfileCache. invalidateErr makes
// Invalidate fail while leaving the entry in place.
type memProfileCache struct {
	mu            sync.Mutex
	entries       map[string]domain.Profile
	invalidateErr error
}

func (c *memProfileCache) Get(_ context.Context, id string) (*domain.Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (c *memProfileCache) Set(_ context.Context, p *domain.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p.ID] = *p
	return nil
}

func (c *memProfileCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	delete(c.entries, id)
	return nil
}

type noResets struct{}

func (noResets) Create(context.Context, *repository.PasswordResetToken) error { return nil }
func (noResets) GetByToken(context.Context, string) (*repository.PasswordResetToken, error) {
	return nil, pgx.ErrNoRows
}
func (noResets) MarkUsed(context.Context, string) error { return nil }

type memPlants struct {
	mu   sync.Mutex
	byID map[string]*domain.PowerPlant
}

func (m *memPlants) Create(_ context.Context, p *domain.PowerPlant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	m.byID[p.ID] = p
	return nil
}

func (m *memPlants) Update(_ context.Context, p *domain.PowerPlant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[p.ID] = p
	return nil
}

func (m *memPlants) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	return nil
}

func (m *memPlants) GetByID(_ context.Context, id string) (*domain.PowerPlant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memPlants) List(_ context.Context, _ repository.AssetFilter) ([]domain.PowerPlant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.PowerPlant, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

type noSubstations struct{}

func (noSubstations) Create(context.Context, *domain.Substation) error { return nil }
func (noSubstations) Update(context.Context, *domain.Substation) error { return pgx.ErrNoRows }
func (noSubstations) Delete(context.Context, string) error            { return pgx.ErrNoRows }
func (noSubstations) GetByID(context.Context, string) (*domain.Substation, error) {
	return nil, pgx.ErrNoRows
}
func (noSubstations) List(context.Context, repository.AssetFilter) ([]domain.Substation, error) {
	return nil, nil
}

type memIncidents struct {
	mu   sync.Mutex
	byID map[string]*domain.Incident
	last repository.IncidentFilter
}

func (m *memIncidents) Create(_ context.Context, i *domain.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.ID = uuid.NewString()
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	m.byID[i.ID] = i
	return nil
}

func (m *memIncidents) Update(_ context.Context, i *domain.Incident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[i.ID]; !ok {
		return pgx.ErrNoRows
	}
	i.UpdatedAt = time.Now()
	m.byID[i.ID] = i
	return nil
}

func (m *memIncidents) GetByID(_ context.Context, id string) (*domain.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.byID[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memIncidents) List(_ context.Context, filter repository.IncidentFilter) ([]domain.Incident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = filter
	out := make([]domain.Incident, 0, len(m.byID))
	for _, i := range m.byID {
		out = append(out, *i)
	}
	return out, nil
}

type memBilling struct {
	mu       sync.Mutex
	bills    map[string]*domain.CustomerBill
	requests []domain.ServiceRequest
}

func (m *memBilling) ListBills(_ context.Context, customerID string, _ repository.Page) ([]domain.CustomerBill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CustomerBill
	for _, b := range m.bills {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBilling) GetBill(_ context.Context, id string) (*domain.CustomerBill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bills[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memBilling) MarkBillPaid(_ context.Context, bill *domain.CustomerBill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bills[bill.ID]
	if !ok || stored.Paid {
		return pgx.ErrNoRows
	}
	now := time.Now()
	stored.Paid = true
	stored.PaidAt = &now
	bill.Paid = true
	bill.PaidAt = &now
	return nil
}

func (m *memBilling) CreateServiceRequest(_ context.Context, req *domain.ServiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = uuid.NewString()
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	m.requests = append(m.requests, *req)
	return nil
}

func (m *memBilling) ListServiceRequests(_ context.Context, customerID string, _ repository.Page) ([]domain.ServiceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ServiceRequest
	for _, r := range m.requests {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}
