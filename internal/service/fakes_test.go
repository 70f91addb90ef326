package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
)

type fakeProfiles struct {
	mu      sync.Mutex
	byID    map[string]*domain.Profile
	seq     int
	updates int
}

func newFakeProfiles(profiles ...*domain.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[string]*domain.Profile{}}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = fmt.Sprintf("profile-%d", f.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, p *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.updates++
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfiles) List(_ context.Context, filter repository.ProfileFilter) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Profile
	for _, p := range f.byID {
		if len(filter.Roles) > 0 && !containsRole(filter.Roles, p.Role) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func containsRole(list []roles.Role, r roles.Role) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}

// fakeCache records what the services remember and forget.
type fakeCache struct {
	remembered []domain.Profile
	forgotten  []string
}

func (c *fakeCache) Remember(_ context.Context, p *domain.Profile) {
	c.remembered = append(c.remembered, *p)
}

func (c *fakeCache) Forget(_ context.Context, id string) {
	c.forgotten = append(c.forgotten, id)
}

type fakeResets struct {
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResets() *fakeResets {
	return &fakeResets{tokens: map[string]*repository.PasswordResetToken{}}
}

func (f *fakeResets) Create(_ context.Context, t *repository.PasswordResetToken) error {
	t.ID = "reset-" + t.Token
	t.CreatedAt = time.Now()
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeResets) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeResets) MarkUsed(_ context.Context, id string) error {
	for _, t := range f.tokens {
		if t.ID == id {
			if t.UsedAt != nil {
				return pgx.ErrNoRows
			}
			now := time.Now()
			t.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeIncidents struct {
	byID map[string]*domain.Incident
	seq  int
}

func newFakeIncidents() *fakeIncidents {
	return &fakeIncidents{byID: map[string]*domain.Incident{}}
}

func (f *fakeIncidents) Create(_ context.Context, i *domain.Incident) error {
	f.seq++
	i.ID = fmt.Sprintf("incident-%d", f.seq)
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	cp := *i
	f.byID[i.ID] = &cp
	return nil
}

func (f *fakeIncidents) Update(_ context.Context, i *domain.Incident) error {
	if _, ok := f.byID[i.ID]; !ok {
		return pgx.ErrNoRows
	}
	i.UpdatedAt = time.Now()
	cp := *i
	f.byID[i.ID] = &cp
	return nil
}

func (f *fakeIncidents) GetByID(_ context.Context, id string) (*domain.Incident, error) {
	i, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIncidents) List(_ context.Context, filter repository.IncidentFilter) ([]domain.Incident, error) {
	var out []domain.Incident
	for _, i := range f.byID {
		out = append(out, *i)
	}
	return out, nil
}

type fakePlants struct {
	byID map[string]*domain.PowerPlant
	seq  int
}

func (f *fakePlants) Create(_ context.Context, p *domain.PowerPlant) error {
	if f.byID == nil {
		f.byID = map[string]*domain.PowerPlant{}
	}
	f.seq++
	p.ID = fmt.Sprintf("plant-%d", f.seq)
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlants) Update(_ context.Context, p *domain.PowerPlant) error {
	if _, ok := f.byID[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlants) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePlants) GetByID(_ context.Context, id string) (*domain.PowerPlant, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlants) List(_ context.Context, _ repository.AssetFilter) ([]domain.PowerPlant, error) {
	var out []domain.PowerPlant
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

type fakeSubstations struct {
	byID map[string]*domain.Substation
}

func (f *fakeSubstations) Create(_ context.Context, s *domain.Substation) error {
	if f.byID == nil {
		f.byID = map[string]*domain.Substation{}
	}
	s.ID = fmt.Sprintf("substation-%d", len(f.byID)+1)
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubstations) Update(_ context.Context, s *domain.Substation) error {
	if _, ok := f.byID[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSubstations) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSubstations) GetByID(_ context.Context, id string) (*domain.Substation, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubstations) List(_ context.Context, _ repository.AssetFilter) ([]domain.Substation, error) {
	var out []domain.Substation
	for _, s := range f.byID {
		out = append(out, *s)
	}
	return out, nil
}

type fakeBilling struct {
	bills    map[string]*domain.CustomerBill
	requests []domain.ServiceRequest
}

func (f *fakeBilling) ListBills(_ context.Context, customerID string, _ repository.Page) ([]domain.CustomerBill, error) {
	var out []domain.CustomerBill
	for _, b := range f.bills {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBilling) GetBill(_ context.Context, id string) (*domain.CustomerBill, error) {
	b, ok := f.bills[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBilling) MarkBillPaid(_ context.Context, bill *domain.CustomerBill) error {
	stored, ok := f.bills[bill.ID]
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

func (f *fakeBilling) CreateServiceRequest(_ context.Context, req *domain.ServiceRequest) error {
	req.ID = fmt.Sprintf("request-%d", len(f.requests)+1)
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeBilling) ListServiceRequests(_ context.Context, customerID string, _ repository.Page) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	for _, r := range f.requests {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.published = append(d.published, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, len(d.published))
	for i, e := range d.published {
		out[i] = e.Type
	}
	return out
}

type signInCounter map[string]int

func (c signInCounter) RecordSignIn(tier string) {
	c[tier]++
}
