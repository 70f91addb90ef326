package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/api/http/handlers"
	"github.com/bpdb/power-portal/internal/auth"
	"github.com/bpdb/power-portal/internal/cache"
	"github.com/bpdb/power-portal/internal/config"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/observability"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
	"github.com/bpdb/power-portal/internal/service"
)

const testPassword = "correct-horse"

type testServer struct {
	app       *fiber.App
	tokens    *auth.TokenManager
	profiles  *memProfiles
	cache     *memProfileCache
	incidents *memIncidents
	billing   *memBilling
	metrics   *observability.Metrics
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "router-test",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              4,
	}}

	profiles := &memProfiles{byID: map[string]*domain.Profile{}}
	profileCache := &memProfileCache{entries: map[string]domain.Profile{}}
	lookup := cache.NewProfileLookup(profileCache, profiles, logger)
	plants := &memPlants{byID: map[string]*domain.PowerPlant{}}
	incidents := &memIncidents{byID: map[string]*domain.Incident{}}
	billing := &memBilling{bills: map[string]*domain.CustomerBill{}}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		ProfileRepo:       profiles,
		PasswordResetRepo: noResets{},
		Cache:             lookup,
		SignIns:           metrics,
		Logger:            logger,
	})
	policy, err := auth.NewPolicyEnforcer(logger, metrics)
	require.NoError(t, err)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("power-portal", "test", nil),
		Auth:      handlers.NewAuthHandler(authService),
		Me:        handlers.NewMeHandler(service.NewNavigationService()),
		Assets:    handlers.NewAssetsHandler(service.NewAssetService(plants, noSubstations{})),
		Incidents: handlers.NewIncidentsHandler(service.NewIncidentService(service.IncidentDependencies{
			IncidentRepo: incidents,
			ProfileRepo:  profiles,
			Dispatcher:   dispatcher,
		})),
		Users:          handlers.NewUsersHandler(service.NewProfileService(profiles, lookup, dispatcher, logger)),
		Billing:        handlers.NewBillingHandler(service.NewBillingService(billing, dispatcher)),
		Metrics:        metrics,
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), lookup),
		Policy:         policy,
	})

	return &testServer{
		app:       app,
		tokens:    authService.TokenManager(),
		profiles:  profiles,
		cache:     profileCache,
		incidents: incidents,
		billing:   billing,
		metrics:   metrics,
	}
}

func (s *testServer) addProfile(t *testing.T, role roles.Role, email string) *domain.Profile {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, 4)
	require.NoError(t, err)
	p := &domain.Profile{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       string(role),
		Role:           role,
		HierarchyLevel: 1,
		IsActive:       true,
		PasswordHash:   hash,
	}
	s.profiles.byID[p.ID] = p
	return p
}

func (s *testServer) token(t *testing.T, p *domain.Profile) string {
	t.Helper()
	token, _, err := s.tokens.GenerateToken(p)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestLoginRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		role  roles.Role
		email string
		path  string
	}{
		{roles.RoleChairman, "chair@bpdb.gov.bd", "/dashboard/chairman"},
		{roles.RoleDirectorGen, "dg@bpdb.gov.bd", "/dashboard/director/generation"},
		{roles.RoleTechnicianElec, "tech@bpdb.gov.bd", "/dashboard/officer/technical"},
		{roles.RoleCustomer, "home@example.com", "/dashboard/customer"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			s.addProfile(t, tt.role, tt.email)
			resp := s.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": tt.email, "password": testPassword})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body struct {
				Data struct {
					Auth struct {
						Token string `json:"token"`
					} `json:"auth"`
					Redirect   string `json:"redirect"`
					Navigation *struct {
						Target struct {
							Path string `json:"path"`
						} `json:"target"`
					} `json:"navigation"`
				} `json:"data"`
			}
			decode(t, resp, &body)
			assert.NotEmpty(t, body.Data.Auth.Token)
			assert.Equal(t, tt.path, body.Data.Redirect)
			require.NotNil(t, body.Data.Navigation)
			assert.Equal(t, tt.path, body.Data.Navigation.Target.Path)
		})
	}
}

type loginBody struct {
	Data struct {
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
		Redirect string `json:"redirect"`
	} `json:"data"`
}

type navigationBody struct {
	Data struct {
		Classification struct {
			Tier string `json:"tier"`
		} `json:"classification"`
		Target struct {
			Path string `json:"path"`
		} `json:"target"`
	} `json:"data"`
}

func (s *testServer) login(t *testing.T, email string) loginBody {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body loginBody
	decode(t, resp, &body)
	return body
}

func (s *testServer) navigation(t *testing.T, token string) navigationBody {
	t.Helper()
	resp := s.do(t, http.MethodGet, "/me/navigation", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body navigationBody
	decode(t, resp, &body)
	return body
}

func TestLoginAndSidebarAgreeWhenCacheInvalidationFails(t *testing.T) {
	s := newTestServer(t)
	s.cache.invalidateErr = errors.New("READONLY You can't write against a read only replica")
	admin := s.token(t, s.addProfile(t, roles.RoleSystemAnalyst, "sa@bpdb.gov.bd"))
	user := s.addProfile(t, roles.RoleCustomer, "rahim@example.com")

	first := s.login(t, user.Email)
	assert.Equal(t, "/dashboard/customer", first.Data.Redirect)
	assert.Equal(t, "/dashboard/customer", s.navigation(t, first.Data.Auth.Token).Data.Target.Path)

	resp := s.do(t, http.MethodPatch, "/management/users/"+user.ID, admin, fiber.Map{"role": string(roles.RoleChairman)})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	second := s.login(t, user.Email)
	assert.Equal(t, "/dashboard/chairman", second.Data.Redirect)
	nav := s.navigation(t, second.Data.Auth.Token)
	assert.Equal(t, second.Data.Redirect, nav.Data.Target.Path)
	assert.Equal(t, string(roles.TierChairman), nav.Data.Classification.Tier)

	resp = s.do(t, http.MethodGet, "/management/power-plants", second.Data.Auth.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterCreatesCustomerOnly(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"full_name":       "Mallory",
		"email":           "mallory@example.com",
		"password":        "s3cret-pass",
		"role":            string(roles.RoleChairman),
		"department":      string(domain.DeptGeneration),
		"hierarchy_level": 10,
	})
	var forbidden errorBody
	decode(t, resp, &forbidden)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", forbidden.Error.Code)
	_, err := s.profiles.GetByEmail(context.Background(), "mallory@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	resp = s.do(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"full_name": "Rahim Uddin",
		"email":     "rahim@example.com",
		"password":  "s3cret-pass",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/dashboard/customer", s.login(t, "rahim@example.com").Data.Redirect)
}

func TestLoginErrors(t *testing.T) {
	s := newTestServer(t)
	s.addProfile(t, roles.RoleChiefEngineer, "ce@bpdb.gov.bd")

	resp := s.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "ce@bpdb.gov.bd", "password": "wrong"})
	var unauthorized errorBody
	decode(t, resp, &unauthorized)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", unauthorized.Error.Code)

	resp = s.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "not-an-email", "password": "x"})
	var invalid errorBody
	decode(t, resp, &invalid)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", invalid.Error.Code)
	assert.Equal(t, "email", invalid.Error.Details["email"])
}

func TestPasswordResetRequestDoesNotRevealAccounts(t *testing.T) {
	s := newTestServer(t)
	s.addProfile(t, roles.RoleCustomer, "known@example.com")

	for _, email := range []string{"known@example.com", "unknown@example.com"} {
		resp := s.do(t, http.MethodPost, "/auth/password/reset/request", "", fiber.Map{"email": email})
		assert.Equal(t, http.StatusAccepted, resp.StatusCode, email)
	}
}

func TestManagementAccess(t *testing.T) {
	s := newTestServer(t)
	chairman := s.token(t, s.addProfile(t, roles.RoleChairman, "chair@bpdb.gov.bd"))
	chief := s.token(t, s.addProfile(t, roles.RoleChiefEngineer, "ce@bpdb.gov.bd"))
	dirGen := s.token(t, s.addProfile(t, roles.RoleDirectorGen, "dg@bpdb.gov.bd"))
	dirHR := s.token(t, s.addProfile(t, roles.RoleDirectorHR, "hr@bpdb.gov.bd"))
	customer := s.token(t, s.addProfile(t, roles.RoleCustomer, "home@example.com"))
	plant := fiber.Map{"name": "Ghorasal", "capacity_mw": 210}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{"anonymous", http.MethodGet, "/management/power-plants", "", nil, http.StatusUnauthorized},
		{"chairman reads", http.MethodGet, "/management/power-plants", chairman, nil, http.StatusOK},
		{"director reads", http.MethodGet, "/management/power-plants", dirGen, nil, http.StatusOK},
		{"director cannot write", http.MethodPost, "/management/power-plants", dirGen, plant, http.StatusForbidden},
		{"chief engineer writes", http.MethodPost, "/management/power-plants", chief, plant, http.StatusCreated},
		{"hr director has no plants", http.MethodGet, "/management/power-plants", dirHR, nil, http.StatusForbidden},
		{"hr director reads users", http.MethodGet, "/management/users", dirHR, nil, http.StatusOK},
		{"chief engineer has no users", http.MethodGet, "/management/users", chief, nil, http.StatusForbidden},
		{"customer kept out", http.MethodGet, "/management/incidents", customer, nil, http.StatusForbidden},
		{"roles catalog needs users read", http.MethodGet, "/roles", chief, nil, http.StatusForbidden},
		{"roles catalog", http.MethodGet, "/roles", chairman, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.method, tt.path, tt.token, tt.body)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestPowerPlantLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, s.addProfile(t, roles.RoleManagingDirector, "md@bpdb.gov.bd"))

	resp := s.do(t, http.MethodPost, "/management/power-plants", token, fiber.Map{"name": "Rooppur", "capacity_mw": 2400, "fuel_type": "nuclear"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data plantBody `json:"data"`
	}
	decode(t, resp, &created)
	require.NotEmpty(t, created.Data.ID)
	assert.True(t, created.Data.IsActive)

	resp = s.do(t, http.MethodPatch, "/management/power-plants/"+created.Data.ID, token, fiber.Map{"is_active": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Data plantBody `json:"data"`
	}
	decode(t, resp, &updated)
	assert.False(t, updated.Data.IsActive)
	assert.Equal(t, "Rooppur", updated.Data.Name)

	resp = s.do(t, http.MethodDelete, "/management/power-plants/"+created.Data.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/management/power-plants/"+created.Data.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/management/power-plants/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type plantBody struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func TestIncidentWorkflow(t *testing.T) {
	s := newTestServer(t)
	engineer := s.token(t, s.addProfile(t, roles.RoleEngElec, "eng@bpdb.gov.bd"))

	resp := s.do(t, http.MethodPost, "/management/incidents", engineer, fiber.Map{
		"incident_type": "transformer trip",
		"severity":      "high",
		"description":   "132kV line tripped at Aminbazar",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "open", created.Data.Status)

	resp = s.do(t, http.MethodPatch, "/management/incidents/"+created.Data.ID+"/status", engineer, fiber.Map{"status": "investigating"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/management/incidents/"+created.Data.ID+"/status", engineer, fiber.Map{"status": "archived"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/management/incidents?status=open,investigating&severity=high", engineer, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.IncidentStatus{domain.IncidentOpen, domain.IncidentInvestigating}, s.incidents.last.Statuses)
	assert.Equal(t, []domain.IncidentSeverity{domain.SeverityHigh}, s.incidents.last.Severities)
}

func TestCustomerBilling(t *testing.T) {
	s := newTestServer(t)
	customer := s.addProfile(t, roles.RoleCustomer, "home@example.com")
	token := s.token(t, customer)
	staff := s.token(t, s.addProfile(t, roles.RoleFinancialOfficer, "fin@bpdb.gov.bd"))

	billID := uuid.NewString()
	s.billing.bills[billID] = &domain.CustomerBill{
		ID:           billID,
		CustomerID:   customer.ID,
		BillingMonth: "2026-09",
		AmountBDT:    decimal.RequireFromString("1250.50"),
		DueDate:      time.Now().Add(-48 * time.Hour),
	}

	resp := s.do(t, http.MethodGet, "/me/bills", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Data struct {
			Bills []struct {
				ID      string `json:"id"`
				Overdue bool   `json:"overdue"`
			} `json:"bills"`
			Summary struct {
				Outstanding string `json:"outstanding_bdt"`
				Overdue     int    `json:"overdue_count"`
			} `json:"summary"`
		} `json:"data"`
	}
	decode(t, resp, &listed)
	require.Len(t, listed.Data.Bills, 1)
	assert.True(t, listed.Data.Bills[0].Overdue)
	assert.Equal(t, 1, listed.Data.Summary.Overdue)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(decimal.RequireFromString(listed.Data.Summary.Outstanding)))

	pay := "/me/bills/" + billID + "/pay"
	tests := []struct {
		name   string
		amount string
		status int
		code   string
	}{
		{"non positive", "0", http.StatusBadRequest, "VALIDATION_FAILED"},
		{"wrong amount", "1000", http.StatusUnprocessableEntity, "AMOUNT_MISMATCH"},
		{"exact amount", "1250.50", http.StatusOK, ""},
		{"already paid", "1250.50", http.StatusConflict, "CONFLICT"},
	}
	for _, tt := range tests {
		resp := s.do(t, http.MethodPost, pay, token, fiber.Map{"amount_bdt": tt.amount})
		assert.Equal(t, tt.status, resp.StatusCode, tt.name)
		if tt.code != "" {
			var body errorBody
			decode(t, resp, &body)
			assert.Equal(t, tt.code, body.Error.Code, tt.name)
		} else {
			resp.Body.Close()
		}
	}

	resp = s.do(t, http.MethodGet, "/me/bills", staff, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/me/service-requests", token, fiber.Map{"request_type": "meter replacement"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var filed struct {
		Data struct {
			Priority string `json:"priority"`
			Status   string `json:"status"`
		} `json:"data"`
	}
	decode(t, resp, &filed)
	assert.Equal(t, "normal", filed.Data.Priority)
}

func TestMeNavigationMarksActiveItem(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, s.addProfile(t, roles.RoleChairman, "chair@bpdb.gov.bd"))

	resp := s.do(t, http.MethodGet, "/me/navigation?path="+roles.RoutePowerPlants, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var nav struct {
		Data struct {
			Groups []struct {
				Items []struct {
					URL    string `json:"url"`
					Active bool   `json:"active"`
				} `json:"items"`
			} `json:"groups"`
		} `json:"data"`
	}
	decode(t, resp, &nav)
	var active []string
	for _, g := range nav.Data.Groups {
		for _, it := range g.Items {
			if it.Active {
				active = append(active, it.URL)
			}
		}
	}
	assert.Equal(t, []string{roles.RoutePowerPlants}, active)

	resp = s.do(t, http.MethodGet, "/me", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health/live", "", nil)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(raw), "portal_http_requests_total"))
}

func TestUnknownRouteRendersErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/nowhere", "", nil)
	var body errorBody
	decode(t, resp, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

var _ repository.ProfileRepository = (*memProfiles)(nil)
