package auth

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/roles"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// Resource names a management screen guarded by the access policy.
type Resource string

const (
	ResourcePowerPlants Resource = "power-plants"
	ResourceSubstations Resource = "substations"
	ResourceUsers       Resource = "users"
	ResourceIncidents   Resource = "incidents"
)

// Action is what the caller wants to do with a resource.
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Grant is one allowed (resource, action) pair.
type Grant struct {
	Resource Resource `json:"resource"`
	Action   Action   `json:"action"`
}

const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var routeResources = map[string]Resource{
	roles.RoutePowerPlants: ResourcePowerPlants,
	roles.RouteSubstations: ResourceSubstations,
	roles.RouteUsers:       ResourceUsers,
	roles.RouteIncidents:   ResourceIncidents,
}

// DecisionRecorder receives every policy decision.
type DecisionRecorder interface {
	RecordAuthzDecision(resource, action string, allowed bool)
}

// PolicySubject keys a classification in the policy. Menus vary by tier and,
// for directors, by department, so both are part of the key.
func PolicySubject(c roles.Classification) string {
	if c.Department == "" {
		return string(c.Tier)
	}
	return string(c.Tier) + ":" + c.Department
}

// Grants derives the permissions of a classification. Every management screen
// in its menu is readable; writes follow the organizational chart.
func Grants(c roles.Classification) []Grant {
	menu := roles.BuildMenu(c)
	var out []Grant
	for _, route := range menu.Routes() {
		if res, ok := routeResources[route]; ok {
			out = append(out, Grant{Resource: res, Action: ActionRead})
		}
	}

	var writes []Resource
	switch {
	case c.Tier.Executive():
		writes = []Resource{ResourcePowerPlants, ResourceSubstations, ResourceUsers, ResourceIncidents}
	case c.Tier == roles.TierChiefEngineer:
		writes = []Resource{ResourcePowerPlants, ResourceSubstations, ResourceIncidents}
	case c.Tier == roles.TierSystemAnalyst:
		writes = []Resource{ResourceUsers}
	case c.Tier == roles.TierDirector && c.Department == "hr":
		writes = []Resource{ResourceUsers}
	case menu.Links(roles.RouteIncidents):
		writes = []Resource{ResourceIncidents}
	}
	for _, res := range writes {
		out = append(out, Grant{Resource: res, Action: ActionWrite})
	}
	return out
}

// PolicyEnforcer answers access questions with a casbin enforcer. Policies
// for every enumerated role are loaded up front; any other classification is
// added the first time it is seen.
type PolicyEnforcer struct {
	mu       sync.Mutex
	enforcer *casbin.SyncedEnforcer
	known    map[string]struct{}
	recorder DecisionRecorder
	logger   *zap.Logger
}

// NewPolicyEnforcer builds the enforcer and loads the generated policy.
func NewPolicyEnforcer(logger *zap.Logger, recorder DecisionRecorder) (*PolicyEnforcer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("policy: invalid model: %w", err)
	}
	enf, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("policy: failed to initialize enforcer: %w", err)
	}

	p := &PolicyEnforcer{
		enforcer: enf,
		known:    make(map[string]struct{}),
		recorder: recorder,
		logger:   logger.With(zap.String("component", "policy")),
	}
	for _, role := range roles.AllRoles() {
		if err := p.ensure(roles.Classify(string(role))); err != nil {
			return nil, err
		}
	}
	p.logger.Info("access policy loaded", zap.Int("subjects", len(p.known)))
	return p, nil
}

func (p *PolicyEnforcer) ensure(c roles.Classification) error {
	sub := PolicySubject(c)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.known[sub]; ok {
		return nil
	}

	grants := Grants(c)
	if len(grants) > 0 {
		rules := make([][]string, len(grants))
		for i, g := range grants {
			rules[i] = []string{sub, string(g.Resource), string(g.Action)}
		}
		if _, err := p.enforcer.AddPolicies(rules); err != nil {
			return fmt.Errorf("policy: add rules for %s: %w", sub, err)
		}
	}
	p.known[sub] = struct{}{}
	return nil
}

// Allowed reports whether c may perform action on resource.
func (p *PolicyEnforcer) Allowed(c roles.Classification, resource Resource, action Action) (bool, error) {
	if err := p.ensure(c); err != nil {
		return false, err
	}
	ok, err := p.enforcer.Enforce(PolicySubject(c), string(resource), string(action))
	if err != nil {
		return false, fmt.Errorf("policy: enforce failed: %w", err)
	}
	if p.recorder != nil {
		p.recorder.RecordAuthzDecision(string(resource), string(action), ok)
	}
	return ok, nil
}

// RequireAccess rejects callers whose classification lacks the permission.
func (p *PolicyEnforcer) RequireAccess(resource Resource, action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		allowed, err := p.Allowed(principal.Classification, resource, action)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if !allowed {
			p.logger.Warn("access denied",
				zap.String("profile_id", principal.Profile.ID),
				zap.String("subject", PolicySubject(principal.Classification)),
				zap.String("resource", string(resource)),
				zap.String("action", string(action)),
			)
			return apperrors.NewForbidden(fmt.Sprintf("%s access to %s denied", action, resource))
		}
		return c.Next()
	}
}
