package rbac

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// DecisionObserver counts authorization outcomes.
type DecisionObserver interface {
	ObserveDecision(permission, outcome string)
}

// Middleware wires RBAC authorization helpers for HTTP handlers.
type Middleware struct {
	Authorizer *Authorizer
	Catalog    *Catalog
	Translator httpx.Translator
	Audit      shared.Auditor
	Observer   DecisionObserver
	Logger     *slog.Logger
}

// Authenticate resolves the bearer token into a principal stored on the request context.
func (m Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := m.Authorizer.AuthenticateRequest(r.Context(), bearerToken(r))
			if err != nil {
				m.observe("", "unauthenticated")
				m.fail(w, r, "", "", "Authenticate", err)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// RequirePermission ensures the current principal holds every key.
func (m Middleware) RequirePermission(keys ...string) func(http.Handler) http.Handler {
	required := normalizePermissions(keys)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				m.observe(strings.Join(required, ","), "unauthenticated")
				m.fail(w, r, "", "", "Authorize", shared.UnauthorizedError(nil, shared.MsgUnauthorized))
				return
			}
			for _, key := range required {
				if err := m.Authorizer.RequirePermission(r.Context(), principal, key); err != nil {
					m.observe(key, outcome(err))
					m.fail(w, r, principal.Email, principal.Language, key, err)
					return
				}
				m.observe(key, "allowed")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) fail(w http.ResponseWriter, r *http.Request, actor, lang, action string, err error) {
	location := "Auth"
	if m.Catalog != nil {
		if group := m.Catalog.GroupOf(action); group != "" {
			location = group
		}
	}
	if m.Audit != nil {
		m.Audit.Error(r.Context(), actor, location, action, err)
	}
	status := httpx.Status(err)
	if m.Logger != nil && status >= http.StatusInternalServerError {
		m.Logger.Error("rbac middleware", slog.String("action", action), slog.Any("error", err))
	}
	httpx.RespondError(w, m.Translator, lang, err)
}

func (m Middleware) observe(permission, result string) {
	if m.Observer != nil {
		m.Observer.ObserveDecision(permission, result)
	}
}

func outcome(err error) string {
	switch httpx.Status(err) {
	case http.StatusForbidden:
		return "denied"
	case http.StatusUnauthorized:
		return "unauthenticated"
	default:
		return "error"
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func normalizePermissions(perms []string) []string {
	seen := make(map[string]struct{}, len(perms))
	normalized := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}
	return normalized
}
