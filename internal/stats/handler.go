package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "Stats"

// Handler exposes aggregate statistics to any authenticated user.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	translator httpx.Translator
	audit      shared.Auditor
	rbac       rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, translator httpx.Translator, auditor shared.Auditor, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, translator: translator, audit: auditor, rbac: rbac}
}

// MountRoutes registers stats routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Authenticate())
		r.Post("/auditlogs", h.auditLogs)
		r.Post("/categories/unique", h.uniqueCategories)
		r.Post("/users/count", h.userCount)
	})
}

type auditLogsRequest struct {
	Location *string `json:"location"`
}

type activeRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *Handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	var req auditLogsRequest
	if !h.decode(w, r, "AuditLogs", &req) {
		return
	}
	counts, err := h.service.ActivityCounts(r.Context(), req.Location)
	if err != nil {
		h.fail(w, r, "AuditLogs", err)
		return
	}
	httpx.Success(w, http.StatusOK, counts)
}

func (h *Handler) uniqueCategories(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if !h.decode(w, r, "Categories", &req) {
		return
	}
	names, err := h.service.UniqueCategories(r.Context(), req.IsActive)
	if err != nil {
		h.fail(w, r, "Categories", err)
		return
	}
	httpx.Success(w, http.StatusOK, names)
}

func (h *Handler) userCount(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if !h.decode(w, r, "Users", &req) {
		return
	}
	n, err := h.service.UserCount(r.Context(), req.IsActive)
	if err != nil {
		h.fail(w, r, "Users", err)
		return
	}
	httpx.Success(w, http.StatusOK, n)
}

// decode accepts an empty body as "no filters".
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, action string, dest any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := httpx.DecodeJSON(r, dest); err != nil {
		h.fail(w, r, action, err)
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	p, _ := shared.PrincipalFromContext(r.Context())
	if h.audit != nil {
		h.audit.Error(r.Context(), p.Email, auditLocation, action, err)
	}
	if httpx.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("stats", slog.String("action", action), slog.Any("error", err))
	}
	httpx.RespondError(w, h.translator, p.Language, err)
}
