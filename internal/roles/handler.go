package roles

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "Roles"

// Handler manages role endpoints.
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

// MountRoutes registers role routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Authenticate())
		r.With(h.rbac.RequirePermission(shared.PermRoleView)).Get("/", h.listRoles)
		r.With(h.rbac.RequirePermission(shared.PermRoleAdd)).Post("/add", h.createRole)
		r.With(h.rbac.RequirePermission(shared.PermRoleUpdate)).Put("/update", h.updateRole)
		r.With(h.rbac.RequirePermission(shared.PermRoleDelete)).Delete("/delete", h.deleteRole)
	})
}

type successBody struct {
	Success bool `json:"success"`
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "Get", err)
		return
	}
	h.succeed(r, "Get", "Fetched roles listing")
	httpx.Success(w, http.StatusOK, roles)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var in AddInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	p, _ := shared.PrincipalFromContext(r.Context())
	role, err := h.service.Add(r.Context(), p, in)
	if err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	h.succeed(r, "Add", map[string]any{"_id": role.ID, "role_name": role.Name, "permissions": role.Permissions})
	httpx.Success(w, http.StatusCreated, successBody{Success: true})
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	p, _ := shared.PrincipalFromContext(r.Context())
	if err := h.service.Update(r.Context(), p, in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	h.succeed(r, "Update", map[string]any{"_id": in.ID, "permissions": in.Permissions})
	httpx.Success(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request) {
	var in DeleteInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), in.ID); err != nil {
		h.fail(w, r, "Delete", err)
		return
	}
	h.succeed(r, "Delete", map[string]any{"_id": in.ID})
	httpx.Success(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) succeed(r *http.Request, action string, detail any) {
	p, _ := shared.PrincipalFromContext(r.Context())
	h.audit.Info(r.Context(), p.Email, auditLocation, action, detail)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	p, _ := shared.PrincipalFromContext(r.Context())
	h.audit.Error(r.Context(), p.Email, auditLocation, action, err)
	if httpx.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("roles "+action, slog.Any("error", err))
	}
	httpx.RespondError(w, h.translator, p.Language, err)
}
