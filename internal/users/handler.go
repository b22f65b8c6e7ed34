package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "Users"

// Handler manages user management endpoints.
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

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Authenticate())
		r.With(h.rbac.RequirePermission(shared.PermUserView)).Get("/", h.listUsers)
		r.With(h.rbac.RequirePermission(shared.PermUserAdd)).Post("/add", h.createUser)
		r.With(h.rbac.RequirePermission(shared.PermUserUpdate)).Put("/update", h.updateUser)
		r.With(h.rbac.RequirePermission(shared.PermUserDelete)).Delete("/delete", h.deleteUser)
	})
}

type successBody struct {
	Success bool `json:"success"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "Get", err)
		return
	}
	httpx.Success(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in AddInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	user, err := h.service.Add(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	h.succeed(r, "Add", user)
	httpx.Success(w, http.StatusCreated, successBody{Success: true})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in AddInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Register", err)
		return
	}
	user, err := h.service.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Register", err)
		return
	}
	h.audit.Info(r.Context(), user.Email, auditLocation, "Register", user)
	httpx.Success(w, http.StatusCreated, successBody{Success: true})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	if err := h.service.Update(r.Context(), in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	h.succeed(r, "Update", map[string]any{"_id": in.ID, "fields": changedFields(in)})
	httpx.Success(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("users "+action, slog.Any("error", err))
	}
	httpx.RespondError(w, h.translator, p.Language, err)
}

func changedFields(in UpdateInput) []string {
	var fields []string
	add := func(name string, set bool) {
		if set {
			fields = append(fields, name)
		}
	}
	add("email", in.Email != nil)
	add("password", in.Password != nil)
	add("first_name", in.FirstName != nil)
	add("last_name", in.LastName != nil)
	add("phone_number", in.PhoneNumber != nil)
	add("language", in.Language != nil)
	add("is_active", in.IsActive != nil)
	add("roles", len(in.Roles) > 0)
	return fields
}
