package categories

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "Categories"

type Handler struct {
	logger     *slog.Logger
	service    *Service
	translator httpx.Translator
	audit      shared.Auditor
	rbac       rbac.Middleware
}

func NewHandler(logger *slog.Logger, service *Service, translator httpx.Translator, auditor shared.Auditor, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, translator: translator, audit: auditor, rbac: rbac}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Authenticate())
		r.With(h.rbac.RequirePermission(shared.PermCategoryView)).Get("/", h.List)
		r.With(h.rbac.RequirePermission(shared.PermCategoryAdd)).Post("/add", h.Create)
		r.With(h.rbac.RequirePermission(shared.PermCategoryUpdate)).Put("/update", h.Update)
		r.With(h.rbac.RequirePermission(shared.PermCategoryDelete)).Delete("/delete", h.Delete)
	})
}

type successBody struct {
	Success bool `json:"success"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	categories, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.fail(w, r, "Get", err)
		return
	}
	h.succeed(r, "Get", "Retrieved all categories")
	httpx.Success(w, http.StatusOK, categories)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in AddInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	p, _ := shared.PrincipalFromContext(r.Context())
	c, err := h.service.Create(r.Context(), p, in)
	if err != nil {
		h.fail(w, r, "Add", err)
		return
	}
	h.succeed(r, "Add", c)
	httpx.Success(w, http.StatusCreated, successBody{Success: true})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	if err := h.service.Update(r.Context(), in); err != nil {
		h.fail(w, r, "Update", err)
		return
	}
	h.succeed(r, "Update", in)
	httpx.Success(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var in DeleteInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, "Delete", err)
		return
	}
	if err := h.service.Delete(r.Context(), in.ID); err != nil {
		h.fail(w, r, "Delete", err)
		return
	}
	h.succeed(r, "Delete", in)
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
		h.logger.Error("categories request failed", "action", action, "error", err)
	}
	httpx.RespondError(w, h.translator, p.Language, err)
}
