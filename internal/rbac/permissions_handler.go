package rbac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
)

// PermissionsHandler serves the static permission catalog.
type PermissionsHandler struct {
	catalog *Catalog
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(catalog *Catalog) *PermissionsHandler {
	return &PermissionsHandler{catalog: catalog}
}

// MountRoutes registers permission routes. The catalog is public.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/role_privileges", h.listPermissions)
}

type catalogResponse struct {
	Groups      []Group      `json:"groups"`
	Permissions []Permission `json:"permissions"`
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, _ *http.Request) {
	httpx.Success(w, http.StatusOK, catalogResponse{
		Groups:      h.catalog.Groups(),
		Permissions: h.catalog.Permissions(),
	})
}
