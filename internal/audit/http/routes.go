package audithttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const rateWindow = time.Minute

// MountRoutes registers the audit log query endpoint.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Group(func(gr chi.Router) {
		gr.Use(h.rbac.Authenticate())
		if h.rateLimit > 0 {
			gr.Use(httprate.Limit(h.rateLimit, rateWindow,
				httprate.WithKeyFuncs(rateLimitKey),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					p, _ := shared.PrincipalFromContext(r.Context())
					httpx.Failure(w, http.StatusTooManyRequests, httpx.ErrorBody{
						Msg:         h.translator.Translate(p.Language, shared.MsgTooManyRequests),
						Description: h.translator.Translate(p.Language, shared.MsgTooManyRequests),
					})
				}),
			))
		}
		gr.With(h.rbac.RequirePermission(shared.PermAuditLogsView)).Post("/", h.handleList)
	})
}

func rateLimitKey(r *http.Request) (string, error) {
	if p, ok := shared.PrincipalFromContext(r.Context()); ok {
		return "user:" + strconv.FormatInt(p.ID, 10), nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
