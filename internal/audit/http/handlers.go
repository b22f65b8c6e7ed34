package audithttp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-admin/internal/audit"
	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "AuditLogs"

// LogService defines the business contract for audit log reads.
type LogService interface {
	List(ctx context.Context, q audit.Query) ([]audit.Entry, error)
}

// Handler serves audit log queries.
type Handler struct {
	logger     *slog.Logger
	service    LogService
	translator httpx.Translator
	audit      shared.Auditor
	rbac       rbac.Middleware
	rateLimit  int
}

// NewHandler creates an audit log handler. rateLimit caps queries per
// principal per minute; zero disables the cap.
func NewHandler(logger *slog.Logger, service LogService, translator httpx.Translator, auditor shared.Auditor, rbac rbac.Middleware, rateLimit int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    service,
		translator: translator,
		audit:      auditor,
		rbac:       rbac,
		rateLimit:  rateLimit,
	}
}

type listRequest struct {
	BeginDate string `json:"begin_date"`
	EndDate   string `json:"end_date"`
	Skip      *int   `json:"skip"`
	Limit     *int   `json:"limit"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	q, err := req.query()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.service.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, entries)
}

func (req listRequest) query() (audit.Query, error) {
	q := audit.Query{Skip: req.Skip, Limit: req.Limit}
	var err error
	if q.Begin, err = parseDate("begin_date", req.BeginDate); err != nil {
		return audit.Query{}, err
	}
	if q.End, err = parseDate("end_date", req.EndDate); err != nil {
		return audit.Query{}, err
	}
	return q, nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, shared.ValidationError(shared.MsgFieldType, field, "date")
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	p, _ := shared.PrincipalFromContext(r.Context())
	if h.audit != nil {
		h.audit.Error(r.Context(), p.Email, auditLocation, "Get", err)
	}
	if httpx.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("query audit logs", slog.Any("error", err))
	}
	httpx.RespondError(w, h.translator, p.Language, err)
}
