package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/odyssey-admin/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// LoginObserver counts login outcomes.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	translator httpx.Translator
	rateLimit  int
	observer   LoginObserver
}

// NewHandler constructs a Handler instance. rateLimit caps login attempts per
// client IP per minute; zero disables the cap.
func NewHandler(logger *slog.Logger, service *Service, translator httpx.Translator, rateLimit int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, translator: translator, rateLimit: rateLimit}
}

// WithObserver attaches a login outcome observer.
func (h *Handler) WithObserver(o LoginObserver) *Handler {
	h.observer = o
	return h
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.rateLimit > 0 {
			r.Use(httprate.Limit(h.rateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					httpx.Failure(w, http.StatusTooManyRequests, httpx.ErrorBody{
						Msg:         h.translator.Translate("", shared.MsgTooManyRequests),
						Description: h.translator.Translate("", shared.MsgTooManyRequests),
					})
				}),
			))
		}
		r.Post("/", h.handleLogin)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.observe("failure")
		httpx.RespondError(w, h.translator, "", errMalformedCredentials)
		return
	}
	sess, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if httpx.Status(err) >= http.StatusInternalServerError {
			h.observe("error")
			h.logger.Error("login", slog.Any("error", err))
		} else {
			h.observe("failure")
		}
		httpx.RespondError(w, h.translator, "", err)
		return
	}
	h.observe("success")
	httpx.Success(w, http.StatusOK, sess)
}

func (h *Handler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveLogin(outcome)
	}
}
