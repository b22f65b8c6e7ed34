package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-admin/internal/session"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

const auditLocation = "Users"

// Unknown emails, wrong passwords and inactive accounts share one error so
// callers cannot tell them apart.
var errInvalidCredentials = &shared.Error{
	Kind:        shared.ErrInvalidCredentials,
	Msg:         shared.MsgValidationTitle,
	Description: shared.MsgAuthError,
}

// Malformed credentials are answered with 401 like every other login failure.
var errMalformedCredentials = &shared.Error{
	Kind:        shared.ErrValidation,
	Code:        http.StatusUnauthorized,
	Msg:         shared.MsgValidationTitle,
	Description: shared.MsgAuthError,
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Service wraps authentication business rules.
type Service struct {
	repo     Repository
	hasher   *Hasher
	codec    *session.Codec
	ttl      time.Duration
	audit    shared.Auditor
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, hasher *Hasher, codec *session.Codec, ttl time.Duration, auditor shared.Auditor) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		ttl:      ttl,
		audit:    auditor,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Authenticate validates email/password credentials and issues a token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	sess, err := s.authenticate(ctx, email, password)
	if err != nil {
		s.audit.Error(ctx, email, auditLocation, "Auth", err)
		return Session{}, err
	}
	s.audit.Info(ctx, email, auditLocation, "Auth", map[string]any{"user_id": sess.User.ID})
	return sess, nil
}

func (s *Service) authenticate(ctx context.Context, email, password string) (Session, error) {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return Session{}, errMalformedCredentials
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Session{}, errInvalidCredentials
		}
		return Session{}, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) || !user.IsActive {
		return Session{}, errInvalidCredentials
	}
	token, err := s.codec.Encode(session.Payload{
		Subject:   user.ID,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	})
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token: token,
		User:  PublicUser{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName},
	}, nil
}
