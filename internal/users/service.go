package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/odyssey-erp/odyssey-admin/internal/auth"
	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// CacheInvalidator drops derived data after a mutation.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

// Service orchestrates user management.
type Service struct {
	repo    Repository
	hasher  *auth.Hasher
	catalog *rbac.Catalog
	cache   CacheInvalidator
	logger  *slog.Logger
}

// NewService constructs the service. cache may be nil.
func NewService(repo Repository, hasher *auth.Hasher, catalog *rbac.Catalog, cache CacheInvalidator) *Service {
	return &Service{repo: repo, hasher: hasher, catalog: catalog, cache: cache, logger: slog.Default()}
}

// WithLogger sets the logger used for cache invalidation failures.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Add creates an active user holding the given, existing roles.
func (s *Service) Add(ctx context.Context, in AddInput) (User, error) {
	if err := validateNewUser(in); err != nil {
		return User{}, err
	}
	if len(in.Roles) == 0 {
		return User{}, shared.RequiredField("roles")
	}
	roleIDs, err := s.existingRoles(ctx, in.Roles)
	if err != nil {
		return User{}, err
	}
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	var created User
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		created, err = tx.Create(ctx, newUser(in, digest))
		if err != nil {
			return err
		}
		return tx.AddRoles(ctx, created.ID, roleIDs)
	})
	if err != nil {
		return User{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Register bootstraps the first account together with a SUPER_ADMIN role
// granting the whole catalog. It is refused once any user exists.
func (s *Service) Register(ctx context.Context, in AddInput) (User, error) {
	if err := validateNewUser(in); err != nil {
		return User{}, err
	}
	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	var created User
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		n, err := tx.CountForRegistration(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return &shared.Error{Kind: shared.ErrForbidden, Msg: shared.MsgUnauthorized, Description: shared.MsgRegistrationClose}
		}
		created, err = tx.Create(ctx, newUser(in, digest))
		if err != nil {
			return err
		}
		// SUPER_ADMIN outlives its members, so a re-bootstrap reuses it.
		roleID, err := tx.EnsureRole(ctx, SuperAdminRole, created.ID, s.catalog.Keys())
		if err != nil {
			return err
		}
		return tx.AddRoles(ctx, created.ID, []int64{roleID})
	})
	if err != nil {
		return User{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update applies the optional field changes and reconciles memberships.
// A non-empty roles list replaces the membership set; an empty one leaves it as is.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if err := validateID(in.ID); err != nil {
		return err
	}
	patch, err := s.buildPatch(in)
	if err != nil {
		return err
	}
	var desired []int64
	if len(in.Roles) > 0 {
		if desired, err = s.existingRoles(ctx, in.Roles); err != nil {
			return err
		}
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.Update(ctx, in.ID, patch); err != nil {
			return err
		}
		if len(desired) == 0 {
			return nil
		}
		current, err := tx.RoleIDs(ctx, in.ID)
		if err != nil {
			return err
		}
		return rbac.Apply[int64](ctx, membership{tx: tx, userID: in.ID}, rbac.Reconcile(current, desired))
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes the user and its memberships.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) buildPatch(in UpdateInput) (Patch, error) {
	var p Patch
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := validateEmail(email); err != nil {
			return Patch{}, err
		}
		p.Email = &email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return Patch{}, err
		}
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return Patch{}, err
		}
		p.PasswordHash = &digest
	}
	if in.PhoneNumber != nil {
		if err := validatePhoneNumber(*in.PhoneNumber); err != nil {
			return Patch{}, err
		}
		p.PhoneNumber = in.PhoneNumber
	}
	p.FirstName = nonEmpty(in.FirstName)
	p.LastName = nonEmpty(in.LastName)
	p.Language = nonEmpty(in.Language)
	p.IsActive = in.IsActive
	return p, nil
}

func (s *Service) existingRoles(ctx context.Context, ids []int64) ([]int64, error) {
	wanted, err := normalizeRoleIDs(ids)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.ExistingRoleIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	if len(found) != len(wanted) {
		missing := rbac.Compute(found, wanted).ToAdd
		return nil, shared.ValidationError(shared.MsgUnknownRoles, missing)
	}
	return wanted, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("stats cache invalidation failed", slog.String("domain", "users"), slog.Any("error", err))
	}
}

func validateNewUser(in AddInput) error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	return validatePhoneNumber(in.PhoneNumber)
}

func newUser(in AddInput, digest string) User {
	return User{
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: digest,
		IsActive:     true,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  in.PhoneNumber,
		Language:     strings.TrimSpace(in.Language),
	}
}

func nonEmpty(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// membership adapts a user's role set to the diff engine.
type membership struct {
	tx     TxRepository
	userID int64
}

func (m membership) Remove(ctx context.Context, roleIDs []int64) error {
	if err := m.tx.RemoveRoles(ctx, m.userID, roleIDs); err != nil {
		return fmt.Errorf("users: remove roles: %w", err)
	}
	return nil
}

func (m membership) Add(ctx context.Context, roleIDs []int64) error {
	if err := m.tx.AddRoles(ctx, m.userID, roleIDs); err != nil {
		return fmt.Errorf("users: add roles: %w", err)
	}
	return nil
}
