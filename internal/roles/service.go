package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Service orchestrates role management.
type Service struct {
	repo    Repository
	catalog *rbac.Catalog
}

// NewService constructs the service.
func NewService(repo Repository, catalog *rbac.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []Role{}
	}
	return roles, nil
}

// Add creates an active role with a non-empty, catalog-valid permission set.
func (s *Service) Add(ctx context.Context, actor shared.Principal, in AddInput) (Role, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Role{}, shared.RequiredField("role_name")
	}
	keys, err := s.permissions(in.Permissions)
	if err != nil {
		return Role{}, err
	}
	if len(keys) == 0 {
		return Role{}, shared.ValidationError(shared.MsgEmptyPermissions)
	}

	var created Role
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		created, err = tx.Create(ctx, name, actor.ID)
		if err != nil {
			return err
		}
		return tx.AddPermissions(ctx, created.ID, keys, actor.ID)
	})
	if err != nil {
		return Role{}, err
	}
	created.Permissions = keys
	return created, nil
}

// Update applies optional field changes and reconciles the permission set.
// A non-empty permissions list replaces the grants; an empty one leaves them as is.
func (s *Service) Update(ctx context.Context, actor shared.Principal, in UpdateInput) error {
	if in.ID <= 0 {
		return shared.RequiredField("_id")
	}
	desired, err := s.permissions(in.Permissions)
	if err != nil {
		return err
	}
	var patch Patch
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			patch.Name = &name
		}
	}
	patch.IsActive = in.IsActive

	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.Update(ctx, in.ID, patch); err != nil {
			return err
		}
		if len(desired) == 0 {
			return nil
		}
		current, err := tx.Permissions(ctx, in.ID)
		if err != nil {
			return err
		}
		return rbac.Apply[string](ctx, grants{tx: tx, roleID: in.ID, actorID: actor.ID}, rbac.Reconcile(current, desired))
	})
}

// Delete removes the role, its grants and its memberships.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.RequiredField("_id")
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		return tx.Delete(ctx, id)
	})
}

func (s *Service) permissions(keys []string) ([]string, error) {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if err := s.catalog.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// grants adapts a role's permission set to the diff engine.
type grants struct {
	tx      TxRepository
	roleID  int64
	actorID int64
}

func (g grants) Remove(ctx context.Context, keys []string) error {
	if err := g.tx.RemovePermissions(ctx, g.roleID, keys); err != nil {
		return fmt.Errorf("roles: remove permissions: %w", err)
	}
	return nil
}

func (g grants) Add(ctx context.Context, keys []string) error {
	if err := g.tx.AddPermissions(ctx, g.roleID, keys, g.actorID); err != nil {
		return fmt.Errorf("roles: add permissions: %w", err)
	}
	return nil
}
