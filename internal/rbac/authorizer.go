package rbac

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/odyssey-admin/internal/session"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Authorizer resolves bearer tokens into principals and answers permission checks.
type Authorizer struct {
	codec   *session.Codec
	store   Store
	catalog *Catalog
}

// NewAuthorizer wires the authorizer.
func NewAuthorizer(codec *session.Codec, store Store, catalog *Catalog) *Authorizer {
	return &Authorizer{codec: codec, store: store, catalog: catalog}
}

// AuthenticateRequest decodes the token and loads its account. Missing,
// invalid or expired tokens, unknown accounts and inactive accounts are all
// unauthorized.
func (a *Authorizer) AuthenticateRequest(ctx context.Context, token string) (shared.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return shared.Principal{}, shared.UnauthorizedError(nil, shared.MsgUnauthorized)
	}
	payload, err := a.codec.Decode(token)
	if err != nil {
		return shared.Principal{}, &shared.Error{Kind: err, Msg: shared.MsgUnauthorized, Description: shared.MsgInvalidToken}
	}
	account, err := a.store.AccountByID(ctx, payload.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.Principal{}, shared.UnauthorizedError(nil, shared.MsgUnauthorized)
		}
		return shared.Principal{}, err
	}
	if !account.IsActive {
		return shared.Principal{}, shared.UnauthorizedError(nil, shared.MsgUnauthorized)
	}
	return shared.Principal{ID: account.ID, Email: account.Email, Language: account.Language}, nil
}

// RequirePermission succeeds when any active role of the principal grants key.
func (a *Authorizer) RequirePermission(ctx context.Context, p shared.Principal, key string) error {
	if p.ID <= 0 {
		return shared.UnauthorizedError(nil, shared.MsgUnauthorized)
	}
	granted, err := a.EffectivePermissions(ctx, p.ID)
	if err != nil {
		return err
	}
	for _, g := range granted {
		if g == key {
			return nil
		}
	}
	return shared.ForbiddenError(key)
}

// EffectivePermissions returns the deduplicated union of catalog keys granted
// by the user's active roles.
func (a *Authorizer) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	roleIDs, err := a.store.RoleIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}

	var (
		roles  []Role
		grants []Grant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = a.store.RolesByIDs(gctx, roleIDs)
		return err
	})
	g.Go(func() error {
		var err error
		grants, err = a.store.PermissionsForRoles(gctx, roleIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make(map[int64]struct{}, len(roles))
	for _, r := range roles {
		if r.IsActive {
			active[r.ID] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(grants))
	perms := make([]string, 0, len(grants))
	for _, gr := range grants {
		if _, ok := active[gr.RoleID]; !ok {
			continue
		}
		if a.catalog != nil && !a.catalog.IsValidKey(gr.Permission) {
			continue
		}
		if _, dup := seen[gr.Permission]; dup {
			continue
		}
		seen[gr.Permission] = struct{}{}
		perms = append(perms, gr.Permission)
	}
	return perms, nil
}
