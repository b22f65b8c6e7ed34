package users

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

type memRole struct {
	id          int64
	name        string
	createdBy   int64
	permissions []string
}

// memoryRepo is a non-transactional in-memory Repository.
type memoryRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]User
	roles    map[int64]*memRole
	members  map[int64]map[int64]struct{}
	failAdd  error
	mutation int
}

func newMemoryRepo(roleIDs ...int64) *memoryRepo {
	m := &memoryRepo{
		nextID:  100,
		users:   map[int64]User{},
		roles:   map[int64]*memRole{},
		members: map[int64]map[int64]struct{}{},
	}
	for _, id := range roleIDs {
		m.roles[id] = &memRole{id: id, name: "role"}
	}
	return m
}

func (m *memoryRepo) List(context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) ExistingRoleIDs(_ context.Context, ids []int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int64
	for _, id := range ids {
		if _, ok := m.roles[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) CountForRegistration(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memoryRepo) Create(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return User{}, shared.ConflictError()
		}
	}
	m.mutation++
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, p Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return shared.NotFoundError("user", id)
	}
	m.mutation++
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	m.users[id] = u
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members, id)
	if _, ok := m.users[id]; !ok {
		return shared.NotFoundError("user", id)
	}
	m.mutation++
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) RoleIDs(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roleIDsLocked(userID), nil
}

func (m *memoryRepo) roleIDsLocked(userID int64) []int64 {
	var out []int64
	for id := range m.members[userID] {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *memoryRepo) AddRoles(_ context.Context, userID int64, roleIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd != nil {
		return m.failAdd
	}
	m.mutation++
	if m.members[userID] == nil {
		m.members[userID] = map[int64]struct{}{}
	}
	for _, id := range roleIDs {
		if _, ok := m.roles[id]; !ok {
			return errors.New("foreign key violation")
		}
		m.members[userID][id] = struct{}{}
	}
	return nil
}

func (m *memoryRepo) RemoveRoles(_ context.Context, userID int64, roleIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutation++
	for _, id := range roleIDs {
		delete(m.members[userID], id)
	}
	return nil
}

// EnsureRole mirrors the unique role_name constraint: an existing role
// with the same name is reused and its grants replaced.
func (m *memoryRepo) EnsureRole(_ context.Context, name string, createdBy int64, permissions []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutation++
	for _, r := range m.roles {
		if r.name == name {
			r.permissions = append([]string(nil), permissions...)
			return r.id, nil
		}
	}
	m.nextID++
	m.roles[m.nextID] = &memRole{id: m.nextID, name: name, createdBy: createdBy, permissions: permissions}
	return m.nextID, nil
}

func (m *memoryRepo) membersOf(userID int64) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roleIDsLocked(userID)
}
