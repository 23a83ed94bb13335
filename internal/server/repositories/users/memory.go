package users

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is the in-process identity store used when no database
// is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.User
	byName   map[string]string
	roles    map[models.Role]struct{}
	onDelete []func(userID string)
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
		roles:  make(map[models.Role]struct{}),
		now:    time.Now,
	}
}

// OnDelete registers fn to run after a user is deleted, under no lock.
func (r *MemoryRepository) OnDelete(fn func(userID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onDelete = append(r.onDelete, fn)
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[user.UserName]; taken {
		return nil, common.ErrAlreadyExists
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = r.now().UTC()
	u.PasswordHash = slices.Clone(user.PasswordHash)
	u.Roles = nil

	r.byID[u.ID] = &u
	r.byName[u.UserName] = u.ID
	return clone(&u), nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.filter(ctx, func(*models.User) bool { return true })
}

func (r *MemoryRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return r.filter(ctx, func(u *models.User) bool { return u.HasRole(role) })
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	u.Email = user.Email
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	u, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	delete(r.byName, u.UserName)
	hooks := slices.Clone(r.onDelete)
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

func (r *MemoryRepository) Roles(ctx context.Context, userID string) ([]models.Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return []models.Role{}, nil
	}
	return sortedRoles(u.Roles), nil
}

func (r *MemoryRepository) AddRole(ctx context.Context, userID string, role models.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if _, ok := r.roles[role]; !ok {
		return common.ErrorNotFound
	}
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

func (r *MemoryRepository) RemoveRole(ctx context.Context, userID string, role models.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || !u.HasRole(role) {
		return common.ErrorNotFound
	}
	u.Roles = slices.DeleteFunc(u.Roles, func(x models.Role) bool { return x == role })
	return nil
}

func (r *MemoryRepository) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.roles[role]
	return ok, nil
}

func (r *MemoryRepository) CreateRole(ctx context.Context, role models.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[role] = struct{}{}
	return nil
}

func (r *MemoryRepository) filter(ctx context.Context, keep func(*models.User) bool) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0)
	for _, u := range r.byID {
		if keep(u) {
			result = append(result, clone(u))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserName < result[j].UserName })
	return result, nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.Roles = sortedRoles(u.Roles)
	return &c
}

func sortedRoles(roles []models.Role) []models.Role {
	out := slices.Clone(roles)
	if out == nil {
		out = []models.Role{}
	}
	slices.Sort(out)
	return out
}
