package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// IdentityDirectory owns user identities, password credentials and role
// memberships. It returns plain errors; the services above it turn them
// into results.
type IdentityDirectory struct {
	repomanager repomanager.RepositoryManager
	cost        int
	dummyHash   []byte
}

// NewIdentityDirectory hashes passwords with the given bcrypt cost. Costs
// outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewIdentityDirectory(m repomanager.RepositoryManager, cost int) (*IdentityDirectory, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// compared against when the user does not exist, so a miss costs the
	// same as a wrong password
	filler := make([]byte, 16)
	if _, err := rand.Read(filler); err != nil {
		return nil, err
	}
	dummy, err := bcrypt.GenerateFromPassword(filler, cost)
	if err != nil {
		return nil, err
	}

	return &IdentityDirectory{repomanager: m, cost: cost, dummyHash: dummy}, nil
}

// FindByUserName looks the name up the way it was stored: without
// surrounding whitespace.
func (d *IdentityDirectory) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	return d.repomanager.Users().GetByUserName(ctx, normalizeUserName(userName))
}

func (d *IdentityDirectory) FindByID(ctx context.Context, id string) (*models.User, error) {
	return d.repomanager.Users().GetByID(ctx, id)
}

func (d *IdentityDirectory) ListAll(ctx context.Context) ([]*models.User, error) {
	return d.repomanager.Users().List(ctx)
}

func (d *IdentityDirectory) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return d.repomanager.Users().ListByRole(ctx, role)
}

func (d *IdentityDirectory) Roles(ctx context.Context, userID string) ([]models.Role, error) {
	return d.repomanager.Users().Roles(ctx, userID)
}

// VerifyPassword reports whether password matches user's stored hash. A nil
// user is checked against a dummy hash and always fails.
func (d *IdentityDirectory) VerifyPassword(user *models.User, password string) bool {
	hash := d.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	return err == nil && user != nil
}

// CreateWithPassword stores user with a hash of password and grants roles,
// creating missing role rows. All of it happens in one transaction.
func (d *IdentityDirectory) CreateWithPassword(ctx context.Context, user *models.User, password string, roles ...models.Role) (*models.User, error) {
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password is longer than %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	in := *user
	in.PasswordHash = hash

	var created *models.User
	err = d.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		u, err := tx.Users().Create(ctx, &in)
		if err != nil {
			return err
		}
		for _, role := range roles {
			if err := addRole(ctx, tx, u.ID, role); err != nil {
				return err
			}
		}
		created, err = tx.Users().GetByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProfile writes email and names. Username and roles stay as they are.
func (d *IdentityDirectory) UpdateProfile(ctx context.Context, user *models.User) error {
	return d.repomanager.Users().UpdateProfile(ctx, user)
}

func (d *IdentityDirectory) Delete(ctx context.Context, id string) error {
	return d.repomanager.Users().Delete(ctx, id)
}

// AddRole grants role to the user, creating the role row when missing.
func (d *IdentityDirectory) AddRole(ctx context.Context, userID string, role models.Role) error {
	return d.repomanager.WithTx(ctx, func(ctx context.Context, tx repomanager.RepositoryManager) error {
		return addRole(ctx, tx, userID, role)
	})
}

func (d *IdentityDirectory) RemoveRole(ctx context.Context, userID string, role models.Role) error {
	return d.repomanager.Users().RemoveRole(ctx, userID, role)
}

func (d *IdentityDirectory) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	return d.repomanager.Users().RoleExists(ctx, role)
}

func (d *IdentityDirectory) CreateRole(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}
	return d.repomanager.Users().CreateRole(ctx, role)
}

func normalizeUserName(userName string) string {
	return strings.TrimSpace(userName)
}

func addRole(ctx context.Context, tx repomanager.RepositoryManager, userID string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}
	exists, err := tx.Users().RoleExists(ctx, role)
	if err != nil {
		return err
	}
	if !exists {
		if err := tx.Users().CreateRole(ctx, role); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
	}
	return tx.Users().AddRole(ctx, userID, role)
}
