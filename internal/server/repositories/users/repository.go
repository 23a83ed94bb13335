// Package users stores user identities and their role memberships.
package users

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

// Repository is the identity store. Lookups return users with their roles
// populated. Missing users are reported as common.ErrorNotFound and a taken
// username as common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)

	// UpdateProfile writes email, first and last name only.
	UpdateProfile(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	Roles(ctx context.Context, userID string) ([]models.Role, error)
	AddRole(ctx context.Context, userID string, role models.Role) error
	RemoveRole(ctx context.Context, userID string, role models.Role) error
	RoleExists(ctx context.Context, role models.Role) (bool, error)
	CreateRole(ctx context.Context, role models.Role) error
}
