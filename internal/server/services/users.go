package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

const userEntity = "user"

// NewUser is the input of the account-creating operations.
type NewUser struct {
	UserName  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Profile carries the fields UpdateUser may change.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// UserService implements user management on top of the IdentityDirectory.
// Role checks happen before these methods are reached.
type UserService struct {
	directory *IdentityDirectory
	logger    logging.Logger
}

func NewUserService(dir *IdentityDirectory, logger logging.Logger) *UserService {
	return &UserService{directory: dir, logger: logger.With("module", "users")}
}

func (s *UserService) ListUsers(ctx context.Context) result.Result[[]*models.User] {
	users, err := s.directory.ListAll(ctx)
	if err != nil {
		return fromError[[]*models.User](ctx, s.logger, "list users", userEntity, err)
	}
	return result.Success(users)
}

func (s *UserService) GetUser(ctx context.Context, id string) result.Result[*models.User] {
	user, err := s.directory.FindByID(ctx, id)
	if err != nil {
		return fromError[*models.User](ctx, s.logger, "get user", userEntity, err)
	}
	return result.Success(user)
}

func (s *UserService) CreateRegularUser(ctx context.Context, in NewUser) result.Result[*models.User] {
	return s.create(ctx, in, models.RoleRegularUser)
}

func (s *UserService) CreateUserManager(ctx context.Context, in NewUser) result.Result[*models.User] {
	return s.create(ctx, in, models.RoleUserManager)
}

// UpdateUser changes email and names. Username and roles are never touched
// through this path.
func (s *UserService) UpdateUser(ctx context.Context, in Profile) result.Result[*models.User] {
	if in.ID == "" {
		return result.Failure[*models.User](result.KindValidation, "id is required")
	}
	p := &models.User{ID: in.ID, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}
	if err := s.directory.UpdateProfile(ctx, p); err != nil {
		return fromError[*models.User](ctx, s.logger, "update user", userEntity, err)
	}
	return s.GetUser(ctx, in.ID)
}

// DeleteUser removes the user together with role memberships and records.
func (s *UserService) DeleteUser(ctx context.Context, id string) result.Result[result.Empty] {
	if err := s.directory.Delete(ctx, id); err != nil {
		return fromError[result.Empty](ctx, s.logger, "delete user", userEntity, err)
	}
	s.logger.Info(ctx, "user deleted", "user_id", id)
	return result.Done()
}

// ListUsersByRole returns the holders of roleName. Unknown roles have no
// holders.
func (s *UserService) ListUsersByRole(ctx context.Context, roleName string) result.Result[[]*models.User] {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return result.Success([]*models.User{})
	}
	users, err := s.directory.ListByRole(ctx, role)
	if err != nil {
		return fromError[[]*models.User](ctx, s.logger, "list users by role", userEntity, err)
	}
	return result.Success(users)
}

// AddUserToRole grants the named role. Unlike ListUsersByRole, an unknown
// role name is a validation failure here.
func (s *UserService) AddUserToRole(ctx context.Context, userID, roleName string) result.Result[result.Empty] {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return result.Failuref[result.Empty](result.KindValidation, "unknown role %q", roleName)
	}
	if err := s.directory.AddRole(ctx, userID, role); err != nil {
		return fromError[result.Empty](ctx, s.logger, "add role", userEntity, err)
	}
	s.logger.Info(ctx, "role granted", "user_id", userID, "role", role)
	return result.Done()
}

func (s *UserService) RemoveUserFromRole(ctx context.Context, userID, roleName string) result.Result[result.Empty] {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return result.Failuref[result.Empty](result.KindValidation, "unknown role %q", roleName)
	}
	if err := s.directory.RemoveRole(ctx, userID, role); err != nil {
		return fromError[result.Empty](ctx, s.logger, "remove role", "role membership", err)
	}
	s.logger.Info(ctx, "role revoked", "user_id", userID, "role", role)
	return result.Done()
}

// EnsureRoles creates any recognised role the directory does not have yet.
// It is run once at startup, ahead of EnsureAdmin.
func (s *UserService) EnsureRoles(ctx context.Context) result.Result[result.Empty] {
	for _, role := range models.AllRoles {
		exists, err := s.directory.RoleExists(ctx, role)
		if err != nil {
			return fromError[result.Empty](ctx, s.logger, "ensure roles", "role", err)
		}
		if exists {
			continue
		}
		if err := s.directory.CreateRole(ctx, role); err != nil && !errors.Is(err, common.ErrAlreadyExists) {
			return fromError[result.Empty](ctx, s.logger, "ensure roles", "role", err)
		}
		s.logger.Info(ctx, "role created", "role", role)
	}
	return result.Done()
}

// EnsureAdmin creates an Admin account named userName unless one with that
// name already exists. An existing account without the Admin role is a
// conflict. It is run once at startup.
func (s *UserService) EnsureAdmin(ctx context.Context, userName, password string) result.Result[*models.User] {
	existing, err := s.directory.FindByUserName(ctx, userName)
	switch {
	case err == nil:
		if !existing.HasRole(models.RoleAdmin) {
			s.logger.Warn(ctx, "bootstrap admin name taken by a non-admin account", "user_id", existing.ID)
			return result.Failuref[*models.User](result.KindConflict, "user %q exists without the %s role", existing.UserName, models.RoleAdmin)
		}
		return result.Success(existing)
	case !errors.Is(err, common.ErrorNotFound):
		return fromError[*models.User](ctx, s.logger, "ensure admin", userEntity, err)
	}
	return s.create(ctx, NewUser{UserName: userName, Password: password}, models.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, in NewUser, role models.Role) result.Result[*models.User] {
	if err := validateNewUser(in, role); err != nil {
		return result.Failure[*models.User](result.KindValidation, err.Error())
	}

	u := &models.User{
		UserName:  normalizeUserName(in.UserName),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	created, err := s.directory.CreateWithPassword(ctx, u, in.Password, role)
	if err != nil {
		return fromError[*models.User](ctx, s.logger, "create user", userEntity, err)
	}
	s.logger.Info(ctx, "user created", "user_id", created.ID, "role", role)
	return result.Success(created)
}

// validateNewUser requires every field for managed accounts. The bootstrap
// admin only needs a name and a password.
func validateNewUser(in NewUser, role models.Role) error {
	type field struct{ name, value string }

	required := []field{
		{"username", normalizeUserName(in.UserName)},
		{"password", in.Password},
	}
	if role != models.RoleAdmin {
		required = append(required,
			field{"email", in.Email},
			field{"first name", in.FirstName},
			field{"last name", in.LastName},
		)
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", common.ErrValidation, f.name)
		}
	}
	if len(in.Password) > maxPasswordBytes {
		return fmt.Errorf("%w: password is longer than %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	return nil
}
