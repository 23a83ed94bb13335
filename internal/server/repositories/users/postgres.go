package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/joggingtracker/internal/dbx"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectUsers returns one row per user with its role names folded into a
// comma separated list.
const selectUsers = `SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.created_at,
		COALESCE(string_agg(ur.role_name, ',' ORDER BY ur.role_name), '')
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	out := *user
	out.Roles = nil
	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Email, user.FirstName, user.LastName, user.PasswordHash).Scan(&out.ID, &out.CreatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return &out, nil
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	query := selectUsers + `WHERE u.username = $1
	GROUP BY u.id`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userName))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := selectUsers + `WHERE u.id = $1
	GROUP BY u.id`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := selectUsers + `GROUP BY u.id
	ORDER BY u.username`

	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	query := selectUsers + `WHERE u.id IN (SELECT user_id FROM user_roles WHERE role_name = $1)
	GROUP BY u.id
	ORDER BY u.username`

	return r.list(ctx, query, string(role))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET email = $2, first_name = $3, last_name = $4
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectOneRow(res)
}

// Delete removes the user. Role memberships and exercise records follow via
// ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Roles(ctx context.Context, userID string) ([]models.Role, error) {
	query := `SELECT role_name FROM user_roles WHERE user_id = $1 ORDER BY role_name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dbx.MapError(err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return models.ParseRoles(names), nil
}

// AddRole is idempotent. A missing user or role row yields common.ErrorNotFound.
func (r *PostgresRepository) AddRole(ctx context.Context, userID string, role models.Role) error {
	query :=
		`INSERT INTO user_roles (user_id, role_name)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query, userID, string(role))
	return dbx.MapError(err)
}

func (r *PostgresRepository) RemoveRole(ctx context.Context, userID string, role models.Role) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_name = $2`

	res, err := r.db.ExecContext(ctx, query, userID, string(role))
	if err != nil {
		return dbx.MapError(err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) RoleExists(ctx context.Context, role models.Role) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, string(role)).Scan(&exists); err != nil {
		return false, dbx.MapError(err)
	}
	return exists, nil
}

func (r *PostgresRepository) CreateRole(ctx context.Context, role models.Role) error {
	query := `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, string(role))
	return dbx.MapError(err)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	var (
		user  models.User
		roles string
	)
	err := s.Scan(&user.ID, &user.UserName, &user.Email, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.CreatedAt, &roles)
	if err != nil {
		return nil, err
	}
	user.Roles = models.ParseRoles(strings.Split(roles, ","))
	return &user, nil
}
