package client

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
)

type Client interface {
	Close() error
	SetToken(token string)
	Health(ctx context.Context) error

	Login(ctx context.Context, userName string, password []byte) (*api.LoginResponse, error)
	Logout(ctx context.Context) error

	AddRecord(ctx context.Context, in api.RecordInput) (*api.Record, error)
	GetRecord(ctx context.Context, id int64) (*api.Record, error)
	ListRecords(ctx context.Context, userID string) ([]api.Record, error)
	FilterRecords(ctx context.Context, req api.FilterRecordsRequest) ([]api.Record, error)
	UpdateRecord(ctx context.Context, id int64, in api.RecordInput) (*api.Record, error)
	DeleteRecord(ctx context.Context, id int64) error
	WeeklyStats(ctx context.Context, userID string) ([]api.WeeklyStat, error)

	ListUsers(ctx context.Context) ([]api.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]api.User, error)
	GetUser(ctx context.Context, id string) (*api.User, error)
	CreateUser(ctx context.Context, req api.CreateUserRequest, manager bool) (*api.User, error)
	UpdateUser(ctx context.Context, req api.UpdateUserRequest) (*api.User, error)
	DeleteUser(ctx context.Context, id string) error
	AddUserRole(ctx context.Context, id, role string) (*api.User, error)
	RemoveUserRole(ctx context.Context, id, role string) (*api.User, error)
}
