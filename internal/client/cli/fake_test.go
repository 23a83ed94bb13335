package cli

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
)

// fakeClient records the last request of each kind and returns preset values.
type fakeClient struct {
	token    string
	calls    []string
	err      error
	password string

	lastInput  api.RecordInput
	lastFilter api.FilterRecordsRequest
	lastCreate api.CreateUserRequest
	lastUpdate api.UpdateUserRequest
	manager    bool
	lastID     int64
	lastUserID string
	lastRole   string

	records []api.Record
	weeks   []api.WeeklyStat
	users   []api.User
}

func (f *fakeClient) call(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeClient) Close() error          { return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Health(ctx context.Context) error { return f.call("health") }

func (f *fakeClient) Login(ctx context.Context, userName string, password []byte) (*api.LoginResponse, error) {
	f.password = string(password)
	if err := f.call("login:" + userName); err != nil {
		return nil, err
	}
	return &api.LoginResponse{Token: "tok-" + userName, ExpiresIn: 3600}, nil
}

func (f *fakeClient) Logout(ctx context.Context) error { return f.call("logout") }

func (f *fakeClient) AddRecord(ctx context.Context, in api.RecordInput) (*api.Record, error) {
	f.lastInput = in
	if err := f.call("add"); err != nil {
		return nil, err
	}
	return &api.Record{ID: 1, Date: in.Date, DistanceMeters: in.DistanceMeters, Duration: in.Duration}, nil
}

func (f *fakeClient) GetRecord(ctx context.Context, id int64) (*api.Record, error) {
	f.lastID = id
	if err := f.call("get"); err != nil {
		return nil, err
	}
	return &api.Record{ID: id, Date: "2024-03-04"}, nil
}

func (f *fakeClient) ListRecords(ctx context.Context, userID string) ([]api.Record, error) {
	f.lastUserID = userID
	return f.records, f.call("list")
}

func (f *fakeClient) FilterRecords(ctx context.Context, req api.FilterRecordsRequest) ([]api.Record, error) {
	f.lastFilter = req
	return f.records, f.call("filter")
}

func (f *fakeClient) UpdateRecord(ctx context.Context, id int64, in api.RecordInput) (*api.Record, error) {
	f.lastID, f.lastInput = id, in
	if err := f.call("update"); err != nil {
		return nil, err
	}
	return &api.Record{ID: id, Date: in.Date}, nil
}

func (f *fakeClient) DeleteRecord(ctx context.Context, id int64) error {
	f.lastID = id
	return f.call("delete")
}

func (f *fakeClient) WeeklyStats(ctx context.Context, userID string) ([]api.WeeklyStat, error) {
	f.lastUserID = userID
	return f.weeks, f.call("weekly")
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]api.User, error) {
	return f.users, f.call("users")
}

func (f *fakeClient) ListUsersByRole(ctx context.Context, role string) ([]api.User, error) {
	return f.users, f.call("users:" + role)
}

func (f *fakeClient) GetUser(ctx context.Context, id string) (*api.User, error) {
	f.lastUserID = id
	if err := f.call("getuser"); err != nil {
		return nil, err
	}
	return &api.User{ID: id}, nil
}

func (f *fakeClient) CreateUser(ctx context.Context, req api.CreateUserRequest, manager bool) (*api.User, error) {
	f.lastCreate, f.manager = req, manager
	if err := f.call("useradd"); err != nil {
		return nil, err
	}
	return &api.User{ID: "u1", UserName: req.UserName}, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, req api.UpdateUserRequest) (*api.User, error) {
	f.lastUpdate = req
	if err := f.call("userupdate"); err != nil {
		return nil, err
	}
	return &api.User{ID: req.ID, Email: req.Email}, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id string) error {
	f.lastUserID = id
	return f.call("userdel")
}

func (f *fakeClient) AddUserRole(ctx context.Context, id, role string) (*api.User, error) {
	f.lastUserID, f.lastRole = id, role
	if err := f.call("roleadd"); err != nil {
		return nil, err
	}
	return &api.User{ID: id, Roles: []string{"RegularUser", role}}, nil
}

func (f *fakeClient) RemoveUserRole(ctx context.Context, id, role string) (*api.User, error) {
	f.lastUserID, f.lastRole = id, role
	if err := f.call("roledel"); err != nil {
		return nil, err
	}
	return &api.User{ID: id, Roles: []string{"RegularUser"}}, nil
}
