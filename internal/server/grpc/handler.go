package grpc

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	errUnauthenticated = status.Error(codes.Unauthenticated, "invalid credentials")
	errForbidden       = status.Error(codes.PermissionDenied, "not authorized")
	errRecordNotFound  = status.Error(codes.NotFound, "record not found")
)

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	token, ok := s.tokens.Login(ctx, req.UserName, req.Password)
	if !ok {
		return nil, errUnauthenticated
	}
	return &api.LoginResponse{Token: token, ExpiresIn: int64(s.tokens.Validity().Seconds())}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	if _, err := unwrap(s.tokens.Logout(ctx, headerSink{})); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

// headerSink hands cookies back as set-cookie response metadata.
type headerSink struct{}

func (headerSink) SetCookie(ctx context.Context, c *http.Cookie) error {
	return grpc.SetHeader(ctx, metadata.Pairs("set-cookie", c.String()))
}

func (s *GRPCServer) AddRecord(ctx context.Context, req *api.RecordInput) (*api.Record, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := recordFromAPI(req)
	if err != nil {
		return nil, err
	}
	rec.UserID = p.UserID

	created, err := unwrap(s.records.Create(ctx, rec))
	if err != nil {
		return nil, err
	}
	out := recordToAPI(created)
	return &out, nil
}

func (s *GRPCServer) GetRecord(ctx context.Context, req *api.RecordID) (*api.Record, error) {
	rec, err := s.ownedRecord(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	out := recordToAPI(rec)
	return &out, nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, req *api.UserScope) (*api.RecordList, error) {
	userID, err := scopedUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	recs, err := unwrap(s.records.GetAllForUser(ctx, userID))
	if err != nil {
		return nil, err
	}
	return recordsToAPI(recs), nil
}

func (s *GRPCServer) FilterRecords(ctx context.Context, req *api.FilterRecordsRequest) (*api.RecordList, error) {
	userID, err := scopedUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	from, err := optionalDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := optionalDate(req.To)
	if err != nil {
		return nil, err
	}
	recs, err := unwrap(s.records.GetByDateRange(ctx, userID, from, to))
	if err != nil {
		return nil, err
	}
	return recordsToAPI(recs), nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.Record, error) {
	if _, err := s.ownedRecord(ctx, req.ID); err != nil {
		return nil, err
	}
	rec, err := recordFromAPI(&req.RecordInput)
	if err != nil {
		return nil, err
	}
	rec.ID = req.ID

	updated, err := unwrap(s.records.Update(ctx, rec))
	if err != nil {
		return nil, err
	}
	out := recordToAPI(updated)
	return &out, nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.RecordID) (*api.Empty, error) {
	if _, err := s.ownedRecord(ctx, req.ID); err != nil {
		return nil, err
	}
	if _, err := unwrap(s.records.Delete(ctx, req.ID)); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) WeeklyStats(ctx context.Context, req *api.UserScope) (*api.WeeklyStats, error) {
	userID, err := scopedUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	stats, err := unwrap(s.records.WeeklyAggregate(ctx, userID))
	if err != nil {
		return nil, err
	}
	return statsToAPI(stats), nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.Empty) (*api.UserList, error) {
	users, err := unwrap(s.users.ListUsers(ctx))
	if err != nil {
		return nil, err
	}
	return usersToAPI(users), nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *api.UserID) (*api.User, error) {
	return userResponse(s.users.GetUser(ctx, req.ID))
}

func (s *GRPCServer) CreateRegularUser(ctx context.Context, req *api.CreateUserRequest) (*api.User, error) {
	return userResponse(s.users.CreateRegularUser(ctx, newUser(req)))
}

func (s *GRPCServer) CreateUserManager(ctx context.Context, req *api.CreateUserRequest) (*api.User, error) {
	return userResponse(s.users.CreateUserManager(ctx, newUser(req)))
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error) {
	return userResponse(s.users.UpdateUser(ctx, services.Profile{
		ID:        req.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}))
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *api.UserID) (*api.Empty, error) {
	if _, err := unwrap(s.users.DeleteUser(ctx, req.ID)); err != nil {
		return nil, err
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListUsersByRole(ctx context.Context, req *api.RoleRequest) (*api.UserList, error) {
	users, err := unwrap(s.users.ListUsersByRole(ctx, req.Role))
	if err != nil {
		return nil, err
	}
	return usersToAPI(users), nil
}

// AddUserRole grants a role and returns the user as it is afterwards.
func (s *GRPCServer) AddUserRole(ctx context.Context, req *api.UserRoleRequest) (*api.User, error) {
	if _, err := unwrap(s.users.AddUserToRole(ctx, req.UserID, req.Role)); err != nil {
		return nil, err
	}
	return userResponse(s.users.GetUser(ctx, req.UserID))
}

func (s *GRPCServer) RemoveUserRole(ctx context.Context, req *api.UserRoleRequest) (*api.User, error) {
	if _, err := unwrap(s.users.RemoveUserFromRole(ctx, req.UserID, req.Role)); err != nil {
		return nil, err
	}
	return userResponse(s.users.GetUser(ctx, req.UserID))
}

// ownedRecord loads a record the caller may touch. Records of other users
// look missing unless the caller is an Admin.
func (s *GRPCServer) ownedRecord(ctx context.Context, id int64) (*models.ExerciseRecord, error) {
	p, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := unwrap(s.records.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if rec.UserID != p.UserID && !models.AnyOf(p.Roles, []models.Role{models.RoleAdmin}) {
		return nil, errRecordNotFound
	}
	return rec, nil
}

func caller(ctx context.Context) (*auth.Principal, error) {
	p, ok := principalFrom(ctx)
	if !ok {
		return nil, errUnauthenticated
	}
	return p, nil
}

// scopedUser resolves whose records a read targets. Only Admins may read
// another user's records.
func scopedUser(ctx context.Context, requested string) (string, error) {
	p, err := caller(ctx)
	if err != nil {
		return "", err
	}
	if requested == "" || requested == p.UserID {
		return p.UserID, nil
	}
	if !models.AnyOf(p.Roles, []models.Role{models.RoleAdmin}) {
		return "", errForbidden
	}
	return requested, nil
}

func newUser(req *api.CreateUserRequest) services.NewUser {
	return services.NewUser{
		UserName:  req.UserName,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
}

func userResponse(r result.Result[*models.User]) (*api.User, error) {
	u, err := unwrap(r)
	if err != nil {
		return nil, err
	}
	out := userToAPI(u)
	return &out, nil
}
