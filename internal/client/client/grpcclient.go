package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	accessToken string
	timeout     time.Duration
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Delete(common.AuthorizationHeaderName)
	if token != "" {
		md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, s.accessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a connection to endpointURL. No I/O happens until
// the first call. Extra dial options are appended after the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// SetToken replaces the bearer token sent with subsequent calls.
func (s *GRPCClient) SetToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	if err := s.conn.Invoke(ctx, api.FullMethod(method), req, resp); err != nil {
		return mapError(err)
	}
	return nil
}

// Health reports whether the jogging service answers SERVING.
func (s *GRPCClient) Health(ctx context.Context) error {
	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	resp, err := healthpb.NewHealthClient(s.conn).Check(ctx,
		&healthpb.HealthCheckRequest{Service: api.ServiceName},
		grpc.CallContentSubtype("proto"))
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

// Login exchanges credentials for a token and keeps it for later calls.
func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := s.invoke(ctx, api.MethodLogin, &api.LoginRequest{UserName: userName, Password: string(password)}, &resp); err != nil {
		return nil, err
	}
	s.accessToken = resp.Token
	return &resp, nil
}

func (s *GRPCClient) Logout(ctx context.Context) error {
	if err := s.invoke(ctx, api.MethodLogout, &api.Empty{}, &api.Empty{}); err != nil {
		return err
	}
	s.accessToken = ""
	return nil
}

func (s *GRPCClient) AddRecord(ctx context.Context, in api.RecordInput) (*api.Record, error) {
	var resp api.Record
	if err := s.invoke(ctx, api.MethodAddRecord, &in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) GetRecord(ctx context.Context, id int64) (*api.Record, error) {
	var resp api.Record
	if err := s.invoke(ctx, api.MethodGetRecord, &api.RecordID{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ListRecords(ctx context.Context, userID string) ([]api.Record, error) {
	var resp api.RecordList
	if err := s.invoke(ctx, api.MethodListRecords, &api.UserScope{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (s *GRPCClient) FilterRecords(ctx context.Context, req api.FilterRecordsRequest) ([]api.Record, error) {
	var resp api.RecordList
	if err := s.invoke(ctx, api.MethodFilterRecords, &req, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (s *GRPCClient) UpdateRecord(ctx context.Context, id int64, in api.RecordInput) (*api.Record, error) {
	var resp api.Record
	if err := s.invoke(ctx, api.MethodUpdateRecord, &api.UpdateRecordRequest{ID: id, RecordInput: in}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, id int64) error {
	return s.invoke(ctx, api.MethodDeleteRecord, &api.RecordID{ID: id}, &api.Empty{})
}

func (s *GRPCClient) WeeklyStats(ctx context.Context, userID string) ([]api.WeeklyStat, error) {
	var resp api.WeeklyStats
	if err := s.invoke(ctx, api.MethodWeeklyStats, &api.UserScope{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.Weeks, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]api.User, error) {
	var resp api.UserList
	if err := s.invoke(ctx, api.MethodListUsers, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (s *GRPCClient) ListUsersByRole(ctx context.Context, role string) ([]api.User, error) {
	var resp api.UserList
	if err := s.invoke(ctx, api.MethodListUsersByRole, &api.RoleRequest{Role: role}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (s *GRPCClient) GetUser(ctx context.Context, id string) (*api.User, error) {
	var resp api.User
	if err := s.invoke(ctx, api.MethodGetUser, &api.UserID{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateUser creates a RegularUser, or a UserManager when manager is set.
func (s *GRPCClient) CreateUser(ctx context.Context, req api.CreateUserRequest, manager bool) (*api.User, error) {
	method := api.MethodCreateRegularUser
	if manager {
		method = api.MethodCreateUserManager
	}
	var resp api.User
	if err := s.invoke(ctx, method, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) UpdateUser(ctx context.Context, req api.UpdateUserRequest) (*api.User, error) {
	var resp api.User
	if err := s.invoke(ctx, api.MethodUpdateUser, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context, id string) error {
	return s.invoke(ctx, api.MethodDeleteUser, &api.UserID{ID: id}, &api.Empty{})
}

func (s *GRPCClient) AddUserRole(ctx context.Context, id, role string) (*api.User, error) {
	return s.changeRole(ctx, api.MethodAddUserRole, id, role)
}

func (s *GRPCClient) RemoveUserRole(ctx context.Context, id, role string) (*api.User, error) {
	return s.changeRole(ctx, api.MethodRemoveUserRole, id, role)
}

func (s *GRPCClient) changeRole(ctx context.Context, method, id, role string) (*api.User, error) {
	var resp api.User
	if err := s.invoke(ctx, method, &api.UserRoleRequest{UserID: id, Role: role}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
