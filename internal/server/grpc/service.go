package grpc

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"google.golang.org/grpc"
)

// JoggingServiceServer is the server side of api.ServiceName.
type JoggingServiceServer interface {
	Login(context.Context, *api.LoginRequest) (*api.LoginResponse, error)
	Logout(context.Context, *api.Empty) (*api.Empty, error)
	AddRecord(context.Context, *api.RecordInput) (*api.Record, error)
	GetRecord(context.Context, *api.RecordID) (*api.Record, error)
	ListRecords(context.Context, *api.UserScope) (*api.RecordList, error)
	FilterRecords(context.Context, *api.FilterRecordsRequest) (*api.RecordList, error)
	UpdateRecord(context.Context, *api.UpdateRecordRequest) (*api.Record, error)
	DeleteRecord(context.Context, *api.RecordID) (*api.Empty, error)
	WeeklyStats(context.Context, *api.UserScope) (*api.WeeklyStats, error)
	ListUsers(context.Context, *api.Empty) (*api.UserList, error)
	GetUser(context.Context, *api.UserID) (*api.User, error)
	CreateRegularUser(context.Context, *api.CreateUserRequest) (*api.User, error)
	CreateUserManager(context.Context, *api.CreateUserRequest) (*api.User, error)
	UpdateUser(context.Context, *api.UpdateUserRequest) (*api.User, error)
	DeleteUser(context.Context, *api.UserID) (*api.Empty, error)
	ListUsersByRole(context.Context, *api.RoleRequest) (*api.UserList, error)
	AddUserRole(context.Context, *api.UserRoleRequest) (*api.User, error)
	RemoveUserRole(context.Context, *api.UserRoleRequest) (*api.User, error)
}

// unary builds the MethodDesc for one method, decoding the request with the
// connection's codec and running it through the server interceptors.
func unary[Req, Resp any](method string, call func(JoggingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(JoggingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*JoggingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodLogin, JoggingServiceServer.Login),
		unary(api.MethodLogout, JoggingServiceServer.Logout),
		unary(api.MethodAddRecord, JoggingServiceServer.AddRecord),
		unary(api.MethodGetRecord, JoggingServiceServer.GetRecord),
		unary(api.MethodListRecords, JoggingServiceServer.ListRecords),
		unary(api.MethodFilterRecords, JoggingServiceServer.FilterRecords),
		unary(api.MethodUpdateRecord, JoggingServiceServer.UpdateRecord),
		unary(api.MethodDeleteRecord, JoggingServiceServer.DeleteRecord),
		unary(api.MethodWeeklyStats, JoggingServiceServer.WeeklyStats),
		unary(api.MethodListUsers, JoggingServiceServer.ListUsers),
		unary(api.MethodGetUser, JoggingServiceServer.GetUser),
		unary(api.MethodCreateRegularUser, JoggingServiceServer.CreateRegularUser),
		unary(api.MethodCreateUserManager, JoggingServiceServer.CreateUserManager),
		unary(api.MethodUpdateUser, JoggingServiceServer.UpdateUser),
		unary(api.MethodDeleteUser, JoggingServiceServer.DeleteUser),
		unary(api.MethodListUsersByRole, JoggingServiceServer.ListUsersByRole),
		unary(api.MethodAddUserRole, JoggingServiceServer.AddUserRole),
		unary(api.MethodRemoveUserRole, JoggingServiceServer.RemoveUserRole),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jogging/v1/jogging.json",
}

// RegisterJoggingServiceServer registers srv on s.
func RegisterJoggingServiceServer(s grpc.ServiceRegistrar, srv JoggingServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}
