package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

// methodOperations maps each gated method onto the operation whose role set
// it requires.
var methodOperations = map[string]auth.Operation{
	api.FullMethod(api.MethodLogout):            auth.OpLogout,
	api.FullMethod(api.MethodAddRecord):         auth.OpRecords,
	api.FullMethod(api.MethodGetRecord):         auth.OpRecords,
	api.FullMethod(api.MethodListRecords):       auth.OpRecords,
	api.FullMethod(api.MethodFilterRecords):     auth.OpRecords,
	api.FullMethod(api.MethodUpdateRecord):      auth.OpRecords,
	api.FullMethod(api.MethodDeleteRecord):      auth.OpRecords,
	api.FullMethod(api.MethodWeeklyStats):       auth.OpRecords,
	api.FullMethod(api.MethodListUsers):         auth.OpListUsers,
	api.FullMethod(api.MethodGetUser):           auth.OpGetUser,
	api.FullMethod(api.MethodCreateRegularUser): auth.OpCreateRegularUser,
	api.FullMethod(api.MethodCreateUserManager): auth.OpCreateUserManager,
	api.FullMethod(api.MethodUpdateUser):        auth.OpUpdateUser,
	api.FullMethod(api.MethodDeleteUser):        auth.OpDeleteUser,
	api.FullMethod(api.MethodListUsersByRole):   auth.OpListUsersByRole,
	api.FullMethod(api.MethodAddUserRole):       auth.OpManageRoles,
	api.FullMethod(api.MethodRemoveUserRole):    auth.OpManageRoles,
}

var publicMethods = map[string]bool{
	api.FullMethod(api.MethodLogin): true,
}

// authInterceptor runs the AuthorizationGate before any jogging-service
// handler. Methods of other services (health) pass through. Jogging methods
// that are neither public nor mapped are denied.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !strings.HasPrefix(info.FullMethod, "/"+api.ServiceName+"/") || publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	op, ok := methodOperations[info.FullMethod]
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "not authorized")
	}

	r := s.gate.AuthorizeOperation(bearerToken(ctx), op)
	principal, ok := r.Value()
	if !ok {
		s.logger.Info(ctx, "request rejected", "method", info.FullMethod, "reason", r.Kind().String())
		return nil, statusFromFailure(r.Kind(), r.Message())
	}

	ctx = context.WithValue(ctx, principalKey, principal)
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "call", "method", info.FullMethod, "code", status.Code(err).String(), "elapsed", time.Since(start))
	return resp, err
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	token, _ := auth.ParseBearer(values[0])
	return token
}

func principalFrom(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	return p, ok && p != nil
}
