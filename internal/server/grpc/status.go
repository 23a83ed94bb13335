package grpc

import (
	"github.com/dmitrijs2005/joggingtracker/internal/result"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = map[result.Kind]codes.Code{
	result.KindStorage:         codes.Internal,
	result.KindNotFound:        codes.NotFound,
	result.KindValidation:      codes.InvalidArgument,
	result.KindConflict:        codes.AlreadyExists,
	result.KindUnauthenticated: codes.Unauthenticated,
	result.KindForbidden:       codes.PermissionDenied,
}

func statusFromFailure(kind result.Kind, message string) error {
	code, ok := kindCodes[kind]
	if !ok {
		code = codes.Unknown
	}
	return status.Error(code, message)
}

// unwrap returns the value of r or the matching status error.
func unwrap[T any](r result.Result[T]) (T, error) {
	v, ok := r.Value()
	if !ok {
		return v, statusFromFailure(r.Kind(), r.Message())
	}
	return v, nil
}
