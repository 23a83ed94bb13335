// Package services holds the server's core operations: the record store
// with weekly aggregation, the identity directory, token issuing and user
// management. Every externally visible operation returns a result.Result.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/dmitrijs2005/joggingtracker/internal/logging"
	"github.com/dmitrijs2005/joggingtracker/internal/result"
)

const msgStorage = "storage error"

// fromError converts a repository error into a failed result. what names
// the entity in not-found and conflict messages. Unexpected errors are
// logged and reported with a generic message.
func fromError[T any](ctx context.Context, log logging.Logger, op, what string, err error) result.Result[T] {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return result.Failure[T](result.KindNotFound, what+" not found")
	case errors.Is(err, common.ErrAlreadyExists):
		return result.Failure[T](result.KindConflict, what+" already exists")
	case errors.Is(err, common.ErrValidation):
		return result.Failure[T](result.KindValidation, err.Error())
	default:
		log.Error(ctx, "storage failure", "op", op, "error", err)
		return result.Failure[T](result.KindStorage, msgStorage)
	}
}
