package client

import (
	"context"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"google.golang.org/grpc/metadata"
)

func outgoingAuth(ctx context.Context) []string {
	md, _ := metadata.FromOutgoingContext(ctx)
	return md.Get(common.AuthorizationHeaderName)
}
