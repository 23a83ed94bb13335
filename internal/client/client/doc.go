// Package client talks to the jogging tracker server.
//
// # Overview
//
// Client is the transport-agnostic contract the CLI depends on. GRPCClient
// implements it over the JSON-coded gRPC service described in package api:
// it owns one connection, attaches the bearer token to every call through a
// unary interceptor and applies a per-call deadline.
//
// # Error Handling
//
// gRPC status codes are mapped onto sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrInvalidInput, ErrConflict. The server's message is kept in the wrapped
// error text.
package client
