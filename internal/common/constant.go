package common

// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token.
// gRPC lower-cases metadata keys, so this is the HTTP Authorization header.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token inside the authorization header value.
const BearerPrefix = "Bearer "
