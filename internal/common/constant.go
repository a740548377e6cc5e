package common

// AccessTokenHeaderName is the gRPC metadata key accepted as a fallback
// carrier of the access token when no authorization header is present.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName carries "Bearer <token>" on HTTP requests and in
// gRPC metadata.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the only authorization scheme the server accepts.
const BearerScheme = "Bearer"

// TokenType is reported to clients alongside issued access tokens.
const TokenType = "bearer"
