package access

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryInterceptor authenticates every call except the public ones. Each
// public entry is a full method name, or a service prefix ending in "/".
func (g *Gate) UnaryInterceptor(public ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if isPublic(public, info.FullMethod) {
			return handler(ctx, req)
		}

		ctx, _, err := g.Authenticate(ctx, tokenFromMetadata(ctx))
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, UnauthorizedDetail)
		}
		return handler(ctx, req)
	}
}

// tokenFromMetadata prefers "authorization: Bearer <token>" and falls back to
// the bare access_token key.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		if token := BearerToken(values[0]); token != "" {
			return token
		}
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
		return values[0]
	}
	return ""
}

func isPublic(public []string, method string) bool {
	for _, p := range public {
		if p == method || (strings.HasSuffix(p, "/") && strings.HasPrefix(method, p)) {
			return true
		}
	}
	return false
}
