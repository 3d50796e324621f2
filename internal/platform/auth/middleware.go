package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const claimsKey contextKey = "auth.claims"

// ContextWithClaims returns a child context carrying the verified claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts the verified claims from the context, if present.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// UnaryAuthInterceptor verifies the bearer token on every unary call except
// those listed in skipMethods (full method names, e.g. the health check).
func UnaryAuthInterceptor(svc *JWTService, skipMethods ...string) grpc.UnaryServerInterceptor {
	skip := make(map[string]struct{}, len(skipMethods))
	for _, m := range skipMethods {
		skip[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		token, err := bearerToken(ctx)
		if err != nil {
			return nil, err
		}
		claims, err := svc.Verify(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated, "missing authorization header")
	}
	token := strings.TrimPrefix(values[0], "Bearer ")
	if token == values[0] || token == "" {
		return "", status.Error(codes.Unauthenticated, "malformed authorization header")
	}
	return token, nil
}

// RequireRole returns an error unless the context claims carry the role.
func RequireRole(ctx context.Context, role string) error {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "no credentials in context")
	}
	if !claims.HasRole(role) && !claims.HasRole(RoleAdmin) {
		return status.Error(codes.PermissionDenied, "insufficient role")
	}
	return nil
}
