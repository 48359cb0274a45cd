package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// MemberIDKey is the context key for storing the authenticated member ID.
const MemberIDKey contextKey = "member_id"

// GetMemberID extracts the member ID from the context.
// Returns empty string if not found.
func GetMemberID(ctx context.Context) string {
	memberID, _ := ctx.Value(MemberIDKey).(string)
	return memberID
}

// WithMemberID returns a copy of ctx carrying memberID as the caller.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, MemberIDKey, memberID)
}

// RequireAuth returns an interceptor that validates the bearer token in the
// Authorization header and puts the member ID from its claims on the context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithMemberID(ctx, claims.MemberID), req)
		}
	}
}
