package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/rpc"
)

type ctxKey struct{}

// skip auth for these
var open = map[string]bool{
	rpc.MethodRegister: true,
	rpc.MethodLogin:    true,
	rpc.MethodRefresh:  true,
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// UserID returns the authenticated caller, if any.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// BearerToken strips the scheme from an Authorization header value.
func BearerToken(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func Auth(iss *auth.Issuer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, apperr.Unauthenticated("missing metadata")
		}

		// token from Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = BearerToken(vals[0])
		}
		if raw == "" {
			return nil, apperr.Unauthenticated("no token")
		}

		uid, err := iss.ParseToken(raw)
		if err != nil {
			return nil, apperr.Unauthenticated("bad token")
		}
		if call, ok := ctx.Value(callKey{}).(*callInfo); ok {
			call.uid = uid
		}
		return next(WithUserID(ctx, uid), req)
	}
}
