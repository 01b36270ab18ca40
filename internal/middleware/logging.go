package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"social-scheduler-api/internal/rpc"
)

type callKey struct{}

// callInfo is filled by inner interceptors for the access log.
type callInfo struct {
	uid uuid.UUID
}

// Logging is the outermost interceptor. It turns handler errors into gRPC
// statuses and logs one line per call; internal failures keep their cause in
// the log only.
func Logging(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		call := &callInfo{}
		resp, err := next(context.WithValue(ctx, callKey{}, call), req)
		serr := rpc.Status(err)
		code := status.Code(serr)

		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("took", time.Since(start)),
		}
		if call.uid != uuid.Nil {
			attrs = append(attrs, slog.String("uid", call.uid.String()))
		}
		switch code {
		case codes.OK:
			log.InfoContext(ctx, "rpc", attrs...)
		case codes.Internal, codes.Unknown:
			log.ErrorContext(ctx, "rpc", append(attrs, slog.Any("err", err))...)
		default:
			log.WarnContext(ctx, "rpc", append(attrs, slog.String("err", status.Convert(serr).Message()))...)
		}
		if serr != nil {
			return nil, serr
		}
		return resp, nil
	}
}

// Chain builds the server interceptor stack: logging, rate limit, auth.
func Chain(log *slog.Logger, rl *RateLimiter, authn grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	stack := []grpc.UnaryServerInterceptor{Logging(log), RateLimit(rl), authn}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		h := next
		for i := len(stack) - 1; i >= 0; i-- {
			ic, inner := stack[i], h
			h = func(ctx context.Context, req any) (any, error) { return ic(ctx, req, info, inner) }
		}
		return h(ctx, req)
	}
}
