// Package handler implements the scheduler.v1 gRPC services on top of the
// account, meeting and follow services. Handlers return application errors;
// the logging interceptor turns them into statuses.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/follow"
	"social-scheduler-api/internal/meeting"
	"social-scheduler-api/internal/middleware"
	"social-scheduler-api/internal/paging"
	"social-scheduler-api/internal/rpc"
)

type Handler struct {
	accounts *account.Service
	sessions *account.Sessions
	meetings *meeting.Service
	follows  *follow.Service
	log      *slog.Logger
}

func New(accounts *account.Service, sessions *account.Sessions, meetings *meeting.Service, follows *follow.Service, log *slog.Logger) *Handler {
	return &Handler{accounts: accounts, sessions: sessions, meetings: meetings, follows: follows, log: log}
}

// The four services share method names (Register, Follow), so each gets its
// own receiver type.
type (
	authServer    struct{ *Handler }
	userServer    struct{ *Handler }
	meetingServer struct{ *Handler }
	followServer  struct{ *Handler }
)

// RegisterServices mounts every scheduler.v1 service on s.
func (h *Handler) RegisterServices(s grpc.ServiceRegistrar) {
	rpc.RegisterAuthServer(s, authServer{h})
	rpc.RegisterUserServer(s, userServer{h})
	rpc.RegisterMeetingServer(s, meetingServer{h})
	rpc.RegisterFollowServer(s, followServer{h})
}

func caller(ctx context.Context) (uuid.UUID, error) {
	uid, ok := middleware.UserID(ctx)
	if !ok {
		return uuid.Nil, apperr.Unauthenticated("no token")
	}
	return uid, nil
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.InvalidArg("invalid " + what + " id")
	}
	return id, nil
}

// optionalID parses raw, falling back to def when it is empty.
func optionalID(raw, what string, def uuid.UUID) (uuid.UUID, error) {
	if raw == "" {
		return def, nil
	}
	return parseID(raw, what)
}

func optionalIDPtr(raw *string, what string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseID(*raw, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func page(skip, limit int32) paging.Page {
	return paging.Page{Skip: int(skip), Limit: int(limit)}
}
