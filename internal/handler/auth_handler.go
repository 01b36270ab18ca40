package handler

import (
	"context"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/rpc"
)

func (h authServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.TokenResponse, error) {
	u, err := h.accounts.Register(ctx, account.RegisterInput{
		Email:    req.Email,
		Account:  req.Account,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	tok, err := h.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return toTokens(tok, u.ID), nil
}

func (h authServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.TokenResponse, error) {
	u, err := h.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	tok, err := h.sessions.Issue(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return toTokens(tok, u.ID), nil
}

func (h authServer) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.TokenResponse, error) {
	tok, uid, err := h.sessions.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	return toTokens(tok, uid), nil
}

func (h authServer) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Ack, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.Logout(ctx, uid); err != nil {
		return nil, err
	}
	return &rpc.Ack{Ok: true}, nil
}
