package handler

import (
	"context"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/rpc"
)

func (h userServer) GetMe(ctx context.Context, _ *rpc.Empty) (*rpc.User, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	u, err := h.accounts.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

func (h userServer) GetUserByAccount(ctx context.Context, req *rpc.AccountRequest) (*rpc.User, error) {
	u, err := h.accounts.GetByAccount(ctx, req.Account)
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

func (h userServer) SearchUsers(ctx context.Context, req *rpc.ListRequest) (*rpc.UserList, error) {
	us, total, err := h.accounts.Search(ctx, req.Query, page(req.Skip, req.Limit))
	if err != nil {
		return nil, err
	}
	out := &rpc.UserList{Total: int32(total)}
	for i := range us {
		out.Users = append(out.Users, toUser(&us[i]))
	}
	return out, nil
}

func (h userServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.User, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	u, err := h.accounts.UpdateProfile(ctx, uid, account.ProfileInput{
		Name:     req.Name,
		Account:  req.Account,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return toUser(u), nil
}

func (h userServer) ScheduleDeletion(ctx context.Context, _ *rpc.Empty) (*rpc.DeletionInfo, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	info, err := h.accounts.ScheduleDeletion(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toDeletion(info), nil
}

func (h userServer) RecoverAccount(ctx context.Context, _ *rpc.Empty) (*rpc.DeletionInfo, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.accounts.Recover(ctx, uid); err != nil {
		return nil, err
	}
	info, err := h.accounts.DeletionInfo(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toDeletion(info), nil
}

func (h userServer) GetDeletionInfo(ctx context.Context, _ *rpc.Empty) (*rpc.DeletionInfo, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	info, err := h.accounts.DeletionInfo(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toDeletion(info), nil
}
