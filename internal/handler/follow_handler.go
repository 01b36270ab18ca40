package handler

import (
	"context"

	"github.com/google/uuid"

	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
	"social-scheduler-api/internal/rpc"
)

func (h followServer) Follow(ctx context.Context, req *rpc.IDRequest) (*rpc.Follow, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	target, err := parseID(req.Id, "user")
	if err != nil {
		return nil, err
	}
	f, err := h.follows.Follow(ctx, uid, target)
	if err != nil {
		return nil, err
	}
	return toFollow(f), nil
}

func (h followServer) Unfollow(ctx context.Context, req *rpc.IDRequest) (*rpc.Ack, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	target, err := parseID(req.Id, "user")
	if err != nil {
		return nil, err
	}
	ok, err := h.follows.Unfollow(ctx, uid, target)
	if err != nil {
		return nil, err
	}
	return &rpc.Ack{Ok: ok}, nil
}

func (h followServer) GetFollowStatus(ctx context.Context, req *rpc.IDRequest) (*rpc.FollowStatus, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	other, err := parseID(req.Id, "user")
	if err != nil {
		return nil, err
	}
	st, err := h.follows.Status(ctx, uid, other)
	if err != nil {
		return nil, err
	}
	return &rpc.FollowStatus{IsFollowing: st.IsFollowing, IsFollowedBy: st.IsFollowedBy, IsMutual: st.IsMutual}, nil
}

func (h followServer) GetFollowCounts(ctx context.Context, req *rpc.IDRequest) (*rpc.FollowCounts, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	target, err := optionalID(req.Id, "user", uid)
	if err != nil {
		return nil, err
	}
	c, err := h.follows.Counts(ctx, target)
	if err != nil {
		return nil, err
	}
	return &rpc.FollowCounts{Following: int32(c.Following), Followers: int32(c.Followers)}, nil
}

func (h followServer) ListFollowing(ctx context.Context, req *rpc.ListRequest) (*rpc.FollowList, error) {
	return h.list(ctx, req, h.follows.Following)
}

func (h followServer) ListFollowers(ctx context.Context, req *rpc.ListRequest) (*rpc.FollowList, error) {
	return h.list(ctx, req, h.follows.Followers)
}

func (h followServer) list(ctx context.Context, req *rpc.ListRequest,
	fetch func(context.Context, uuid.UUID, paging.Page) ([]model.Follow, int, error),
) (*rpc.FollowList, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	target, err := optionalID(req.Id, "user", uid)
	if err != nil {
		return nil, err
	}
	fs, total, err := fetch(ctx, target, page(req.Skip, req.Limit))
	if err != nil {
		return nil, err
	}
	out := &rpc.FollowList{Total: int32(total)}
	for i := range fs {
		out.Follows = append(out.Follows, toFollow(&fs[i]))
	}
	return out, nil
}
