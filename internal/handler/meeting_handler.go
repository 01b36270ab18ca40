package handler

import (
	"context"

	"social-scheduler-api/internal/meeting"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/rpc"
)

func (h meetingServer) CreateMeeting(ctx context.Context, req *rpc.CreateMeetingRequest) (*rpc.Meeting, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in := meeting.CreateInput{
		Title:       req.Title,
		TypeTitle:   req.Type,
		StartTime:   req.StartTime,
		Location:    req.Location,
		LocationURL: req.LocationUrl,
	}
	if in.AppointedBy, err = optionalIDPtr(req.AppointedBy, "appointed_by"); err != nil {
		return nil, err
	}
	if in.AssignedTo, err = optionalIDPtr(req.AssignedTo, "assigned_to"); err != nil {
		return nil, err
	}
	for _, p := range req.Participants {
		id, err := parseID(p.UserId, "participant")
		if err != nil {
			return nil, err
		}
		in.Invitees = append(in.Invitees, meeting.Invitee{UserID: id, Status: model.ParticipantStatus(p.Status)})
	}

	m, err := h.meetings.Create(ctx, uid, in)
	if err != nil {
		return nil, err
	}
	return toMeeting(m), nil
}

func (h meetingServer) ListMeetings(ctx context.Context, req *rpc.ListMeetingsRequest) (*rpc.MeetingList, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	include := true
	if req.IncludeAsParticipant != nil {
		include = *req.IncludeAsParticipant
	}
	ms, total, err := h.meetings.List(ctx, uid, meeting.ListInput{
		Page:                 page(req.Skip, req.Limit),
		IncludeAsParticipant: include,
		Past:                 req.Past,
	})
	if err != nil {
		return nil, err
	}
	return toMeetingList(ms, total), nil
}

func (h meetingServer) ListMeetingRequests(ctx context.Context, req *rpc.ListRequest) (*rpc.MeetingList, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	ms, total, err := h.meetings.Requests(ctx, uid, page(req.Skip, req.Limit))
	if err != nil {
		return nil, err
	}
	return toMeetingList(ms, total), nil
}

func (h meetingServer) GetMeeting(ctx context.Context, req *rpc.IDRequest) (*rpc.Meeting, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(req.Id, "meeting")
	if err != nil {
		return nil, err
	}
	m, err := h.meetings.Get(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	return toMeeting(m), nil
}

func (h meetingServer) AddParticipant(ctx context.Context, req *rpc.ParticipantRequest) (*rpc.Participant, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	mid, err := parseID(req.MeetingId, "meeting")
	if err != nil {
		return nil, err
	}
	target, err := parseID(req.UserId, "user")
	if err != nil {
		return nil, err
	}
	p, err := h.meetings.AddParticipant(ctx, mid, meeting.Invitee{
		UserID: target,
		Status: model.ParticipantStatus(req.Status),
	}, uid)
	if err != nil {
		return nil, err
	}
	return toParticipant(p), nil
}

// UpdateParticipantStatus also serves accepting or declining an invitation:
// with no user id the caller answers for itself.
func (h meetingServer) UpdateParticipantStatus(ctx context.Context, req *rpc.ParticipantRequest) (*rpc.Participant, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	mid, err := parseID(req.MeetingId, "meeting")
	if err != nil {
		return nil, err
	}
	target, err := optionalID(req.UserId, "user", uid)
	if err != nil {
		return nil, err
	}
	p, err := h.meetings.UpdateParticipantStatus(ctx, mid, target, model.ParticipantStatus(req.Status), uid)
	if err != nil {
		return nil, err
	}
	return toParticipant(p), nil
}

func (h meetingServer) UpdateMeeting(ctx context.Context, req *rpc.UpdateMeetingRequest) (*rpc.Meeting, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(req.Id, "meeting")
	if err != nil {
		return nil, err
	}
	patch := model.MeetingPatch{
		Title:       req.Title,
		TypeTitle:   req.Type,
		StartTime:   req.StartTime,
		Location:    req.Location,
		LocationURL: req.LocationUrl,
	}
	if patch.AppointedBy, err = optionalIDPtr(req.AppointedBy, "appointed_by"); err != nil {
		return nil, err
	}
	if patch.AssignedTo, err = optionalIDPtr(req.AssignedTo, "assigned_to"); err != nil {
		return nil, err
	}
	m, err := h.meetings.Update(ctx, id, patch, uid)
	if err != nil {
		return nil, err
	}
	return toMeeting(m), nil
}

func (h meetingServer) DeleteMeeting(ctx context.Context, req *rpc.IDRequest) (*rpc.Ack, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(req.Id, "meeting")
	if err != nil {
		return nil, err
	}
	ok, err := h.meetings.Delete(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	return &rpc.Ack{Ok: ok}, nil
}

func (h meetingServer) DeleteParticipant(ctx context.Context, req *rpc.IDRequest) (*rpc.Ack, error) {
	uid, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(req.Id, "participant")
	if err != nil {
		return nil, err
	}
	ok, err := h.meetings.DeleteParticipant(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	return &rpc.Ack{Ok: ok}, nil
}

func (h meetingServer) ListMeetingTypes(ctx context.Context, _ *rpc.Empty) (*rpc.MeetingTypeList, error) {
	ts, err := h.meetings.Types(ctx)
	if err != nil {
		return nil, err
	}
	out := &rpc.MeetingTypeList{}
	for _, t := range ts {
		out.Types = append(out.Types, &rpc.MeetingType{Id: t.ID.String(), Title: t.Title})
	}
	return out, nil
}
