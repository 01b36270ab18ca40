package handler

import (
	"github.com/google/uuid"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/rpc"
)

func nullID(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}

func toUser(u *model.User) *rpc.User {
	if u == nil {
		return nil
	}
	return &rpc.User{
		Id:          u.ID.String(),
		Email:       u.Email,
		Account:     u.Account,
		Name:        u.Name,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		IsVerified:  u.IsVerified,
		IsSuperuser: u.IsSuperuser,
		DeletedAt:   u.DeletedAt,
		CreatedAt:   u.CreatedAt,
	}
}

func toParticipant(p *model.Participant) *rpc.Participant {
	return &rpc.Participant{
		Id:        p.ID.String(),
		MeetingId: p.MeetingID.String(),
		UserId:    p.UserID.String(),
		Status:    string(p.Status),
		User:      toUser(p.User),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toMeeting(m *model.Meeting) *rpc.Meeting {
	out := &rpc.Meeting{
		Id:          m.ID.String(),
		Title:       m.Title,
		OwnerId:     m.OwnerID.String(),
		AppointedBy: nullID(m.AppointedBy),
		AssignedTo:  nullID(m.AssignedTo),
		Status:      string(m.Status),
		StartTime:   m.StartTime,
		Location:    m.Location,
		LocationUrl: m.LocationURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Type.ID != uuid.Nil {
		out.Type = &rpc.MeetingType{Id: m.Type.ID.String(), Title: m.Type.Title}
	}
	for i := range m.Participants {
		out.Participants = append(out.Participants, toParticipant(&m.Participants[i]))
	}
	return out
}

func toMeetingList(ms []model.Meeting, total int) *rpc.MeetingList {
	out := &rpc.MeetingList{Total: int32(total)}
	for i := range ms {
		out.Meetings = append(out.Meetings, toMeeting(&ms[i]))
	}
	return out
}

func toFollow(f *model.Follow) *rpc.Follow {
	return &rpc.Follow{
		Id:          f.ID.String(),
		FollowerId:  f.FollowerID.String(),
		FollowingId: f.FollowingID.String(),
		User:        toUser(f.User),
		CreatedAt:   f.CreatedAt,
	}
}

func toDeletion(d account.DeletionInfo) *rpc.DeletionInfo {
	return &rpc.DeletionInfo{
		Scheduled:     d.Scheduled,
		DeletedAt:     d.DeletedAt,
		DaysRemaining: int32(d.DaysRemaining),
		CanRecover:    d.CanRecover,
	}
}

func toTokens(t account.Tokens, uid uuid.UUID) *rpc.TokenResponse {
	return &rpc.TokenResponse{
		AccessToken:  t.Access,
		RefreshToken: t.Refresh,
		ExpiresAt:    t.ExpiresAt,
		UserId:       uid.String(),
	}
}
