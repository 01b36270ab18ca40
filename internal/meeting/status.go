package meeting

import "social-scheduler-api/internal/model"

// DeriveStatus computes a meeting's status from its participants: any decline
// cancels it, unanimous acceptance approves it, anything else leaves it new.
// An empty set is new.
func DeriveStatus(ps []model.Participant) model.MeetingStatus {
	if len(ps) == 0 {
		return model.MeetingNew
	}
	accepted := 0
	for _, p := range ps {
		switch p.Status {
		case model.ParticipantDeclined:
			return model.MeetingCanceled
		case model.ParticipantAccepted:
			accepted++
		}
	}
	if accepted == len(ps) {
		return model.MeetingApproved
	}
	return model.MeetingNew
}
