// Package authz holds the per-request ownership checks applied before every
// meeting mutation. None of them consult stored roles.
package authz

import (
	"github.com/google/uuid"

	"social-scheduler-api/internal/model"
)

func IsOwner(m *model.Meeting, actor uuid.UUID) bool {
	return m != nil && actor != uuid.Nil && m.OwnerID == actor
}

// IsSelfOrOwner allows a user to act on their own row, and the owner on anyone's.
func IsSelfOrOwner(m *model.Meeting, actor, target uuid.UUID) bool {
	return (actor != uuid.Nil && actor == target) || IsOwner(m, actor)
}

func IsSelf(p *model.Participant, actor uuid.UUID) bool {
	return p != nil && actor != uuid.Nil && p.UserID == actor
}

// IsMember reports whether actor owns m or appears among its participants.
func IsMember(m *model.Meeting, actor uuid.UUID) bool {
	if IsOwner(m, actor) {
		return true
	}
	if m == nil {
		return false
	}
	for _, p := range m.Participants {
		if p.UserID == actor {
			return true
		}
	}
	return false
}
