package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type Follow struct {
	Id          string
	FollowerId  string
	FollowingId string
	// User is the other end of the edge in list responses.
	User      *User
	CreatedAt time.Time
}

func (m *Follow) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.FollowerId)
	b = appendString(b, 3, m.FollowingId)
	if m.User != nil {
		b = appendMessage(b, 4, m.User)
	}
	return appendTime(b, 5, m.CreatedAt)
}

func (m *Follow) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.FollowerId)
		case 3:
			return readString(typ, b, &m.FollowingId)
		case 4:
			m.User = &User{}
			return readMessage(typ, b, m.User)
		case 5:
			return readTime(typ, b, &m.CreatedAt)
		}
		return 0, nil
	})
}

type FollowList struct {
	Follows []*Follow
	Total   int32
}

func (m *FollowList) AppendWire(b []byte) []byte {
	for _, f := range m.Follows {
		b = appendMessage(b, 1, f)
	}
	return appendInt(b, 2, int64(m.Total))
}

func (m *FollowList) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			f := &Follow{}
			m.Follows = append(m.Follows, f)
			return readMessage(typ, b, f)
		case 2:
			return readInt32(typ, b, &m.Total)
		}
		return 0, nil
	})
}

type FollowStatus struct {
	IsFollowing  bool
	IsFollowedBy bool
	IsMutual     bool
}

func (m *FollowStatus) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, m.IsFollowing)
	b = appendBool(b, 2, m.IsFollowedBy)
	return appendBool(b, 3, m.IsMutual)
}

func (m *FollowStatus) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readBool(typ, b, &m.IsFollowing)
		case 2:
			return readBool(typ, b, &m.IsFollowedBy)
		case 3:
			return readBool(typ, b, &m.IsMutual)
		}
		return 0, nil
	})
}

type FollowCounts struct {
	Following int32
	Followers int32
}

func (m *FollowCounts) AppendWire(b []byte) []byte {
	b = appendInt(b, 1, int64(m.Following))
	return appendInt(b, 2, int64(m.Followers))
}

func (m *FollowCounts) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readInt32(typ, b, &m.Following)
		case 2:
			return readInt32(typ, b, &m.Followers)
		}
		return 0, nil
	})
}
