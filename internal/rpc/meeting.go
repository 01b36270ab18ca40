package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type MeetingType struct {
	Id    string
	Title string
}

func (m *MeetingType) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	return appendString(b, 2, m.Title)
}

func (m *MeetingType) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.Title)
		}
		return 0, nil
	})
}

type Participant struct {
	Id        string
	MeetingId string
	UserId    string
	Status    string
	User      *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Participant) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.MeetingId)
	b = appendString(b, 3, m.UserId)
	b = appendString(b, 4, m.Status)
	if m.User != nil {
		b = appendMessage(b, 5, m.User)
	}
	b = appendTime(b, 6, m.CreatedAt)
	return appendTime(b, 7, m.UpdatedAt)
}

func (m *Participant) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.MeetingId)
		case 3:
			return readString(typ, b, &m.UserId)
		case 4:
			return readString(typ, b, &m.Status)
		case 5:
			m.User = &User{}
			return readMessage(typ, b, m.User)
		case 6:
			return readTime(typ, b, &m.CreatedAt)
		case 7:
			return readTime(typ, b, &m.UpdatedAt)
		}
		return 0, nil
	})
}

type Meeting struct {
	Id           string
	Title        string
	OwnerId      string
	AppointedBy  string
	AssignedTo   string
	Type         *MeetingType
	Status       string
	StartTime    time.Time
	Location     string
	LocationUrl  *string
	Participants []*Participant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *Meeting) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Title)
	b = appendString(b, 3, m.OwnerId)
	b = appendString(b, 4, m.AppointedBy)
	b = appendString(b, 5, m.AssignedTo)
	if m.Type != nil {
		b = appendMessage(b, 6, m.Type)
	}
	b = appendString(b, 7, m.Status)
	b = appendTime(b, 8, m.StartTime)
	b = appendString(b, 9, m.Location)
	b = appendOptString(b, 10, m.LocationUrl)
	for _, p := range m.Participants {
		b = appendMessage(b, 11, p)
	}
	b = appendTime(b, 12, m.CreatedAt)
	return appendTime(b, 13, m.UpdatedAt)
}

func (m *Meeting) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.Title)
		case 3:
			return readString(typ, b, &m.OwnerId)
		case 4:
			return readString(typ, b, &m.AppointedBy)
		case 5:
			return readString(typ, b, &m.AssignedTo)
		case 6:
			m.Type = &MeetingType{}
			return readMessage(typ, b, m.Type)
		case 7:
			return readString(typ, b, &m.Status)
		case 8:
			return readTime(typ, b, &m.StartTime)
		case 9:
			return readString(typ, b, &m.Location)
		case 10:
			return readOptString(typ, b, &m.LocationUrl)
		case 11:
			p := &Participant{}
			m.Participants = append(m.Participants, p)
			return readMessage(typ, b, p)
		case 12:
			return readTime(typ, b, &m.CreatedAt)
		case 13:
			return readTime(typ, b, &m.UpdatedAt)
		}
		return 0, nil
	})
}

type Invitee struct {
	UserId string
	Status string
}

func (m *Invitee) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserId)
	return appendString(b, 2, m.Status)
}

func (m *Invitee) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.UserId)
		case 2:
			return readString(typ, b, &m.Status)
		}
		return 0, nil
	})
}

type CreateMeetingRequest struct {
	Title        string
	Type         string
	StartTime    time.Time
	Location     string
	LocationUrl  *string
	AppointedBy  *string
	AssignedTo   *string
	Participants []*Invitee
}

func (m *CreateMeetingRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Title)
	b = appendString(b, 2, m.Type)
	b = appendTime(b, 3, m.StartTime)
	b = appendString(b, 4, m.Location)
	b = appendOptString(b, 5, m.LocationUrl)
	b = appendOptString(b, 6, m.AppointedBy)
	b = appendOptString(b, 7, m.AssignedTo)
	for _, p := range m.Participants {
		b = appendMessage(b, 8, p)
	}
	return b
}

func (m *CreateMeetingRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Title)
		case 2:
			return readString(typ, b, &m.Type)
		case 3:
			return readTime(typ, b, &m.StartTime)
		case 4:
			return readString(typ, b, &m.Location)
		case 5:
			return readOptString(typ, b, &m.LocationUrl)
		case 6:
			return readOptString(typ, b, &m.AppointedBy)
		case 7:
			return readOptString(typ, b, &m.AssignedTo)
		case 8:
			p := &Invitee{}
			m.Participants = append(m.Participants, p)
			return readMessage(typ, b, p)
		}
		return 0, nil
	})
}

type ListMeetingsRequest struct {
	Skip  int32
	Limit int32
	// IncludeAsParticipant defaults to true when unset.
	IncludeAsParticipant *bool
	Past                 bool
}

func (m *ListMeetingsRequest) AppendWire(b []byte) []byte {
	b = appendInt(b, 1, int64(m.Skip))
	b = appendInt(b, 2, int64(m.Limit))
	b = appendOptBool(b, 3, m.IncludeAsParticipant)
	return appendBool(b, 4, m.Past)
}

func (m *ListMeetingsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readInt32(typ, b, &m.Skip)
		case 2:
			return readInt32(typ, b, &m.Limit)
		case 3:
			return readOptBool(typ, b, &m.IncludeAsParticipant)
		case 4:
			return readBool(typ, b, &m.Past)
		}
		return 0, nil
	})
}

type MeetingList struct {
	Meetings []*Meeting
	Total    int32
}

func (m *MeetingList) AppendWire(b []byte) []byte {
	for _, x := range m.Meetings {
		b = appendMessage(b, 1, x)
	}
	return appendInt(b, 2, int64(m.Total))
}

func (m *MeetingList) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			x := &Meeting{}
			m.Meetings = append(m.Meetings, x)
			return readMessage(typ, b, x)
		case 2:
			return readInt32(typ, b, &m.Total)
		}
		return 0, nil
	})
}

// ParticipantRequest serves AddParticipant and UpdateParticipantStatus. An
// empty UserId in a status update means the caller.
type ParticipantRequest struct {
	MeetingId string
	UserId    string
	Status    string
}

func (m *ParticipantRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.MeetingId)
	b = appendString(b, 2, m.UserId)
	return appendString(b, 3, m.Status)
}

func (m *ParticipantRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.MeetingId)
		case 2:
			return readString(typ, b, &m.UserId)
		case 3:
			return readString(typ, b, &m.Status)
		}
		return 0, nil
	})
}

type UpdateMeetingRequest struct {
	Id          string
	Title       *string
	Type        *string
	StartTime   *time.Time
	Location    *string
	LocationUrl *string
	AppointedBy *string
	AssignedTo  *string
}

func (m *UpdateMeetingRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendOptString(b, 2, m.Title)
	b = appendOptString(b, 3, m.Type)
	b = appendOptTime(b, 4, m.StartTime)
	b = appendOptString(b, 5, m.Location)
	b = appendOptString(b, 6, m.LocationUrl)
	b = appendOptString(b, 7, m.AppointedBy)
	return appendOptString(b, 8, m.AssignedTo)
}

func (m *UpdateMeetingRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readOptString(typ, b, &m.Title)
		case 3:
			return readOptString(typ, b, &m.Type)
		case 4:
			return readOptTime(typ, b, &m.StartTime)
		case 5:
			return readOptString(typ, b, &m.Location)
		case 6:
			return readOptString(typ, b, &m.LocationUrl)
		case 7:
			return readOptString(typ, b, &m.AppointedBy)
		case 8:
			return readOptString(typ, b, &m.AssignedTo)
		}
		return 0, nil
	})
}

type MeetingTypeList struct {
	Types []*MeetingType
}

func (m *MeetingTypeList) AppendWire(b []byte) []byte {
	for _, t := range m.Types {
		b = appendMessage(b, 1, t)
	}
	return b
}

func (m *MeetingTypeList) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			t := &MeetingType{}
			m.Types = append(m.Types, t)
			return readMessage(typ, b, t)
		}
		return 0, nil
	})
}
