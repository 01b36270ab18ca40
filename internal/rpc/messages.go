package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type Empty struct{}

func (*Empty) AppendWire(b []byte) []byte { return b }

func (*Empty) UnmarshalWire(b []byte) error {
	return walk(b, func(protowire.Number, protowire.Type, []byte) (int, error) { return 0, nil })
}

type Ack struct {
	Ok bool
}

func (m *Ack) AppendWire(b []byte) []byte { return appendBool(b, 1, m.Ok) }

func (m *Ack) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readBool(typ, b, &m.Ok)
		}
		return 0, nil
	})
}

// IDRequest addresses a single entity. Some methods treat an empty Id as the
// caller.
type IDRequest struct {
	Id string
}

func (m *IDRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Id) }

func (m *IDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Id)
		}
		return 0, nil
	})
}

type ListRequest struct {
	Id    string
	Query string
	Skip  int32
	Limit int32
}

func (m *ListRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Query)
	b = appendInt(b, 3, int64(m.Skip))
	return appendInt(b, 4, int64(m.Limit))
}

func (m *ListRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.Query)
		case 3:
			return readInt32(typ, b, &m.Skip)
		case 4:
			return readInt32(typ, b, &m.Limit)
		}
		return 0, nil
	})
}

// auth

type RegisterRequest struct {
	Email    string
	Account  string
	Name     string
	Password string
}

func (m *RegisterRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Account)
	b = appendString(b, 3, m.Name)
	return appendString(b, 4, m.Password)
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Email)
		case 2:
			return readString(typ, b, &m.Account)
		case 3:
			return readString(typ, b, &m.Name)
		case 4:
			return readString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Email)
		case 2:
			return readString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

type RefreshRequest struct {
	RefreshToken string
}

func (m *RefreshRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.RefreshToken) }

func (m *RefreshRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.RefreshToken)
		}
		return 0, nil
	})
}

type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserId       string
}

func (m *TokenResponse) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.AccessToken)
	b = appendString(b, 2, m.RefreshToken)
	b = appendTime(b, 3, m.ExpiresAt)
	return appendString(b, 4, m.UserId)
}

func (m *TokenResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.AccessToken)
		case 2:
			return readString(typ, b, &m.RefreshToken)
		case 3:
			return readTime(typ, b, &m.ExpiresAt)
		case 4:
			return readString(typ, b, &m.UserId)
		}
		return 0, nil
	})
}

// users

type User struct {
	Id          string
	Email       string
	Account     string
	Name        string
	Role        string
	IsActive    bool
	IsVerified  bool
	IsSuperuser bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
}

func (m *User) AppendWire(b []byte) []byte {
	b = appendString(b, 1, m.Id)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.Account)
	b = appendString(b, 4, m.Name)
	b = appendString(b, 5, m.Role)
	b = appendBool(b, 6, m.IsActive)
	b = appendBool(b, 7, m.IsVerified)
	b = appendBool(b, 8, m.IsSuperuser)
	b = appendOptTime(b, 9, m.DeletedAt)
	return appendTime(b, 10, m.CreatedAt)
}

func (m *User) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readString(typ, b, &m.Id)
		case 2:
			return readString(typ, b, &m.Email)
		case 3:
			return readString(typ, b, &m.Account)
		case 4:
			return readString(typ, b, &m.Name)
		case 5:
			return readString(typ, b, &m.Role)
		case 6:
			return readBool(typ, b, &m.IsActive)
		case 7:
			return readBool(typ, b, &m.IsVerified)
		case 8:
			return readBool(typ, b, &m.IsSuperuser)
		case 9:
			return readOptTime(typ, b, &m.DeletedAt)
		case 10:
			return readTime(typ, b, &m.CreatedAt)
		}
		return 0, nil
	})
}

type AccountRequest struct {
	Account string
}

func (m *AccountRequest) AppendWire(b []byte) []byte { return appendString(b, 1, m.Account) }

func (m *AccountRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return readString(typ, b, &m.Account)
		}
		return 0, nil
	})
}

type UserList struct {
	Users []*User
	Total int32
}

func (m *UserList) AppendWire(b []byte) []byte {
	for _, u := range m.Users {
		b = appendMessage(b, 1, u)
	}
	return appendInt(b, 2, int64(m.Total))
}

func (m *UserList) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			u := &User{}
			m.Users = append(m.Users, u)
			return readMessage(typ, b, u)
		case 2:
			return readInt32(typ, b, &m.Total)
		}
		return 0, nil
	})
}

type UpdateProfileRequest struct {
	Name     *string
	Account  *string
	Email    *string
	Password *string
}

func (m *UpdateProfileRequest) AppendWire(b []byte) []byte {
	b = appendOptString(b, 1, m.Name)
	b = appendOptString(b, 2, m.Account)
	b = appendOptString(b, 3, m.Email)
	return appendOptString(b, 4, m.Password)
}

func (m *UpdateProfileRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readOptString(typ, b, &m.Name)
		case 2:
			return readOptString(typ, b, &m.Account)
		case 3:
			return readOptString(typ, b, &m.Email)
		case 4:
			return readOptString(typ, b, &m.Password)
		}
		return 0, nil
	})
}

type DeletionInfo struct {
	Scheduled     bool
	DeletedAt     *time.Time
	DaysRemaining int32
	CanRecover    bool
}

func (m *DeletionInfo) AppendWire(b []byte) []byte {
	b = appendBool(b, 1, m.Scheduled)
	b = appendOptTime(b, 2, m.DeletedAt)
	b = appendInt(b, 3, int64(m.DaysRemaining))
	return appendBool(b, 4, m.CanRecover)
}

func (m *DeletionInfo) UnmarshalWire(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return readBool(typ, b, &m.Scheduled)
		case 2:
			return readOptTime(typ, b, &m.DeletedAt)
		case 3:
			return readInt32(typ, b, &m.DaysRemaining)
		case 4:
			return readBool(typ, b, &m.CanRecover)
		}
		return 0, nil
	})
}
