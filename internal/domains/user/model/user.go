package model

import (
	addressModel "techstore-backend/internal/domains/address/model"
)

// Rank hạng thành viên
type Rank string

const (
	RankBronze   Rank = "Bronze"
	RankSilver   Rank = "Silver"
	RankGold     Rank = "Gold"
	RankPlatinum Rank = "Platinum"
)

func (r Rank) IsValid() bool {
	switch r {
	case RankBronze, RankSilver, RankGold, RankPlatinum:
		return true
	}
	return false
}

// Role enum
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User là record được storefront cấp cho session.
// Không bao giờ sửa tại chỗ: mọi thay đổi tạo ra một User mới.
// Revision tăng mỗi lần session thay record, dùng làm identity của bản committed.
type User struct {
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Avatar    string                 `json:"avatar"`
	Rank      Rank                   `json:"rank"`
	Role      Role                   `json:"role,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Birthday  string                 `json:"birthday,omitempty"` // YYYY-MM-DD
	Gender    Gender                 `json:"gender,omitempty"`
	Addresses []addressModel.Address `json:"addresses"`
	Revision  uint64                 `json:"revision"`
}

// Clone trả về bản copy độc lập (kể cả slice addresses)
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	next := *u
	next.Addresses = addressModel.Clone(u.Addresses)
	return &next
}

// WithAddresses trả về User mới với sổ địa chỉ được thay toàn bộ
func (u *User) WithAddresses(addresses []addressModel.Address) *User {
	next := u.Clone()
	next.Addresses = addressModel.Clone(addresses)
	return next
}

// ProfileFields là các field profile editor sở hữu
type ProfileFields struct {
	Name     string
	Email    string
	Phone    string
	Birthday string
	Gender   Gender
}

// WithProfile thay các field editable, giữ nguyên avatar, rank, role, addresses
func (u *User) WithProfile(p ProfileFields) *User {
	next := u.Clone()
	next.Name = p.Name
	next.Email = p.Email
	next.Phone = p.Phone
	next.Birthday = p.Birthday
	next.Gender = p.Gender
	return next
}
