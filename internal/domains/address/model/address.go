package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"techstore-backend/internal/shared"
)

type AddressType string

const (
	AddressTypeHome   AddressType = "home"
	AddressTypeOffice AddressType = "office"
)

func (a AddressType) IsValid() bool {
	switch a {
	case AddressTypeHome, AddressTypeOffice:
		return true
	}
	return false
}

func (a AddressType) String() string {
	return string(a)
}

// Address là một địa chỉ giao hàng trong sổ địa chỉ của user.
// ID là string vì storefront cấp sẵn id cho dữ liệu có trước.
type Address struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Province  string      `json:"province"`
	District  string      `json:"district"`
	Ward      string      `json:"ward"`
	Detail    string      `json:"detail"`
	Type      AddressType `json:"type"`
	IsDefault bool        `json:"isDefault"`
}

// AddressForm là dữ liệu form thêm/sửa địa chỉ
type AddressForm struct {
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Province  string      `json:"province"`
	District  string      `json:"district"`
	Ward      string      `json:"ward"`
	Detail    string      `json:"detail"`
	Type      AddressType `json:"type"`
	IsDefault bool        `json:"isDefault"`
}

// Normalize trim các field và gán type mặc định là home
func (f AddressForm) Normalize() AddressForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Province = strings.TrimSpace(f.Province)
	f.District = strings.TrimSpace(f.District)
	f.Ward = strings.TrimSpace(f.Ward)
	f.Detail = strings.TrimSpace(f.Detail)
	f.Type = AddressType(strings.ToLower(strings.TrimSpace(string(f.Type))))
	if f.Type == "" {
		f.Type = AddressTypeHome
	}
	return f
}

// Validate trả về *shared.ValidationError liệt kê mọi field bắt buộc còn trống
func (f AddressForm) Validate() error {
	f = f.Normalize()
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Phone, validation.Required),
		validation.Field(&f.Province, validation.Required),
		validation.Field(&f.District, validation.Required),
		validation.Field(&f.Ward, validation.Required),
		validation.Field(&f.Detail, validation.Required),
		validation.Field(&f.Type, validation.In(AddressTypeHome, AddressTypeOffice)),
	)
	return shared.FromValidation(err)
}

// toAddress dựng Address từ form đã normalize
func (f AddressForm) toAddress(id string) Address {
	return Address{
		ID:        id,
		Name:      f.Name,
		Phone:     f.Phone,
		Province:  f.Province,
		District:  f.District,
		Ward:      f.Ward,
		Detail:    f.Detail,
		Type:      f.Type,
		IsDefault: f.IsDefault,
	}
}

// FormOf trả về form đang chứa dữ liệu của address (dùng khi mở form sửa)
func FormOf(a Address) AddressForm {
	return AddressForm{
		Name:      a.Name,
		Phone:     a.Phone,
		Province:  a.Province,
		District:  a.District,
		Ward:      a.Ward,
		Detail:    a.Detail,
		Type:      a.Type,
		IsDefault: a.IsDefault,
	}
}
