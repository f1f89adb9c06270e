package service

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"techstore-backend/internal/domains/user/model"
)

// Draft là bản nháp profile, tách khỏi User đã commit
type Draft struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Birthday string       `json:"birthday"` // YYYY-MM-DD
	Gender   model.Gender `json:"gender"`
}

// Validate kiểm tra draft trước khi commit
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Email, validation.Required, is.EmailFormat),
		validation.Field(&d.Birthday, validation.Date("2006-01-02")),
		validation.Field(&d.Gender, validation.In(model.GenderMale, model.GenderFemale, model.GenderOther)),
	)
}

// Normalize trim các field text
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Birthday = strings.TrimSpace(d.Birthday)
	return d
}

func (d Draft) fields() model.ProfileFields {
	return model.ProfileFields{
		Name:     d.Name,
		Email:    d.Email,
		Phone:    d.Phone,
		Birthday: d.Birthday,
		Gender:   d.Gender,
	}
}

func draftOf(u *model.User) Draft {
	gender := u.Gender
	if gender == "" {
		gender = model.GenderMale
	}
	return Draft{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Birthday: u.Birthday,
		Gender:   gender,
	}
}

// DraftPatch: field nil = giữ nguyên
type DraftPatch struct {
	Name     *string       `json:"name"`
	Email    *string       `json:"email"`
	Phone    *string       `json:"phone"`
	Birthday *string       `json:"birthday"`
	Gender   *model.Gender `json:"gender"`
}

func (p DraftPatch) applyTo(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Birthday != nil {
		d.Birthday = *p.Birthday
	}
	if p.Gender != nil {
		d.Gender = *p.Gender
	}
	return d
}

// EditorView là trạng thái editor trả về cho shell
type EditorView struct {
	Draft    Draft  `json:"draft"`
	Saving   bool   `json:"saving"`
	Revision uint64 `json:"revision"` // revision của bản committed mà draft lấy từ
}
