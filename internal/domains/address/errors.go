package address

import (
	"errors"
	"fmt"
	"net/http"

	"techstore-backend/internal/shared"
)

// AddressError định nghĩa base error cho address domain
type AddressError struct {
	Code    string
	Message string
	Err     error
}

// Error implements error interface
func (e *AddressError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *AddressError) Unwrap() error {
	return e.Err
}

const (
	CodeAddressNotFound     = "ADDRESS_NOT_FOUND"
	CodeCannotDeleteDefault = "CANNOT_DELETE_DEFAULT"
	CodeUserHasNoAddress    = "USER_HAS_NO_ADDRESS"
	CodeSaveAddress         = "SAVE_ADDRESS_ERROR"
	CodeValidation          = "VALIDATION_ERROR"
)

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewAddressNotFound tạo error "address not found"
func NewAddressNotFound(id string) *AddressError {
	return &AddressError{
		Code:    CodeAddressNotFound,
		Message: fmt.Sprintf("Address %s not found", id),
	}
}

// NewCannotDeleteDefault tạo error khi xoá address default mà user còn address khác
func NewCannotDeleteDefault(id string) *AddressError {
	return &AddressError{
		Code:    CodeCannotDeleteDefault,
		Message: fmt.Sprintf("Address %s is the default address; choose another default before deleting it", id),
	}
}

// NewUserHasNoAddress tạo error "user has no default address"
func NewUserHasNoAddress() *AddressError {
	return &AddressError{
		Code:    CodeUserHasNoAddress,
		Message: "User has no default address",
	}
}

// NewSaveAddressError bọc lỗi khi commit sổ địa chỉ về user
func NewSaveAddressError(err error) *AddressError {
	return &AddressError{
		Code:    CodeSaveAddress,
		Message: "Failed to save address book",
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func hasCode(err error, code string) bool {
	var addrErr *AddressError
	return errors.As(err, &addrErr) && addrErr.Code == code
}

// IsAddressNotFound kiểm tra có phải "not found" error
func IsAddressNotFound(err error) bool {
	return hasCode(err, CodeAddressNotFound)
}

// IsCannotDeleteDefault kiểm tra có phải "cannot delete default" error
func IsCannotDeleteDefault(err error) bool {
	return hasCode(err, CodeCannotDeleteDefault)
}

// IsDomainError kiểm tra có phải AddressError
func IsDomainError(err error) bool {
	var addrErr *AddressError
	return errors.As(err, &addrErr)
}

// GetErrorCode lấy error code từ error
func GetErrorCode(err error) string {
	if shared.IsValidationError(err) {
		return CodeValidation
	}
	var addrErr *AddressError
	if errors.As(err, &addrErr) {
		return addrErr.Code
	}
	return "UNKNOWN_ERROR"
}

// GetErrorMessage lấy error message từ error
func GetErrorMessage(err error) string {
	var addrErr *AddressError
	if errors.As(err, &addrErr) {
		return addrErr.Message
	}
	return err.Error()
}

// MapErrorToHTTP trả về status, message, code cho error
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	switch {
	case shared.IsValidationError(err):
		return http.StatusUnprocessableEntity, "Required address fields are missing", CodeValidation

	case IsAddressNotFound(err):
		return http.StatusNotFound, GetErrorMessage(err), CodeAddressNotFound

	case IsCannotDeleteDefault(err):
		return http.StatusConflict, GetErrorMessage(err), CodeCannotDeleteDefault

	case hasCode(err, CodeUserHasNoAddress):
		return http.StatusNotFound, GetErrorMessage(err), CodeUserHasNoAddress

	case IsDomainError(err):
		return http.StatusInternalServerError, GetErrorMessage(err), GetErrorCode(err)

	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
