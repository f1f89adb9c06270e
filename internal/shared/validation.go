package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError liệt kê các field thiếu hoặc sai, đã sort theo tên
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// IsValidationError kiểm tra có phải ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidationFields trả về danh sách field lỗi, nil nếu không phải ValidationError
func ValidationFields(err error) []string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return nil
}

// FromValidation chuyển validation.Errors (ozzo) sang ValidationError.
// Các lỗi khác (internal) được trả nguyên.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)

	return &ValidationError{Fields: fields}
}
