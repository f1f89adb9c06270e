package service

import (
	"context"

	"techstore-backend/internal/domains/address/model"
	"techstore-backend/internal/domains/user"
)

// MutationResult là sổ địa chỉ sau thao tác.
// Changed = false khi thao tác là no-op (id không tồn tại, đã đúng trạng thái).
type MutationResult struct {
	Addresses []model.Address `json:"addresses"`
	Address   *model.Address  `json:"address,omitempty"`
	Changed   bool            `json:"changed"`
}

// RemovePolicy là chính sách của caller khi xoá address default
type RemovePolicy int

const (
	// AllowDefault cho phép xoá default, address đầu tiên còn lại được đôn lên
	AllowDefault RemovePolicy = iota
	// KeepDefault từ chối xoá default khi user còn address khác
	KeepDefault
)

// ServiceInterface defines all business logic operations for Address domain
type ServiceInterface interface {
	// List trả về sổ địa chỉ hiện tại của user
	List(ctx context.Context, owner user.Owner) []model.Address

	// GetDefault trả về address default
	GetDefault(ctx context.Context, owner user.Owner) (*model.Address, error)

	// AddOrUpdate thêm mới (editingID rỗng) hoặc sửa tại chỗ
	AddOrUpdate(ctx context.Context, owner user.Owner, form model.AddressForm, editingID string) (*MutationResult, error)

	// Remove xoá address theo id
	Remove(ctx context.Context, owner user.Owner, id string, policy RemovePolicy) (*MutationResult, error)

	// SetDefault đặt address làm default duy nhất
	SetDefault(ctx context.Context, owner user.Owner, id string) (*MutationResult, error)
}
