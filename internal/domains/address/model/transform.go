package model

import (
	"github.com/google/uuid"
)

// ================================================
// PURE TRANSFORMS OVER AN ADDRESS SET
// ================================================
// Mọi thay đổi sổ địa chỉ đi qua các hàm dưới đây.
// Input không bao giờ bị sửa: kết quả luôn là slice mới.
// Rule "tối đa một default" chỉ được enforce ở đây.

// IDFunc sinh id cho address mới
type IDFunc func() string

// NewAddressID là IDFunc mặc định
func NewAddressID() string {
	return "addr-" + uuid.NewString()
}

// Clone copy cả slice (Address là value type nên copy nông là đủ)
func Clone(set []Address) []Address {
	if set == nil {
		return []Address{}
	}
	out := make([]Address, len(set))
	copy(out, set)
	return out
}

// IndexOf trả về vị trí của id, -1 nếu không có
func IndexOf(set []Address, id string) int {
	for i := range set {
		if set[i].ID == id {
			return i
		}
	}
	return -1
}

// CountDefaults đếm số address đang là default
func CountDefaults(set []Address) int {
	n := 0
	for _, a := range set {
		if a.IsDefault {
			n++
		}
	}
	return n
}

// DefaultOf trả về address default nếu có
func DefaultOf(set []Address) (Address, bool) {
	for _, a := range set {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// AddOrUpdate thêm mới (editingID rỗng) hoặc thay thế tại chỗ address có id = editingID.
// changed = false khi editingID không tồn tại (stale id → no-op).
// Form không hợp lệ → *shared.ValidationError và set cũ.
func AddOrUpdate(set []Address, form AddressForm, editingID string, newID IDFunc) ([]Address, bool, error) {
	if err := form.Validate(); err != nil {
		return Clone(set), false, err
	}
	form = form.Normalize()

	next := Clone(set)
	var target int

	if editingID == "" {
		if newID == nil {
			newID = NewAddressID
		}
		id := newID()
		for id == "" || IndexOf(next, id) >= 0 {
			id = NewAddressID()
		}
		next = append(next, form.toAddress(id))
		target = len(next) - 1
	} else {
		target = IndexOf(next, editingID)
		if target < 0 {
			return next, false, nil
		}
		next[target] = form.toAddress(editingID)
	}

	if next[target].IsDefault {
		next = onlyDefault(next, target)
	}

	return next, true, nil
}

// Remove xoá address có id.
// Nếu address bị xoá là default và set còn phần tử, address đầu tiên còn lại thành default.
func Remove(set []Address, id string) ([]Address, bool) {
	idx := IndexOf(set, id)
	if idx < 0 {
		return Clone(set), false
	}

	wasDefault := set[idx].IsDefault
	next := make([]Address, 0, len(set)-1)
	next = append(next, set[:idx]...)
	next = append(next, set[idx+1:]...)

	if wasDefault && len(next) > 0 {
		next = onlyDefault(next, 0)
	}

	return next, true
}

// SetDefault đặt id làm default duy nhất. id không tồn tại → no-op.
func SetDefault(set []Address, id string) ([]Address, bool) {
	idx := IndexOf(set, id)
	if idx < 0 {
		return Clone(set), false
	}

	changed := !set[idx].IsDefault || CountDefaults(set) != 1
	return onlyDefault(Clone(set), idx), changed
}

// EnforceSingleDefault giữ lại default đầu tiên, bỏ các default thừa.
// Dùng khi nhận dữ liệu từ bên ngoài có thể chứa nhiều default.
func EnforceSingleDefault(set []Address) []Address {
	next := Clone(set)
	for i := range next {
		if next[i].IsDefault {
			return onlyDefault(next, i)
		}
	}
	return next
}

// onlyDefault sửa trực tiếp set (đã là bản copy) để chỉ set[idx] là default
func onlyDefault(set []Address, idx int) []Address {
	for i := range set {
		set[i].IsDefault = i == idx
	}
	return set
}
