package user

import (
	"techstore-backend/internal/domains/user/model"
)

// Owner giữ User record authoritative của một session.
// Apply chạy fn trên bản committed hiện tại và thay record bằng kết quả trong
// một bước duy nhất. fn trả lỗi hoặc nil → record không đổi.
type Owner interface {
	CurrentUser() *model.User
	Apply(fn func(current *model.User) (*model.User, error)) (*model.User, error)
}
