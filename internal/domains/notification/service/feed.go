package service

import (
	"sync"

	"techstore-backend/internal/domains/notification/model"
)

// Feed là inbox của một session theo thứ tự nhận vào; feed không bao giờ sắp xếp lại.
// Chỉ event source bên ngoài được thêm item (Receive); phía UI chỉ đánh dấu đã đọc.
type Feed struct {
	mu    sync.RWMutex
	items []model.Notification
}

func NewFeed(items ...model.Notification) *Feed {
	f := &Feed{items: []model.Notification{}}
	f.Receive(items...)
	return f
}

// Receive append các notification mới; id rỗng hoặc trùng bị bỏ qua.
// Trả về số item đã thêm.
func (f *Feed) Receive(items ...model.Notification) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	added := 0
	for _, n := range items {
		if n.ID == "" || f.indexOf(n.ID) >= 0 {
			continue
		}
		f.items = append(f.items, n)
		added++
	}
	return added
}

// MarkAsRead đánh dấu đúng một item. Không có hoặc đã đọc → no-op (changed = false).
// Item trả về (sau khi đánh dấu) để shell điều hướng theo TargetPage/Link.
func (f *Feed) MarkAsRead(id string) (item model.Notification, found bool, changed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.indexOf(id)
	if idx < 0 {
		return model.Notification{}, false, false
	}
	if !f.items[idx].IsRead {
		f.items[idx].IsRead = true
		changed = true
	}
	return f.items[idx], true, changed
}

// MarkAllAsRead đánh dấu tất cả trong một lượt, trả về số item thay đổi
func (f *Feed) MarkAllAsRead() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := 0
	for i := range f.items {
		if !f.items[i].IsRead {
			f.items[i].IsRead = true
			changed++
		}
	}
	return changed
}

// UnreadCount đếm lại mỗi lần gọi, không cache
func (f *Feed) UnreadCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := 0
	for _, item := range f.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// Items trả về bản copy theo thứ tự nhận
func (f *Feed) Items() []model.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) indexOf(id string) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}
