package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	addressModel "techstore-backend/internal/domains/address/model"
	chatService "techstore-backend/internal/domains/chat/service"
	notificationService "techstore-backend/internal/domains/notification/service"
	orderModel "techstore-backend/internal/domains/order/model"
	userModel "techstore-backend/internal/domains/user/model"
	userService "techstore-backend/internal/domains/user/service"
)

const publishTimeout = 3 * time.Second

// Publisher nhận User committed sau mỗi lần thay record
type Publisher interface {
	PublishUser(ctx context.Context, sessionID string, u *userModel.User) error
	Forget(ctx context.Context, sessionID string) error
}

// Session là state của một shopper: User committed, feed, chat, profile draft.
// Mọi thay đổi User đi qua Apply/Replace dưới mu, thay record trong một bước.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	user     *userModel.User
	orders   []orderModel.Order
	closed   bool
	lastSeen time.Time

	editor *userService.ProfileEditor
	feed   *notificationService.Feed
	chat   *chatService.Controller

	publisher Publisher
	dirty     chan struct{}
	stop      chan struct{}
	loopDone  chan struct{}
}

func newSession(id string, seed Seed, deps sessionDeps, now time.Time) *Session {
	u := seed.User.Clone()
	u.Addresses = addressModel.EnforceSingleDefault(u.Addresses)
	u.Revision = 1

	s := &Session{
		ID:        id,
		CreatedAt: now,
		user:      u,
		orders:    orderModel.Clone(seed.Orders),
		lastSeen:  now,
		editor:    userService.NewProfileEditor(u),
		feed:      notificationService.NewFeed(seed.Notifications...),
		chat:      chatService.NewController(id, deps.answerer, deps.greeting),
		publisher: deps.publisher,
	}

	if s.publisher != nil {
		s.dirty = make(chan struct{}, 1)
		s.stop = make(chan struct{})
		s.loopDone = make(chan struct{})
		go s.publishLoop()
		s.markDirty()
	}

	return s
}

// CurrentUser trả về record committed; caller không được sửa
func (s *Session) CurrentUser() *userModel.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Apply chạy fn trên record hiện tại rồi thay record bằng kết quả.
// fn trả nil → không đổi, revision giữ nguyên.
func (s *Session) Apply(fn func(current *userModel.User) (*userModel.User, error)) (*userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	next, err := fn(s.user)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return s.user, nil
	}

	s.commitLocked(next)
	return next, nil
}

// Replace nhận snapshot authoritative từ bên ngoài (tab khác đã lưu...).
// Snapshot thiếu name/email bị từ chối giống seed lúc mở session.
func (s *Session) Replace(u *userModel.User) (*userModel.User, error) {
	if len(MissingIdentity(u)) > 0 {
		return nil, ErrInvalidUser
	}
	return s.Apply(func(*userModel.User) (*userModel.User, error) {
		next := u.Clone()
		next.Addresses = addressModel.EnforceSingleDefault(next.Addresses)
		return next, nil
	})
}

func (s *Session) commitLocked(next *userModel.User) {
	next.Revision = s.user.Revision + 1
	s.user = next
	s.editor.Sync(next)
	s.markDirty()

	log.Debug().
		Str("session_id", s.ID).
		Uint64("revision", next.Revision).
		Msg("User record replaced")
}

func (s *Session) Editor() *userService.ProfileEditor { return s.editor }

func (s *Session) Feed() *notificationService.Feed { return s.feed }

func (s *Session) Chat() *chatService.Controller { return s.chat }

// Orders trả về bản copy lịch sử đơn hàng
func (s *Session) Orders() []orderModel.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderModel.Clone(s.orders)
}

// Stats tính lại mỗi lần gọi
func (s *Session) Stats() orderModel.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return orderModel.Summarize(s.orders)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tháo session: chat bỏ qua câu trả lời về muộn, publish loop dừng.
// Gọi nhiều lần an toàn.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.chat.Close()

	if s.publisher == nil {
		return
	}
	close(s.stop)
	<-s.loopDone

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.publisher.Forget(ctx, s.ID); err != nil {
		log.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to forget user snapshot")
	}
}

// ================================================
// PUBLISH LOOP
// ================================================

// markDirty không block: nhiều commit liên tiếp gộp thành một lần publish bản mới nhất
func (s *Session) markDirty() {
	if s.dirty == nil {
		return
	}
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Session) publishLoop() {
	defer close(s.loopDone)

	for {
		select {
		case <-s.stop:
			return
		case <-s.dirty:
			s.publishLatest()
		}
	}
}

func (s *Session) publishLatest() {
	u := s.CurrentUser()

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishUser(ctx, s.ID, u); err != nil {
		log.Warn().
			Err(err).
			Str("session_id", s.ID).
			Uint64("revision", u.Revision).
			Msg("Failed to publish user snapshot")
	}
}
