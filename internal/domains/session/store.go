package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	chatService "techstore-backend/internal/domains/chat/service"
	notificationModel "techstore-backend/internal/domains/notification/model"
	notificationService "techstore-backend/internal/domains/notification/service"
	orderModel "techstore-backend/internal/domains/order/model"
	userModel "techstore-backend/internal/domains/user/model"
)

// Seed là dữ liệu storefront giao cho session lúc mở
type Seed struct {
	User          *userModel.User                  `json:"user"`
	Notifications []notificationModel.Notification `json:"notifications"`
	Orders        []orderModel.Order               `json:"orders"`
}

func (s Seed) validate() error {
	if len(MissingIdentity(s.User)) > 0 {
		return ErrInvalidSeed
	}
	return nil
}

// MissingIdentity trả về các field định danh còn trống (name, email), đã sort
func MissingIdentity(u *userModel.User) []string {
	if u == nil {
		return []string{"email", "name"}
	}
	var missing []string
	if strings.TrimSpace(u.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(u.Name) == "" {
		missing = append(missing, "name")
	}
	return missing
}

type sessionDeps struct {
	answerer  chatService.Answerer
	greeting  string
	publisher Publisher
}

// StoreConfig cấu hình Store
type StoreConfig struct {
	TTL       time.Duration
	Answerer  chatService.Answerer
	Greeting  string
	Publisher Publisher // nil = không publish
	Now       func() time.Time
	NewID     func() string
}

// Store giữ các session đang sống trong memory
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	deps     sessionDeps
	now      func() time.Time
	newID    func() string
}

func NewStore(cfg StoreConfig) *Store {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      cfg.TTL,
		deps: sessionDeps{
			answerer:  cfg.Answerer,
			greeting:  cfg.Greeting,
			publisher: cfg.Publisher,
		},
		now:   cfg.Now,
		newID: cfg.NewID,
	}
}

// Create mở session mới từ seed; User được chuẩn hoá (một default) với revision 1
func (st *Store) Create(seed Seed) (*Session, error) {
	if err := seed.validate(); err != nil {
		return nil, err
	}

	s := newSession(st.newID(), seed, st.deps, st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	log.Info().
		Str("session_id", s.ID).
		Int("addresses", len(s.user.Addresses)).
		Int("notifications", len(seed.Notifications)).
		Int("orders", len(seed.Orders)).
		Msg("Session created")

	return s, nil
}

// Get trả về session và gia hạn lastSeen
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.now())
	return s, nil
}

// FeedFor dùng cho job notification:deliver; không gia hạn session
func (st *Store) FeedFor(id string) (*notificationService.Feed, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Feed(), nil
}

// Close gỡ session khỏi store và đóng nó
func (st *Store) Close(id string) error {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()

	log.Info().Str("session_id", id).Msg("Session closed")
	return nil
}

// Sweep đóng các session idle quá TTL, trả về số session đã đóng
func (st *Store) Sweep(now time.Time) int {
	var expired []*Session

	st.mu.Lock()
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// CloseAll dùng khi shutdown
func (st *Store) CloseAll() {
	st.mu.Lock()
	all := make([]*Session, 0, len(st.sessions))
	for id, s := range st.sessions {
		all = append(all, s)
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
