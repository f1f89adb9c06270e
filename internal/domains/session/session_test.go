package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	addressModel "techstore-backend/internal/domains/address/model"
	chatModel "techstore-backend/internal/domains/chat/model"
	chatService "techstore-backend/internal/domains/chat/service"
	notificationModel "techstore-backend/internal/domains/notification/model"
	orderModel "techstore-backend/internal/domains/order/model"
	userModel "techstore-backend/internal/domains/user/model"
)

type fakePublisher struct {
	mu        sync.Mutex
	revisions []uint64
	forgotten []string
	err       error
}

func (p *fakePublisher) PublishUser(_ context.Context, _ string, u *userModel.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revisions = append(p.revisions, u.Revision)
	return p.err
}

func (p *fakePublisher) Forget(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forgotten = append(p.forgotten, id)
	return nil
}

func (p *fakePublisher) last() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.revisions) == 0 {
		return 0
	}
	return p.revisions[len(p.revisions)-1]
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func seed() Seed {
	return Seed{
		User: &userModel.User{
			Name:  "Nguyễn Minh",
			Email: "minh@example.com",
			Rank:  userModel.RankSilver,
			Addresses: []addressModel.Address{
				{ID: "a1", Name: "Nhà", IsDefault: true},
				{ID: "a2", Name: "Công ty", IsDefault: true},
			},
		},
		Notifications: []notificationModel.Notification{
			{ID: "n1", Title: "Đơn hàng đang giao", Type: notificationModel.NotificationTypeOrder},
		},
		Orders: []orderModel.Order{
			{ID: "ORD-1", Total: decimal.NewFromInt(1500000)},
			{ID: "ORD-2", Total: decimal.NewFromInt(500000)},
		},
	}
}

func echoAnswerer() chatService.Answerer {
	return chatService.AnswererFunc(func(_ context.Context, q string) (string, error) {
		return "re: " + q, nil
	})
}

func newTestStore(pub Publisher, c *clock) *Store {
	cfg := StoreConfig{
		TTL:      time.Hour,
		Answerer: echoAnswerer(),
		Greeting: "Xin chào!",
	}
	if pub != nil {
		cfg.Publisher = pub
	}
	if c != nil {
		cfg.Now = c.Now
	}
	return NewStore(cfg)
}

func TestCreate_NormalizesSeed(t *testing.T) {
	st := newTestStore(nil, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	u := s.CurrentUser()
	assert.Equal(t, uint64(1), u.Revision)
	assert.Equal(t, 1, addressModel.CountDefaults(u.Addresses))
	assert.True(t, u.Addresses[0].IsDefault)

	assert.Equal(t, 1, s.Feed().UnreadCount())
	assert.Equal(t, 2, s.Stats().OrderCount)
	assert.Equal(t, "2000000", s.Stats().TotalSpent.String())
	assert.Equal(t, "Nguyễn Minh", s.Editor().View().Draft.Name)

	snap := s.Chat().Snapshot()
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, chatModel.RoleAI, snap.Transcript[0].Role)
}

func TestCreate_RejectsIncompleteSeed(t *testing.T) {
	st := newTestStore(nil, nil)

	_, err := st.Create(Seed{})
	assert.ErrorIs(t, err, ErrInvalidSeed)

	_, err = st.Create(Seed{User: &userModel.User{Name: "Minh"}})
	assert.ErrorIs(t, err, ErrInvalidSeed)
	assert.Equal(t, 0, st.Len())
}

func TestApply_ReplacesRecordAndResyncsEditor(t *testing.T) {
	st := newTestStore(nil, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	before := s.CurrentUser()
	updated, err := s.Apply(func(cur *userModel.User) (*userModel.User, error) {
		next := cur.Clone()
		next.Name = "Minh Nguyễn"
		return next, nil
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), updated.Revision)
	assert.Equal(t, "Nguyễn Minh", before.Name, "old record untouched")
	assert.Equal(t, "Minh Nguyễn", s.Editor().View().Draft.Name)
	assert.Equal(t, uint64(2), s.Editor().View().Revision)
}

func TestApply_NoOpAndErrorKeepRevision(t *testing.T) {
	st := newTestStore(nil, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	u, err := s.Apply(func(*userModel.User) (*userModel.User, error) { return nil, nil })
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.Revision)

	boom := errors.New("boom")
	_, err = s.Apply(func(*userModel.User) (*userModel.User, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), s.CurrentUser().Revision)
}

func TestReplace_ExternalSnapshot(t *testing.T) {
	st := newTestStore(nil, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	external := &userModel.User{
		Name:  "Saved elsewhere",
		Email: "minh@example.com",
		Addresses: []addressModel.Address{
			{ID: "x", IsDefault: true},
			{ID: "y", IsDefault: true},
		},
		Revision: 99,
	}
	u, err := s.Replace(external)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), u.Revision, "revision is owned by the session")
	assert.Equal(t, 1, addressModel.CountDefaults(u.Addresses))
	assert.Equal(t, "Saved elsewhere", s.Editor().View().Draft.Name)
	assert.True(t, external.Addresses[1].IsDefault, "input not mutated")
}

func TestReplace_RejectsSnapshotWithoutIdentity(t *testing.T) {
	st := newTestStore(nil, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	before := s.CurrentUser()

	_, err = s.Replace(&userModel.User{})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.Replace(&userModel.User{Name: "  ", Email: "minh@example.com"})
	assert.ErrorIs(t, err, ErrInvalidUser)

	_, err = s.Replace(nil)
	assert.ErrorIs(t, err, ErrInvalidUser)

	assert.Same(t, before, s.CurrentUser())
	assert.Equal(t, before.Name, s.Editor().View().Draft.Name)
}

func TestMissingIdentity(t *testing.T) {
	assert.Equal(t, []string{"email", "name"}, MissingIdentity(nil))
	assert.Equal(t, []string{"email"}, MissingIdentity(&userModel.User{Name: "Minh"}))
	assert.Empty(t, MissingIdentity(&userModel.User{Name: "Minh", Email: "minh@example.com"}))
}

func TestClose_DropsLateChatAnswerAndRejectsMutations(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	st := NewStore(StoreConfig{
		TTL: time.Hour,
		Answerer: chatService.AnswererFunc(func(context.Context, string) (string, error) {
			<-release
			return "late", nil
		}),
	})
	s, err := st.Create(seed())
	require.NoError(t, err)

	require.NoError(t, s.Chat().Submit("Build PC đồ họa giá rẻ"))
	wait := s.Chat().Wait()

	require.NoError(t, st.Close(s.ID))
	close(release)
	<-wait

	snap := s.Chat().Snapshot()
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, chatModel.RoleUser, snap.Transcript[0].Role)

	_, err = s.Apply(func(cur *userModel.User) (*userModel.User, error) { return cur.Clone(), nil })
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, st.Close(s.ID), ErrSessionNotFound)
}

func TestPublisher_ReceivesLatestRevisionAndForget(t *testing.T) {
	defer goleak.VerifyNone(t)

	pub := &fakePublisher{}
	st := newTestStore(pub, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.Apply(func(cur *userModel.User) (*userModel.User, error) { return cur.Clone(), nil })
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool { return pub.last() == 4 }, time.Second, 5*time.Millisecond)

	require.NoError(t, st.Close(s.ID))
	assert.Equal(t, []string{s.ID}, pub.forgotten)
}

func TestPublisher_FailureDoesNotFailCommit(t *testing.T) {
	defer goleak.VerifyNone(t)

	pub := &fakePublisher{err: errors.New("redis down")}
	st := newTestStore(pub, nil)
	s, err := st.Create(seed())
	require.NoError(t, err)
	defer st.CloseAll()

	u, err := s.Apply(func(cur *userModel.User) (*userModel.User, error) { return cur.Clone(), nil })
	require.NoError(t, err)
	assert.Equal(t, uint64(2), u.Revision)
}

func TestSweep_ClosesIdleSessions(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	st := newTestStore(nil, c)

	idle, err := st.Create(seed())
	require.NoError(t, err)
	c.Advance(40 * time.Minute)
	active, err := st.Create(seed())
	require.NoError(t, err)

	c.Advance(30 * time.Minute)
	_, err = st.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, st.Sweep(c.Now()))
	assert.True(t, idle.IsClosed())
	assert.False(t, active.IsClosed())

	_, err = st.FeedFor(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	feed, err := st.FeedFor(active.ID)
	require.NoError(t, err)
	assert.Same(t, active.Feed(), feed)

	st.CloseAll()
	assert.Equal(t, 0, st.Len())
	assert.True(t, active.IsClosed())
}
