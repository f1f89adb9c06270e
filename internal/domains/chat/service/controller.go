package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"techstore-backend/internal/domains/chat/model"
)

// Controller quản lý transcript của một chat session.
// Máy trạng thái hai trạng thái Idle / AwaitingAnswer; busy flag là guard duy nhất:
// tối đa một request in-flight, submit thứ hai bị bỏ chứ không xếp hàng.
type Controller struct {
	mu         sync.Mutex
	answerer   Answerer
	transcript []model.Message
	state      model.State
	closed     bool
	done       chan struct{} // đóng khi request in-flight resolve
	sessionID  string
}

// NewController tạo controller; greeting rỗng thì transcript bắt đầu trống
func NewController(sessionID string, answerer Answerer, greeting string) *Controller {
	c := &Controller{
		answerer:   answerer,
		transcript: []model.Message{},
		state:      model.StateIdle,
		sessionID:  sessionID,
	}
	if strings.TrimSpace(greeting) != "" {
		c.transcript = append(c.transcript, model.Message{Role: model.RoleAI, Content: greeting})
	}
	return c
}

// Submit append câu hỏi của user và gọi answer service bất đồng bộ.
// Trả lỗi khi input rỗng, đang chờ câu trả lời, hoặc session đã đóng.
func (c *Controller) Submit(text string) error {
	query := strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrSessionClosed
	}
	if query == "" {
		return ErrEmptyQuery
	}
	if c.state == model.StateAwaitingAnswer {
		return ErrAwaitingAnswer
	}

	c.transcript = append(c.transcript, model.Message{Role: model.RoleUser, Content: query})
	c.state = model.StateAwaitingAnswer
	done := make(chan struct{})
	c.done = done

	go c.resolve(query, done)

	return nil
}

// resolve chạy answer service tới khi xong; không timeout, không cancel phía core
func (c *Controller) resolve(query string, done chan struct{}) {
	answer, err := c.ask(query)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(done)

	if c.closed {
		log.Debug().Str("session_id", c.sessionID).Msg("Chat answer arrived after session closed, dropped")
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("session_id", c.sessionID).Msg("Answer service failed")
		answer = model.Apology
	}

	c.transcript = append(c.transcript, model.Message{Role: model.RoleAI, Content: answer})
	c.state = model.StateIdle
}

// ask gọi answerer trên context tách khỏi request đã submit; panic được coi như lỗi
func (c *Controller) ask(query string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("answer service panicked: %v", r)
		}
	}()
	return c.answerer.Ask(context.Background(), query)
}

// Snapshot trả về bản copy transcript và trạng thái
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	transcript := make([]model.Message, len(c.transcript))
	copy(transcript, c.transcript)

	return model.Snapshot{
		Transcript: transcript,
		State:      c.state,
		Pending:    c.state == model.StateAwaitingAnswer,
	}
}

// Wait trả về channel đóng khi request in-flight resolve; idle thì đã đóng sẵn
func (c *Controller) Wait() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == model.StateAwaitingAnswer && c.done != nil {
		return c.done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// Close tháo session; câu trả lời về sau bị bỏ qua
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
