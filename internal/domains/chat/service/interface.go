package service

import (
	"context"
	"errors"
)

// Answerer là answer service bên ngoài: gửi câu hỏi, nhận câu trả lời hoặc lỗi.
// Controller không phân biệt loại lỗi và không retry.
type Answerer interface {
	Ask(ctx context.Context, query string) (string, error)
}

// AnswererFunc adapter cho function thường
type AnswererFunc func(ctx context.Context, query string) (string, error)

func (f AnswererFunc) Ask(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrAwaitingAnswer = errors.New("an answer is still pending")
	ErrSessionClosed  = errors.New("chat session is closed")
)
