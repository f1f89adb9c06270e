package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techstore-backend/internal/config"
)

type stubGenerator struct {
	text    string
	err     error
	prompts []string
	hadDL   bool
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	_, g.hadDL = ctx.Deadline()
	return g.text, g.err
}

func TestRecommendationPrompt(t *testing.T) {
	p := RecommendationPrompt("Top bàn phím cơ 2tr", nil)
	assert.Contains(t, p, `"Top bàn phím cơ 2tr"`)
	assert.Contains(t, p, "giỏ hàng: Trống")
	assert.Contains(t, p, "3 gợi ý")

	p = RecommendationPrompt("x", []string{"MacBook Air M3", "Magic Mouse"})
	assert.Contains(t, p, "MacBook Air M3, Magic Mouse")
}

func TestAsk(t *testing.T) {
	gen := &stubGenerator{text: "3 gợi ý..."}
	s := NewGeminiServiceWithGenerator(gen, 10*time.Second)

	answer, err := s.Ask(context.Background(), "Top bàn phím cơ 2tr")
	require.NoError(t, err)
	assert.Equal(t, "3 gợi ý...", answer)
	assert.True(t, gen.hadDL, "provider call carries a timeout")
	require.Len(t, gen.prompts, 1)
}

func TestAsk_EmptyTextFallsBack(t *testing.T) {
	s := NewGeminiServiceWithGenerator(&stubGenerator{text: "  "}, 0)
	answer, err := s.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, NoSuggestion, answer)
}

func TestAsk_ErrorIsReturned(t *testing.T) {
	boom := errors.New("quota exceeded")
	s := NewGeminiServiceWithGenerator(&stubGenerator{err: boom}, 0)
	_, err := s.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
}

func TestMissingAPIKey(t *testing.T) {
	s, err := NewGeminiService(context.Background(), config.GeminiConfig{Model: "gemini-3-flash-preview"})
	require.NoError(t, err)

	_, err = s.Ask(context.Background(), "q")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, NoAnalysis, s.AnalyzeProduct(context.Background(), "iPhone 15"))
}

func TestAnalyzeProduct(t *testing.T) {
	gen := &stubGenerator{text: "- Ưu: pin tốt"}
	s := NewGeminiServiceWithGenerator(gen, 0)

	assert.Equal(t, "- Ưu: pin tốt", s.AnalyzeProduct(context.Background(), "MacBook Air M3"))
	assert.Contains(t, gen.prompts[0], "MacBook Air M3")

	gen.text = ""
	assert.Equal(t, NoAnalysis, s.AnalyzeProduct(context.Background(), "x"))
}
