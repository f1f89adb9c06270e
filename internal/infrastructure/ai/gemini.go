package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"techstore-backend/internal/config"
)

const (
	// NoSuggestion khi provider trả về text rỗng
	NoSuggestion = "Xin lỗi, tôi không thể đưa ra gợi ý lúc này."
	// NoAnalysis khi phân tích sản phẩm thất bại
	NoAnalysis = "Không có dữ liệu phân tích."
)

var ErrMissingAPIKey = errors.New("gemini api key is missing")

// Generator là một lần gọi text generation
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// =============================================================================
// GOOGLE GENAI GENERATOR
// =============================================================================

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// =============================================================================
// GEMINI SERVICE
// =============================================================================

// GeminiService là answer service của chat và bộ phân tích sản phẩm
type GeminiService struct {
	gen     Generator
	timeout time.Duration
}

// NewGeminiService tạo client khi có API key.
// Không có key thì service vẫn được tạo, mỗi lần gọi trả ErrMissingAPIKey.
func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (*GeminiService, error) {
	s := &GeminiService{timeout: cfg.Timeout}
	if cfg.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is missing, AI answers will fail")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	s.gen = &genaiGenerator{client: client, model: cfg.Model}
	return s, nil
}

// NewGeminiServiceWithGenerator dùng cho generator tuỳ chỉnh
func NewGeminiServiceWithGenerator(gen Generator, timeout time.Duration) *GeminiService {
	return &GeminiService{gen: gen, timeout: timeout}
}

func (s *GeminiService) call(ctx context.Context, prompt string) (string, error) {
	if s.gen == nil {
		return "", ErrMissingAPIKey
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.gen.Generate(ctx, prompt)
}

// Ask trả lời câu hỏi mua sắm; lỗi được trả nguyên cho chat controller
func (s *GeminiService) Ask(ctx context.Context, query string) (string, error) {
	text, err := s.call(ctx, RecommendationPrompt(query, nil))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return NoSuggestion, nil
	}
	return text, nil
}

// AnalyzeProduct phân tích ưu nhược điểm; không bao giờ trả lỗi
func (s *GeminiService) AnalyzeProduct(ctx context.Context, productName string) string {
	text, err := s.call(ctx, AnalysisPrompt(productName))
	if err != nil {
		log.Warn().Err(err).Str("product", productName).Msg("Product analysis failed")
		return NoAnalysis
	}
	if strings.TrimSpace(text) == "" {
		return NoAnalysis
	}
	return text
}

// =============================================================================
// PROMPTS
// =============================================================================

// RecommendationPrompt bọc câu hỏi vào prompt trợ lý mua sắm
func RecommendationPrompt(query string, cart []string) string {
	cartText := "Trống"
	if len(cart) > 0 {
		cartText = strings.Join(cart, ", ")
	}

	var b strings.Builder
	b.WriteString("Bạn là một trợ lý mua sắm công nghệ cao cấp tại TechStore AI.\n")
	fmt.Fprintf(&b, "Dựa trên yêu cầu của khách hàng: %q.\n", query)
	fmt.Fprintf(&b, "Và các sản phẩm đang có trong giỏ hàng: %s.\n", cartText)
	b.WriteString("Hãy đưa ra 3 gợi ý sản phẩm phù hợp nhất kèm theo lý do tại sao chúng lại phù hợp (tối đa 2 câu mỗi sản phẩm).\n")
	b.WriteString("Phong cách trả lời: Chuyên nghiệp, hiện đại, tin cậy.")
	return b.String()
}

func AnalysisPrompt(productName string) string {
	return fmt.Sprintf("Phân tích ưu nhược điểm và đối tượng sử dụng phù hợp cho sản phẩm: %s. Trả lời ngắn gọn bằng các gạch đầu dòng.", productName)
}
