package handler

import (
	"context"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"techstore-backend/internal/shared"
	"techstore-backend/internal/shared/response"
)

// ProductAnalyzer phân tích sản phẩm; luôn trả về text (fallback khi lỗi)
type ProductAnalyzer interface {
	AnalyzeProduct(ctx context.Context, productName string) string
}

type AIHandler struct {
	analyzer ProductAnalyzer
}

func NewAIHandler(analyzer ProductAnalyzer) *AIHandler {
	return &AIHandler{analyzer: analyzer}
}

type AnalyzeRequest struct {
	ProductName string `json:"product_name"`
}

func (r AnalyzeRequest) Validate() error {
	r.ProductName = strings.TrimSpace(r.ProductName)
	return shared.FromValidation(validation.ValidateStruct(&r,
		validation.Field(&r.ProductName, validation.Required, validation.Length(1, 200)),
	))
}

// AnalyzeProduct handles POST /ai/analyze
func (h *AIHandler) AnalyzeProduct(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, "Product name is required", shared.ValidationFields(err))
		return
	}

	name := strings.TrimSpace(req.ProductName)
	analysis := h.analyzer.AnalyzeProduct(c.Request.Context(), name)

	response.Success(c, http.StatusOK, "Product analyzed", gin.H{
		"product_name": name,
		"analysis":     analysis,
	})
}
