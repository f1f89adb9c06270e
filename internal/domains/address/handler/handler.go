package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	a "techstore-backend/internal/domains/address"
	"techstore-backend/internal/domains/address/model"
	"techstore-backend/internal/domains/address/service"
	"techstore-backend/internal/domains/session"
	"techstore-backend/internal/shared"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/internal/shared/response"
)

type AddressHandler struct {
	service service.ServiceInterface
}

func NewAddressHandler(service service.ServiceInterface) *AddressHandler {
	return &AddressHandler{
		service: service,
	}
}

// ListAddresses handles GET /session/addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	results := h.service.List(c.Request.Context(), s)

	response.Success(c, http.StatusOK, "Addresses retrieved successfully", gin.H{
		"addresses": results,
		"total":     len(results),
	})
}

// GetDefaultAddress handles GET /session/addresses/default
func (h *AddressHandler) GetDefaultAddress(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	result, err := h.service.GetDefault(c.Request.Context(), s)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Default address retrieved successfully", result)
}

// CreateAddress handles POST /session/addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	h.save(c, "")
}

// UpdateAddress handles PUT /session/addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *AddressHandler) save(c *gin.Context, editingID string) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var form model.AddressForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", "BAD_REQUEST")
		return
	}

	result, err := h.service.AddOrUpdate(c.Request.Context(), s, form, editingID)
	if err != nil {
		writeError(c, err)
		return
	}

	switch {
	case editingID == "" && result.Changed:
		response.Success(c, http.StatusCreated, "Address created successfully", result)
	case !result.Changed:
		response.Success(c, http.StatusOK, "Address not found, nothing changed", result)
	default:
		response.Success(c, http.StatusOK, "Address updated successfully", result)
	}
}

// DeleteAddress handles DELETE /session/addresses/:id
// Không cho xoá default khi user còn address khác.
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	result, err := h.service.Remove(c.Request.Context(), s, c.Param("id"), service.KeepDefault)
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Address deleted successfully"
	if !result.Changed {
		message = "Address not found, nothing changed"
	}
	response.Success(c, http.StatusOK, message, result)
}

// SetDefaultAddress handles PUT /session/addresses/:id/default
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	result, err := h.service.SetDefault(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Default address updated successfully"
	if result.Address == nil {
		message = "Address not found, nothing changed"
	}
	response.Success(c, http.StatusOK, message, result)
}

// Helper: map domain error sang HTTP response
func writeError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrSessionClosed) {
		response.Error(c, http.StatusGone, "Session is closed", "SESSION_CLOSED")
		return
	}

	statusCode, message, code := a.MapErrorToHTTP(err)
	if code == a.CodeValidation {
		response.ValidationFailed(c, message, shared.ValidationFields(err))
		return
	}
	response.Error(c, statusCode, message, code)
}
