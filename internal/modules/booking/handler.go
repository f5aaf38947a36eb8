package booking

import (
	"errors"
	"net/http"

	"errorfree/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.SubmitBooking)
	rg.GET("/bookings", h.ListByEmail)
	rg.GET("/bookings/confirm", h.ConfirmCallback)
	rg.GET("/bookings/cancel", h.CancelCallback)
}

func (h *Handler) SubmitBooking(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.SubmitBooking(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ConfirmCallback is where the provider's success URL lands, carrying the
// session id as a query parameter.
func (h *Handler) ConfirmCallback(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "session_id is required")
		return
	}

	b, err := h.service.ConfirmFromCallback(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelCallback(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "session_id is required")
		return
	}

	b, err := h.service.CancelFromCallback(c.Request.Context(), sessionID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListByEmail(c *gin.Context) {
	rows, err := h.service.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

// writeError maps service errors to the response envelope. External causes
// are logged by the service and never echoed to the user.
func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *ValidationError
	var ese *ExternalServiceError

	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Please correct the highlighted fields", ve.Fields)
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrDuplicateSubmission):
		response.Error(c, http.StatusConflict, "DUPLICATE_SUBMISSION",
			"This booking has already been submitted")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS",
			"Booking is not in a state that allows this change")
	case errors.Is(err, ErrPaymentIncomplete):
		response.Error(c, http.StatusConflict, "PAYMENT_INCOMPLETE",
			"Payment has not completed for this booking")
	case errors.Is(err, ErrIntegrity):
		response.Error(c, http.StatusInternalServerError, "INTEGRITY_ERROR",
			"Booking records are inconsistent, please contact support")
	case errors.As(err, &ese):
		response.Error(c, http.StatusBadGateway, "EXTERNAL_SERVICE_ERROR",
			"Something went wrong on our side, please try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Something went wrong, please try again")
	}
}
