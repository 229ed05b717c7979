package api

import (
	"errors"
	"io"
	"net/http"

	"tourdesk/internal/domain/booking"
	reqdto "tourdesk/internal/handler/dto/request"
	resdto "tourdesk/internal/handler/dto/response"
	"tourdesk/internal/handler/httperr"
	"tourdesk/internal/handler/middleware"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WorkflowHandler struct {
	workflow usecase.WorkflowUseCase
}

func NewWorkflowHandler(workflow usecase.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

// Transition returns the handler for one workflow event. The route table
// binds each event to its own path so the API reads as verbs
// (POST /bookings/:id/confirm) while the handling stays uniform.
func (h *WorkflowHandler) Transition(event booking.Event) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseBookingID(c)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
			return
		}

		actorID, ok := middleware.GetUserID(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrTokenValidation, "Unauthorized", nil)
			return
		}

		var req reqdto.TransitionRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil && !errors.Is(bindErr, io.EOF) {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}

		result, err := h.workflow.Apply(c.Request.Context(), usecase.TransitionInput{
			BookingID:       id,
			Event:           event,
			ActorID:         actorID,
			PaymentPassword: req.PaymentPassword,
		})
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrBookingNotFound):
				httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			case errors.Is(err, errs.ErrInvalidTransition):
				httperr.AbortWithError(c, http.StatusConflict, err, "Transition not allowed from current status", nil)
			case errors.Is(err, errs.ErrGuardFailed):
				httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Transition requirements not met", nil)
			case errors.Is(err, errs.ErrConcurrentUpdate):
				httperr.AbortWithError(c, http.StatusConflict, err, "Booking was updated concurrently, retry", nil)
			case errors.Is(err, errs.ErrPaymentPassword):
				httperr.AbortWithError(c, http.StatusForbidden, err, "Payment password required or incorrect", nil)
			default:
				httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			}
			return
		}

		c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
	}
}
