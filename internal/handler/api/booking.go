package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "tourdesk/internal/handler/dto/response"
	"tourdesk/internal/handler/httperr"
	"tourdesk/internal/handler/middleware"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookings  usecase.BookingUseCase
	documents usecase.DocumentUseCase
}

func NewBookingHandler(bookings usecase.BookingUseCase, documents usecase.DocumentUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings, documents: documents}
}

// @Summary Get booking
// @Description Get a booking with its customer
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	view, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List booking activity
// @Description List the audit trail for a booking, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {array} resdto.ActivityEntryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/activity [get]
func (h *BookingHandler) ListActivity(c *gin.Context) {
	id, err := parseBookingID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	var limit int32
	if raw := c.Query("limit"); raw != "" {
		parsed, parseErr := strconv.ParseInt(raw, 10, 32)
		if parseErr != nil || parsed < 0 {
			if parseErr == nil {
				parseErr = errs.New("limit must be non-negative")
			}
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid limit", nil)
			return
		}
		limit = int32(parsed)
	}

	entries, err := h.bookings.ListActivity(c.Request.Context(), id, limit)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromActivityEntries(entries))
}

// @Summary Issue share link
// @Description Issue a public share link for the booking's current document
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 201 {object} resdto.ShareLinkResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/share-link [post]
func (h *BookingHandler) IssueShareLink(c *gin.Context) {
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

	link, err := h.documents.IssueShareLink(c.Request.Context(), id, actorID)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromShareLink(link))
}

func parseBookingID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
