//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/handler/api"
	resdto "tourdesk/internal/handler/dto/response"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"
	"tourdesk/tests/common/builder"
	commonhttp "tourdesk/tests/common/httptest"
	usecasemock "tourdesk/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockBookings  *usecasemock.MockBookingUseCase
	mockDocuments *usecasemock.MockDocumentUseCase
	actorID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = usecasemock.NewMockBookingUseCase(s.mockCtrl)
	s.mockDocuments = usecasemock.NewMockDocumentUseCase(s.mockCtrl)
	s.actorID = uuid.New()

	handler := api.NewBookingHandler(s.mockBookings, s.mockDocuments)

	authed := s.router.Group("/bookings", func(c *gin.Context) {
		c.Set("user_id", s.actorID)
	})
	authed.GET("/:id", handler.Get)
	authed.GET("/:id/activity", handler.ListActivity)
	authed.POST("/:id/share-link", handler.IssueShareLink)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	b, err := builder.NewBookingBuilder().WithStatus(booking.StatusQuoted).BuildDomain()
	s.Require().NoError(err)

	s.mockBookings.EXPECT().
		GetBooking(gomock.Any(), int64(401)).
		Return(&usecase.BookingView{Booking: b}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/401", nil, "")

	var resp resdto.BookingResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(int64(401), resp.ID)
	s.Equal("TD-2025-0401", resp.Reference)
	s.Equal("quoted", resp.Status)
}

func (s *BookingHandlerTestSuite) TestGetBookingNotFound() {
	s.mockBookings.EXPECT().
		GetBooking(gomock.Any(), int64(999)).
		Return(nil, errs.ErrBookingNotFound)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/999", nil, "")

	commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
}

func (s *BookingHandlerTestSuite) TestListActivityWithLimit() {
	bookingID := int64(401)
	entries := []booking.ActivityEntry{
		{
			ID:          2,
			BookingID:   &bookingID,
			Action:      booking.ActionStatusChange,
			Description: "draft → confirmed",
			CreatedAt:   time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		},
	}

	s.mockBookings.EXPECT().
		ListActivity(gomock.Any(), bookingID, int32(10)).
		Return(entries, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/401/activity?limit=10", nil, "")

	var resp []resdto.ActivityEntryResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Require().Len(resp, 1)
	s.Equal(booking.ActionStatusChange, resp[0].Action)
}

func (s *BookingHandlerTestSuite) TestListActivityRejectsBadLimit() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/401/activity?limit=-3", nil, "")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BookingHandlerTestSuite) TestIssueShareLink() {
	expiry := time.Date(2025, 4, 14, 10, 0, 0, 0, time.UTC)

	s.mockDocuments.EXPECT().
		IssueShareLink(gomock.Any(), int64(401), s.actorID).
		Return(&usecase.ShareLink{
			Token:     "fresh-token",
			URL:       "https://booking.example.com/public/booking/fresh-token",
			ExpiresAt: expiry,
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/share-link", nil, "")

	var resp resdto.ShareLinkResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	s.Equal("fresh-token", resp.Token)
	s.Equal("https://booking.example.com/public/booking/fresh-token", resp.URL)
	s.True(expiry.Equal(resp.ExpiresAt))
}

func (s *BookingHandlerTestSuite) TestInvalidBookingID() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-number", nil, "")

	s.Equal(http.StatusBadRequest, w.Code)
}
