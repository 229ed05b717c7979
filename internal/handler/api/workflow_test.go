//go:build unit

package api_test

import (
	"net/http"
	"testing"

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

type WorkflowHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockWorkflow *usecasemock.MockWorkflowUseCase
	actorID      uuid.UUID
}

func (s *WorkflowHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockWorkflow = usecasemock.NewMockWorkflowUseCase(s.mockCtrl)
	s.actorID = uuid.New()

	handler := api.NewWorkflowHandler(s.mockWorkflow)

	// Stand-in for the auth middleware.
	authed := s.router.Group("/bookings", func(c *gin.Context) {
		c.Set("user_id", s.actorID)
	})
	authed.POST("/:id/confirm", handler.Transition(booking.EventConfirm))
	authed.POST("/:id/mark-paid", handler.Transition(booking.EventMarkPaid))
	authed.POST("/:id/generate-voucher", handler.Transition(booking.EventGenerateVoucher))
}

func (s *WorkflowHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWorkflowHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowHandlerTestSuite))
}

func (s *WorkflowHandlerTestSuite) transitionResult(from, to booking.Status) *usecase.TransitionResult {
	b, err := builder.NewBookingBuilder().WithStatus(to).BuildDomain()
	s.Require().NoError(err)
	return &usecase.TransitionResult{Booking: b, From: from, To: to}
}

func (s *WorkflowHandlerTestSuite) TestConfirmWithEmptyBody() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), usecase.TransitionInput{
			BookingID: 401,
			Event:     booking.EventConfirm,
			ActorID:   s.actorID,
		}).
		Return(s.transitionResult(booking.StatusDraft, booking.StatusConfirmed), nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/confirm", nil, "")

	var resp resdto.TransitionResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal(int64(401), resp.BookingID)
	s.Equal("draft", resp.From)
	s.Equal("confirmed", resp.To)
}

func (s *WorkflowHandlerTestSuite) TestMarkPaidForwardsPassword() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), usecase.TransitionInput{
			BookingID:       401,
			Event:           booking.EventMarkPaid,
			ActorID:         s.actorID,
			PaymentPassword: "open-sesame",
		}).
		Return(s.transitionResult(booking.StatusQuoted, booking.StatusPaid), nil)

	body := map[string]string{"payment_password": "open-sesame"}
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/mark-paid", body, "")

	var resp resdto.TransitionResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal("paid", resp.To)
}

func (s *WorkflowHandlerTestSuite) TestWrongPaymentPassword() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrPaymentPassword)

	body := map[string]string{"payment_password": "guess"}
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/mark-paid", body, "")

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *WorkflowHandlerTestSuite) TestInvalidTransitionConflicts() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrInvalidTransition)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/confirm", nil, "")

	s.Equal(http.StatusConflict, w.Code)
}

func (s *WorkflowHandlerTestSuite) TestGuardFailure() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrGuardFailed)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/generate-voucher", nil, "")

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *WorkflowHandlerTestSuite) TestConcurrentUpdateConflicts() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrConcurrentUpdate)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/401/confirm", nil, "")

	s.Equal(http.StatusConflict, w.Code)
}

func (s *WorkflowHandlerTestSuite) TestBookingNotFound() {
	s.mockWorkflow.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errs.ErrBookingNotFound)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/404/confirm", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *WorkflowHandlerTestSuite) TestNonNumericBookingID() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/abc/confirm", nil, "")

	s.Equal(http.StatusBadRequest, w.Code)
}
