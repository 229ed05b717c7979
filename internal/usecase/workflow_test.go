//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/clock"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"
	"tourdesk/tests/common/builder"
	usecasemock "tourdesk/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testPaymentPassword = "let-me-mark-paid"

type WorkflowUseCaseTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	bookings *usecasemock.MockBookingRepository
	activity *usecasemock.MockActivityRepository
	sequence *usecasemock.MockSequenceRepository
	cache    *usecasemock.MockArtifactInvalidator
	warmer   *usecasemock.MockDocumentWarmer
	clk      *clock.MockClock
	uc       usecase.WorkflowUseCase
	actorID  uuid.UUID
}

func (s *WorkflowUseCaseTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bookings = usecasemock.NewMockBookingRepository(s.ctrl)
	s.activity = usecasemock.NewMockActivityRepository(s.ctrl)
	s.sequence = usecasemock.NewMockSequenceRepository(s.ctrl)
	s.cache = usecasemock.NewMockArtifactInvalidator(s.ctrl)
	s.warmer = usecasemock.NewMockDocumentWarmer(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC))
	s.actorID = uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPaymentPassword), bcrypt.MinCost)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.uc = usecase.NewWorkflowUseCase(
		s.bookings, s.activity, s.sequence, s.cache, s.warmer,
		string(hash), s.clk, logger,
	)
}

func (s *WorkflowUseCaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestWorkflowUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowUseCaseTestSuite))
}

func (s *WorkflowUseCaseTestSuite) buildBooking(status booking.Status) *booking.Booking {
	b, err := builder.NewBookingBuilder().WithStatus(status).BuildDomain()
	s.Require().NoError(err)
	return b
}

func (s *WorkflowUseCaseTestSuite) input(event booking.Event) usecase.TransitionInput {
	return usecase.TransitionInput{
		BookingID: 401,
		Event:     event,
		ActorID:   s.actorID,
	}
}

func (s *WorkflowUseCaseTestSuite) TestApplyConfirm() {
	b := s.buildBooking(booking.StatusDraft)
	wantUpdatedAt := b.UpdatedAt()

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusDraft, wantUpdatedAt).
		Return(s.clk.Now(), nil)

	var logged []booking.ActivityEntry
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e booking.ActivityEntry) error {
			logged = append(logged, e)
			return nil
		})
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().NoError(err)
	s.Equal(booking.StatusDraft, result.From)
	s.Equal(booking.StatusConfirmed, result.To)
	s.Require().NotNil(result.Booking.Stamps().ConfirmedAt)
	s.Equal(s.clk.Now(), *result.Booking.Stamps().ConfirmedAt)

	s.Require().Len(logged, 1)
	s.Equal(booking.ActionStatusChange, logged[0].Action)
	s.Equal(s.actorID, *logged[0].UserID)
}

func (s *WorkflowUseCaseTestSuite) TestApplyRetriesOnceAfterConflict() {
	conflict := infra.WrapRepoErr("stale booking row", nil, infra.KindConflict)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).
		DoAndReturn(func(context.Context, int64) (*booking.Booking, error) {
			return s.buildBooking(booking.StatusDraft), nil
		}).Times(2)

	first := s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), gomock.Any(), booking.StatusDraft, gomock.Any()).
		Return(time.Time{}, conflict)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), gomock.Any(), booking.StatusDraft, gomock.Any()).
		Return(s.clk.Now(), nil).
		After(first)

	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, result.To)
}

func (s *WorkflowUseCaseTestSuite) TestApplySecondConflictSurfaces() {
	conflict := infra.WrapRepoErr("stale booking row", nil, infra.KindConflict)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).
		DoAndReturn(func(context.Context, int64) (*booking.Booking, error) {
			return s.buildBooking(booking.StatusDraft), nil
		}).Times(2)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(time.Time{}, conflict).
		Times(2)

	_, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().ErrorIs(err, errs.ErrConcurrentUpdate)
}

func (s *WorkflowUseCaseTestSuite) TestApplyBookingNotFound() {
	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).
		Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

	_, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().ErrorIs(err, errs.ErrBookingNotFound)
}

func (s *WorkflowUseCaseTestSuite) TestApplyInvalidTransition() {
	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).
		Return(s.buildBooking(booking.StatusCancelled), nil)

	_, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().ErrorIs(err, errs.ErrInvalidTransition)
}

func (s *WorkflowUseCaseTestSuite) TestApplyGuardFailed() {
	b, err := builder.NewBookingBuilder().
		WithStatus(booking.StatusConfirmed).
		WithTotal(decimal.Zero).
		BuildDomain()
	s.Require().NoError(err)

	// No NextQuoteNumber expectation: a guarded-off create_quote must
	// not consume a sequence number.
	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)

	_, err = s.uc.Apply(context.Background(), s.input(booking.EventCreateQuote))

	s.Require().ErrorIs(err, errs.ErrGuardFailed)
}

func (s *WorkflowUseCaseTestSuite) TestCreateQuoteFromWrongStatusSkipsSequence() {
	b := s.buildBooking(booking.StatusDraft)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)

	_, err := s.uc.Apply(context.Background(), s.input(booking.EventCreateQuote))

	s.Require().ErrorIs(err, errs.ErrInvalidTransition)
	s.Nil(b.Billing().QuoteNumber)
}

func (s *WorkflowUseCaseTestSuite) TestCreateQuoteAllocatesNumber() {
	b := s.buildBooking(booking.StatusConfirmed)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.sequence.EXPECT().NextQuoteNumber(gomock.Any()).Return("Q-2025-0042", nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusConfirmed, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventCreateQuote))

	s.Require().NoError(err)
	s.Equal(booking.StatusQuoted, result.To)
	s.Require().NotNil(result.Booking.Billing().QuoteNumber)
	s.Equal("Q-2025-0042", *result.Booking.Billing().QuoteNumber)
}

func (s *WorkflowUseCaseTestSuite) TestCreateQuoteFallsBackWhenSequenceFails() {
	b := s.buildBooking(booking.StatusConfirmed)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.sequence.EXPECT().NextQuoteNumber(gomock.Any()).
		Return("", errs.New("sequence exhausted"))
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusConfirmed, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventCreateQuote))

	s.Require().NoError(err)
	quote := result.Booking.Billing().QuoteNumber
	s.Require().NotNil(quote)
	s.Regexp(`^Q-[0-9A-HJKMNP-TV-Z]{26}$`, *quote)
}

func (s *WorkflowUseCaseTestSuite) TestCreateQuoteKeepsExistingNumber() {
	b, err := builder.NewBookingBuilder().
		WithStatus(booking.StatusConfirmed).
		WithQuoteNumber("Q-2025-0007").
		BuildDomain()
	s.Require().NoError(err)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusConfirmed, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventCreateQuote))

	s.Require().NoError(err)
	s.Equal("Q-2025-0007", *result.Booking.Billing().QuoteNumber)
}

func (s *WorkflowUseCaseTestSuite) TestMarkPaidRejectsWrongPassword() {
	in := s.input(booking.EventMarkPaid)
	in.PaymentPassword = "guess"

	_, err := s.uc.Apply(context.Background(), in)

	s.Require().ErrorIs(err, errs.ErrPaymentPassword)
}

func (s *WorkflowUseCaseTestSuite) TestMarkPaidWithPassword() {
	b := s.buildBooking(booking.StatusQuoted)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusQuoted, gomock.Any()).
		Return(s.clk.Now(), nil)

	var actions []string
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e booking.ActivityEntry) error {
			actions = append(actions, e.Action)
			return nil
		}).Times(2)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	in := s.input(booking.EventMarkPaid)
	in.PaymentPassword = testPaymentPassword

	result, err := s.uc.Apply(context.Background(), in)

	s.Require().NoError(err)
	s.Equal(booking.StatusPaid, result.To)
	s.True(result.Booking.Billing().IsPaid)
	s.Equal([]string{booking.ActionStatusChange, booking.ActionPaymentMarked}, actions)
}

func (s *WorkflowUseCaseTestSuite) TestConfirmIgnoresPaymentPassword() {
	b := s.buildBooking(booking.StatusDraft)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusDraft, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)

	// No password supplied; confirm is not a payment event.
	_, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().NoError(err)
}

func (s *WorkflowUseCaseTestSuite) TestGenerateVoucherWarmsDocument() {
	b := s.buildBooking(booking.StatusPaid)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusPaid, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	s.cache.EXPECT().Invalidate(int64(401)).Return(nil)
	s.warmer.EXPECT().Warm(int64(401))

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventGenerateVoucher))

	s.Require().NoError(err)
	s.Equal(booking.StatusVouchered, result.To)
	s.Require().NotNil(result.Booking.Stamps().VoucheredAt)
}

func (s *WorkflowUseCaseTestSuite) TestAuditFailureDoesNotFailTransition() {
	b := s.buildBooking(booking.StatusDraft)

	s.bookings.EXPECT().FindByID(gomock.Any(), int64(401)).Return(b, nil)
	s.bookings.EXPECT().
		UpdateWorkflow(gomock.Any(), b, booking.StatusDraft, gomock.Any()).
		Return(s.clk.Now(), nil)
	s.activity.EXPECT().Append(gomock.Any(), gomock.Any()).
		Return(errs.New("audit table unavailable"))
	s.cache.EXPECT().Invalidate(int64(401)).
		Return(errs.New("cache directory gone"))

	result, err := s.uc.Apply(context.Background(), s.input(booking.EventConfirm))

	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, result.To)
}
