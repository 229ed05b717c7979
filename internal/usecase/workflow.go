package usecase

import (
	"context"
	"errors"
	"log/slog"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/clock"
	"tourdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// DocumentWarmer renders a booking's current document into the cache in
// the background so the first public hit after a transition is warm.
type DocumentWarmer interface {
	Warm(bookingID int64)
}

// ArtifactInvalidator drops cached render artifacts for a booking.
type ArtifactInvalidator interface {
	Invalidate(bookingID int64) error
}

// TransitionInput carries everything a workflow event needs besides the
// booking itself. PaymentPassword is only consulted for mark-paid and
// unmark-paid.
type TransitionInput struct {
	BookingID       int64
	Event           booking.Event
	ActorID         uuid.UUID
	PaymentPassword string
}

// TransitionResult reports the applied transition for the API response.
type TransitionResult struct {
	Booking *booking.Booking
	From    booking.Status
	To      booking.Status
}

type WorkflowUseCase interface {
	Apply(ctx context.Context, in TransitionInput) (*TransitionResult, error)
}

type workflowUseCaseImpl struct {
	bookingRepo         BookingRepository
	activityRepo        ActivityRepository
	sequenceRepo        SequenceRepository
	cache               ArtifactInvalidator
	warmer              DocumentWarmer
	paymentPasswordHash string
	clock               clock.Clock
	logger              *slog.Logger
}

func NewWorkflowUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	sequenceRepo SequenceRepository,
	cache ArtifactInvalidator,
	warmer DocumentWarmer,
	paymentPasswordHash string,
	clk clock.Clock,
	logger *slog.Logger,
) WorkflowUseCase {
	return &workflowUseCaseImpl{
		bookingRepo:         bookingRepo,
		activityRepo:        activityRepo,
		sequenceRepo:        sequenceRepo,
		cache:               cache,
		warmer:              warmer,
		paymentPasswordHash: paymentPasswordHash,
		clock:               clk,
		logger:              logger,
	}
}

func (w *workflowUseCaseImpl) Apply(ctx context.Context, in TransitionInput) (*TransitionResult, error) {
	if err := w.checkPaymentPassword(in); err != nil {
		return nil, err
	}

	result, err := w.applyOnce(ctx, in)
	if errors.Is(err, errs.ErrConcurrentUpdate) {
		// Someone else moved the booking while we worked. Retry once on
		// the fresh row; a second conflict is surfaced to the caller.
		result, err = w.applyOnce(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	w.recordActivity(ctx, in, result)
	w.refreshArtifacts(in, result)

	return result, nil
}

func (w *workflowUseCaseImpl) applyOnce(ctx context.Context, in TransitionInput) (*TransitionResult, error) {
	b, err := w.bookingRepo.FindByID(ctx, in.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	expectedStatus := b.Status()
	expectedUpdatedAt := b.UpdatedAt()

	from, to, err := b.ApplyEvent(in.Event, w.clock.Now())
	if err != nil {
		var te *booking.TransitionError
		if errors.As(err, &te) {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return nil, errs.Mark(err, errs.ErrGuardFailed)
	}

	// Allocation happens after the transition is validated so a rejected
	// create_quote never burns a sequence number.
	if in.Event == booking.EventCreateQuote && b.Billing().QuoteNumber == nil {
		b.SetQuoteNumber(w.allocateQuoteNumber(ctx))
	}

	if _, err := w.bookingRepo.UpdateWorkflow(ctx, b, expectedStatus, expectedUpdatedAt); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, errs.Mark(err, errs.ErrConcurrentUpdate)
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	return &TransitionResult{Booking: b, From: from, To: to}, nil
}

func (w *workflowUseCaseImpl) checkPaymentPassword(in TransitionInput) error {
	if in.Event != booking.EventMarkPaid && in.Event != booking.EventUnmarkPaid {
		return nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(w.paymentPasswordHash), []byte(in.PaymentPassword))
	if err != nil {
		return errs.Mark(err, errs.ErrPaymentPassword)
	}
	return nil
}

// allocateQuoteNumber hands out the next sequential number. If the
// sequence is wedged (every candidate already taken after the retry
// limit) it falls back to a ULID-derived number so the quote can still
// be issued, and logs the degradation.
func (w *workflowUseCaseImpl) allocateQuoteNumber(ctx context.Context) string {
	number, err := w.sequenceRepo.NextQuoteNumber(ctx)
	if err == nil {
		return number
	}
	fallback := "Q-" + ulid.Make().String()
	w.logger.Warn("quote number sequence exhausted, using ULID fallback",
		"fallback", fallback, "error", err)
	return fallback
}

func (w *workflowUseCaseImpl) recordActivity(ctx context.Context, in TransitionInput, result *TransitionResult) {
	entries := []booking.ActivityEntry{
		booking.NewStatusChangeEntry(in.BookingID, &in.ActorID, result.From, result.To),
	}
	switch in.Event {
	case booking.EventMarkPaid:
		entries = append(entries, booking.ActivityEntry{
			BookingID:   &in.BookingID,
			UserID:      &in.ActorID,
			Action:      booking.ActionPaymentMarked,
			Description: "payment recorded",
		})
	case booking.EventUnmarkPaid:
		entries = append(entries, booking.ActivityEntry{
			BookingID:   &in.BookingID,
			UserID:      &in.ActorID,
			Action:      booking.ActionPaymentUnmarked,
			Description: "payment reverted",
		})
	case booking.EventGenerateVoucher:
		entries = append(entries, booking.ActivityEntry{
			BookingID:   &in.BookingID,
			UserID:      &in.ActorID,
			Action:      booking.ActionVoucherGenerated,
			Description: "tour voucher generated",
		})
	}

	// The transition is already committed; a lost audit row is logged
	// rather than failing the request.
	for _, entry := range entries {
		if err := w.activityRepo.Append(ctx, entry); err != nil {
			w.logger.Error("failed to append activity entry",
				"booking_id", in.BookingID, "action", entry.Action, "error", err)
		}
	}
}

// refreshArtifacts drops render artifacts keyed on the previous
// mutation stamp and, for voucher generation, pre-renders the new
// document so the customer's first open is instant.
func (w *workflowUseCaseImpl) refreshArtifacts(in TransitionInput, result *TransitionResult) {
	if err := w.cache.Invalidate(in.BookingID); err != nil {
		w.logger.Warn("failed to invalidate render cache",
			"booking_id", in.BookingID, "error", err)
	}
	if in.Event == booking.EventGenerateVoucher && w.warmer != nil {
		w.warmer.Warm(in.BookingID)
	}
}
