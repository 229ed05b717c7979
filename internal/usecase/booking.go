package usecase

import (
	"context"

	"tourdesk/internal/domain/booking"
	"tourdesk/internal/domain/customer"
	"tourdesk/internal/infra"
	"tourdesk/internal/pkg/errs"
)

const defaultActivityLimit = 50

// BookingView pairs the aggregate with its customer for the back-office
// detail endpoint.
type BookingView struct {
	Booking  *booking.Booking
	Customer *customer.Customer
}

type BookingUseCase interface {
	GetBooking(ctx context.Context, id int64) (*BookingView, error)
	ListActivity(ctx context.Context, bookingID int64, limit int32) ([]booking.ActivityEntry, error)
}

type bookingUseCaseImpl struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	activityRepo ActivityRepository
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	activityRepo ActivityRepository,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		activityRepo: activityRepo,
	}
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id int64) (*BookingView, error) {
	b, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view := &BookingView{Booking: b}
	c, err := u.customerRepo.FindByID(ctx, b.CustomerID())
	if err == nil {
		view.Customer = c
	} else if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return view, nil
}

func (u *bookingUseCaseImpl) ListActivity(ctx context.Context, bookingID int64, limit int32) ([]booking.ActivityEntry, error) {
	if _, err := u.bookingRepo.FindByID(ctx, bookingID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	entries, err := u.activityRepo.ListByBooking(ctx, bookingID, limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return entries, nil
}
