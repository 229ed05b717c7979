package components

import (
	"tourdesk/internal/infra/repository"
	"tourdesk/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewCustomerRepository,
			fx.As(new(usecase.CustomerRepository)),
		),
		fx.Annotate(
			repository.NewActivityRepository,
			fx.As(new(usecase.ActivityRepository)),
		),
		fx.Annotate(
			repository.NewSequenceRepository,
			fx.As(new(usecase.SequenceRepository)),
		),
	),
)
