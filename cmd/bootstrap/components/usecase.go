package components

import (
	"log/slog"
	"time"

	"tourdesk/internal/document/cache"
	"tourdesk/internal/document/raster"
	"tourdesk/internal/document/render"
	"tourdesk/internal/document/viewmodel"
	"tourdesk/internal/pkg/clock"
	"tourdesk/internal/pkg/config"
	"tourdesk/internal/pkg/sharetoken"
	"tourdesk/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseValidatorsModule,
	fx.Provide(
		usecase.NewAuthUseCase,
		usecase.NewBookingUseCase,
		NewDocumentUseCase,
		NewWorkflowUseCase,
	),
)

// The document pipeline ports are satisfied by the concrete render stack.
var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(r *render.Renderer) usecase.Renderer { return r },
	func(c *raster.Converter) usecase.Rasterizer { return c },
	func(s *cache.Store) usecase.ArtifactCache { return s },
	func(s *cache.Store) usecase.ArtifactInvalidator { return s },
	func(t *sharetoken.Service) usecase.TokenService { return t },
	func(d usecase.DocumentUseCase) usecase.DocumentWarmer { return d },
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewDocumentUseCase(
	bookingRepo usecase.BookingRepository,
	customerRepo usecase.CustomerRepository,
	activityRepo usecase.ActivityRepository,
	renderer usecase.Renderer,
	rasterizer usecase.Rasterizer,
	artifactCache usecase.ArtifactCache,
	tokens usecase.TokenService,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) usecase.DocumentUseCase {
	return usecase.NewDocumentUseCase(
		bookingRepo, customerRepo, activityRepo,
		renderer, rasterizer, artifactCache, tokens,
		usecase.DocumentOptions{
			Company: viewmodel.Company{
				Name:         cfg.Company.Name,
				ContactBlock: cfg.Company.ContactBlock,
				BaseURL:      cfg.Company.BaseURL,
				ImageDir:     cfg.Company.ImageDir,
			},
			DefaultZoom: cfg.Render.DefaultZoom,
			Deadline:    time.Duration(cfg.Render.DeadlineSeconds) * time.Second,
		},
		clk, logger,
	)
}

func NewWorkflowUseCase(
	bookingRepo usecase.BookingRepository,
	activityRepo usecase.ActivityRepository,
	sequenceRepo usecase.SequenceRepository,
	invalidator usecase.ArtifactInvalidator,
	warmer usecase.DocumentWarmer,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) usecase.WorkflowUseCase {
	return usecase.NewWorkflowUseCase(
		bookingRepo, activityRepo, sequenceRepo,
		invalidator, warmer,
		cfg.Payment.PasswordHash,
		clk, logger,
	)
}
