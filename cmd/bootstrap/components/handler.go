package components

import (
	"time"

	"tourdesk/internal/handler"
	"tourdesk/internal/handler/api"
	"tourdesk/internal/handler/middleware"
	"tourdesk/internal/pkg/config"
	"tourdesk/internal/usecase"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAuthHandler,
		api.NewBookingHandler,
		api.NewWorkflowHandler,
		api.NewPublicHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(authUseCase usecase.AuthUseCase, cfg config.Config) *api.AuthHandler {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		duration = 24 * time.Hour
	}
	return api.NewAuthHandler(authUseCase, cfg.Cookie, duration)
}
