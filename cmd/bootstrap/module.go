package bootstrap

import (
	"tourdesk/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	DocumentModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
