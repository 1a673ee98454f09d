package external

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("external",
	fx.Provide(
		NewOutsidersConfig,
		NewOutsiders,
	),

	fx.Invoke(func(outsiders *Outsiders, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				outsiders.log.I("Starting outsiders services")
				go outsiders.serve("startup", outsiders.ss)
				go outsiders.serve("system_metrics", outsiders.sms)
				go outsiders.serve("application_metrics", outsiders.as)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				outsiders.log.I("Stopping outsiders services")
				return outsiders.shutdown(ctx)
			},
		})
	}),
)
