package telegram

import (
	"context"

	"pgbot/sources/configuration"
	"pgbot/sources/features"
	"pgbot/sources/framework/commands"
	"pgbot/sources/framework/dispatch"
	"pgbot/sources/repository"
	"pgbot/sources/tracing"

	"go.uber.org/fx"
)

var Module = fx.Module("telegram",
	fx.Provide(
		NewDiplomatConfig,
		NewPollerConfig,
		NewBuiltinsConfig,
		NewBotAPI,
		NewDiplomat,
		NewBuiltins,
		NewParser,
		NewRegistry,
		NewDispatcher,
		NewTelegramHandler,
		NewPoller,
	),

	fx.Invoke(func(lc fx.Lifecycle, poller *Poller, log *tracing.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go poller.Start()
				log.I("Telegram poller started")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				poller.Stop()
				log.I("Telegram poller stopped")
				return nil
			},
		})
	}),
)

func NewParser(config *configuration.Config) *commands.Parser {
	return commands.NewParser(config.Commands.Fallback)
}

func NewRegistry(config *configuration.Config, builtins *Builtins, log *tracing.Logger) *dispatch.Registry {
	registry := dispatch.NewRegistry(config.Commands.Prefix).MustRegister(builtins.Routes()...)
	log.I("Command registry built", "routes", len(registry.Routes()), "prefix", config.Commands.Prefix)
	return registry
}

func NewDispatcher(registry *dispatch.Registry, blacklist *repository.BlacklistRepository, fm *features.FeatureManager) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(registry, blacklist, fm)
}
