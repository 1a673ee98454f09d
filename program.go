package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pgbot/sources/configuration"
	"pgbot/sources/external"
	"pgbot/sources/features"
	"pgbot/sources/framework/commands"
	"pgbot/sources/localization"
	"pgbot/sources/metrics"
	"pgbot/sources/network"
	"pgbot/sources/persistence"
	"pgbot/sources/platform"
	"pgbot/sources/repository"
	"pgbot/sources/telegram"
	"pgbot/sources/throttler"
	"pgbot/sources/tracing"

	"github.com/alecthomas/kong"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

type cli struct {
	Run     runCmd           `cmd:"" default:"1" help:"Start the bot."`
	Parse   parseCmd         `cmd:"" help:"Parse a command body offline and print the result."`
	Version kong.VersionFlag `help:"Print the version and exit."`
}

type runCmd struct{}

func (c *runCmd) Run() error {
	fx.New(
		fx.Provide(tracing.NewConsoleLogger),
		fx.WithLogger(func(log *tracing.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.Slog()}
		}),
		configuration.Module,
		external.Module,
		network.Module,
		persistence.Module,
		repository.Module,
		throttler.Module,
		metrics.Module,
		features.Module,
		localization.Module,
		telegram.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("pgbot started successfully", "version", version, "build_time", buildTime)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("pgbot stopped", "version", version, "build_time", buildTime, "uptime", platform.GetAppUptime().String())
					return nil
				},
			})
		}),
	).Run()
	return nil
}

type parseCmd struct {
	Input    string `arg:"" optional:"" help:"Command body without the prefix."`
	Stdin    bool   `help:"Read the command body from stdin instead."`
	Fallback string `default:"help" help:"Command name used for an empty body."`
	Source   bool   `help:"Print the re-encoded command line instead of the structure."`
}

func (c *parseCmd) Run(in io.Reader, out io.Writer) error {
	input := c.Input
	if c.Stdin {
		if input != "" {
			return fmt.Errorf("command body given both as an argument and on stdin")
		}
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = strings.TrimSuffix(string(raw), "\n")
	}

	result, err := commands.Parse(input, c.Fallback)
	if err != nil {
		return err
	}

	if c.Source {
		_, err = fmt.Fprintln(out, result.Source())
		return err
	}
	_, err = fmt.Fprintln(out, result.String())
	return err
}

func main() {
	platform.SetAppManifest(version, buildTime, time.Now())

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("pgbot"),
		kong.Description("Chat bot with a structured command language."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.BindTo(os.Stdin, (*io.Reader)(nil)),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
