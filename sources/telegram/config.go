package telegram

import (
	"pgbot/sources/configuration"
	"pgbot/sources/platform"

	"github.com/shopspring/decimal"
)

type DiplomatConfig struct {
	ChunkSize int
}

// BuiltinsConfig holds the tunables of the builtin commands. ClockOffset is
// the UTC offset in hours used when clock gets no argument.
type BuiltinsConfig struct {
	ClockOffset decimal.Decimal
}

type PollerConfig struct {
	Timeout        int
	AllowedUpdates []string
}

func NewDiplomatConfig(config *configuration.Config) *DiplomatConfig {
	return &DiplomatConfig{
		ChunkSize: config.Telegram.DiplomatChunkSize,
	}
}

func NewPollerConfig(config *configuration.Config) *PollerConfig {
	return &PollerConfig{
		Timeout:        config.Telegram.PollerTimeout,
		AllowedUpdates: config.Telegram.AllowedUpdates,
	}
}

func NewBuiltinsConfig() *BuiltinsConfig {
	return &BuiltinsConfig{
		ClockOffset: platform.GetDecimal("CLOCK_DEFAULT_OFFSET", "0"),
	}
}
