package external

import (
	"pgbot/sources/configuration"
	"pgbot/sources/platform"
)

type OutsidersConfig struct {
	StartupPort            int
	SystemMetricsPort      int
	ApplicationMetricsPort int
}

func NewOutsidersConfig(config *configuration.Config) *OutsidersConfig {
	return &OutsidersConfig{
		StartupPort:            platform.GetAsInt("OUTSIDERS_STARTUP_PORT", 10000),
		SystemMetricsPort:      platform.GetAsInt("OUTSIDERS_METRICS_PORT", 10001),
		ApplicationMetricsPort: config.Service.ApplicationMetricsPort,
	}
}
