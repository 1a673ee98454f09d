package features

import (
	"errors"

	"pgbot/sources/platform"
)

type FeatureConfig struct {
	Enabled           bool
	UnleashAPIURL     string
	UnleashInstanceID string
	UnleashAppName    string
	RefreshInterval   int
}

func NewFeatureConfig() *FeatureConfig {
	return &FeatureConfig{
		Enabled:           platform.GetAsBool("UNLEASH_ENABLED", false),
		UnleashAPIURL:     platform.Get("UNLEASH_API_URL", "http://pgbot-unleash:4242/api/"),
		UnleashInstanceID: platform.Get("UNLEASH_INSTANCE_ID", "pgbot"),
		UnleashAppName:    "pgbot",
		RefreshInterval:   platform.GetAsInt("UNLEASH_REFRESH_INTERVAL", 5),
	}
}

func (c *FeatureConfig) validate() error {
	return errors.Join(
		platform.ValidateNotEmpty(c.UnleashAPIURL, "UNLEASH_API_URL"),
		platform.ValidateNotEmpty(c.UnleashInstanceID, "UNLEASH_INSTANCE_ID"),
	)
}
