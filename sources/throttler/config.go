package throttler

import (
	"time"

	"pgbot/sources/platform"
)

type ThrottlerConfig struct {
	// Limit is the minimum gap between two commands of one user. Zero disables throttling.
	Limit time.Duration
}

func NewThrottlerConfig() *ThrottlerConfig {
	return &ThrottlerConfig{Limit: platform.GetAsDuration("REQUEST_THROTTLE_LIMIT", "2s")}
}
