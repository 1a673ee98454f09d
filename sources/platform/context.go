package platform

import "context"

var defaultTimeout = GetAsDuration("CONTEXT_TIMEOUT", "3s")

// ContextTimeout bounds a single redis or bot API round trip.
func ContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}
