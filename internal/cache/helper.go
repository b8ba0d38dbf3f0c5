package cache

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// StartCacheSpan starts a sentry span around a cache lookup.
// Returns nil when no sentry hub is attached to the context.
func StartCacheSpan(ctx context.Context, prefix, operation string) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "cache."+operation)
	span.Op = "cache." + operation
	span.Description = prefix
	span.SetData("cache.key_prefix", prefix)
	return span
}

// FinishCacheSpan records whether the lookup hit and finishes the span, handling nil spans
func FinishCacheSpan(span *sentry.Span, hit bool) {
	if span == nil {
		return
	}
	span.SetData("cache.hit", hit)
	span.Status = sentry.SpanStatusOK
	span.Finish()
}
