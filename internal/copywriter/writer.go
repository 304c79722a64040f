package copywriter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/obs"
)

// DefaultFallback is shown when the generator is unreachable or slow.
const DefaultFallback = "Bundle up and save on your favorite services."

// DefaultBudget bounds one blurb lookup end to end, cache included.
const DefaultBudget = 2 * time.Second

// Writer resolves blurbs through a session cache keyed by offer id. Only
// successful fetches are cached; fallbacks are recomputed so a recovered
// generator takes over on the next call.
type Writer struct {
	Cache    *redis.Client
	Source   Source
	Fallback string
	Budget   time.Duration
	TTL      time.Duration
	Logger   zerolog.Logger
}

func (w *Writer) fallback() string {
	if w.Fallback == "" {
		return DefaultFallback
	}
	return w.Fallback
}

func (w *Writer) budget() time.Duration {
	if w.Budget <= 0 {
		return DefaultBudget
	}
	return w.Budget
}

func cacheKey(offerID string) string {
	return "copy:" + offerID
}

// Blurb returns the promotional text for an offer. It never returns an error
// and never exceeds its budget: pricing latency must not depend on the
// generator's mood.
func (w *Writer) Blurb(ctx context.Context, offer catalog.OfferGroup) string {
	ctx, cancel := context.WithTimeout(ctx, w.budget())
	defer cancel()

	if w.Cache != nil {
		cached, err := w.Cache.Get(ctx, cacheKey(offer.ID)).Result()
		if err == nil && cached != "" {
			countFetch("cache_hit")
			return cached
		}
	}

	if w.Source == nil {
		countFetch("fallback")
		return w.fallback()
	}

	text, err := w.Source.Generate(ctx, offer)
	if err != nil {
		w.Logger.Warn().Err(err).Str("offer_id", offer.ID).Msg("copy_fetch_failed")
		countFetch("fallback")
		return w.fallback()
	}

	if w.Cache != nil {
		if err := w.Cache.Set(ctx, cacheKey(offer.ID), text, w.TTL).Err(); err != nil {
			w.Logger.Warn().Err(err).Str("offer_id", offer.ID).Msg("copy_cache_write_failed")
		}
	}
	countFetch("fetched")
	return text
}

// Prefetch warms the cache for the given offers in the background. Callers do
// not wait for it and never see its errors.
func (w *Writer) Prefetch(offers []catalog.OfferGroup) {
	go func() {
		for _, offer := range offers {
			w.Blurb(context.Background(), offer)
		}
	}()
}

func countFetch(result string) {
	if obs.CopyFetchTotal != nil {
		obs.CopyFetchTotal.WithLabelValues(result).Inc()
	}
}
