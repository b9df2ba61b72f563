package mcpsrv

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunCacheClearer clears the source cache every interval until ctx is done.
// It returns at once when interval is not positive or source has no cache.
func RunCacheClearer(ctx context.Context, source any, interval time.Duration, log zerolog.Logger) {
	clearable, ok := source.(cacheClearSource)
	if !ok || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			clearable.ClearCache()
			log.Debug().Dur("interval", interval).Msg("cache cleared")
		case <-ctx.Done():
			return
		}
	}
}
