package main

import (
	"context"
	"time"

	"isafari/internal/services"
)

const (
	promotionCleanerInterval = 5 * time.Minute
	promotionCleanerTimeout  = 30 * time.Second
)

// startPromotionCleaner clears the featured flags of services whose paid
// promotion has ended.
func startPromotionCleaner(ctx context.Context, svc *services.ServiceService, log services.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(promotionCleanerInterval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, promotionCleanerTimeout)
			defer cancel()

			cleared, err := svc.ExpirePromotions(runCtx, time.Now())
			if err != nil {
				log.Errorf("promotion cleaner: failed to clear expired promotions: %v", err)
				return
			}
			if cleared > 0 {
				log.Infof("promotion cleaner: cleared %d expired promotions", cleared)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
