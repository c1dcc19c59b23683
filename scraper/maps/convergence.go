package maps

import (
	"context"
	"fmt"
	"time"

	"gmaps-scraper/utils"
)

// Feed is a lazily loading results list that grows when scrolled.
type Feed interface {
	Scroll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// ConvergeOptions tunes the scroll loop.
type ConvergeOptions struct {
	Cap            int           // hard ceiling on listings wanted
	StallThreshold int           // consecutive no-growth rounds before giving up
	Settle         time.Duration // longest wait for new entries after a scroll
	Poll           time.Duration // how often the count is re-read while waiting
}

// Converge scrolls feed until the listing count stops growing for
// StallThreshold rounds or reaches Cap, and returns the last count seen.
// A Cap of zero or less returns immediately without scrolling.
func Converge(ctx context.Context, feed Feed, opts ConvergeOptions, logger *utils.Logger) (int, error) {
	if opts.Cap <= 0 {
		return 0, nil
	}
	threshold := opts.StallThreshold
	if threshold < 1 {
		threshold = 1
	}

	previous := -1
	stalls := 0

	for {
		if err := ctx.Err(); err != nil {
			return max(previous, 0), err
		}

		if err := feed.Scroll(ctx); err != nil {
			return max(previous, 0), fmt.Errorf("scroll results: %w", err)
		}

		// Returns early as soon as new entries render.
		_ = waitUntil(ctx, opts.Settle, opts.Poll, func(ctx context.Context) (bool, error) {
			n, err := feed.Count(ctx)
			return n > previous, err
		})

		current, err := feed.Count(ctx)
		if err != nil {
			return max(previous, 0), fmt.Errorf("count listings: %w", err)
		}

		if current == previous {
			stalls++
		} else {
			stalls = 0
		}

		if stalls >= threshold || current >= opts.Cap {
			return current, nil
		}

		previous = current
		logger.Debug("[maps] Currently scraped: %d", current)
	}
}
