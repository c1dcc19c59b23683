package maps

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

// Listing is a handle to one result link in the panel. It is only valid
// while the results page it was read from stays loaded.
type Listing struct {
	Index int
	Label string
	Href  string

	node *cdp.Node
}

// Page is the set of browser operations the collector drives. Session
// implements it on top of chromedp. Panel and Pane are cheap snapshots the
// collector polls while waiting for the page to catch up.
type Page interface {
	Search(ctx context.Context, term string) error
	Panel(ctx context.Context) (PanelView, error)
	ScrollPanel(ctx context.Context, panel string, dy int) error
	CountListings(ctx context.Context) (int, error)
	Listings(ctx context.Context, max int) ([]Listing, error)
	Open(ctx context.Context, l Listing) error
	Pane(ctx context.Context) (PaneView, error)
	Detail(ctx context.Context) (html string, url string, err error)
}

// CollectorOptions tunes one search-and-collect cycle. The Cap field of
// Converge is ignored; the cap is passed per call to Collect.
type CollectorOptions struct {
	Converge     ConvergeOptions
	ScrollStep   int
	SearchSettle time.Duration // longest wait for a search to replace the results
	DetailSettle time.Duration // longest wait for a clicked listing's pane
}

// Collector runs one search-and-collect cycle per term.
type Collector struct {
	page     Page
	opts     CollectorOptions
	logger   *utils.Logger
	throttle *utils.Throttle
}

// NewCollector creates a Collector. A nil throttle disables pacing.
func NewCollector(page Page, opts CollectorOptions, throttle *utils.Throttle, logger *utils.Logger) *Collector {
	if throttle == nil {
		throttle = utils.NewThrottle(0)
	}
	return &Collector{
		page:     page,
		opts:     opts,
		logger:   logger,
		throttle: throttle,
	}
}

// Collect searches for term, scrolls until the result count converges, and
// extracts at most maxListings businesses. Per-entry failures are recorded
// in the result; the returned error is only set when the term as a whole
// could not be processed.
func (c *Collector) Collect(ctx context.Context, term string, maxListings int) (*models.TermResult, error) {
	result := &models.TermResult{Term: term}
	if maxListings <= 0 {
		c.logger.Info("[maps] %q: listing cap is %d, nothing to collect", term, maxListings)
		return result, nil
	}

	// The previous term's results stay on screen until the new ones render.
	before, err := c.page.Panel(ctx)
	if err != nil {
		before = PanelView{}
	}

	if err := c.page.Search(ctx, term); err != nil {
		return result, fmt.Errorf("search %q: %w", term, err)
	}

	panel, err := c.resolvePanel(ctx, before.FirstHref)
	if err != nil {
		return result, fmt.Errorf("search %q: %w", term, err)
	}

	opts := c.opts.Converge
	opts.Cap = maxListings
	feed := &panelFeed{page: c.page, panel: panel, step: c.opts.ScrollStep}

	discovered, err := Converge(ctx, feed, opts, c.logger)
	if err != nil {
		return result, fmt.Errorf("search %q: %w", term, err)
	}
	result.Discovered = discovered

	listings, err := c.page.Listings(ctx, maxListings)
	if err != nil {
		return result, fmt.Errorf("search %q: snapshot listings: %w", term, err)
	}
	if len(listings) > maxListings {
		listings = listings[:maxListings]
	}
	c.logger.Info("[maps] %q: total scraped %d listing(s)", term, len(listings))

	for i, l := range listings {
		if err := c.throttle.Wait(ctx); err != nil {
			return result, err
		}

		entry := models.EntryResult{Index: i, Label: l.Label}
		biz, err := c.extract(ctx, l)
		if err != nil {
			entry.Err = err
			c.logger.Warn("[maps] %q: entry %d (%s) skipped: %v", term, i+1, l.Label, err)
		} else {
			entry.Record = &biz
			c.logger.Debug("[maps] %q: entry %d/%d %s", term, i+1, len(listings), biz.Name)
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// resolvePanel waits for a results panel showing something other than
// marker. When the deadline passes with a panel present but unchanged (the
// same term searched twice), that panel is used as is.
func (c *Collector) resolvePanel(ctx context.Context, marker string) (string, error) {
	var last PanelView
	err := waitUntil(ctx, c.opts.SearchSettle, c.opts.Converge.Poll, func(ctx context.Context) (bool, error) {
		v, err := c.page.Panel(ctx)
		if err != nil {
			return false, err
		}
		last = v
		return panelReady(marker, v), nil
	})
	if err == nil {
		return last.Selector, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if last.Selector != "" {
		c.logger.Debug("[maps] Results unchanged after search, using %s as is", last.Selector)
		return last.Selector, nil
	}
	return "", ErrPanelNotFound
}

// extract opens one listing and reads its detail pane.
func (c *Collector) extract(ctx context.Context, l Listing) (models.Business, error) {
	before, err := c.page.Pane(ctx)
	if err != nil {
		before = PaneView{}
	}

	if err := c.page.Open(ctx, l); err != nil {
		return models.Business{}, fmt.Errorf("open listing: %w", err)
	}

	var last PaneView
	err = waitUntil(ctx, c.opts.DetailSettle, c.opts.Converge.Poll, func(ctx context.Context) (bool, error) {
		v, err := c.page.Pane(ctx)
		if err != nil {
			return false, err
		}
		last = v
		return detailReady(before.URL, l, v), nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Business{}, ctxErr
		}
		// Read a partially rendered pane, but never the previous place's.
		if !paneShows(before.URL, l, last) {
			return models.Business{}, fmt.Errorf("%w (still at %s)", ErrDetailNotReady, last.URL)
		}
	}

	html, url, err := c.page.Detail(ctx)
	if err != nil {
		return models.Business{}, fmt.Errorf("read detail: %w", err)
	}

	raw, err := ParseDetail(html)
	if err != nil {
		return models.Business{}, err
	}
	raw.Name = l.Label
	raw.URL = url

	return BuildBusiness(raw)
}

// panelFeed adapts a Page and a resolved panel selector to Feed.
type panelFeed struct {
	page  Page
	panel string
	step  int
}

func (f *panelFeed) Scroll(ctx context.Context) error {
	return f.page.ScrollPanel(ctx, f.panel, f.step)
}

func (f *panelFeed) Count(ctx context.Context) (int, error) {
	return f.page.CountListings(ctx)
}
