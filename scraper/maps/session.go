package maps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"gmaps-scraper/config"
	"gmaps-scraper/utils"
)

// Session is one browser tab on Google Maps, reused for every search term.
// Contexts passed to its methods must derive from Context().
type Session struct {
	cfg    *config.Config
	logger *utils.Logger

	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewSession launches the browser and opens the Maps home page. The caller
// owns the session and must Close it.
func NewSession(parent context.Context, cfg *config.Config, logger *utils.Logger) (*Session, error) {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	if chromeBin != "" {
		logger.Info("[maps] Using browser binary: %s", chromeBin)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1440, 900),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug("[chromedp] "+format, args...)
		}),
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			logger.Debug("[chromedp] "+format, args...)
		}),
	)

	s := &Session{
		cfg:         cfg,
		logger:      logger,
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// The first Run allocates the browser; it must use the long-lived tab
	// context, or the browser dies with the first timeout context.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do(tabCtx, "open-maps", s.openHome); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Context returns the browser tab context.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close shuts down the tab and the browser process. Safe to call twice.
func (s *Session) Close() {
	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

func (s *Session) openHome(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	if err := chromedp.Run(loadCtx,
		chromedp.Navigate(s.cfg.MapsURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", s.cfg.MapsURL, err)
	}

	s.acceptConsent(loadCtx)

	if err := chromedp.Run(loadCtx,
		chromedp.WaitVisible(SearchBoxSelector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("wait for search box: %w", err)
	}
	return nil
}

// acceptConsent dismisses the cookie interstitial shown in some regions.
func (s *Session) acceptConsent(ctx context.Context) {
	for _, sel := range consentSelectors {
		present, err := s.count(ctx, sel)
		if err != nil || present == 0 {
			continue
		}
		clickCtx, cancel := context.WithTimeout(ctx, s.cfg.ClickTimeout)
		err = chromedp.Run(clickCtx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
		cancel()
		if err == nil {
			s.logger.Debug("[maps] Dismissed consent dialog via %s", sel)
			_ = chromedp.Run(ctx, chromedp.WaitReady("body", chromedp.ByQuery))
			return
		}
	}
}

// Search types term into the search box and submits it.
func (s *Session) Search(ctx context.Context, term string) error {
	searchCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	return chromedp.Run(searchCtx,
		chromedp.WaitVisible(SearchBoxSelector, chromedp.ByQuery),
		chromedp.SetValue(SearchBoxSelector, "", chromedp.ByQuery),
		chromedp.SendKeys(SearchBoxSelector, term, chromedp.ByQuery),
		chromedp.SendKeys(SearchBoxSelector, kb.Enter, chromedp.ByQuery),
	)
}

// Panel reports which results panel layout is present and the href of its
// first listing link.
func (s *Session) Panel(ctx context.Context) (PanelView, error) {
	script := fmt.Sprintf(`(function() {
		var sels = [%q, %q];
		for (var i = 0; i < sels.length; i++) {
			var p = document.querySelector(sels[i]);
			if (!p) continue;
			var a = p.querySelector(%q) || document.querySelector(%q);
			return {selector: sels[i], firstHref: a ? (a.getAttribute("href") || "") : ""};
		}
		return {selector: "", firstHref: ""};
	})()`, PanelSelector, PanelFallbackSelector, ListingLinkSelector, ListingLinkSelector)

	var v PanelView
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &v)); err != nil {
		return PanelView{}, err
	}
	return v, nil
}

// ScrollPanel scrolls the panel matched by selector down by dy pixels.
func (s *Session) ScrollPanel(ctx context.Context, panel string, dy int) error {
	script := fmt.Sprintf(`(function() {
		var p = document.querySelector(%q);
		if (!p) return false;
		p.scrollBy(0, %d);
		return true;
	})()`, panel, dy)

	var ok bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return err
	}
	if !ok {
		return ErrPanelNotFound
	}
	return nil
}

// CountListings returns how many listing links are currently rendered.
func (s *Session) CountListings(ctx context.Context) (int, error) {
	return s.count(ctx, ListingLinkSelector)
}

// Listings snapshots the first max listing links in display order.
func (s *Session) Listings(ctx context.Context, max int) ([]Listing, error) {
	var nodes []*cdp.Node
	if err := chromedp.Run(ctx,
		chromedp.Nodes(ListingLinkSelector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	); err != nil {
		return nil, err
	}
	if max >= 0 && len(nodes) > max {
		nodes = nodes[:max]
	}

	listings := make([]Listing, 0, len(nodes))
	for i, n := range nodes {
		listings = append(listings, Listing{
			Index: i,
			Label: n.AttributeValue(LabelAttr),
			Href:  n.AttributeValue("href"),
			node:  n,
		})
	}
	return listings, nil
}

// Open clicks a listing to show its detail pane.
func (s *Session) Open(ctx context.Context, l Listing) error {
	if l.node == nil {
		return fmt.Errorf("listing %d has no node", l.Index)
	}
	clickCtx, cancel := context.WithTimeout(ctx, s.cfg.ClickTimeout)
	defer cancel()

	return chromedp.Run(clickCtx, chromedp.MouseClickNode(l.node))
}

// Pane returns the current URL and the text of the detail heading.
func (s *Session) Pane(ctx context.Context) (PaneView, error) {
	script := fmt.Sprintf(`(function() {
		var h = document.querySelector(%q);
		return h ? h.textContent.trim() : "";
	})()`, DetailHeadingSelector)

	var v PaneView
	if err := chromedp.Run(ctx,
		chromedp.Location(&v.URL),
		chromedp.Evaluate(script, &v.Heading),
	); err != nil {
		return PaneView{}, err
	}
	return v, nil
}

// Detail returns the page HTML and the current URL.
func (s *Session) Detail(ctx context.Context) (string, string, error) {
	var html, url string
	if err := chromedp.Run(ctx,
		chromedp.Location(&url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", "", err
	}
	return html, url, nil
}

func (s *Session) count(ctx context.Context, selector string) (int, error) {
	var n int
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// findChromeBinary locates Chrome/Chromium, preferring the configured path.
// An empty result lets chromedp use its own lookup.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

var _ Page = (*Session)(nil)
