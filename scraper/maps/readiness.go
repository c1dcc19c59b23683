package maps

import (
	"errors"
	"strings"
)

var (
	// ErrPanelNotFound means neither results panel layout appeared after a search.
	ErrPanelNotFound = errors.New("results panel not found")

	// ErrDetailNotReady means the detail pane still showed another place when
	// the detail settle deadline passed.
	ErrDetailNotReady = errors.New("detail pane did not switch to the clicked listing")
)

// PanelView is what the results panel shows at one instant. Selector is
// empty when no panel layout is present.
type PanelView struct {
	Selector  string `json:"selector"`
	FirstHref string `json:"firstHref"`
}

// PaneView is the page URL and detail heading at one instant.
type PaneView struct {
	URL     string
	Heading string
}

// panelReady reports whether a panel is present and no longer shows the
// results that were on screen before the search was submitted. marker is
// the first listing href seen before submitting; empty means no results
// were showing.
func panelReady(marker string, v PanelView) bool {
	if v.Selector == "" {
		return false
	}
	return marker == "" || v.FirstHref != marker
}

// paneShows reports whether the detail pane belongs to l rather than to the
// place that was open before the click (prevURL). The URL may still lack
// coordinates.
func paneShows(prevURL string, l Listing, v PaneView) bool {
	if v.Heading == "" || !strings.Contains(v.URL, PlacePathMarker) {
		return false
	}
	if placeKey(v.URL) != placeKey(prevURL) {
		return true
	}
	if k := placeKey(l.Href); k != "" && k == placeKey(v.URL) {
		return true
	}
	return l.Label != "" && normaliseText(v.Heading) == normaliseText(l.Label)
}

// detailReady is paneShows plus coordinates in the URL.
func detailReady(prevURL string, l Listing, v PaneView) bool {
	return paneShows(prevURL, l, v) && strings.Contains(v.URL, CoordinatesMarker)
}

// placeKey returns the path segment naming the place in a Maps place URL,
// or "" for any other URL.
//
//	https://www.google.com/maps/place/Cafe+Sol/@38.7,-9.1,17z → Cafe+Sol
func placeKey(rawURL string) string {
	idx := strings.Index(rawURL, PlacePathMarker)
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len(PlacePathMarker):]
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
