package maps

// CSS selectors for the Google Maps web app.
// Keep them here so DOM changes on the host only touch one file.
const (
	// Search
	SearchBoxSelector = `#searchboxinput`

	// Results panel, primary layout first, then the feed layout.
	PanelSelector         = `div.section-layout.section-scrollbox`
	PanelFallbackSelector = `div[role="feed"]`

	// Listing links inside the results panel.
	ListingLinkSelector = `a[href*="https://www.google.com/maps/place"]`

	// Detail pane
	DetailHeadingSelector = `h1`
	AddressSelector       = `button[data-item-id="address"] [class*="fontBodyMedium"]`
	WebsiteSelector       = `a[data-item-id="authority"] [class*="fontBodyMedium"]`
	PhoneSelector         = `button[data-item-id*="phone:tel:"] [class*="fontBodyMedium"]`
	ReviewsCountSelector  = `button[jsaction="pane.reviewChart.moreReviews"] span`
	RatingImageSelector   = `div[jsaction="pane.reviewChart.moreReviews"] div[role="img"]`

	// LabelAttr carries the accessible name of listings and the rating image.
	LabelAttr = "aria-label"

	// PlacePathMarker starts the place segment of a place URL.
	PlacePathMarker = "/maps/place/"

	// CoordinatesMarker precedes "lat,lng,zoom" in place URLs.
	CoordinatesMarker = "/@"
)

// consentSelectors are tried in order on the cookie consent interstitial.
var consentSelectors = []string{
	`button[aria-label="Accept all"]`,
	`button[aria-label="Reject all"]`,
	`button[aria-label="I agree"]`,
	`form[action*="consent"] button`,
}
