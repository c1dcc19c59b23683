package maps

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"gmaps-scraper/models"
)

// ErrNoCoordinates is returned when a place URL carries no "/@lat,lng" part.
var ErrNoCoordinates = errors.New("url has no coordinates")

// BuildBusiness turns the raw strings of a detail pane into a Business.
// Absent text fields stay empty and absent metrics default to zero; only
// malformed metrics or a URL without coordinates are errors.
func BuildBusiness(raw models.RawDetail) (models.Business, error) {
	b := models.Business{
		Name:        normaliseText(raw.Name),
		Address:     normaliseText(raw.Address),
		Website:     normaliseText(raw.Website),
		PhoneNumber: normaliseText(raw.Phone),
	}

	count, err := ParseReviewsCount(raw.ReviewsText)
	if err != nil {
		return b, err
	}
	b.ReviewsCount = count

	avg, err := ParseReviewsAverage(raw.RatingLabel)
	if err != nil {
		return b, err
	}
	b.ReviewsAverage = avg

	lat, lng, err := ParseCoordinates(raw.URL)
	if err != nil {
		return b, err
	}
	b.Latitude, b.Longitude = lat, lng

	return b, nil
}

// ParseReviewsCount reads the leading number of a "more reviews" caption.
// Examples:
//
//	"1,234 reviews" → 1234
//	"(87)"          → 87
//	""              → 0
func ParseReviewsCount(text string) (int, error) {
	token := leadingToken(text)
	if token == "" {
		return 0, nil
	}
	token = strings.Trim(token, "()")
	token = strings.NewReplacer(",", "", ".", "", "\u00a0", "", "\u202f", "").Replace(token)

	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("parse reviews count %q: invalid number", text)
	}
	return n, nil
}

// ParseReviewsAverage reads the leading number of a rating label, accepting
// a comma as decimal separator.
// Examples:
//
//	"4.5 stars"      → 4.5
//	"4,5 estrelas"   → 4.5
//	""               → 0
func ParseReviewsAverage(label string) (float64, error) {
	token := leadingToken(label)
	if token == "" {
		return 0, nil
	}
	token = strings.ReplaceAll(token, ",", ".")

	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse reviews average %q: invalid number", label)
	}
	return v, nil
}

// ParseCoordinates extracts latitude and longitude from a place URL such as
// https://www.google.com/maps/place/Foo/@-23.55,-46.63,17z/data=...
func ParseCoordinates(rawURL string) (float64, float64, error) {
	idx := strings.LastIndex(rawURL, CoordinatesMarker)
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrNoCoordinates, rawURL)
	}

	segment := rawURL[idx+len(CoordinatesMarker):]
	if slash := strings.Index(segment, "/"); slash >= 0 {
		segment = segment[:slash]
	}

	parts := strings.Split(segment, ",")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrNoCoordinates, rawURL)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", parts[1], err)
	}
	return lat, lng, nil
}

func leadingToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
