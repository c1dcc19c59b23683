package maps

import (
	"errors"
	"testing"

	"gmaps-scraper/models"
)

func TestParseReviewsCount(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"1,234 reviews", 1234, false},
		{"(87)", 87, false},
		{"12 reviews", 12, false},
		{"1.050 avaliações", 1050, false},
		{"", 0, false},
		{"   ", 0, false},
		{"many reviews", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseReviewsCount(tt.text)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReviewsCount(%q) error = %v; wantErr %v", tt.text, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReviewsCount(%q) = %d; want %d", tt.text, got, tt.want)
		}
	}
}

func TestParseReviewsAverage(t *testing.T) {
	tests := []struct {
		label   string
		want    float64
		wantErr bool
	}{
		{"4,5 stars", 4.5, false},
		{"4.7 stars ", 4.7, false},
		{"5 estrelas", 5, false},
		{"", 0, false},
		{"No reviews", 0, true},
		{"NaN stars", 0, true},
		{"Inf stars", 0, true},
		{"-1 stars", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseReviewsAverage(tt.label)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReviewsAverage(%q) error = %v; wantErr %v", tt.label, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReviewsAverage(%q) = %.2f; want %.2f", tt.label, got, tt.want)
		}
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := ParseCoordinates("https://www.google.com/maps/place/Cafe/@-23.55,-46.63,17z/data=!3m1!4b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != -23.55 || lng != -46.63 {
		t.Errorf("got (%v, %v), want (-23.55, -46.63)", lat, lng)
	}

	// No trailing path after the zoom level.
	lat, lng, err = ParseCoordinates("https://www.google.com/maps/place/X/@40.7128,-74.006,15z")
	if err != nil || lat != 40.7128 || lng != -74.006 {
		t.Errorf("got (%v, %v, %v)", lat, lng, err)
	}
}

func TestParseCoordinatesMalformed(t *testing.T) {
	for _, u := range []string{
		"https://www.google.com/maps/search/pizza",
		"https://www.google.com/maps/place/X/@40.7/data",
		"",
	} {
		if _, _, err := ParseCoordinates(u); !errors.Is(err, ErrNoCoordinates) {
			t.Errorf("ParseCoordinates(%q): expected ErrNoCoordinates, got %v", u, err)
		}
	}

	if _, _, err := ParseCoordinates("https://x/@abc,1,2z/"); err == nil {
		t.Error("expected error for non-numeric latitude")
	}
}

func TestBuildBusinessAllAbsent(t *testing.T) {
	b, err := BuildBusiness(models.RawDetail{
		URL: "https://www.google.com/maps/place/Y/@1.5,2.5,14z/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.Business{Latitude: 1.5, Longitude: 2.5}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestBuildBusinessNormalisesText(t *testing.T) {
	b, err := BuildBusiness(models.RawDetail{
		Name:        "  Padaria   Central ",
		Address:     "Rua A,\n 100",
		Phone:       " +55 11 5555-0000 ",
		ReviewsText: "1,234 reviews",
		RatingLabel: "4,5 stars",
		URL:         "https://www.google.com/maps/place/Y/@-23.55,-46.63,17z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name != "Padaria Central" || b.Address != "Rua A, 100" || b.PhoneNumber != "+55 11 5555-0000" {
		t.Errorf("text fields not normalised: %+v", b)
	}
	if b.ReviewsCount != 1234 || b.ReviewsAverage != 4.5 {
		t.Errorf("metrics: got %d / %.1f", b.ReviewsCount, b.ReviewsAverage)
	}
}

func TestBuildBusinessNoCoordinates(t *testing.T) {
	_, err := BuildBusiness(models.RawDetail{Name: "A", URL: "https://www.google.com/maps/search/a"})
	if !errors.Is(err, ErrNoCoordinates) {
		t.Errorf("expected ErrNoCoordinates, got %v", err)
	}
}
