package services

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard) }

func entry(i int, b models.Business) models.EntryResult {
	return models.EntryResult{Index: i, Label: b.Name, Record: &b}
}

func sampleResult() *models.TermResult {
	return &models.TermResult{
		Term:       "cafe lisbon",
		Discovered: 9,
		Entries: []models.EntryResult{
			entry(0, models.Business{Name: "A", Website: "a.pt", PhoneNumber: "1", ReviewsCount: 10, ReviewsAverage: 4.9}),
			entry(1, models.Business{Name: "B", ReviewsCount: 300, ReviewsAverage: 4.5}),
			{Index: 2, Label: "C", Err: errors.New("url has no coordinates")},
			entry(3, models.Business{Name: "D", PhoneNumber: "2", ReviewsCount: 50, ReviewsAverage: 4.9}),
			entry(4, models.Business{Name: "E"}),
			entry(5, models.Business{Name: "F", ReviewsCount: 1, ReviewsAverage: 3.0}),
			entry(6, models.Business{Name: "G", ReviewsCount: 2, ReviewsAverage: 2.0}),
			entry(7, models.Business{Name: "H", ReviewsCount: 3, ReviewsAverage: 1.0}),
		},
	}
}

func TestReportCounts(t *testing.T) {
	svc := NewReportServiceTo(newTestLogger(), io.Discard)
	r := svc.Generate(sampleResult())

	if r.Discovered != 9 || r.Extracted != 7 || r.Failed != 1 {
		t.Errorf("counts: discovered %d extracted %d failed %d", r.Discovered, r.Extracted, r.Failed)
	}
	if r.WithWebsite != 1 || r.WithPhone != 2 {
		t.Errorf("coverage: website %d phone %d", r.WithWebsite, r.WithPhone)
	}
	if r.TotalReviews != 366 {
		t.Errorf("TotalReviews: got %d, want 366", r.TotalReviews)
	}
}

func TestReportAverageIgnoresUnrated(t *testing.T) {
	svc := NewReportServiceTo(newTestLogger(), io.Discard)
	r := svc.Generate(sampleResult())

	// (4.9 + 4.5 + 4.9 + 3.0 + 2.0 + 1.0) / 6
	if r.Rated != 6 || r.AverageRating != 3.38 {
		t.Errorf("rating: rated %d avg %.2f, want 6 / 3.38", r.Rated, r.AverageRating)
	}
}

func TestReportTopRated(t *testing.T) {
	svc := NewReportServiceTo(newTestLogger(), io.Discard)
	r := svc.Generate(sampleResult())

	if len(r.TopRated) != 5 {
		t.Fatalf("TopRated len: got %d, want 5", len(r.TopRated))
	}
	// Equal ratings are ordered by review count.
	if r.TopRated[0].Name != "D" || r.TopRated[1].Name != "A" || r.TopRated[2].Name != "B" {
		t.Errorf("TopRated order: %s %s %s", r.TopRated[0].Name, r.TopRated[1].Name, r.TopRated[2].Name)
	}
}

func TestReportEmptyTerm(t *testing.T) {
	svc := NewReportServiceTo(newTestLogger(), io.Discard)
	r := svc.Generate(&models.TermResult{Term: "void", Err: errors.New("results panel not found")})
	if r.Extracted != 0 || r.TermErr == nil || len(r.TopRated) != 0 {
		t.Errorf("unexpected report: %+v", r)
	}
}

func TestReportPrintListsFailures(t *testing.T) {
	var buf bytes.Buffer
	svc := NewReportServiceTo(newTestLogger(), &buf)
	svc.Print(svc.Generate(sampleResult()))

	out := buf.String()
	for _, want := range []string{"cafe lisbon", "Records extracted   : \033[1m7", "url has no coordinates"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
