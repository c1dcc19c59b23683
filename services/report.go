package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

const topRatedLimit = 5

// ReportService summarises what a term produced, failures included.
type ReportService struct {
	logger *utils.Logger
	out    io.Writer
}

// NewReportService creates a ReportService printing to stdout.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger, out: os.Stdout}
}

// NewReportServiceTo creates a ReportService printing to w.
func NewReportServiceTo(logger *utils.Logger, w io.Writer) *ReportService {
	return &ReportService{logger: logger, out: w}
}

func (s *ReportService) Generate(result *models.TermResult) *models.TermReport {
	report := &models.TermReport{
		Term:       result.Term,
		Discovered: result.Discovered,
		TermErr:    result.Err,
		Failures:   result.Failures(),
	}
	report.Failed = len(report.Failures)

	records := result.Records()
	report.Extracted = len(records)
	if len(records) == 0 {
		return report
	}

	var rated []models.Business
	var ratingSum float64
	for _, b := range records {
		if b.Website != "" {
			report.WithWebsite++
		}
		if b.PhoneNumber != "" {
			report.WithPhone++
		}
		report.TotalReviews += b.ReviewsCount
		if b.ReviewsAverage > 0 {
			rated = append(rated, b)
			ratingSum += b.ReviewsAverage
		}
	}

	report.Rated = len(rated)
	if len(rated) > 0 {
		report.AverageRating = round2(ratingSum / float64(len(rated)))
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].ReviewsAverage == rated[j].ReviewsAverage {
			return rated[i].ReviewsCount > rated[j].ReviewsCount
		}
		return rated[i].ReviewsAverage > rated[j].ReviewsAverage
	})
	if len(rated) > topRatedLimit {
		rated = rated[:topRatedLimit]
	}
	report.TopRated = rated

	return report
}

func (s *ReportService) Print(r *models.TermReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	w := s.out

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  GOOGLE MAPS: %s\033[0m\n", truncate(r.Term, 40))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings discovered : \033[1m%d\033[0m\n", r.Discovered)
	fmt.Fprintf(w, "  Records extracted   : \033[1m%d\033[0m\n", r.Extracted)
	fmt.Fprintf(w, "  Entries skipped     : \033[1m%d\033[0m\n", r.Failed)
	if r.TermErr != nil {
		fmt.Fprintf(w, "  Term error          : \033[1;31m%v\033[0m\n", r.TermErr)
	}
	fmt.Fprintln(w)

	if r.Extracted > 0 {
		fmt.Fprintf(w, "\033[1;33m  Coverage\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  With website : %d/%d\n", r.WithWebsite, r.Extracted)
		fmt.Fprintf(w, "  With phone   : %d/%d\n", r.WithPhone, r.Extracted)
		fmt.Fprintf(w, "  Total reviews: %d\n", r.TotalReviews)
		if r.Rated > 0 {
			fmt.Fprintf(w, "  Avg rating   : \033[1;32m%.2f ★\033[0m (%d rated)\n", r.AverageRating, r.Rated)
		}
		fmt.Fprintln(w)
	}

	if len(r.TopRated) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Top %d Highest Rated\033[0m\n", len(r.TopRated))
		fmt.Fprintf(w, "  %s\n", thin)
		for i, b := range r.TopRated {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%.1f ★\033[0m (%d)\n",
				i+1, truncate(b.Name, 38), b.ReviewsAverage, b.ReviewsCount)
		}
		fmt.Fprintln(w)
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "\033[1;33m  Skipped Entries\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		for _, f := range r.Failures {
			label := f.Label
			if label == "" {
				label = "(no name)"
			}
			fmt.Fprintf(w, "  #%-3d %-30s %v\n", f.Index+1, truncate(label, 28), f.Err)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
