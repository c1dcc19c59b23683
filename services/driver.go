package services

import (
	"context"

	"gmaps-scraper/models"
	"gmaps-scraper/storage"
	"gmaps-scraper/utils"
)

// Collector runs one search-and-collect cycle for a term.
type Collector interface {
	Collect(ctx context.Context, term string, maxListings int) (*models.TermResult, error)
}

// Driver runs every search term through the collector, one after another,
// and hands each term's records to the sinks.
type Driver struct {
	collector Collector
	sinks     []storage.RecordSink
	reports   *ReportService
	logger    *utils.Logger
}

// NewDriver creates a Driver. reports may be nil to skip the per-term summary.
func NewDriver(collector Collector, sinks []storage.RecordSink, reports *ReportService, logger *utils.Logger) *Driver {
	return &Driver{
		collector: collector,
		sinks:     sinks,
		reports:   reports,
		logger:    logger,
	}
}

// Run processes terms in order. A failing term is logged and recorded in its
// result; it never stops the remaining terms. Only ctx cancellation ends the
// run early.
func (d *Driver) Run(ctx context.Context, terms []string, maxListings int) []*models.TermResult {
	if maxListings < 0 {
		maxListings = 0
	}

	results := make([]*models.TermResult, 0, len(terms))
	for idx, term := range terms {
		if ctx.Err() != nil {
			d.logger.Warn("[driver] Shutdown requested, stopping before term %d/%d", idx+1, len(terms))
			break
		}

		d.logger.Info("[driver] ----- %d - %s", idx, term)

		result, err := d.collector.Collect(ctx, term, maxListings)
		if result == nil {
			result = &models.TermResult{Term: term}
		}
		if err != nil {
			result.Err = err
			d.logger.Error("[driver] %q failed: %v", term, err)
		}

		d.save(term, result.Records())

		if d.reports != nil {
			d.reports.Print(d.reports.Generate(result))
		}
		results = append(results, result)
	}
	return results
}

func (d *Driver) save(term string, records []models.Business) {
	for _, sink := range d.sinks {
		if err := sink.Write(term, records); err != nil {
			d.logger.Error("[driver] %s write for %q failed: %v", sink.Name(), term, err)
			continue
		}
		d.logger.Info("[driver] %q: %d record(s) written to %s", term, len(records), sink.Name())
	}
}
