package storage

import "gmaps-scraper/models"

// RecordSink is the interface any output backend must satisfy. Write is
// called once per search term with that term's full collection.
type RecordSink interface {
	Name() string
	Write(term string, records []models.Business) error
	Close() error
}
