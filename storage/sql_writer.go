package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gmaps-scraper/models"
)

const (
	insertBatchSize = 50
	businessColumns = 9
)

// sqlWriter holds the dialect-independent part of the database sinks: each
// term's rows are replaced in one transaction with batched inserts.
type sqlWriter struct {
	db          *sql.DB
	name        string
	placeholder func(n int) string
}

func (w *sqlWriter) Name() string { return w.name }

// Write replaces the rows stored for term with records.
func (w *sqlWriter) Write(term string, records []models.Business) error {
	ctx := context.Background()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", w.name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		"DELETE FROM businesses WHERE search_term = "+w.placeholder(1), term); err != nil {
		return fmt.Errorf("%s: clear term: %w", w.name, err)
	}

	for i := 0; i < len(records); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err = w.insertBatch(ctx, tx, term, records[i:end]); err != nil {
			return fmt.Errorf("%s: insert batch: %w", w.name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", w.name, err)
	}
	return nil
}

func (w *sqlWriter) insertBatch(ctx context.Context, tx *sql.Tx, term string, batch []models.Business) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*businessColumns)

	for idx, b := range batch {
		base := idx * businessColumns
		ph := make([]string, businessColumns)
		for c := range ph {
			ph[c] = w.placeholder(base + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			term, b.Name, b.Address, b.Website, b.PhoneNumber,
			b.ReviewsCount, b.ReviewsAverage, b.Latitude, b.Longitude)
	}

	query := fmt.Sprintf(`
		INSERT INTO businesses (search_term, name, address, website, phone_number,
			reviews_count, reviews_average, latitude, longitude)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// FetchTerm returns the stored records of one term in insertion order.
func (w *sqlWriter) FetchTerm(term string) ([]models.Business, error) {
	rows, err := w.db.Query(`
		SELECT name, address, website, phone_number, reviews_count, reviews_average, latitude, longitude
		FROM businesses
		WHERE search_term = `+w.placeholder(1)+`
		ORDER BY id
	`, term)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch term: %w", w.name, err)
	}
	defer rows.Close()

	var out []models.Business
	for rows.Next() {
		var b models.Business
		if err := rows.Scan(
			&b.Name, &b.Address, &b.Website, &b.PhoneNumber,
			&b.ReviewsCount, &b.ReviewsAverage, &b.Latitude, &b.Longitude,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", w.name, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (w *sqlWriter) Close() error {
	return w.db.Close()
}
