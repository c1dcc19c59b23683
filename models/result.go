package models

// EntryResult is the outcome of extracting one listing: either Record is set
// or Err explains why the entry was skipped.
type EntryResult struct {
	Index  int
	Label  string
	Record *Business
	Err    error
}

// OK reports whether the entry produced a record.
func (e EntryResult) OK() bool {
	return e.Err == nil && e.Record != nil
}

// TermResult collects everything one search term produced.
type TermResult struct {
	Term       string
	Discovered int // listing links visible when scrolling converged
	Entries    []EntryResult
	Err        error // term-level failure, e.g. results panel missing
}

// Records returns the successfully extracted businesses in listing order.
func (r *TermResult) Records() []Business {
	out := make([]Business, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.OK() {
			out = append(out, *e.Record)
		}
	}
	return out
}

// Failures returns the entries that could not be extracted.
func (r *TermResult) Failures() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if !e.OK() {
			out = append(out, e)
		}
	}
	return out
}

// TermReport holds the computed summary for one search term.
type TermReport struct {
	Term          string
	Discovered    int
	Extracted     int
	Failed        int
	Failures      []EntryResult
	TermErr       error
	WithWebsite   int
	WithPhone     int
	Rated         int
	AverageRating float64
	TotalReviews  int
	TopRated      []Business
}
