package models

// RawDetail holds unparsed strings read from a listing's detail pane.
// Missing elements leave the matching field empty.
type RawDetail struct {
	Name        string
	Address     string
	Website     string
	Phone       string
	ReviewsText string
	RatingLabel string
	URL         string
}

// Business is one extracted listing, ready for the record sinks.
// The json tags double as column names in tabular output.
type Business struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Website        string  `json:"website"`
	PhoneNumber    string  `json:"phone_number"`
	ReviewsCount   int     `json:"reviews_count"`
	ReviewsAverage float64 `json:"reviews_average"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}
