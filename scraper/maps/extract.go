package maps

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gmaps-scraper/models"
)

// ParseDetail probes the rendered page HTML for the optional detail fields.
// Name and URL are not part of the pane and are filled in by the caller.
func ParseDetail(html string) (models.RawDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.RawDetail{}, fmt.Errorf("parse detail html: %w", err)
	}

	raw := models.RawDetail{
		Address:     firstText(doc, AddressSelector),
		Website:     firstText(doc, WebsiteSelector),
		Phone:       firstText(doc, PhoneSelector),
		ReviewsText: firstText(doc, ReviewsCountSelector),
	}
	if img := doc.Find(RatingImageSelector).First(); img.Length() > 0 {
		raw.RatingLabel = strings.TrimSpace(img.AttrOr(LabelAttr, ""))
	}
	return raw, nil
}

func firstText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
