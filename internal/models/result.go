package models

import (
	"fmt"
	"time"
)

// Supplier is the upstream-reported operator identity for a listing, kept
// verbatim as returned by the lookup endpoint. A nil Supplier is meaningful:
// the upstream reported no supplier (or the lookup failed permanently).
type Supplier map[string]any

// ResultRecord is one normalized availability/price listing for a campsite
// accommodation on a specific arrival date.
type ResultRecord struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	CategorySlug    string   `json:"categorySlug"`
	MaxPersons      int      `json:"maxPersons"`
	Bedrooms        int      `json:"bedrooms"`
	Dishwasher      bool     `json:"dishwasher"`
	WashingMachine  bool     `json:"washingMachine"`
	AirConditioning bool     `json:"airConditioning"`
	PetsAllowed     bool     `json:"petsAllowed"`
	Price           float64  `json:"price"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Size            float64  `json:"size"`
	ArrivalDate     string   `json:"arrivalDate"`
	Nights          int      `json:"nights"`
	Supplier        Supplier `json:"supplier"`
	Campsite        string   `json:"campsite"`
	Date            string   `json:"date"`
	Source          string   `json:"source"`
	ScrapedAt       string   `json:"scrapedAt"`
}

// ScrapedAtLayout truncates ingestion stamps to minute granularity.
const ScrapedAtLayout = "2006-01-02, 15:04"

// ResultKey builds the composite identifier a ResultRecord is stored under.
// Uniqueness across campsites, sources, dates and items hangs on this format.
func ResultKey(campsiteCode, source, date string, itemID int64) string {
	return fmt.Sprintf("%s_from_%s_at_%s_#%d", campsiteCode, source, date, itemID)
}

// FormatScrapedAt renders the ingestion timestamp stored on a ResultRecord.
func FormatScrapedAt(t time.Time) string {
	return t.Format(ScrapedAtLayout)
}
