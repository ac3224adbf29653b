package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/mannigfalter/rategrab/internal/models"
)

// Stay parameters are fixed for every search: the snapshot tracks one
// standardized stay per (campsite, date) pair.
const (
	SourceAllcamps = "ALLCAMPS"

	stayNights   = 7
	stayAdults   = 2
	stayChildren = 0

	searchCategory = "accommodation"
	searchPage     = 1
	searchLimit    = 200
	searchOrderBy  = "price"
)

// RawListing is one accommodation as the search API reports it, before
// normalization.
type RawListing struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	CategorySlug    string  `json:"categorySlug"`
	MaxPersons      int     `json:"maxPersons"`
	Bedrooms        int     `json:"bedrooms"`
	Dishwasher      bool    `json:"dishwasher"`
	WashingMachine  bool    `json:"washingMachine"`
	AirConditioning bool    `json:"airConditioning"`
	PetsAllowed     bool    `json:"petsAllowed"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Size            float64 `json:"size"`
}

type searchPayload struct {
	Country     string `json:"country"`
	Region      string `json:"region"`
	Campsite    string `json:"campsite"`
	ArrivalDate string `json:"arrivalDate"`
	Nights      int    `json:"nights"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Category    string `json:"category"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	OrderBy     string `json:"orderBy"`
}

type searchResponse struct {
	Accommodations []RawListing `json:"accommodations"`
	Alternatives   []RawListing `json:"alternatives"`
}

type supplierResponse struct {
	Supplier models.Supplier `json:"supplier"`
}

// Client talks to the upstream search and accommodation endpoints. Requests
// carry no deadline: delays elsewhere are throttling, not timeouts.
type Client struct {
	http        *resty.Client
	searchURL   string
	supplierURL string
	log         *slog.Logger
}

func NewClient(searchURL, supplierURL string, log *slog.Logger) *Client {
	return &Client{
		http:        resty.New(),
		searchURL:   searchURL,
		supplierURL: supplierURL,
		log:         log,
	}
}

// Search fetches the listings for one (campsite, date) pair. Alternatives
// (substitute offers that don't exactly match the filters) are appended to
// the primary accommodations and treated identically downstream. Any
// transport or parse error yields no partial data.
func (c *Client) Search(ctx context.Context, campsite models.Campsite, date string) ([]RawListing, error) {
	payload := searchPayload{
		Country:     campsite.Country,
		Region:      campsite.Region,
		Campsite:    campsite.Name,
		ArrivalDate: date,
		Nights:      stayNights,
		Adults:      stayAdults,
		Children:    stayChildren,
		Category:    searchCategory,
		Page:        searchPage,
		Limit:       searchLimit,
		OrderBy:     searchOrderBy,
	}

	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post(c.searchURL)
	if err != nil {
		return nil, fmt.Errorf("search %s at %s: %w", campsite.Code, date, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search %s at %s: status %s", campsite.Code, date, resp.Status())
	}

	c.log.Debug("search fetched",
		"campsite", campsite.Code,
		"date", date,
		"accommodations", len(out.Accommodations),
		"alternatives", len(out.Alternatives),
	)
	return append(out.Accommodations, out.Alternatives...), nil
}

// FetchSupplier looks up the supplier identity for one item via the per-item
// accommodation endpoint.
func (c *Client) FetchSupplier(ctx context.Context, itemID int64) (models.Supplier, error) {
	var out supplierResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("%s/%d", c.supplierURL, itemID))
	if err != nil {
		return nil, fmt.Errorf("supplier lookup %d: %w", itemID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("supplier lookup %d: status %s", itemID, resp.Status())
	}
	return out.Supplier, nil
}
