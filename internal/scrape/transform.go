package scrape

import (
	"context"
	"time"

	"github.com/mannigfalter/rategrab/internal/models"
)

// Transform maps one raw listing into a normalized result record. It makes
// exactly one resolver call; callers run it sequentially per listing, which
// throttles the supplier endpoint on purpose.
func Transform(ctx context.Context, raw RawListing, campsite models.Campsite,
	date, source string, resolver SupplierResolver, now time.Time) models.ResultRecord {
	return models.ResultRecord{
		ID:              raw.ID,
		Name:            raw.Name,
		Category:        raw.Category,
		CategorySlug:    raw.CategorySlug,
		MaxPersons:      raw.MaxPersons,
		Bedrooms:        raw.Bedrooms,
		Dishwasher:      raw.Dishwasher,
		WashingMachine:  raw.WashingMachine,
		AirConditioning: raw.AirConditioning,
		PetsAllowed:     raw.PetsAllowed,
		Price:           raw.Price,
		DiscountedPrice: raw.DiscountedPrice,
		Size:            raw.Size,
		ArrivalDate:     date,
		Nights:          stayNights,
		Supplier:        resolver.Resolve(ctx, raw.ID),
		Campsite:        campsite.Code,
		Date:            date,
		Source:          source,
		ScrapedAt:       models.FormatScrapedAt(now),
	}
}
