package scrape

import (
	"time"

	"github.com/mannigfalter/rategrab/internal/models"
)

// SelectCandidate returns the first campsite in registry order whose
// LastUpdate is absent or older than now minus interval. First stale wins;
// this biases refresh toward the front of the registry and may starve the
// tail under sustained load, which is accepted.
func SelectCandidate(campsites []models.Campsite, now time.Time, interval time.Duration) (models.Campsite, bool) {
	for _, cs := range campsites {
		if cs.LastUpdate == nil || now.Sub(*cs.LastUpdate) > interval {
			return cs, true
		}
	}
	return models.Campsite{}, false
}
