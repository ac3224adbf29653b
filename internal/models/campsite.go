package models

import "time"

// Campsite is the unit of scrape scheduling. Records are seeded out-of-band
// into the campsite registry; only LastUpdate is mutated at runtime, after a
// scrape that produced at least one result.
type Campsite struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Country    string     `json:"country"`
	Region     string     `json:"region"`
	LastUpdate *time.Time `json:"lastUpdate,omitempty"`
}

// DateRegistry maps a human label ("week1") to the arrival date to query,
// formatted YYYY-MM-DD.
type DateRegistry map[string]string
