// Package store holds the on-disk JSON documents the scraper works against:
// the campsite registry, the date registry, the result set and the supplier
// cache. Handles are constructed once at startup and injected; load never
// fails (missing/corrupt files degrade to a default), save overwrites the
// whole document.
package store

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/mannigfalter/rategrab/internal/models"
)

// CampsiteStore is the ordered campsite registry.
type CampsiteStore struct {
	f *jsonFile
}

func NewCampsiteStore(path string, log *slog.Logger) *CampsiteStore {
	return &CampsiteStore{f: newJSONFile(path, log)}
}

func (s *CampsiteStore) Load() []models.Campsite {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var list []models.Campsite
	s.f.load(&list)
	return list
}

func (s *CampsiteStore) Save(list []models.Campsite) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return s.f.save(list)
}

func (s *CampsiteStore) FindByCode(code string) (models.Campsite, bool) {
	for _, cs := range s.Load() {
		if cs.Code == code {
			return cs, true
		}
	}
	return models.Campsite{}, false
}

// Touch stamps LastUpdate on the registry entry with the given code and
// persists the registry. Returns false if no entry matches.
func (s *CampsiteStore) Touch(code string, at time.Time) (bool, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var list []models.Campsite
	s.f.load(&list)
	for i := range list {
		if list[i].Code == code {
			t := at
			list[i].LastUpdate = &t
			return true, s.f.save(list)
		}
	}
	return false, nil
}

// DateStore is the read-only date registry: label -> arrival date.
type DateStore struct {
	f *jsonFile
}

func NewDateStore(path string, log *slog.Logger) *DateStore {
	return &DateStore{f: newJSONFile(path, log)}
}

func (s *DateStore) Load() models.DateRegistry {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	reg := models.DateRegistry{}
	s.f.load(&reg)
	return reg
}

func (s *DateStore) Save(reg models.DateRegistry) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return s.f.save(reg)
}

// ResultStore maps composite keys to result records.
type ResultStore struct {
	f *jsonFile
}

func NewResultStore(path string, log *slog.Logger) *ResultStore {
	return &ResultStore{f: newJSONFile(path, log)}
}

func (s *ResultStore) Load() map[string]models.ResultRecord {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	m := map[string]models.ResultRecord{}
	s.f.load(&m)
	return m
}

// ReplaceCampsite drops every record owned by the campsite code and overlays
// the fresh set, in one write. Records of other campsites are untouched. An
// empty fresh set still removes the old records.
func (s *ResultStore) ReplaceCampsite(code string, fresh map[string]models.ResultRecord) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	m := map[string]models.ResultRecord{}
	s.f.load(&m)
	for key, rec := range m {
		if rec.Campsite == code {
			delete(m, key)
		}
	}
	for key, rec := range fresh {
		m[key] = rec
	}
	return s.f.save(m)
}

// Clear empties the result store.
func (s *ResultStore) Clear() error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	return s.f.save(map[string]models.ResultRecord{})
}

// SupplierStore is the supplier identity cache. Entries are written once and
// never evicted or refreshed; a cached null is a valid entry and is
// distinguishable from an absent one.
type SupplierStore struct {
	f *jsonFile
}

func NewSupplierStore(path string, log *slog.Logger) *SupplierStore {
	return &SupplierStore{f: newJSONFile(path, log)}
}

func (s *SupplierStore) Get(itemID int64) (models.Supplier, bool) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	m := map[string]models.Supplier{}
	s.f.load(&m)
	sup, ok := m[strconv.FormatInt(itemID, 10)]
	return sup, ok
}

// Put merges one entry into the latest on-disk snapshot.
func (s *SupplierStore) Put(itemID int64, sup models.Supplier) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	m := map[string]models.Supplier{}
	s.f.load(&m)
	m[strconv.FormatInt(itemID, 10)] = sup
	return s.f.save(m)
}
