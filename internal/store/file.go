package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// jsonFile is one whole-document JSON store on disk. Access discipline is
// read-entire-file, mutate in memory, write-entire-file; the mutex keeps a
// single handle's read-modify-write cycles from interleaving.
type jsonFile struct {
	path string
	mu   sync.Mutex
	log  *slog.Logger
}

func newJSONFile(path string, log *slog.Logger) *jsonFile {
	return &jsonFile{path: path, log: log}
}

// load unmarshals the file into v. Missing or corrupt files are not errors:
// v is left at its caller-supplied default and the condition is logged.
func (f *jsonFile) load(v any) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.Warn("store read failed, using default", "path", f.path, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		f.log.Warn("store unmarshal failed, using default", "path", f.path, "err", err)
	}
}

// save overwrites the file with the marshalled document, via a temp file and
// rename so a crash mid-write cannot leave a truncated store behind.
func (f *jsonFile) save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
