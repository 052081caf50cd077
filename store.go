package cartera

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

var (
	_ SnapshotStore = (*FileSnapshotStore)(nil)
	_ OverrideStore = (*FileOverrideStore)(nil)
)

// FileSnapshotStore persists the snapshot series in a JSONL file, one
// record per line. It is the external scheduler/manual-save
// collaborator's side of the snapshot contract; the engine itself only
// ever calls Snapshots.
type FileSnapshotStore struct {
	Path string
}

// Snapshots loads the series, ascending by date. A missing file is an
// empty history, not an error.
func (s *FileSnapshotStore) Snapshots() (SnapshotSeries, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening snapshots %q: %w", s.Path, err)
	}
	defer f.Close()
	return DecodeSnapshots(f)
}

// Append persists one new snapshot record. Records are immutable once
// written; a record for an already captured date is refused.
func (s *FileSnapshotStore) Append(rec SnapshotRecord) error {
	series, err := s.Snapshots()
	if err != nil {
		return err
	}
	if series.Has(rec.Date) {
		return fmt.Errorf("snapshot for %s already captured", rec.Date)
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening snapshots %q: %w", s.Path, err)
	}
	defer f.Close()
	if err := EncodeSnapshot(f, rec); err != nil {
		return fmt.Errorf("appending snapshot for %s: %w", rec.Date, err)
	}
	log.Info().Str("date", rec.Date.String()).Str("path", s.Path).Msg("snapshot saved")
	return nil
}

// Purge bulk-deletes the whole snapshot history.
func (s *FileSnapshotStore) Purge() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("purging snapshots %q: %w", s.Path, err)
	}
	log.Info().Str("path", s.Path).Msg("snapshot history purged")
	return nil
}

// FileOverrideStore persists the manual fx preferences in a JSONL
// file. The engine reads it; the preference commands rewrite it.
type FileOverrideStore struct {
	Path string
}

// Overrides loads the persisted preferences. A missing file means no
// overrides.
func (s *FileOverrideStore) Overrides() (Overrides, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(Overrides), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening overrides %q: %w", s.Path, err)
	}
	defer f.Close()
	return DecodeOverrides(f)
}

// Save rewrites the whole preference file in a stable order.
func (s *FileOverrideStore) Save(overrides Overrides) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("writing overrides %q: %w", s.Path, err)
	}
	defer f.Close()
	if err := EncodeOverrides(f, overrides); err != nil {
		return fmt.Errorf("writing overrides %q: %w", s.Path, err)
	}
	return nil
}
