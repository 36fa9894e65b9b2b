package prices

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"
)

// DefaultStoreFile is the store path used when none is configured.
const DefaultStoreFile = "prices.csv"

// Store is the durable collection of records backed by a single file.
//
// Every mutation is a full read-modify-write of the file. There is no locking:
// a change made by another process between the read and the write of the same
// operation is lost.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a Store for the file at path. The file is created lazily.
func NewStore(path string) *Store {
	return &Store{path: path, log: zerolog.Nop()}
}

// WithLogger returns s after setting the logger used for file events.
func (s *Store) WithLogger(l zerolog.Logger) *Store {
	s.log = l.With().Str("path", s.path).Logger()
	return s
}

// Path returns the file path of the store.
func (s *Store) Path() string { return s.path }

// EnsureExists creates the store file with only a header if it does not exist.
func (s *Store) EnsureExists() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &ReadError{Path: s.path, Err: err}
	}
	if err := writeFile(s.path, nil); err != nil {
		return err
	}
	s.log.Debug().Msg("create-store-file")
	return nil
}

// LoadAll returns all records in file order.
func (s *Store) LoadAll() ([]Record, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	defer f.Close()

	records, err := decodeRecords(f, func(line int, cell string) {
		s.log.Debug().Int("line", line).Str("cell", cell).Msg("coerce-price")
	})
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	return records, nil
}

// Append adds r at the end of the store.
//
// This is not an incremental append: the whole file is read and rewritten, so
// a legacy file comes out in the canonical layout.
func (s *Store) Append(r Record) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}
	return s.ReplaceAll(append(records, r))
}

// ReplaceAll rewrites the store with exactly the given records.
//
// Content is written to a temporary file in the same folder, then renamed
// over the store, so that a failed write leaves the previous content intact.
func (s *Store) ReplaceAll(records []Record) error {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+"-*")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename.

	if err := EncodeRecords(tmp, records); err != nil {
		tmp.Close()
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	// CreateTemp uses 0600: keep the mode of the replaced file, or the one of a created file.
	mode := fs.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.log.Debug().Int("rows", len(records)).Msg("replace-store-file")
	return nil
}

// DeleteAt removes the record at position index.
// An out of range index is an *IndexError and leaves the store untouched.
func (s *Store) DeleteAt(index int) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return &IndexError{Index: index, Len: len(records)}
	}
	return s.ReplaceAll(slices.Delete(records, index, index+1))
}

// Upgrade rewrites the store in the canonical layout and returns the number of records.
func (s *Store) Upgrade() (int, error) {
	records, err := s.LoadAll()
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceAll(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// writeFile creates or truncates path and writes the header and records to it.
func writeFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := EncodeRecords(f, records); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: fmt.Errorf("encode error: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
