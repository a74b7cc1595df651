// Package snapfile persists a whole-application snapshot to a single
// gzip-compressed JSON file.
package snapfile

import (
	"bytes"
	"io"
	"os"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/almansori/corona/internal/state"
)

// Store reads and writes snapshot files at a fixed path.
type Store struct {
	path string
}

// New returns a store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save encodes the snapshot fully in memory and then writes the file in one
// call. On any error the previous on-disk state is left untouched; no partial
// write is attempted.
func (s *Store) Save(snap state.Snapshot) error {
	var buf bytes.Buffer

	gz := pgzip.NewWriter(&buf)
	if _, err := gz.Write(encodeSnapshot(snap)); err != nil {
		return errors.Wrap(err, "compress snapshot")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "finish compression")
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}

	return nil
}

// Load reads and decodes the snapshot file. A missing file, bad compression,
// or malformed content all surface as an error; the caller falls back to a
// fresh empty application in that case.
func (s *Store) Load() (state.Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return state.Snapshot{}, errors.Wrapf(err, "open %s", s.path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return state.Snapshot{}, errors.Wrapf(err, "create gzip reader for %s", s.path)
	}
	defer func() { _ = gz.Close() }()

	data, err := io.ReadAll(gz)
	if err != nil {
		return state.Snapshot{}, errors.Wrapf(err, "decompress %s", s.path)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		return state.Snapshot{}, errors.Wrapf(err, "decode %s", s.path)
	}

	return snap, nil
}
