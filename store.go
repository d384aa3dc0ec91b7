package fintrack

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrMalformedLedger is returned when the ledger file exists but cannot be decoded.
var ErrMalformedLedger = errors.New("malformed ledger file")

// Storage loads and saves the whole transaction sequence.
type Storage interface {
	Load() ([]Transaction, error)
	Save(txs []Transaction) error
}

// Store persists transactions in a single JSON file.
//
// Save overwrites the whole file, it is not atomic and keeps no backup.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store { return &Store{path: path} }

// Load reads the ledger file. A missing file is an empty ledger. Content that
// cannot be decoded is reported as ErrMalformedLedger.
func (s *Store) Load() ([]Transaction, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", s.path, err)
	}
	txs, err := DecodeLedger(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMalformedLedger, s.path, err)
	}
	return txs, nil
}

// Save creates the containing folder if needed and overwrites the ledger
// file with txs.
func (s *Store) Save(txs []Transaction) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create ledger folder %q: %w", dir, err)
		}
	}
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, txs); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", s.path, err)
	}
	return nil
}
