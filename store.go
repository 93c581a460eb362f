package shisan

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store reads and writes the data files of one portfolio inside a single
// directory. A missing file is an empty collection, so a fresh directory is
// a valid empty portfolio.
type Store struct {
	dir string
}

const (
	lotsFile      = "lots.jsonl"
	salesFile     = "sales.jsonl"
	dividendsFile = "dividends.jsonl"
	snapshotsFile = "snapshots.jsonl"
	pricesFile    = "prices.jsonl"
	ratesFile     = "rates.jsonl"
	tagsFile      = "tags.jsonl"
)

// NewStore opens a store over the given directory, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// read returns the file content, or empty content for a missing file.
func (s *Store) read(name string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", name, err)
	}
	return content, nil
}

// write replaces the file atomically: full content to a temp file in the
// same directory, then rename. A crash mid-save never leaves a truncated
// data file behind.
func (s *Store) write(name string, content []byte) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp*")
	if err != nil {
		return fmt.Errorf("cannot save %q: %w", name, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save %q: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save %q: %w", name, err)
	}
	return nil
}

// LoadLedger reads the lots, sales and dividends files.
func (s *Store) LoadLedger() (*Ledger, error) {
	lots, err := s.read(lotsFile)
	if err != nil {
		return nil, err
	}
	sales, err := s.read(salesFile)
	if err != nil {
		return nil, err
	}
	dividends, err := s.read(dividendsFile)
	if err != nil {
		return nil, err
	}
	return DecodeLedger(bytes.NewReader(lots), bytes.NewReader(sales), bytes.NewReader(dividends))
}

// SaveLedger writes the lots, sales and dividends files.
func (s *Store) SaveLedger(l *Ledger) error {
	var lots, sales, dividends bytes.Buffer
	if err := EncodeLedger(l, &lots, &sales, &dividends); err != nil {
		return err
	}
	if err := s.write(lotsFile, lots.Bytes()); err != nil {
		return err
	}
	if err := s.write(salesFile, sales.Bytes()); err != nil {
		return err
	}
	return s.write(dividendsFile, dividends.Bytes())
}

// LoadSnapshots reads the snapshot series.
func (s *Store) LoadSnapshots() (Snapshots, error) {
	content, err := s.read(snapshotsFile)
	if err != nil {
		return nil, err
	}
	return DecodeSnapshots(bytes.NewReader(content))
}

// SaveSnapshots writes the snapshot series.
func (s *Store) SaveSnapshots(snaps Snapshots) error {
	var buf bytes.Buffer
	if err := EncodeSnapshots(snaps, &buf); err != nil {
		return err
	}
	return s.write(snapshotsFile, buf.Bytes())
}

// LoadPrices reads the price database.
func (s *Store) LoadPrices() (*PriceDB, error) {
	prices, err := s.read(pricesFile)
	if err != nil {
		return nil, err
	}
	rates, err := s.read(ratesFile)
	if err != nil {
		return nil, err
	}
	return DecodePrices(bytes.NewReader(prices), bytes.NewReader(rates))
}

// SavePrices writes the price database.
func (s *Store) SavePrices(db *PriceDB) error {
	var prices, rates bytes.Buffer
	if err := EncodePrices(db, &prices, &rates); err != nil {
		return err
	}
	if err := s.write(pricesFile, prices.Bytes()); err != nil {
		return err
	}
	return s.write(ratesFile, rates.Bytes())
}

// LoadTags reads the tag registry.
func (s *Store) LoadTags() (*TagRegistry, error) {
	content, err := s.read(tagsFile)
	if err != nil {
		return nil, err
	}
	return DecodeTags(bytes.NewReader(content))
}

// SaveTags writes the tag registry.
func (s *Store) SaveTags(reg *TagRegistry) error {
	var buf bytes.Buffer
	if err := EncodeTags(reg, &buf); err != nil {
		return err
	}
	return s.write(tagsFile, buf.Bytes())
}
