package shisan

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Data files are JSONL: one JSON object per line, in a stable field order,
// so that they diff and merge cleanly under version control.

// decodeLines decodes one record per non-blank line, reporting errors with
// the file name and line number.
func decodeLines[T any](r io.Reader, name string) ([]T, error) {
	var out []T
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for i := 1; scanner.Scan(); i++ {
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" || strings.HasPrefix(txt, "//") {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(txt), &v); err != nil {
			return nil, fmt.Errorf("%s:%d: invalid record: %w", name, i, err)
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// encodeLines writes one record per line.
func encodeLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, v := range items {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads the three record streams of a ledger.
func DecodeLedger(lots, sales, dividends io.Reader) (*Ledger, error) {
	l := NewLedger()
	var err error
	if l.lots, err = decodeLines[Lot](lots, "lots"); err != nil {
		return nil, err
	}
	if l.sales, err = decodeLines[Sale](sales, "sales"); err != nil {
		return nil, err
	}
	if l.dividends, err = decodeLines[Dividend](dividends, "dividends"); err != nil {
		return nil, err
	}
	l.stableSort()
	return l, nil
}

// EncodeLedger writes the three record streams of a ledger in canonical
// (chronological) order.
func EncodeLedger(l *Ledger, lots, sales, dividends io.Writer) error {
	l.stableSort()
	if err := encodeLines(lots, l.lots); err != nil {
		return err
	}
	if err := encodeLines(sales, l.sales); err != nil {
		return err
	}
	return encodeLines(dividends, l.dividends)
}

// priceRow is the persisted form of one price point.
type priceRow struct {
	Key   string `json:"key"`
	Date  Date   `json:"date"`
	Price Money  `json:"price"`
}

// rateRow is the persisted form of one exchange-rate point.
type rateRow struct {
	Date Date     `json:"date"`
	Rate Quantity `json:"rate"`
}

// DecodePrices reads a price database from its two streams.
func DecodePrices(prices, rates io.Reader) (*PriceDB, error) {
	db := NewPriceDB()
	priceRows, err := decodeLines[priceRow](prices, "prices")
	if err != nil {
		return nil, err
	}
	for _, row := range priceRows {
		db.AddPrice(row.Key, row.Date, row.Price)
	}
	rateRows, err := decodeLines[rateRow](rates, "rates")
	if err != nil {
		return nil, err
	}
	for _, row := range rateRows {
		db.AddRate(row.Date, row.Rate)
	}
	return db, nil
}

// EncodePrices writes the price database, keys sorted, series chronological.
func EncodePrices(db *PriceDB, prices, rates io.Writer) error {
	var priceRows []priceRow
	for _, key := range db.Keys() {
		for on, p := range db.Prices(key) {
			priceRows = append(priceRows, priceRow{Key: key, Date: on, Price: p})
		}
	}
	if err := encodeLines(prices, priceRows); err != nil {
		return err
	}
	var rateRows []rateRow
	for on, r := range db.Rates() {
		rateRows = append(rateRows, rateRow{Date: on, Rate: r})
	}
	return encodeLines(rates, rateRows)
}

// DecodeSnapshots reads the snapshot series.
func DecodeSnapshots(r io.Reader) (Snapshots, error) {
	rows, err := decodeLines[Snapshot](r, "snapshots")
	if err != nil {
		return nil, err
	}
	s := Snapshots(rows)
	s.sort()
	return s, nil
}

// EncodeSnapshots writes the snapshot series in date order.
func EncodeSnapshots(s Snapshots, w io.Writer) error {
	s.sort()
	return encodeLines(w, []Snapshot(s))
}

// DecodeTags reads a tag registry.
func DecodeTags(r io.Reader) (*TagRegistry, error) {
	rows, err := decodeLines[Tag](r, "tags")
	if err != nil {
		return nil, err
	}
	return NewTagRegistry(rows...), nil
}

// EncodeTags writes the tag registry, sorted by name.
func EncodeTags(reg *TagRegistry, w io.Writer) error {
	return encodeLines(w, reg.Tags())
}
