package shisan

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// AssetType classifies an instrument for breakdowns and price lookup.
type AssetType string

const (
	Stock  AssetType = "stock"
	ETF    AssetType = "etf"
	Fund   AssetType = "fund"
	Crypto AssetType = "crypto"
	Other  AssetType = "other"
)

// Label returns the Japanese display label for the asset type.
func (t AssetType) Label() string {
	switch t {
	case Stock:
		return "株式"
	case ETF:
		return "ETF"
	case Fund:
		return "投資信託"
	case Crypto:
		return "仮想通貨"
	default:
		return "その他"
	}
}

func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(strings.ToLower(strings.TrimSpace(s))) {
	case Stock:
		return Stock, nil
	case ETF, "e.t.f.":
		return ETF, nil
	case Fund, "mutualfund", "trust":
		return Fund, nil
	case Crypto, "cryptocurrency":
		return Crypto, nil
	case Other, "":
		return Other, nil
	default:
		return Other, fmt.Errorf("unknown asset type %q", s)
	}
}

// KeyPolicy selects how lots are grouped into one logical holding.
type KeyPolicy int

const (
	// KeyByName groups by display name. Renaming a lot moves it to another
	// group, and two unrelated instruments with the same name merge. This is
	// the historical behavior and lets a user merge the same fund bought
	// through different brokers.
	KeyByName KeyPolicy = iota
	// KeyByInstrument groups by symbol, then ISIN, then name when the lot has
	// neither identifier.
	KeyByInstrument
)

func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		return KeyByName, nil
	case "instrument", "symbol":
		return KeyByInstrument, nil
	default:
		return KeyByName, fmt.Errorf("unknown key policy %q, want name or instrument", s)
	}
}

// Lot is one purchase event of an instrument. Several lots of the same
// instrument are consolidated into a single Holding for display and
// valuation.
type Lot struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          AssetType `json:"type"`
	Symbol        string    `json:"symbol,omitempty"`
	ISIN          string    `json:"isin,omitempty"`
	FundCode      string    `json:"fundCode,omitempty"` // fund association code, used with ISIN for fund price lookup
	Quantity      Quantity  `json:"quantity"`
	PurchasePrice Money     `json:"purchasePrice"`
	PurchaseDate  Date      `json:"purchaseDate"`
	CurrentPrice  Money     `json:"currentPrice,omitzero"`
	Tags          []string  `json:"tags,omitempty"`
}

// NewLot returns a Lot with a fresh id and normalized tags.
func NewLot(name string, typ AssetType, quantity Quantity, price Money, on Date, tags ...string) Lot {
	return Lot{
		ID:            uuid.NewString(),
		Name:          name,
		Type:          typ,
		Quantity:      quantity,
		PurchasePrice: price,
		PurchaseDate:  on,
		Tags:          normalizeTags(tags),
	}
}

// Currency returns the native currency of the lot.
func (l Lot) Currency() string { return l.PurchasePrice.Currency() }

// HasCurrentPrice reports whether a market price has been fetched for this
// lot. Valuation falls back to the purchase price when it is absent.
func (l Lot) HasCurrentPrice() bool { return !l.CurrentPrice.IsZero() }

// Key returns the consolidation key of the lot under the given policy.
func (l Lot) Key(policy KeyPolicy) string {
	if policy == KeyByInstrument {
		if l.Symbol != "" {
			return l.Symbol
		}
		if l.ISIN != "" {
			return l.ISIN
		}
	}
	return l.Name
}

// Validate checks the lot invariants. It is called at the mutation boundary;
// computations downstream assume validated input.
func (l Lot) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("lot is missing an id")
	}
	if l.Name == "" {
		return fmt.Errorf("lot %s is missing a name", l.ID)
	}
	if !l.Quantity.IsPositive() {
		return fmt.Errorf("lot %q quantity must be positive, got %s", l.Name, l.Quantity)
	}
	if !l.PurchasePrice.IsPositive() {
		return fmt.Errorf("lot %q purchase price must be positive, got %s", l.Name, l.PurchasePrice)
	}
	if l.PurchaseDate.IsZero() {
		return fmt.Errorf("lot %q is missing a purchase date", l.Name)
	}
	if l.PurchaseDate.After(Today()) {
		return fmt.Errorf("lot %q purchase date %s is in the future", l.Name, l.PurchaseDate)
	}
	if l.PurchasePrice.Currency() == "" {
		return fmt.Errorf("lot %q is missing a currency", l.Name)
	}
	return nil
}

// normalizeTags returns a sorted copy without duplicates or blanks.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
