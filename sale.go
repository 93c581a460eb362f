package shisan

import (
	"fmt"

	"github.com/google/uuid"
)

// Sale is one sale event against a specific originating lot, not against the
// consolidated holding. PurchasePrice is the lot's cost basis captured at
// sale time, so the realized profit survives later edits of the lot.
type Sale struct {
	ID            string   `json:"id"`
	LotID         string   `json:"lotId"`
	Quantity      Quantity `json:"quantity"`
	PurchasePrice Money    `json:"purchasePrice"`
	SellPrice     Money    `json:"sellPrice"`
	SellDate      Date     `json:"sellDate"`
}

// NewSale records a sale of quantity units of the given lot at price on the
// given day.
func NewSale(lot Lot, quantity Quantity, price Money, on Date) Sale {
	return Sale{
		ID:            uuid.NewString(),
		LotID:         lot.ID,
		Quantity:      quantity,
		PurchasePrice: lot.PurchasePrice,
		SellPrice:     price,
		SellDate:      on,
	}
}

// Currency returns the native currency of the sale.
func (s Sale) Currency() string { return s.SellPrice.Currency() }

// Profit returns the realized gain of this sale in its native currency:
// (sell price - cost basis at sale time) x quantity.
func (s Sale) Profit() Money {
	return s.SellPrice.Sub(s.PurchasePrice).Mul(s.Quantity)
}

func (s Sale) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sale is missing an id")
	}
	if s.LotID == "" {
		return fmt.Errorf("sale %s does not reference a lot", s.ID)
	}
	if !s.Quantity.IsPositive() {
		return fmt.Errorf("sale quantity must be positive, got %s", s.Quantity)
	}
	if s.SellPrice.IsNegative() {
		return fmt.Errorf("sale price cannot be negative, got %s", s.SellPrice)
	}
	if s.SellDate.IsZero() {
		return fmt.Errorf("sale is missing a date")
	}
	return nil
}
