package shisan

import (
	"fmt"

	"github.com/google/uuid"
)

// Dividend is an income record attached to any lot of the instrument. It is
// reporting-only: it never affects valuation or cost basis. Amounts are
// recorded already converted to the reporting currency.
type Dividend struct {
	ID     string `json:"id"`
	LotID  string `json:"lotId"`
	Date   Date   `json:"date"`
	Amount Money  `json:"amount"`
}

func NewDividend(lot Lot, amount Money, on Date) Dividend {
	return Dividend{
		ID:     uuid.NewString(),
		LotID:  lot.ID,
		Date:   on,
		Amount: amount,
	}
}

func (d Dividend) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dividend is missing an id")
	}
	if d.LotID == "" {
		return fmt.Errorf("dividend %s does not reference a lot", d.ID)
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("dividend amount must be positive, got %s", d.Amount)
	}
	if d.Amount.Currency() != ReportingCurrency {
		return fmt.Errorf("dividend amount must be in %s, got %s", ReportingCurrency, d.Amount.Currency())
	}
	if d.Date.IsZero() {
		return fmt.Errorf("dividend is missing a date")
	}
	return nil
}
