package shisan

import "log"

// ReportingCurrency is the currency every aggregate is converted into for
// display.
const ReportingCurrency = "JPY"

// logf reports degraded computations (missing rate, missing market price).
// These are never errors, valuation always completes, but they must stay
// observable. Indirection so tests can capture the output.
var logf = log.Printf

// Rates is the table of exchange rates into the reporting currency: one
// reporting-currency amount per unit of the keyed currency.
type Rates map[string]Quantity

// Rate returns the conversion factor into the reporting currency. The
// reporting currency itself is 1. A currency missing from the table is also
// valued at 1 so that a computation never fails outright, but the fallback is
// logged because the resulting figure is degraded.
func (r Rates) Rate(currency string) Quantity {
	if currency == ReportingCurrency || currency == "" {
		return Q(1)
	}
	if rate, ok := r[currency]; ok {
		return rate
	}
	logf("no exchange rate for %s, valuing at parity", currency)
	return Q(1)
}

// Convert converts an amount into the reporting currency.
func (r Rates) Convert(m Money) Money {
	return M(m.value.Mul(r.Rate(m.cur).value), ReportingCurrency)
}

// Value returns the current value of a holding in the reporting currency:
// market price (or purchase price when none was fetched) times the active
// quantity. A fully divested holding is worth zero.
func Value(h Holding, rates Rates) Money {
	if !h.ActiveQuantity.IsPositive() {
		return M(0, ReportingCurrency)
	}
	if h.CurrentPrice.IsZero() {
		logf("no market price for %q, valuing at purchase price", h.Name)
	}
	return rates.Convert(h.Price().Mul(h.ActiveQuantity))
}

// TotalValue returns the value of the whole portfolio in the reporting
// currency.
func TotalValue(holdings []Holding, rates Rates) Money {
	total := M(0, ReportingCurrency)
	for _, h := range holdings {
		total = total.Add(Value(h, rates))
	}
	return total
}

// TotalValueIn converts the portfolio total into another currency using the
// same rate table.
func TotalValueIn(holdings []Holding, rates Rates, currency string) Money {
	total := TotalValue(holdings, rates)
	if currency == ReportingCurrency {
		return total
	}
	return M(total.value.Div(rates.Rate(currency).value), currency)
}

// UnrealizedProfitLoss returns the gain or loss on the still-held quantity of
// one holding, in the reporting currency. Realized gains from past sales are
// excluded; they live on each Sale.
func UnrealizedProfitLoss(h Holding, rates Rates) Money {
	if !h.ActiveQuantity.IsPositive() {
		return M(0, ReportingCurrency)
	}
	return Value(h, rates).Sub(rates.Convert(h.CostBasis()))
}

// TotalProfitLoss returns the unrealized gain or loss of the whole
// portfolio in the reporting currency.
func TotalProfitLoss(holdings []Holding, rates Rates) Money {
	total := M(0, ReportingCurrency)
	for _, h := range holdings {
		total = total.Add(UnrealizedProfitLoss(h, rates))
	}
	return total
}

// SaleSummary aggregates the realized side of the ledger for the sell
// history view.
type SaleSummary struct {
	Count  int
	Profit Money // realized, in the reporting currency
}

// SummarizeSales totals the realized profit of all sales in the reporting
// currency.
func (l *Ledger) SummarizeSales(rates Rates) SaleSummary {
	sum := SaleSummary{Profit: M(0, ReportingCurrency)}
	for s := range l.Sales() {
		sum.Count++
		sum.Profit = sum.Profit.Add(rates.Convert(s.Profit()))
	}
	return sum
}
