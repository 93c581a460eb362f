package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ymgch/shisan"
)

// GainsMarkdown renders the sell history with its realized profit summary.
func GainsMarkdown(l *shisan.Ledger, rates shisan.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Sell History")

	sum := l.SummarizeSales(rates)
	if sum.Count == 0 {
		doc.PlainText("No sales recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Holding", "Quantity", "Cost", "Sell Price", "Realized P/L"},
	}
	for s := range l.Sales() {
		name := s.LotID
		if lot, ok := l.Lot(s.LotID); ok {
			name = lot.Name
		}
		table.Rows = append(table.Rows, []string{
			s.SellDate.String(),
			name,
			s.Quantity.String(),
			s.PurchasePrice.String(),
			s.SellPrice.String(),
			sign(rates.Convert(s.Profit())),
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("%d sales, total realized P/L %s.", sum.Count, sum.Profit.SignedString()))

	return doc.String()
}

// DividendsMarkdown renders the dividend history with its cumulative total.
func DividendsMarkdown(l *shisan.Ledger, on shisan.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dividends")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Date", "Holding", "Amount"},
	}
	count := 0
	for d := range l.Dividends() {
		name := d.LotID
		if lot, ok := l.Lot(d.LotID); ok {
			name = lot.Name
		}
		table.Rows = append(table.Rows, []string{d.Date.String(), name, d.Amount.String()})
		count++
	}
	if count == 0 {
		doc.PlainText("No dividends recorded.")
		return doc.String()
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Cumulative dividends: %s.", l.CumulativeDividends(on)))

	return doc.String()
}
