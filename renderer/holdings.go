package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ymgch/shisan"
)

// HoldingsMarkdown renders the consolidated portfolio as one table, one row
// per active holding.
func HoldingsMarkdown(holdings []shisan.Holding, rates shisan.Rates, on shisan.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", on))

	if len(holdings) == 0 {
		doc.PlainText("No active holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Holding", "Type", "Active Qty", "Avg Price", "Price", "Value", "Unrealized P/L"},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			hline(h),
			h.Type.Label(),
			qty(h.ActiveQuantity),
			h.PurchasePrice.String(),
			h.Price().String(),
			shisan.Value(h, rates).String(),
			sign(shisan.UnrealizedProfitLoss(h, rates)),
		})
	}
	doc.Table(table)

	return doc.String()
}

// HoldingMarkdown renders the detail view of one holding, with its
// constituent purchase records.
func HoldingMarkdown(h shisan.Holding, l *shisan.Ledger, rates shisan.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(hline(h))
	doc.PlainText(fmt.Sprintf("%s, first bought %s", h.Type.Label(), h.PurchaseDate))
	if len(h.Tags) > 0 {
		doc.PlainText(fmt.Sprintf("Tags: %v", h.Tags))
	}

	doc.H2("Position")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Total bought", h.Quantity.String()},
			{"Sold", h.SoldQuantity.String()},
			{"Active", qty(h.ActiveQuantity)},
			{"Weighted avg price", h.PurchasePrice.String()},
			{"Current price", h.Price().String()},
			{"Value", shisan.Value(h, rates).String()},
			{md.Bold("Unrealized P/L"), md.Bold(sign(shisan.UnrealizedProfitLoss(h, rates)))},
		},
	})

	doc.H2("Purchases")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Date", "Quantity", "Price", "Active", "Lot"},
	}
	for _, rec := range h.PurchaseRecords {
		lot, _ := l.Lot(rec.LotID)
		table.Rows = append(table.Rows, []string{
			rec.Date.String(),
			rec.Quantity.String(),
			rec.Price.String(),
			qty(l.ActiveQuantity(lot)),
			rec.LotID,
		})
	}
	doc.Table(table)

	return doc.String()
}
