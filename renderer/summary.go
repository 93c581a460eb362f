package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ymgch/shisan"
)

// SummaryMarkdown renders the portfolio totals with the period-over-period
// performance table.
func SummaryMarkdown(l *shisan.Ledger, holdings []shisan.Holding, snaps shisan.Snapshots, rates shisan.Rates, marketOpen map[string]bool, on shisan.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", on))

	total := shisan.TotalValue(holdings, rates)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{md.Bold("Total Value"), md.Bold(total.String())},
			{"Total Value (USD)", shisan.TotalValueIn(holdings, rates, "USD").String()},
			{"Unrealized P/L", sign(shisan.TotalProfitLoss(holdings, rates))},
			{"Realized P/L", sign(l.SummarizeSales(rates).Profit)},
			{"Dividends received", l.CumulativeDividends(on).String()},
		},
	})

	doc.H2("Performance")
	perf := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Period", "Change", "Change %", "Since"},
	}
	for _, period := range []shisan.Period{shisan.Day, shisan.Week, shisan.Month, shisan.YearToDate} {
		c, ok := shisan.Compare(holdings, snaps, period, rates, marketOpen)
		if !ok {
			perf.Rows = append(perf.Rows, []string{period.Label(), "n/a", "n/a", ""})
			continue
		}
		perf.Rows = append(perf.Rows, []string{
			period.Label(),
			sign(c.TotalChange),
			percent(c.TotalChangePercent),
			c.ComparisonDate.String(),
		})
	}
	doc.Table(perf)

	return doc.String()
}
