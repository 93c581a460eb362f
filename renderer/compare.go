package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ymgch/shisan"
)

// ComparisonMarkdown renders one period comparison with its per-holding
// breakdown.
func ComparisonMarkdown(c shisan.Comparison, holdings []shisan.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Change", c.Period.Label()))
	source := "as of the latest snapshot"
	if c.Realtime {
		source = "live"
	}
	doc.PlainText(fmt.Sprintf("Compared against %s, current value %s (%s).", c.ComparisonDate, c.CurrentTotal, source))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "Change", "Change %"},
		Rows: [][]string{{
			md.Bold("Total"),
			md.Bold(sign(c.TotalChange)),
			md.Bold(percent(c.TotalChangePercent)),
		}},
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Holding", "Change", "Change %"},
	}
	// iterate holdings, not the map, to keep portfolio order
	for _, h := range holdings {
		change, ok := c.Holdings[h.Key]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, []string{
			hline(h),
			sign(change.Change),
			percent(change.ChangePercent),
		})
	}
	doc.Table(table)

	return doc.String()
}

// NoComparisonMarkdown renders the explicit no-data state, distinct from a
// computed zero change.
func NoComparisonMarkdown(period shisan.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s Change", period.Label()))
	doc.PlainText("No comparison available: not enough snapshot history yet. Run the update command to record today's snapshot.")
	return doc.String()
}
