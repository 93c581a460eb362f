package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ymgch/shisan"
)

// TagsMarkdown renders the per-tag value breakdown. Buckets overlap when a
// holding carries several tags.
func TagsMarkdown(holdings []shisan.Holding, reg *shisan.TagRegistry, rates shisan.Rates) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Value by Tag")

	values := shisan.TagValues(holdings, rates)
	if len(values) == 0 {
		doc.PlainText("No active holdings.")
		return doc.String()
	}

	total := shisan.TotalValue(holdings, rates)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Tag", "Holdings", "Value", "Share", "Color"},
	}
	for _, tv := range values {
		share := shisan.Percent(0)
		if total.IsPositive() {
			share = shisan.Percent(tv.Value.InexactFloat() / total.InexactFloat() * 100)
		}
		name := tv.Tag
		if name == shisan.Untagged {
			name = "タグなし"
		}
		table.Rows = append(table.Rows, []string{
			name,
			fmt.Sprintf("%d", tv.Holdings),
			tv.Value.String(),
			share.String(),
			reg.Color(tv.Tag),
		})
	}
	doc.Table(table)
	doc.PlainText("Shares can exceed 100% in total: a holding counts fully in each of its tags.")

	return doc.String()
}
