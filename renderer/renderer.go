// Package renderer turns ledger projections into markdown reports. The cmd
// layer renders these to the terminal; the agent feeds them to its experts.
package renderer

import (
	"fmt"

	"github.com/ymgch/shisan"
)

// qty formats a quantity for display, clamping corrupted negatives to zero.
func qty(q shisan.Quantity) string {
	return q.OrZero().String()
}

// percent formats a signed percentage cell.
func percent(p shisan.Percent) string {
	return p.SignedString()
}

// sign formats a signed money cell.
func sign(m shisan.Money) string {
	return m.SignedString()
}

// hline is the one-line identification of a holding in tables.
func hline(h shisan.Holding) string {
	if h.Symbol != "" && h.Symbol != h.Name {
		return fmt.Sprintf("%s (%s)", h.Name, h.Symbol)
	}
	return h.Name
}
