package cmd

import (
	"log"

	"github.com/ymgch/shisan"
	"github.com/ymgch/shisan/fundcsv"
	"github.com/ymgch/shisan/quote"
)

// refreshLive updates the current price of every holding that can be looked
// up (by ticker symbol, or by ISIN plus fund code for funds) and reports
// which holdings are in an open trading session. Holdings that cannot be
// refreshed keep their stored current price; failures are logged, never
// fatal, so reports always come out.
func refreshLive(ledger *shisan.Ledger, policy shisan.KeyPolicy) map[string]bool {
	open := make(map[string]bool)
	for _, h := range ledger.Consolidate(policy) {
		switch {
		case h.Symbol != "":
			q, err := quote.Get(h.Symbol)
			if err != nil {
				log.Printf("cannot refresh %s: %v", h.Key, err)
				continue
			}
			if err := ledger.SetCurrentPrice(h.Key, policy, q.Price); err != nil {
				log.Printf("cannot refresh %s: %v", h.Key, err)
				continue
			}
			open[h.Key] = q.Open
		case h.ISIN != "" && h.FundCode != "":
			// funds publish one price per day, their market is never "open"
			p, err := fundcsv.Latest(h.ISIN, h.FundCode)
			if err != nil {
				log.Printf("cannot refresh %s: %v", h.Key, err)
				continue
			}
			if err := ledger.SetCurrentPrice(h.Key, policy, p.Price); err != nil {
				log.Printf("cannot refresh %s: %v", h.Key, err)
			}
		}
	}
	return open
}

// liveRates returns the rate table for valuation, preferring a live fetch
// over the stored history, over the hardcoded fallback.
func liveRates(store *shisan.Store) shisan.Rates {
	if rate, err := quote.Rate(); err == nil {
		return shisan.Rates{"USD": rate}
	} else {
		log.Printf("cannot fetch live USD/JPY rate (%v), falling back on the stored one", err)
	}
	rates := currentRates(store)
	if _, ok := rates["USD"]; !ok {
		log.Printf("no stored USD/JPY rate, using the default %v", quote.DefaultUSDJPY)
		rates["USD"] = shisan.Q(quote.DefaultUSDJPY)
	}
	return rates
}
