// Package quote fetches live market prices and exchange rates from a
// Yahoo-chart-compatible endpoint.
package quote

import (
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/ymgch/shisan"
)

const proxyEnv = "SHISAN_QUOTE_PROXY"

var proxyFlag = flag.String("quote-proxy", "", "Base URL of a local proxy in front of the quote API.\n If missing it will read the environment variable \""+proxyEnv+"\", and default to querying the API directly.")

// DefaultUSDJPY is the exchange rate used when the rate endpoint is
// unreachable. A stale approximation beats failing the whole valuation; the
// fallback is logged by the caller.
const DefaultUSDJPY = 150

func baseURL() string {
	if *proxyFlag == "" {
		*proxyFlag = os.Getenv(proxyEnv)
	}
	if *proxyFlag == "" {
		return "https://query1.finance.yahoo.com"
	}
	return strings.TrimSuffix(*proxyFlag, "/")
}

// Quote is one fetched market price.
type Quote struct {
	Symbol string
	Price  shisan.Money
	AsOf   shisan.Date
	Open   bool // the market was in a regular trading session at fetch time
}

// memCache keeps quotes for a few minutes so that refreshing several views
// in a row does not hammer the API. The disk cache is no help here, it only
// expires daily.
var memCache = struct {
	sync.Mutex
	quotes map[string]cached
}{quotes: make(map[string]cached)}

type cached struct {
	quote Quote
	at    time.Time
}

const memCacheTTL = 5 * time.Minute

// Get fetches the current price of a symbol.
func Get(symbol string) (Quote, error) {
	memCache.Lock()
	c, hit := memCache.quotes[symbol]
	memCache.Unlock()
	if hit && time.Since(c.at) < memCacheTTL {
		return c.quote, nil
	}

	q, err := fetch(symbol)
	if err != nil {
		return Quote{}, err
	}

	memCache.Lock()
	memCache.quotes[symbol] = cached{quote: q, at: time.Now()}
	memCache.Unlock()
	return q, nil
}

func fetch(symbol string) (Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", baseURL(), url.PathEscape(symbol))

	var jobj any
	if err := shisan.JSONGet(new(http.Client), addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error fetching quote %q: %w", symbol, err)
	}

	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		// outside trading hours some symbols only carry the previous close
		price, err = jfloat(jobj, "$.chart.result[0].meta.previousClose")
		if err != nil {
			return Quote{}, fmt.Errorf("no price in quote response for %q: %w", symbol, err)
		}
	}

	currency, err := jstring(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		return Quote{}, fmt.Errorf("no currency in quote response for %q: %w", symbol, err)
	}

	state, _ := jstring(jobj, "$.chart.result[0].meta.marketState")

	return Quote{
		Symbol: symbol,
		Price:  shisan.M(price, strings.ToUpper(currency)),
		AsOf:   shisan.Today(),
		Open:   state == "REGULAR",
	}, nil
}

// Rate fetches the current JPY per USD exchange rate.
func Rate() (shisan.Quantity, error) {
	q, err := Get("USDJPY=X")
	if err != nil {
		return shisan.Quantity{}, err
	}
	return shisan.Q(q.Price.InexactFloat()), nil
}

// jfloat extracts a float value at the given jsonpath.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		// sometimes the value comes back as a string
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("value at %q is neither float nor string: %v", path, jval)
		}
		if _, err := fmt.Sscanf(strings.ReplaceAll(sval, ",", ""), "%f", &val); err != nil {
			return 0, fmt.Errorf("cannot parse value %q at %q: %w", sval, path, err)
		}
	}
	return val, nil
}

// jstring extracts a string value at the given jsonpath.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is not a string: %v", path, jval)
	}
	return val, nil
}
