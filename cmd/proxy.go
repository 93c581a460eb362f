package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

type proxyCmd struct {
	listen string
	target string
}

func (*proxyCmd) Name() string     { return "proxy" }
func (*proxyCmd) Synopsis() string { return "run a local caching proxy for the quote API" }
func (*proxyCmd) Usage() string {
	return `shisan proxy [-listen <addr>] [-target <url>]

  Runs a local reverse proxy in front of the quote API, backed by the
  same daily disk cache as direct fetches. Point other shisan instances
  at it with -quote-proxy or SHISAN_QUOTE_PROXY to share one cache and
  one upstream connection.
`
}

func (c *proxyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "localhost:8087", "address to listen on")
	f.StringVar(&c.target, "target", "https://query1.finance.yahoo.com", "upstream quote API")
}

func (c *proxyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	target, err := url.Parse(c.target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.Host = target.Host
		},
		Transport: shisan.DailyClient().Transport,
	}

	log.Printf("proxying %s on %s", target, c.listen)
	if err := http.ListenAndServe(c.listen, proxy); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
