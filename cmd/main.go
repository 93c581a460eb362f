// Package cmd implements the subcommands of the shisan CLI.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "records")
	c.Register(&sellCmd{}, "records")
	c.Register(&dividendCmd{}, "records")
	c.Register(&editCmd{}, "records")
	c.Register(&editLotCmd{}, "records")
	c.Register(&deleteCmd{}, "records")
	c.Register(&deleteSaleCmd{}, "records")

	c.Register(&listCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&dividendsCmd{}, "reports")
	c.Register(&tagsCmd{}, "reports")

	c.Register(&tagCmd{}, "tags")

	c.Register(&updateCmd{}, "market data")
	c.Register(&rebuildCmd{}, "market data")
	c.Register(&proxyCmd{}, "market data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// CommandNames lists every subcommand for shell completion.
func CommandNames() []string {
	return []string{
		"add", "sell", "dividend", "edit", "edit-lot", "delete", "delete-sale",
		"list", "summary", "compare", "gains", "dividends", "tags", "tag",
		"update", "rebuild", "proxy", "topic", "assist",
	}
}

const dataDirEnv = "SHISAN_DIR"

var dataDirFlag = flag.String("d", "", "Path to the data directory.\n If missing it will read the environment variable \""+dataDirEnv+"\", and default to ~/.shisan.")

var keyFlag = flag.String("key", "name", "How lots group into holdings: \"name\" merges by display name, \"instrument\" by symbol or ISIN.")

func dataDir() string {
	if *dataDirFlag == "" {
		*dataDirFlag = os.Getenv(dataDirEnv)
	}
	if *dataDirFlag == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Printf("cannot resolve home directory (%v), using the current one", err)
			return ".shisan"
		}
		*dataDirFlag = filepath.Join(home, ".shisan")
	}
	return *dataDirFlag
}

// openStore is the central function to open the data directory.
func openStore() (*shisan.Store, error) {
	return shisan.NewStore(dataDir())
}

// keyPolicy returns the consolidation policy selected by the -key flag.
func keyPolicy() shisan.KeyPolicy {
	policy, err := shisan.ParseKeyPolicy(*keyFlag)
	if err != nil {
		log.Printf("%v, grouping by name", err)
		return shisan.KeyByName
	}
	return policy
}

// currentRates builds the rate table from the stored exchange-rate history.
func currentRates(store *shisan.Store) shisan.Rates {
	rates := shisan.Rates{}
	db, err := store.LoadPrices()
	if err != nil {
		log.Printf("cannot load stored rates (%v), valuations degrade to parity", err)
		return rates
	}
	if rate, ok := db.RateOn(shisan.Today()); ok {
		rates["USD"] = rate
	}
	return rates
}

// confirm asks the user to type y before an irreversible operation, unless
// force is set.
func confirm(force bool, format string, args ...interface{}) bool {
	if force {
		return true
	}
	fmt.Printf(format+" [y/N] ", args...)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y"
}
