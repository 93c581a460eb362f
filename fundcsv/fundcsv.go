// Package fundcsv fetches Japanese investment-trust prices from the
// public fund CSV download service. Funds have no ticker; they are looked up
// by ISIN plus association fund code, and prices are always in JPY.
package fundcsv

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ymgch/shisan"
)

const baseEnv = "SHISAN_FUND_CSV_URL"

var baseFlag = flag.String("fund-csv-url", "", "Base URL of the fund CSV download service.\n If missing it will read the environment variable \""+baseEnv+"\".")

func baseURL() string {
	if *baseFlag == "" {
		*baseFlag = os.Getenv(baseEnv)
	}
	if *baseFlag == "" {
		return "https://toushin-lib.fwg.ne.jp/FdsWeb/FDST030000/csv-file-download"
	}
	return strings.TrimSuffix(*baseFlag, "/")
}

// Point is one published fund price.
type Point struct {
	Date  shisan.Date
	Price shisan.Money // base price per unit, JPY
}

// Fetch downloads the full published price series of a fund, oldest first.
// The response is cached on disk until the end of the day; funds publish one
// price per day.
func Fetch(isin, fundCode string) ([]Point, error) {
	addr := fmt.Sprintf("%s?isinCd=%s&associFundCd=%s", baseURL(), isin, fundCode)

	resp, err := shisan.DailyClient().Get(addr)
	if err != nil {
		return nil, fmt.Errorf("error fetching fund csv %s/%s: %w", isin, fundCode, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("cannot http GET fund csv %s/%s: %v", isin, fundCode, resp.Status)
	}
	return parse(resp.Body)
}

// Latest returns the most recent published price of a fund.
func Latest(isin, fundCode string) (Point, error) {
	points, err := Fetch(isin, fundCode)
	if err != nil {
		return Point{}, err
	}
	if len(points) == 0 {
		return Point{}, fmt.Errorf("fund csv %s/%s has no price rows", isin, fundCode)
	}
	return points[len(points)-1], nil
}

// parse reads the CSV rows. The first column is the date (年月日), the
// second the base price in JPY. The header row and malformed rows are
// skipped; only a file with no valid row at all is an error.
func parse(r io.Reader) ([]Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var points []Point
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid fund csv: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		on, err := parseDate(strings.TrimSpace(record[0]))
		if err != nil {
			continue // header or decoration row
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(record[1]), ",", ""), 64)
		if err != nil {
			continue
		}
		points = append(points, Point{Date: on, Price: shisan.M(price, "JPY")})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("fund csv has no parsable price rows")
	}
	return points, nil
}

// dateFormats are the layouts the service has been seen to publish.
var dateFormats = []string{"2006年01月02日", "2006年1月2日", "2006/01/02", "2006-01-02"}

func parseDate(s string) (shisan.Date, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return shisan.NewDate(t.Date()), nil
		}
	}
	return shisan.Date{}, fmt.Errorf("unrecognized date %q", s)
}
