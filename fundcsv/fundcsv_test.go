package fundcsv

import (
	"strings"
	"testing"
	"time"

	"github.com/ymgch/shisan"
)

// fundCSV mimics the published file: a Japanese header row and one price
// row per day.
const fundCSV = `年月日,基準価額(円),純資産総額(百万円),分配金,決算期
2024年06月03日,25123,123456,,
2024年06月04日,"25,300",123500,,
2024/06/05,25410,123600,,
`

func TestParse(t *testing.T) {
	points, err := parse(strings.NewReader(fundCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 {
		t.Fatalf("parsed %d points, want 3", len(points))
	}
	if want := shisan.NewDate(2024, time.June, 3); points[0].Date != want {
		t.Errorf("points[0].Date = %s, want %s", points[0].Date, want)
	}
	if want := shisan.M(25123, "JPY"); !points[0].Price.Equal(want) {
		t.Errorf("points[0].Price = %s, want %s", points[0].Price, want)
	}
	// quoted prices with thousand separators
	if want := shisan.M(25300, "JPY"); !points[1].Price.Equal(want) {
		t.Errorf("points[1].Price = %s, want %s", points[1].Price, want)
	}
	// slash-formatted dates
	if want := shisan.NewDate(2024, time.June, 5); points[2].Date != want {
		t.Errorf("points[2].Date = %s, want %s", points[2].Date, want)
	}
}

func TestParseRejectsPricelessFile(t *testing.T) {
	if _, err := parse(strings.NewReader("年月日,基準価額(円)\n")); err == nil {
		t.Error("parsing a header-only file succeeded")
	}
	if _, err := parse(strings.NewReader("")); err == nil {
		t.Error("parsing an empty file succeeded")
	}
}

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in   string
		want shisan.Date
	}{
		{"2024年06月03日", shisan.NewDate(2024, time.June, 3)},
		{"2024年6月3日", shisan.NewDate(2024, time.June, 3)},
		{"2024/06/03", shisan.NewDate(2024, time.June, 3)},
		{"2024-06-03", shisan.NewDate(2024, time.June, 3)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseDate(tc.in)
			if err != nil {
				t.Fatalf("parseDate(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
	if _, err := parseDate("June 3, 2024"); err == nil {
		t.Error("parseDate on an unknown layout succeeded")
	}
}
