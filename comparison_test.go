package shisan

import (
	"testing"
	"time"
)

// snap builds a single-holding snapshot fixture.
func snap(t *testing.T, on Date, key string, value float64, quantity float64) Snapshot {
	t.Helper()
	return Snapshot{
		Date:       on,
		TotalValue: jpy(value),
		Breakdown:  map[string]BreakdownEntry{key: {Value: jpy(value), Quantity: Q(quantity)}},
	}
}

// comparisonFixture builds one holding of 10 units bought a month ago at
// 100, with the given current market price.
func comparisonFixture(t *testing.T, currentPrice float64) []Holding {
	t.Helper()
	l := NewLedger()
	if err := l.AddLot(NewLot("Toyota", Stock, Q(10), jpy(100), Today().Add(-30))); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCurrentPrice("Toyota", KeyByName, jpy(currentPrice)); err != nil {
		t.Fatal(err)
	}
	return l.Consolidate(KeyByName)
}

func TestCompareDayLiveAgainstSnapshot(t *testing.T) {
	holdings := comparisonFixture(t, 108)
	// yesterday the 10 units were worth 1050, so 105 a unit
	snaps := Snapshots{snap(t, Today().Add(-1), "Toyota", 1050, 10)}
	open := map[string]bool{"Toyota": true}

	c, ok := Compare(holdings, snaps, Day, Rates{}, open)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	if !c.Realtime {
		t.Error("Realtime = false with an open market")
	}
	// live: 10 units at 108
	if want := jpy(1080); !c.CurrentTotal.Equal(want) {
		t.Errorf("CurrentTotal = %s, want %s", c.CurrentTotal, want)
	}
	// unit delta 108 - 105 = 3, times the 10 active units
	if want := jpy(30); !c.TotalChange.Equal(want) {
		t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
	}
	// 30 over the 1050 implied start total
	if want := Percent(30.0 / 1050.0 * 100); !c.TotalChangePercent.Equal(want) {
		t.Errorf("TotalChangePercent = %s, want %s", c.TotalChangePercent, want)
	}
	change := c.Holdings["Toyota"]
	if want := jpy(30); !change.Change.Equal(want) {
		t.Errorf("holding Change = %s, want %s", change.Change, want)
	}
	if want := Percent(3.0 / 105.0 * 100); !change.ChangePercent.Equal(want) {
		t.Errorf("holding ChangePercent = %s, want %s", change.ChangePercent, want)
	}
	if want := Today().Add(-1); c.ComparisonDate != want {
		t.Errorf("ComparisonDate = %s, want %s", c.ComparisonDate, want)
	}
}

func TestCompareDayLiveUsesLatestSnapshotAsBase(t *testing.T) {
	holdings := comparisonFixture(t, 108)
	// the day base is the latest recorded valuation, not its predecessor
	snaps := Snapshots{
		snap(t, Today().Add(-2), "Toyota", 1000, 10),
		snap(t, Today().Add(-1), "Toyota", 1050, 10),
	}
	open := map[string]bool{"Toyota": true}

	c, ok := Compare(holdings, snaps, Day, Rates{}, open)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	if want := jpy(1080); !c.CurrentTotal.Equal(want) {
		t.Errorf("CurrentTotal = %s, want %s", c.CurrentTotal, want)
	}
	// units 108 live against 105 stored in the latest snapshot, not the
	// 100 of the older one
	if want := jpy(30); !c.TotalChange.Equal(want) {
		t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
	}
	if want := Percent(30.0 / 1050.0 * 100); !c.TotalChangePercent.Equal(want) {
		t.Errorf("TotalChangePercent = %s, want %s", c.TotalChangePercent, want)
	}
	if want := Today().Add(-1); c.ComparisonDate != want {
		t.Errorf("ComparisonDate = %s, want %s", c.ComparisonDate, want)
	}
}

func TestCompareWithoutSnapshotsIsUnavailable(t *testing.T) {
	holdings := comparisonFixture(t, 108)

	// no numeric zero: the caller must get a distinct no-data answer
	if _, ok := Compare(holdings, nil, Day, Rates{}, nil); ok {
		t.Error("Compare() with no snapshots reported a result")
	}
	snaps := Snapshots{snap(t, Today().Add(-1), "Toyota", 1050, 10)}
	if _, ok := Compare(nil, snaps, Day, Rates{}, nil); ok {
		t.Error("Compare() with no holdings reported a result")
	}
}

func TestCompareClosedMarketUsesStoredValues(t *testing.T) {
	// the stored latest is 1050 even though the live price would say 2000
	holdings := comparisonFixture(t, 200)
	snaps := Snapshots{
		snap(t, Today().Add(-2), "Toyota", 1000, 10),
		snap(t, Today().Add(-1), "Toyota", 1050, 10),
	}

	c, ok := Compare(holdings, snaps, Day, Rates{}, nil)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	if c.Realtime {
		t.Error("Realtime = true with every market closed")
	}
	if want := jpy(1050); !c.CurrentTotal.Equal(want) {
		t.Errorf("CurrentTotal = %s, want %s", c.CurrentTotal, want)
	}
	// stored units: 105 now vs 100 the day before
	if want := jpy(50); !c.TotalChange.Equal(want) {
		t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
	}
}

func TestCompareDaySkipsDuplicateSnapshots(t *testing.T) {
	holdings := comparisonFixture(t, 105)
	// the update job ran twice: the predecessor duplicates the latest value
	snaps := Snapshots{
		snap(t, Today().Add(-3), "Toyota", 1000, 10),
		snap(t, Today().Add(-2), "Toyota", 1050, 10),
		snap(t, Today().Add(-1), "Toyota", 1050, 10),
		snap(t, Today(), "Toyota", 1050, 10),
	}

	c, ok := Compare(holdings, snaps, Day, Rates{}, nil)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	// the flat duplicates are skipped back to the 1000 snapshot: units
	// 105 - 100 over 10 units
	if want := jpy(50); !c.TotalChange.Equal(want) {
		t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
	}
	if c.Holdings["Toyota"].Change.IsZero() {
		t.Error("duplicate snapshots were not skipped, change reported flat")
	}
}

func TestCompareNewlyAcquiredHolding(t *testing.T) {
	l := NewLedger()
	// bought today, after the nominal day-comparison start
	if err := l.AddLot(NewLot("Sony", Stock, Q(5), jpy(100), Today())); err != nil {
		t.Fatal(err)
	}
	if err := l.SetCurrentPrice("Sony", KeyByName, jpy(102)); err != nil {
		t.Fatal(err)
	}
	holdings := l.Consolidate(KeyByName)

	t.Run("first snapshot knows it", func(t *testing.T) {
		snaps := Snapshots{
			snap(t, Today().Add(-1), "other", 9999, 1),
			snap(t, Today(), "Sony", 500, 5),
		}
		c, ok := Compare(holdings, snaps, Day, Rates{}, map[string]bool{"Sony": true})
		if !ok {
			t.Fatal("Compare() found nothing to compare")
		}
		// against the first snapshot holding it: units 102 - 100 over 5
		if want := jpy(10); !c.TotalChange.Equal(want) {
			t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
		}
	})

	t.Run("no snapshot knows it yet", func(t *testing.T) {
		snaps := Snapshots{snap(t, Today().Add(-1), "other", 9999, 1)}
		c, ok := Compare(holdings, snaps, Day, Rates{}, map[string]bool{"Sony": true})
		if !ok {
			t.Fatal("Compare() found nothing to compare")
		}
		if !c.Holdings["Sony"].Change.IsZero() {
			t.Errorf("holding Change = %s, want zero while no snapshot covers it", c.Holdings["Sony"].Change)
		}
	})
}

func TestCompareWeekUsesEarliestInWindow(t *testing.T) {
	holdings := comparisonFixture(t, 110)
	snaps := Snapshots{
		snap(t, Today().Add(-10), "Toyota", 900, 10),
		snap(t, Today().Add(-5), "Toyota", 1000, 10),
		snap(t, Today(), "Toyota", 1100, 10),
	}

	c, ok := Compare(holdings, snaps, Week, Rates{}, nil)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	// the first snapshot inside the 7 day window, not the older one
	if want := Today().Add(-5); c.ComparisonDate != want {
		t.Errorf("ComparisonDate = %s, want %s", c.ComparisonDate, want)
	}
	// stored units: 110 now vs 100 at the window start
	if want := jpy(100); !c.TotalChange.Equal(want) {
		t.Errorf("TotalChange = %s, want %s", c.TotalChange, want)
	}
}

func TestCompareWeekKeepsDuplicateWindowStart(t *testing.T) {
	holdings := comparisonFixture(t, 110)
	// the window-start snapshot duplicates the latest value; a week
	// comparison must not walk past it to a snapshot outside the window
	snaps := Snapshots{
		snap(t, Today().Add(-20), "Toyota", 1000, 10),
		snap(t, Today().Add(-1), "Toyota", 1100, 10),
		snap(t, Today(), "Toyota", 1100, 10),
	}

	c, ok := Compare(holdings, snaps, Week, Rates{}, nil)
	if !ok {
		t.Fatal("Compare() found nothing to compare")
	}
	if want := Today().Add(-1); c.ComparisonDate != want {
		t.Errorf("ComparisonDate = %s, want %s", c.ComparisonDate, want)
	}
	if !c.TotalChange.IsZero() {
		t.Errorf("TotalChange = %s, want zero over a flat week", c.TotalChange)
	}
}

func TestComparisonStart(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	testCases := []struct {
		period Period
		want   Date
	}{
		{Day, NewDate(2025, time.June, 14)},
		{Week, NewDate(2025, time.June, 8)},
		{Month, NewDate(2025, time.May, 16)},
		{YearToDate, NewDate(2025, time.January, 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			if got := tc.period.ComparisonStart(today); got != tc.want {
				t.Errorf("ComparisonStart(%s) = %s, want %s", today, got, tc.want)
			}
		})
	}
}
