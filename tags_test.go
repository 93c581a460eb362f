package shisan

import (
	"testing"
	"time"
)

func TestColorOfIsStable(t *testing.T) {
	for _, name := range []string{"jp", "us", "high-risk", "積立"} {
		first := ColorOf(name)
		if first == "" {
			t.Fatalf("ColorOf(%q) returned no color", name)
		}
		if second := ColorOf(name); second != first {
			t.Errorf("ColorOf(%q) = %q then %q", name, first, second)
		}
	}
}

func TestTagRegistry(t *testing.T) {
	r := NewTagRegistry()

	tag := r.Add("jp")
	if tag.Name != "jp" || tag.Color != ColorOf("jp") {
		t.Errorf("Add(jp) = %+v, want name jp with its derived color", tag)
	}
	// adding again is a no-op
	r.Add("jp")
	r.Add("us")
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	if err := r.Rename("jp", "japan"); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Get("jp"); ok {
		t.Error("renamed tag still registered under its old name")
	}
	got, ok := r.Get("japan")
	if !ok {
		t.Fatal("renamed tag not found")
	}
	// a rename keeps the original color
	if got.Color != ColorOf("jp") {
		t.Errorf("renamed color = %q, want the original %q", got.Color, ColorOf("jp"))
	}
	if err := r.Rename("japan", "us"); err == nil {
		t.Error("renaming onto an existing tag succeeded")
	}

	r.Remove("japan")
	if r.Len() != 1 {
		t.Errorf("Len() after remove = %d, want 1", r.Len())
	}
}

// tagFixture builds three holdings: two tagged, overlapping on "jp", one
// untagged.
func tagFixture(t *testing.T) []Holding {
	t.Helper()
	l := NewLedger()
	lots := []Lot{
		NewLot("Toyota", Stock, Q(1), jpy(3000), NewDate(2024, time.January, 1), "jp", "auto"),
		NewLot("Sony", Stock, Q(1), jpy(2000), NewDate(2024, time.January, 1), "jp"),
		NewLot("Gold", Other, Q(1), jpy(1000), NewDate(2024, time.January, 1)),
	}
	for _, lot := range lots {
		if err := l.AddLot(lot); err != nil {
			t.Fatal(err)
		}
	}
	return l.Consolidate(KeyByName)
}

func TestTagValues(t *testing.T) {
	values := TagValues(tagFixture(t), Rates{})

	if len(values) != 3 {
		t.Fatalf("got %d buckets, want 3 (jp, auto, untagged)", len(values))
	}
	// biggest bucket first: jp holds Toyota and Sony
	if values[0].Tag != "jp" {
		t.Errorf("values[0].Tag = %q, want jp", values[0].Tag)
	}
	if want := jpy(5000); !values[0].Value.Equal(want) {
		t.Errorf("jp Value = %s, want %s", values[0].Value, want)
	}
	if values[0].Holdings != 2 {
		t.Errorf("jp Holdings = %d, want 2", values[0].Holdings)
	}
	// untagged comes last even though it is bigger than auto would allow
	if values[len(values)-1].Tag != Untagged {
		t.Errorf("last bucket = %q, want %q", values[len(values)-1].Tag, Untagged)
	}

	// overlapping buckets: the sum exceeds the 6000 portfolio total
	total := M(0, ReportingCurrency)
	for _, v := range values {
		total = total.Add(v.Value)
	}
	if !total.GreaterThan(jpy(6000)) {
		t.Errorf("bucket sum = %s, want more than the 6000 total because jp and auto overlap", total)
	}
}

func TestHoldingsByTag(t *testing.T) {
	holdings := tagFixture(t)

	if got := HoldingsByTag(holdings, "jp"); len(got) != 2 {
		t.Errorf("HoldingsByTag(jp) = %d holdings, want 2", len(got))
	}
	got := HoldingsByTag(holdings, Untagged)
	if len(got) != 1 || got[0].Key != "Gold" {
		t.Errorf("HoldingsByTag(untagged) = %v, want only Gold", got)
	}
}
