package shisan

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// tagPalette is the fixed set of display colors a tag can take.
var tagPalette = [...]string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#14b8a6", // teal
	"#f97316", // orange
	"#6366f1", // indigo
	"#64748b", // slate
}

// ColorOf derives a stable display color from the tag name. Pure: the same
// name always maps to the same palette entry, on any machine.
func ColorOf(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return tagPalette[h.Sum32()%uint32(len(tagPalette))]
}

// Tag is a user label with its display color.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagRegistry is the explicit set of known tags. It is a plain value loaded
// from and saved to the store; there is no ambient global list.
type TagRegistry struct {
	tags []Tag
}

// NewTagRegistry returns a registry preloaded with the given tags.
func NewTagRegistry(tags ...Tag) *TagRegistry {
	r := &TagRegistry{}
	for _, t := range tags {
		r.add(t)
	}
	return r
}

func (r *TagRegistry) add(t Tag) {
	if _, ok := r.Get(t.Name); ok {
		return
	}
	if t.Color == "" {
		t.Color = ColorOf(t.Name)
	}
	r.tags = append(r.tags, t)
	sort.Slice(r.tags, func(i, j int) bool { return r.tags[i].Name < r.tags[j].Name })
}

// Add registers a tag name and returns it with its derived color. Adding an
// existing name is a no-op.
func (r *TagRegistry) Add(name string) Tag {
	r.add(Tag{Name: name})
	t, _ := r.Get(name)
	return t
}

// Get returns the registered tag with the given name.
func (r *TagRegistry) Get(name string) (Tag, bool) {
	for _, t := range r.tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Color returns the display color for a tag name, registered or not.
func (r *TagRegistry) Color(name string) string {
	if t, ok := r.Get(name); ok {
		return t.Color
	}
	return ColorOf(name)
}

// Remove deletes a tag from the registry. Lots keep the label; it simply
// becomes unregistered.
func (r *TagRegistry) Remove(name string) {
	for i, t := range r.tags {
		if t.Name == name {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return
		}
	}
}

// Rename changes a tag's name, keeping its color.
func (r *TagRegistry) Rename(from, to string) error {
	if _, ok := r.Get(to); ok {
		return fmt.Errorf("tag %q already exists", to)
	}
	for i, t := range r.tags {
		if t.Name == from {
			r.tags[i].Name = to
			sort.Slice(r.tags, func(i, j int) bool { return r.tags[i].Name < r.tags[j].Name })
			return nil
		}
	}
	return fmt.Errorf("no tag %q", from)
}

// Tags returns all registered tags, sorted by name.
func (r *TagRegistry) Tags() []Tag { return r.tags }

func (r *TagRegistry) Len() int { return len(r.tags) }

// UnionWith returns a registry extended with every tag in use on the given
// holdings, so views never meet an unregistered label.
func (r *TagRegistry) UnionWith(holdings []Holding) *TagRegistry {
	out := NewTagRegistry(r.tags...)
	for _, h := range holdings {
		for _, name := range h.Tags {
			out.Add(name)
		}
	}
	return out
}

// Untagged is the pseudo-tag grouping holdings that carry no label.
const Untagged = "untagged"

// TagValue is the aggregate value of one tag across the portfolio.
type TagValue struct {
	Tag      string
	Value    Money // reporting currency
	Holdings int
}

// TagValues aggregates active holdings per tag, with an Untagged bucket for
// unlabeled ones. A holding carrying several tags counts fully in each; the
// buckets overlap and do not sum to the portfolio total.
func TagValues(holdings []Holding, rates Rates) []TagValue {
	var order []string
	byTag := make(map[string]*TagValue)
	bucket := func(name string) *TagValue {
		tv, ok := byTag[name]
		if !ok {
			tv = &TagValue{Tag: name, Value: M(0, ReportingCurrency)}
			byTag[name] = tv
			order = append(order, name)
		}
		return tv
	}

	for _, h := range holdings {
		value := Value(h, rates)
		tags := h.Tags
		if len(tags) == 0 {
			tags = []string{Untagged}
		}
		for _, name := range tags {
			tv := bucket(name)
			tv.Value = tv.Value.Add(value)
			tv.Holdings++
		}
	}

	out := make([]TagValue, 0, len(order))
	for _, name := range order {
		out = append(out, *byTag[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		// biggest buckets first, untagged last
		if (out[i].Tag == Untagged) != (out[j].Tag == Untagged) {
			return out[j].Tag == Untagged
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// HoldingsByTag returns the active holdings carrying the given tag, or the
// unlabeled ones for Untagged.
func HoldingsByTag(holdings []Holding, tag string) []Holding {
	var out []Holding
	for _, h := range holdings {
		if tag == Untagged && len(h.Tags) == 0 {
			out = append(out, h)
			continue
		}
		for _, t := range h.Tags {
			if t == tag {
				out = append(out, h)
				break
			}
		}
	}
	return out
}
