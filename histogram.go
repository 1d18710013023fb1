package termscheme

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MinCols is the number of colors the palettes need. Fewer than this triggers
	// the fallback generator.
	MinCols = 6
	// MaxCols caps the histogram, a scheme has room for 16 colors.
	MaxCols = 16
)

// ColorOrder selects which end of the sorted histogram comes first.
type ColorOrder int

const (
	// LightFirst puts the lightest color at index 0.
	LightFirst ColorOrder = iota
	// DarkFirst puts the darkest color at index 0.
	DarkFirst
)

func (o ColorOrder) String() string {
	if o == DarkFirst {
		return "darkfirst"
	}
	return "lightfirst"
}

// Entry is a histogram bucket. Synthetic entries are built rather than counted
// and always rank above counted ones.
type Entry[C any] struct {
	Color     C
	Count     int
	Synthetic bool
}

// Space is a color space the histogram can be built in.
type Space[C Value[C]] interface {
	FromRGB(c colorful.Color) C
	// Filter drops colors that are too dark, too light or too grey for a scheme.
	Filter(colors []C) []C
	// Sort orders entries in place for the final palette.
	Sort(entries []Entry[C], ord ColorOrder)
	// Compare orders colors before adjacent duplicates are merged.
	Compare(a, b C) int
}

// gatherer replaces GatherCols for spaces that build their buckets by construction.
type gatherer[C any] interface {
	gather(colors []C, threshold uint8, mix bool) []Entry[C]
}

// synthesizer replaces the pairwise color generator used by Fallback.
type synthesizer[C any] interface {
	synthesize(entries []Entry[C], threshold uint8, gen FallbackGenerator) []Entry[C]
}

// Read interprets bytes as packed RGB8 pixels and converts every pixel into sp.
// It panics when the length is not a multiple of 3.
func Read[C Value[C]](sp Space[C], bytes []byte) []C {
	mustRGB(bytes)
	out := make([]C, 0, len(bytes)/3)
	seen := make(map[[3]byte]C)
	for i := 0; i < len(bytes); i += 3 {
		key := [3]byte{bytes[i], bytes[i+1], bytes[i+2]}
		c, ok := seen[key]
		if !ok {
			c = sp.FromRGB(colorful.Color{
				R: float64(key[0]) / 255.0,
				G: float64(key[1]) / 255.0,
				B: float64(key[2]) / 255.0,
			})
			seen[key] = c
		}
		out = append(out, c)
	}
	return out
}

// ToRGB converts every entry back to sRGB, keeping the order.
func ToRGB[C Value[C]](entries []Entry[C]) []colorful.Color {
	out := make([]colorful.Color, len(entries))
	for i, e := range entries {
		out[i] = e.Color.RGB()
	}
	return out
}

// GatherCols builds a histogram from colors. Each color is merged into the first
// existing entry within threshold, otherwise it opens a new entry. With mix the
// merged entry moves halfway towards the new color. Entries keep the order in
// which they were first seen.
func GatherCols[C Value[C]](sp Space[C], colors []C, threshold uint8, mix bool) []Entry[C] {
	if g, ok := sp.(gatherer[C]); ok {
		return g.gather(colors, threshold, mix)
	}
	var histogram []Entry[C]
outer:
	for _, c := range sp.Filter(colors) {
		for i := range histogram {
			h := &histogram[i]
			if c.Diff(h.Color, threshold) {
				if mix {
					h.Color = h.Color.Mix(c)
				}
				h.Count++
				continue outer
			}
		}
		histogram = append(histogram, Entry[C]{Color: c, Count: 1})
	}
	return histogram
}

// DedupCols sorts entries with the space ordering and collapses runs of
// neighbours within threshold of the run head, adding up their counts. The
// result is ordered by count and capped at MaxCols.
func DedupCols[C Value[C]](sp Space[C], entries []Entry[C], threshold uint8) []Entry[C] {
	if len(entries) == 0 {
		return entries
	}
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[C]) int {
		return sp.Compare(a.Color, b.Color)
	})

	out := make([]Entry[C], 0, len(sorted))
	out = append(out, sorted[0])
	for _, e := range sorted[1:] {
		head := &out[len(out)-1]
		if e.Color.Diff(head.Color, threshold) {
			head.Count += e.Count
			head.Synthetic = head.Synthetic || e.Synthetic
			continue
		}
		out = append(out, e)
	}
	return truncateByCount(out)
}

// FallbackMonochromatic grows a two color histogram with MinCols generated colors.
func FallbackMonochromatic[C Value[C]](sp Space[C], entries []Entry[C], gen FallbackGenerator) []Entry[C] {
	out := slices.Clone(entries)
	for _, c := range gen.Generate(entries[0].Color.RGB(), entries[1].Color.RGB(), MinCols) {
		out = append(out, Entry[C]{Color: sp.FromRGB(c), Count: 1})
	}
	return truncateByCount(out)
}

// Fallback adds generated colors to a histogram that has fewer than MinCols entries.
func Fallback[C Value[C]](sp Space[C], entries []Entry[C], threshold uint8, gen FallbackGenerator) []Entry[C] {
	var extra []Entry[C]
	if s, ok := sp.(synthesizer[C]); ok {
		extra = s.synthesize(entries, threshold, gen)
	} else {
		extra = colorGenerator(sp, entries, threshold, gen)
	}
	out := append(slices.Clone(entries), extra...)
	return truncateByCount(out)
}

// colorGenerator runs gen on every pair of entries and gathers the results
// until the histogram would reach MinCols.
func colorGenerator[C Value[C]](sp Space[C], entries []Entry[C], threshold uint8, gen FallbackGenerator) []Entry[C] {
	var extra []Entry[C]
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			rgbs := gen.Generate(entries[i].Color.RGB(), entries[j].Color.RGB(), MaxCols)
			cols := make([]C, len(rgbs))
			for k, c := range rgbs {
				cols[k] = sp.FromRGB(c)
			}
			extra = append(extra, GatherCols(sp, cols, threshold, false)...)
			if len(entries)+len(extra) >= MinCols {
				return extra
			}
		}
	}
	return extra
}

// byCount orders synthetic entries first, then by descending count.
func byCount[C any](a, b Entry[C]) int {
	switch {
	case a.Synthetic && b.Synthetic:
		return 0
	case a.Synthetic:
		return -1
	case b.Synthetic:
		return 1
	}
	return cmp.Compare(b.Count, a.Count)
}

func truncateByCount[C any](entries []Entry[C]) []Entry[C] {
	slices.SortStableFunc(entries, byCount[C])
	if len(entries) > MaxCols {
		entries = entries[:MaxCols]
	}
	return entries
}
