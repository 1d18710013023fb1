package termscheme

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// minChroma keeps colors vivid. Images whose average chroma is below it are
// filtered by their own minimum chroma instead.
const minChroma = 10.0

// LchSpace builds histograms in CIE LCh(ab). This is the default space.
type LchSpace struct{}

func (LchSpace) FromRGB(c colorful.Color) Lch { return LchFromRGB(c) }

// Filter applies the Lab lightness window and drops colors whose chroma is
// well below the image average.
func (LchSpace) Filter(colors []Lch) []Lch {
	if len(colors) == 0 {
		return nil
	}
	lights := make([]float64, len(colors))
	chromas := make([]float64, len(colors))
	for i, c := range colors {
		lights[i] = c.L
		chromas[i] = c.C
	}
	darkest := max(floats.Min(lights), darkestL)
	lightest := min(floats.Max(lights), lightestL)

	ch := stat.Mean(chromas, nil)
	if ch <= minChroma {
		ch = floats.Min(chromas)
	} else {
		ch /= 2.5
	}

	out := make([]Lch, 0, len(colors))
	for _, c := range colors {
		if c.L >= darkest && c.L <= lightest && c.C >= ch {
			out = append(out, c)
		}
	}
	return out
}

// Sort orders by lightness, breaking ties with chroma in the opposite direction.
func (LchSpace) Sort(entries []Entry[Lch], ord ColorOrder) {
	slices.SortStableFunc(entries, func(a, b Entry[Lch]) int {
		if ord == DarkFirst {
			return cmp.Or(cmp.Compare(a.Color.L, b.Color.L), cmp.Compare(b.Color.C, a.Color.C))
		}
		return cmp.Or(cmp.Compare(b.Color.L, a.Color.L), cmp.Compare(a.Color.C, b.Color.C))
	})
}

// Compare orders by the integer part of chroma.
func (LchSpace) Compare(a, b Lch) int {
	return cmp.Compare(int(a.C), int(b.C))
}
