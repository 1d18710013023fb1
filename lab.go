package termscheme

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

const (
	// darkestL is the lowest lightness a color may have to be gathered.
	darkestL = 4.5
	// lightestL is the highest lightness a color may have to be gathered.
	lightestL = 95.5
)

// LabSpace builds histograms in CIE L*a*b*.
type LabSpace struct{}

func (LabSpace) FromRGB(c colorful.Color) Lab { return LabFromRGB(c) }

// Filter keeps colors inside the image's lightness range, clipped to
// [darkestL, lightestL].
func (LabSpace) Filter(colors []Lab) []Lab {
	if len(colors) == 0 {
		return nil
	}
	lights := make([]float64, len(colors))
	for i, c := range colors {
		lights[i] = c.L
	}
	darkest := max(floats.Min(lights), darkestL)
	lightest := min(floats.Max(lights), lightestL)

	out := make([]Lab, 0, len(colors))
	for _, c := range colors {
		if c.L >= darkest && c.L <= lightest {
			out = append(out, c)
		}
	}
	return out
}

func (LabSpace) Sort(entries []Entry[Lab], ord ColorOrder) {
	slices.SortStableFunc(entries, func(a, b Entry[Lab]) int {
		if ord == DarkFirst {
			return cmp.Compare(a.Color.L, b.Color.L)
		}
		return cmp.Compare(b.Color.L, a.Color.L)
	})
}

// Compare orders by the integer parts of L, a and b.
func (LabSpace) Compare(a, b Lab) int {
	return cmp.Or(
		cmp.Compare(int(a.L), int(b.L)),
		cmp.Compare(int(a.A), int(b.A)),
		cmp.Compare(int(a.B), int(b.B)),
	)
}
