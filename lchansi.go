package termscheme

import (
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

const (
	nearBlack = 5.0
	nearWhite = 95.0
)

// ansiBucket is a hue range with the lightness and chroma a color of that
// range is pulled towards.
type ansiBucket struct {
	hueStart, hueEnd float64
	light, chroma    float64
}

var (
	ansiRed     = ansiBucket{hueStart: 0, hueEnd: 61, light: 50, chroma: 181}
	ansiYellow  = ansiBucket{hueStart: 61, hueEnd: 121, light: 80, chroma: 128}
	ansiGreen   = ansiBucket{hueStart: 121, hueEnd: 181, light: 50, chroma: 128}
	ansiCyan    = ansiBucket{hueStart: 181, hueEnd: 211, light: 80, chroma: 128}
	ansiBlue    = ansiBucket{hueStart: 211, hueEnd: 281, light: 40, chroma: 181}
	ansiMagenta = ansiBucket{hueStart: 281, hueEnd: 360, light: 70, chroma: 128}
)

// LchAnsiSpace is an Lch variant that always yields the eight ANSI roles, in
// order: black, red, green, yellow, blue, magenta, cyan and gray. Its
// histograms are neither sorted nor deduplicated.
type LchAnsiSpace struct{}

func (LchAnsiSpace) FromRGB(c colorful.Color) Lch { return LchFromRGB(c) }

func (LchAnsiSpace) Filter(colors []Lch) []Lch {
	out := make([]Lch, 0, len(colors))
	for _, c := range colors {
		if c.L >= darkestL && c.L <= lightestL && c.C > minChroma {
			out = append(out, c)
		}
	}
	return out
}

// Sort keeps the construction order.
func (LchAnsiSpace) Sort([]Entry[Lch], ColorOrder) {}

func (LchAnsiSpace) Compare(Lch, Lch) int { return 0 }

// gather scans the unfiltered colors for black and gray; only the hue buckets
// see the filtered ones.
func (s LchAnsiSpace) gather(colors []Lch, _ uint8, _ bool) []Entry[Lch] {
	black := extremeEntry(colors, func(c Lch) bool { return c.L < nearBlack }, func(l float64) float64 {
		return (7*nearBlack + l) / 8
	})
	gray := extremeEntry(colors, func(c Lch) bool { return c.L > nearWhite }, func(l float64) float64 {
		return (4*nearWhite + l) / 5
	})

	cols := s.Filter(colors)

	buckets := []ansiBucket{ansiRed, ansiYellow, ansiGreen, ansiCyan, ansiBlue, ansiMagenta}
	parts := make([][]Lch, len(buckets))
	for _, c := range cols {
		for i, b := range buckets {
			if c.H >= b.hueStart && c.H < b.hueEnd {
				parts[i] = append(parts[i], c)
				break
			}
		}
	}

	return []Entry[Lch]{
		black,
		bucketEntry(ansiRed, parts[0]),
		bucketEntry(ansiGreen, parts[2]),
		bucketEntry(ansiYellow, parts[1]),
		bucketEntry(ansiBlue, parts[4]),
		bucketEntry(ansiMagenta, parts[5]),
		bucketEntry(ansiCyan, parts[3]),
		gray,
	}
}

func (LchAnsiSpace) synthesize([]Entry[Lch], uint8, FallbackGenerator) []Entry[Lch] {
	panic("termscheme: lchansi always gathers enough colors, fallback is unreachable")
}

// extremeEntry returns the first color matching near with a fixed chroma of
// 15. When nothing matches, lightness is pushed towards the extreme by weight
// and chroma is a third of the average of the colors scanned.
func extremeEntry(cols []Lch, near func(Lch) bool, weight func(float64) float64) Entry[Lch] {
	lights := make([]float64, 0, len(cols))
	chromas := make([]float64, 0, len(cols))
	hues := make([]float64, 0, len(cols))
	for _, c := range cols {
		if near(c) {
			return Entry[Lch]{Color: Lch{L: c.L, C: 15, H: c.H}, Synthetic: true}
		}
		lights = append(lights, c.L)
		chromas = append(chromas, c.C)
		hues = append(hues, c.H)
	}
	return Entry[Lch]{
		Color: Lch{
			L: weight(mean(lights)),
			C: mean(chromas) / 3,
			H: mean(hues),
		},
		Synthetic: true,
	}
}

// bucketEntry averages the colors of a hue bucket, biased towards the bucket
// defaults. Empty buckets get the defaults and the middle of the hue range.
func bucketEntry(b ansiBucket, cols []Lch) Entry[Lch] {
	c := Lch{L: b.light, C: b.chroma, H: (b.hueStart + b.hueEnd) / 2}
	if len(cols) > 0 {
		lights := make([]float64, len(cols))
		chromas := make([]float64, len(cols))
		hues := make([]float64, len(cols))
		for i, col := range cols {
			lights[i] = col.L
			chromas[i] = col.C
			hues[i] = col.H
		}
		c = Lch{
			L: (b.light + 2*stat.Mean(lights, nil)) / 3,
			C: (b.chroma + 2*stat.Mean(chromas, nil)) / 3,
			H: stat.Mean(hues, nil),
		}
	}
	return Entry[Lch]{Color: c, Synthetic: true}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
