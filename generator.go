package termscheme

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// FallbackGenerator makes new colors out of two existing ones when an image
// does not have enough distinct colors for a scheme.
type FallbackGenerator int

const (
	// Interpolate blends between the two colors.
	Interpolate FallbackGenerator = iota
	// Complementary returns the complementary of each color.
	Complementary
)

var generatorNames = map[FallbackGenerator]string{
	Interpolate:   "interpolate",
	Complementary: "complementary",
}

// Generate returns the colors made from a and b. n is only a hint, see the
// individual generators.
func (g FallbackGenerator) Generate(a, b colorful.Color, n int) []colorful.Color {
	switch g {
	case Complementary:
		return complementary(a, b)
	default:
		return interpolate(a, b, n)
	}
}

// interpolate returns n colors from a towards b at steps 1/n .. n/n, so the
// last one is b itself and a is not repeated.
func interpolate(a, b colorful.Color, n int) []colorful.Color {
	out := make([]colorful.Color, 0, n)
	step := 1.0 / float64(n)
	for i := 1; i <= n; i++ {
		out = append(out, a.BlendRgb(b, step*float64(i)))
	}
	return out
}

// complementary ignores n and always returns two colors.
func complementary(a, b colorful.Color) []colorful.Color {
	return []colorful.Color{complement(a), complement(b)}
}

// complement rotates the HSV hue by 180 degrees.
func complement(c colorful.Color) colorful.Color {
	h, s, v := c.Clamped().Hsv()
	return colorful.Hsv(math.Mod(h+180, 360), s, v).Clamped()
}

func (g FallbackGenerator) String() string {
	if name, ok := generatorNames[g]; ok {
		return name
	}
	return fmt.Sprintf("FallbackGenerator(%d)", int(g))
}

// Set implements pflag.Value.
func (g *FallbackGenerator) Set(s string) error {
	for k, name := range generatorNames {
		if strings.EqualFold(s, name) {
			*g = k
			return nil
		}
	}
	return fmt.Errorf("unknown fallback generator %q", s)
}

// Type implements pflag.Value.
func (g *FallbackGenerator) Type() string {
	return "generator"
}
