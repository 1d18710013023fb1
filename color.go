package termscheme

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Value is a color expressed in one of the perceptual spaces the histogram is built in.
type Value[C any] interface {
	// RGB converts back to (unclamped) sRGB.
	RGB() colorful.Color
	// Mix returns the equal-weight blend of the receiver and o.
	Mix(o C) C
	// Diff reports whether o is close enough to be merged under threshold.
	Diff(o C, threshold uint8) bool
}

// Lab is a CIE L*a*b* color (D65) with L in [0,100] and a, b roughly in [-128,128].
type Lab struct {
	L, A, B float64
}

// Lch is the polar form of Lab. H is in degrees, [0,360).
type Lch struct {
	L, C, H float64
}

// LabFromRGB converts an sRGB color into Lab.
func LabFromRGB(c colorful.Color) Lab {
	l, a, b := c.Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// RGB converts back to sRGB. The result is not clamped.
func (c Lab) RGB() colorful.Color {
	return colorful.Lab(c.L/100, c.A/100, c.B/100)
}

func (c Lab) Mix(o Lab) Lab {
	return Lab{
		L: (c.L + o.L) / 2,
		A: (c.A + o.A) / 2,
		B: (c.B + o.B) / 2,
	}
}

func (c Lab) Diff(o Lab, threshold uint8) bool {
	return improvedDeltaE(c, o) <= float64(threshold)
}

// Lch converts to the polar form.
func (c Lab) Lch() Lch {
	h, ch, l := colorful.LabToHcl(c.L, c.A, c.B)
	return Lch{L: l, C: ch, H: h}
}

// LchFromRGB converts an sRGB color into Lch.
func LchFromRGB(c colorful.Color) Lch {
	return LabFromRGB(c).Lch()
}

// Lab converts to the cartesian form.
func (c Lch) Lab() Lab {
	l, a, b := colorful.HclToLab(c.H, c.C, c.L)
	return Lab{L: l, A: a, B: b}
}

func (c Lch) RGB() colorful.Color {
	return c.Lab().RGB()
}

// Mix interpolates lightness and chroma linearly and hue along the shortest arc.
func (c Lch) Mix(o Lch) Lch {
	dh := math.Mod(o.H-c.H+540, 360) - 180
	return Lch{
		L: (c.L + o.L) / 2,
		C: (c.C + o.C) / 2,
		H: normHue(c.H + dh/2),
	}
}

func (c Lch) Diff(o Lch, threshold uint8) bool {
	return improvedDeltaE(c.Lab(), o.Lab()) <= float64(threshold)
}

func normHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// improvedDeltaE is the power-law correction of CIEDE2000 (Huang et al. 2015),
// which tracks perceived differences better for large distances.
func improvedDeltaE(x, y Lab) float64 {
	return 1.43 * math.Pow(deltaE2000(x, y), 0.7)
}

// deltaE2000 is CIEDE2000 on the usual 0..100 scale. The unclamped sRGB
// round trip is lossless, so out of gamut values compare correctly.
func deltaE2000(x, y Lab) float64 {
	return 100 * x.RGB().DistanceCIEDE2000(y.RGB())
}
