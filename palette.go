package termscheme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the style a scheme is composed with. Every style has a 16 color
// variant (first row darkened), and most have a complementary variant.
type Palette int

const (
	// Dark uses a dark, desaturated background and light colors. Default.
	Dark Palette = iota
	Dark16
	// DarkComp is Dark with every color replaced by its complementary.
	DarkComp
	DarkComp16
	// AnsiDark keeps the ANSI order produced by SpaceLchAnsi.
	AnsiDark
	AnsiDark16
	// HardDark is Dark with hard, dark hued colors.
	HardDark
	HardDark16
	HardDarkComp
	HardDarkComp16
	// Light uses a light background and a dark foreground.
	Light
	Light16
	LightComp
	LightComp16
	// SoftDark uses the lightest colors over a background taken from the
	// most dominant color.
	SoftDark
	SoftDark16
	SoftDarkComp
	SoftDarkComp16
	// SoftLight is Light with soft pastel colors.
	SoftLight
	SoftLight16
	SoftLightComp
	SoftLightComp16
)

var paletteNames = map[Palette]string{
	Dark: "dark", Dark16: "dark16", DarkComp: "darkcomp", DarkComp16: "darkcomp16",
	AnsiDark: "ansidark", AnsiDark16: "ansidark16",
	HardDark: "harddark", HardDark16: "harddark16", HardDarkComp: "harddarkcomp", HardDarkComp16: "harddarkcomp16",
	Light: "light", Light16: "light16", LightComp: "lightcomp", LightComp16: "lightcomp16",
	SoftDark: "softdark", SoftDark16: "softdark16", SoftDarkComp: "softdarkcomp", SoftDarkComp16: "softdarkcomp16",
	SoftLight: "softlight", SoftLight16: "softlight16", SoftLightComp: "softlightcomp", SoftLightComp16: "softlightcomp16",
}

type composer func(c, orig []colorful.Color) Colors

// Run composes a scheme from the sorted colors c and the dominant-first colors
// orig. Fewer than MinCols colors are repeated cyclically.
func (p Palette) Run(c, orig []colorful.Color) (Colors, error) {
	if len(c) == 0 || len(orig) == 0 {
		return Colors{}, ErrNotEnoughColors
	}
	var base composer
	switch p {
	case AnsiDark, AnsiDark16:
		base = ansidark
	case HardDark, HardDark16, HardDarkComp, HardDarkComp16:
		base = harddark
	case Light, Light16, LightComp, LightComp16:
		base = light
	case SoftDark, SoftDark16, SoftDarkComp, SoftDarkComp16:
		base = softdark
	case SoftLight, SoftLight16, SoftLightComp, SoftLightComp16:
		base = softlight
	default:
		base = dark
	}
	cols := base(repeatTo(c, MinCols), repeatTo(orig, MinCols))
	name := p.String()
	if strings.Contains(name, "comp") {
		cols = cols.ToComp()
	}
	if strings.HasSuffix(name, "16") {
		cols = cols.To16Col()
	}
	return cols, nil
}

// Order is the ColorOrder the palette expects its colors in.
func (p Palette) Order() ColorOrder {
	switch p {
	case Light, Light16, LightComp, LightComp16,
		HardDark, HardDark16, HardDarkComp, HardDarkComp16,
		AnsiDark, AnsiDark16:
		return DarkFirst
	}
	return LightFirst
}

func (p Palette) String() string {
	if name, ok := paletteNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Palette(%d)", int(p))
}

// Set implements pflag.Value. Dashed aliases such as "dark-comp16" are accepted.
func (p *Palette) Set(s string) error {
	s = strings.ReplaceAll(strings.ToLower(s), "-", "")
	for k, name := range paletteNames {
		if s == name {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown palette %q", s)
}

// Type implements pflag.Value.
func (p *Palette) Type() string {
	return "palette"
}

// repeatTo clamps cols into the sRGB gamut and repeats them until there are n.
func repeatTo(cols []colorful.Color, n int) []colorful.Color {
	out := make([]colorful.Color, 0, max(n, len(cols)))
	for _, c := range cols {
		out = append(out, c.Clamped())
	}
	for i := 0; len(out) < n; i++ {
		out = append(out, out[i%len(cols)])
	}
	return out
}

// dark expects LightFirst colors.
func dark(c, _ []colorful.Color) Colors {
	lightest := c[0]
	darkest := c[len(c)-1]

	fg := lighten(lightest, 0.65)
	col0, bg := darkBackground(darkest)
	col7 := blend(ee, lightest)

	var out Colors
	out.Background = bg
	out.Foreground = fg
	out.Cursor = blend(fg, c[4])
	out.Color[0] = col0
	out.Color[7] = col7
	out.Color[8] = darken(col7, 0.30)
	out.Color[15] = col7
	for i := 1; i <= 6; i++ {
		out.Color[i] = c[6-i]
		out.Color[i+8] = c[6-i]
	}
	return out
}

// darkBackground derives color0 and the background from the darkest color,
// desaturated like pywal does.
func darkBackground(c colorful.Color) (colorful.Color, colorful.Color) {
	lch := LchFromRGB(c)
	lch.C *= 0.2
	col0, bg := lch, lch
	switch {
	case lch.L < 20:
		col0.L += (100 - col0.L) * 0.2
	case lch.L < 60:
		col0 = shiftL(col0, -30)
		bg = shiftL(bg, -40)
	case lch.L < 80:
		col0 = shiftL(bg, -50)
		bg = shiftL(bg, -70)
	default:
		col0 = shiftL(col0, -60)
		bg = shiftL(bg, -80)
	}
	return col0.RGB().Clamped(), bg.RGB().Clamped()
}

// light expects DarkFirst colors.
func light(c, _ []colorful.Color) Colors {
	lightest := c[len(c)-1]
	darkest := c[0]

	col0, bg := lightBackground(lightest)
	fg := darken(darkest, 0.55)
	col1 := colorful.Color{R: c[5].R - 0.1, G: c[5].G - 0.1, B: c[5].B - 0.1}.Clamped()

	var out Colors
	out.Background = bg
	out.Foreground = fg
	out.Cursor = blend(fg, c[4])
	out.Color[0] = col0
	out.Color[1] = col1
	out.Color[7] = fg
	out.Color[8] = darken(lightest, 0.3)
	out.Color[9] = col1
	out.Color[15] = darken(darkest, 0.85)
	for i := 2; i <= 6; i++ {
		out.Color[i] = c[6-i]
		out.Color[i+8] = c[6-i]
	}
	return out
}

func lightBackground(c colorful.Color) (colorful.Color, colorful.Color) {
	lch := LchFromRGB(c)
	lch.C *= 0.2
	col0, bg := lch, lch
	switch {
	case lch.L < 20:
		bg = shiftL(col0, 70)
		col0 = shiftL(col0, 60)
	case lch.L < 60:
		col0 = shiftL(col0, 70)
		bg = shiftL(bg, 60)
	case lch.L < 80:
		col0 = shiftL(bg, 50)
		bg = shiftL(bg, 30)
	default:
		col0 = shiftL(col0, 40)
		bg = shiftL(bg, 20)
	}
	return col0.RGB().Clamped(), bg.RGB().Clamped()
}

// harddark is dark with the colors in DarkFirst order and a background taken
// from the dominant color.
func harddark(c, orig []colorful.Color) Colors {
	out := dark(c, orig)
	out.Background = darken(orig[0], 0.65)
	for i := 1; i <= 6; i++ {
		out.Color[i] = c[i-1]
		out.Color[i+8] = c[i-1]
	}
	return out
}

// softlight is light with the lightest colors, which may lack contrast.
func softlight(c, orig []colorful.Color) Colors {
	out := light(c, orig)
	for i := 1; i <= 6; i++ {
		out.Color[i] = c[i-1]
		out.Color[i+8] = c[i-1]
	}
	return out
}

// softdark is softlight over a dark background made from the dominant color.
func softdark(c, orig []colorful.Color) Colors {
	h, s, l := orig[0].Clamped().Hsl()
	if l > 0.5 {
		l *= 0.5
	}
	if s < 0.5 {
		s += (1 - s) * 0.15
	}

	out := softlight(c, orig)
	fg := lighten(out.Background, 0.35)
	out.Color[8] = darken(out.Color[1], 0.3)
	out.Color[15] = blend(out.Color[1], ee)
	out.Background = colorful.Hsl(h, s, l).Clamped()
	out.Foreground = fg
	out.Cursor = blend(fg, c[4])
	return out
}

// ansidark expects the eight LchAnsi roles but copes with MinCols colors.
func ansidark(c, _ []colorful.Color) Colors {
	col7 := blend(ee, c[5])
	if len(c) > 7 {
		col7 = c[7]
	}
	col5, col6 := blend(c[2], c[4]), blend(c[1], c[3])
	if len(c) > 6 {
		col5, col6 = c[5], c[6]
	}

	var out Colors
	out.Background = darken(c[0], 0.2)
	out.Foreground = col7
	out.Cursor = col7
	out.Color[0] = lighten(c[0], 0.1)
	out.Color[8] = lighten(c[0], 0.25)
	row := [7]colorful.Color{c[1], c[2], c[3], c[4], col5, col6, col7}
	for i, col := range row {
		out.Color[i+1] = col
		out.Color[i+9] = col
	}
	return out
}
