package termscheme

import "fmt"

type Options struct {
	// Space the histogram is built in.
	// Lch gives the most balanced schemes; LchAnsi pairs with the AnsiDark palettes.
	ColorSpace ColorSpace
	// Style the scheme is composed with. It also decides the color order.
	Palette Palette
	// How colors are made up when the image has fewer than MinCols of them.
	Generator FallbackGenerator
	// Perceptual distance (improved CIEDE2000) under which two colors merge, in [1,100].
	// Ignored when Dynamic is set. Ideal start: 18-22.
	// Too low => near duplicates survive; too high => everything collapses into a few colors.
	Threshold uint8
	// Search the threshold instead of using Threshold.
	Dynamic bool
	// Saturation in (0,1] applied to the hued colors. 0 leaves them untouched.
	Saturation float64
	// Lighten colors that are unreadable on the background (WCAG 4.5:1).
	CheckContrast bool
}

func DefaultOptions() Options {
	return Options{
		ColorSpace: SpaceLch,
		Palette:    Dark,
		Generator:  Interpolate,
		Threshold:  20,
		Dynamic:    true,
	}
}

// Generate runs the whole pipeline on a packed RGB8 buffer. The returned flag
// is set when colors had to be generated.
func Generate(bytes []byte, opt Options) (Colors, bool, error) {
	if !opt.Dynamic && (opt.Threshold < 1 || opt.Threshold > 100) {
		return Colors{}, false, fmt.Errorf("threshold %d out of range [1,100]", opt.Threshold)
	}
	res, err := opt.ColorSpace.Run(bytes, opt.Threshold, opt.Dynamic, opt.Generator, opt.Palette.Order())
	if err != nil {
		return Colors{}, false, err
	}
	cols, err := opt.Palette.Run(res.Top, res.Orig)
	if err != nil {
		return Colors{}, false, err
	}
	cols.SaturateColors(opt.Saturation)
	if opt.CheckContrast {
		cols.CheckContrast()
	}
	return cols, res.Fallback, nil
}
