// Package termscheme reduces the pixels of an image to the handful of colors a
// terminal colorscheme is made of, and composes those colors into schemes.
//
// The reduction works on a flat RGB8 buffer: pixels are converted into a
// perceptual space, grouped into a histogram under a distance threshold,
// filtered, deduplicated and sorted. Images with too few distinct colors get
// generated ones.
package termscheme

import (
	"fmt"
	"strings"
)

// ColorSpace selects the space, and the histogram flavour, colors are gathered in.
type ColorSpace int

const (
	// SpaceLch is CIE LCh(ab), Lab with chroma and hue. Default.
	SpaceLch ColorSpace = iota
	// SpaceLchMixed blends every similar color into its histogram entry.
	SpaceLchMixed
	// SpaceLchAnsi keeps eight colors in ANSI order: black, red, green,
	// yellow, blue, magenta, cyan and gray. Works best with AnsiDark.
	SpaceLchAnsi
	// SpaceLab is CIE L*a*b*.
	SpaceLab
	// SpaceLabMixed blends every similar color into its histogram entry. Not
	// recommended for small images.
	SpaceLabMixed
)

var colorSpaceNames = map[ColorSpace]string{
	SpaceLch:      "lch",
	SpaceLchMixed: "lchmixed",
	SpaceLchAnsi:  "lchansi",
	SpaceLab:      "lab",
	SpaceLabMixed: "labmixed",
}

// Mixed reports whether merged colors are blended.
func (cs ColorSpace) Mixed() bool {
	return cs == SpaceLabMixed || cs == SpaceLchMixed
}

// Dedup reports whether adjacent duplicates are merged after gathering.
// LchAnsi buckets are final by construction.
func (cs ColorSpace) Dedup() bool {
	return cs != SpaceLchAnsi
}

// Run reduces bytes to colors. With dynamic the threshold argument is ignored
// and searched for instead.
func (cs ColorSpace) Run(bytes []byte, threshold uint8, dynamic bool, gen FallbackGenerator, ord ColorOrder) (Result, error) {
	switch cs {
	case SpaceLab, SpaceLabMixed:
		return run[Lab](LabSpace{}, cs, bytes, threshold, dynamic, gen, ord)
	case SpaceLchAnsi:
		return run[Lch](LchAnsiSpace{}, cs, bytes, threshold, dynamic, gen, ord)
	default:
		return run[Lch](LchSpace{}, cs, bytes, threshold, dynamic, gen, ord)
	}
}

func run[C Value[C]](sp Space[C], cs ColorSpace, bytes []byte, threshold uint8, dynamic bool, gen FallbackGenerator, ord ColorOrder) (Result, error) {
	if dynamic {
		return RunDynamic(sp, bytes, threshold, gen, cs.Mixed(), ord, cs.Dedup())
	}
	return RunOnce(sp, bytes, threshold, gen, cs.Mixed(), ord, cs.Dedup())
}

func (cs ColorSpace) String() string {
	if name, ok := colorSpaceNames[cs]; ok {
		return name
	}
	return fmt.Sprintf("ColorSpace(%d)", int(cs))
}

// Set implements pflag.Value. Dashed aliases such as "lch-ansi" are accepted.
func (cs *ColorSpace) Set(s string) error {
	s = strings.ReplaceAll(strings.ToLower(s), "-", "")
	for k, name := range colorSpaceNames {
		if s == name {
			*cs = k
			return nil
		}
	}
	return fmt.Errorf("unknown color space %q", s)
}

// Type implements pflag.Value.
func (cs *ColorSpace) Type() string {
	return "colorspace"
}
