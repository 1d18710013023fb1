package termscheme

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colors is a terminal colorscheme: the 16 ANSI colors and the special ones.
type Colors struct {
	Background colorful.Color
	Foreground colorful.Color
	Cursor     colorful.Color
	Color      [16]colorful.Color
}

// ee is #EEEEEE, the light grey pywal blends foregrounds with.
var ee = colorful.Color{R: 238.0 / 255.0, G: 238.0 / 255.0, B: 238.0 / 255.0}

// All returns color0..color15 followed by background and foreground.
func (c Colors) All() []colorful.Color {
	out := make([]colorful.Color, 0, 18)
	out = append(out, c.Color[:]...)
	return append(out, c.Background, c.Foreground)
}

// To16Col darkens the first row so both rows differ.
func (c Colors) To16Col() Colors {
	for i := 1; i <= 6; i++ {
		c.Color[i] = darken(c.Color[i], 0.25)
	}
	return c
}

// ToComp replaces the hued colors with their saturated complementary.
func (c Colors) ToComp() Colors {
	for i := 1; i <= 6; i++ {
		comp := complement(saturate(c.Color[i], 0.3))
		c.Color[i] = comp
		c.Color[i+8] = comp
	}
	return c
}

// SaturateColors saturates the hued colors by amount, which must be in [0,1].
func (c *Colors) SaturateColors(amount float64) {
	if amount <= 0 || amount > 1 {
		return
	}
	for _, i := range huedIndexes {
		c.Color[i] = saturate(c.Color[i], amount)
	}
}

var huedIndexes = []int{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14}

// minContrast is the WCAG 2.1 minimum contrast ratio for normal text.
const minContrast = 4.5

// CheckContrast darkens the background and lightens the foreground and the
// hued colors, a few steps at most, until they are readable on the background.
func (c *Colors) CheckContrast() {
	bgDarkened := false
	for i := 0; i < 10 && ContrastRatio(c.Background, c.Foreground) < minContrast; i++ {
		c.Background = darken(c.Background, 0.15)
		c.Foreground = lighten(c.Foreground, 0.15)
		bgDarkened = true
	}
	for _, idx := range huedIndexes {
		for i := 0; i < 5 && ContrastRatio(c.Background, c.Color[idx]) < minContrast; i++ {
			if !bgDarkened {
				c.Background = darken(c.Background, 0.15)
				bgDarkened = true
			}
			c.Color[idx] = lighten(c.Color[idx], 0.05)
		}
	}
}

// ContrastRatio is the WCAG 2.1 contrast ratio of two colors, in [1,21].
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	return (max(la, lb) + 0.05) / (min(la, lb) + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// colorsJSON is the pywal colors.json layout.
type colorsJSON struct {
	Special struct {
		Background string `json:"background"`
		Foreground string `json:"foreground"`
		Cursor     string `json:"cursor"`
	} `json:"special"`
	Colors map[string]string `json:"colors"`
}

func (c Colors) MarshalJSON() ([]byte, error) {
	var out colorsJSON
	out.Special.Background = hex(c.Background)
	out.Special.Foreground = hex(c.Foreground)
	out.Special.Cursor = hex(c.Cursor)
	out.Colors = make(map[string]string, len(c.Color))
	for i, col := range c.Color {
		out.Colors[fmt.Sprintf("color%d", i)] = hex(col)
	}
	return json.Marshal(out)
}

func (c *Colors) UnmarshalJSON(data []byte) error {
	var in colorsJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var err error
	parse := func(s string) colorful.Color {
		if err != nil {
			return colorful.Color{}
		}
		var col colorful.Color
		col, err = colorful.Hex(s)
		return col
	}
	c.Background = parse(in.Special.Background)
	c.Foreground = parse(in.Special.Foreground)
	c.Cursor = parse(in.Special.Cursor)
	for i := range c.Color {
		c.Color[i] = parse(in.Colors[fmt.Sprintf("color%d", i)])
	}
	return err
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// darken scales every channel towards black.
func darken(c colorful.Color, amount float64) colorful.Color {
	return colorful.Color{R: c.R * (1 - amount), G: c.G * (1 - amount), B: c.B * (1 - amount)}.Clamped()
}

// lighten scales every channel towards white.
func lighten(c colorful.Color, amount float64) colorful.Color {
	return colorful.Color{
		R: c.R + (1-c.R)*amount,
		G: c.G + (1-c.G)*amount,
		B: c.B + (1-c.B)*amount,
	}.Clamped()
}

func blend(a, b colorful.Color) colorful.Color {
	return a.BlendRgb(b, 0.5)
}

// saturate moves HSV saturation towards 1 by amount.
func saturate(c colorful.Color, amount float64) colorful.Color {
	h, s, v := c.Clamped().Hsv()
	return colorful.Hsv(h, s+(1-s)*amount, v).Clamped()
}

// shiftL moves Lch lightness by a fixed amount, clamped to [0,100].
func shiftL(c Lch, amount float64) Lch {
	c.L = math.Max(0, math.Min(100, c.L+amount))
	return c
}
