package termscheme

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func testScheme(t *testing.T) Colors {
	t.Helper()

	var c Colors
	hexes := []string{
		"#101010", "#aa3344", "#33aa44", "#aaaa33", "#3344aa", "#aa33aa", "#33aaaa", "#cccccc",
		"#555555", "#ff5566", "#55ff66", "#ffff55", "#5566ff", "#ff55ff", "#55ffff", "#ffffff",
	}
	for i, h := range hexes {
		col, err := colorful.Hex(h)
		if err != nil {
			t.Fatalf("parse %s: %v", h, err)
		}
		c.Color[i] = col
	}
	c.Background = c.Color[0]
	c.Foreground = c.Color[7]
	c.Cursor = c.Color[15]
	return c
}

func TestColorsJSON(t *testing.T) {
	t.Parallel()

	want := testScheme(t)
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"special"`, `"background":"#101010"`, `"color15":"#ffffff"`} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("expected %s in %s", key, data)
		}
	}

	var got Colors
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != want {
		t.Fatalf("round trip changed the scheme:\n%+v\n%+v", got, want)
	}
}

func TestColorsUnmarshalBadHex(t *testing.T) {
	t.Parallel()

	var c Colors
	err := json.Unmarshal([]byte(`{"special":{"background":"nope"},"colors":{}}`), &c)
	if err == nil {
		t.Fatal("expected error for an invalid hex color")
	}
}

func TestContrastRatio(t *testing.T) {
	t.Parallel()

	black, white := colorful.Color{}, colorful.Color{R: 1, G: 1, B: 1}
	if got := ContrastRatio(black, white); math.Abs(got-21) > 1e-9 {
		t.Fatalf("expected 21, got %f", got)
	}
	if got := ContrastRatio(white, black); math.Abs(got-21) > 1e-9 {
		t.Fatalf("contrast ratio must be symmetric, got %f", got)
	}
	if got := ContrastRatio(white, white); got != 1 {
		t.Fatalf("expected 1, got %f", got)
	}
}

func TestCheckContrast(t *testing.T) {
	t.Parallel()

	c := testScheme(t)
	c.Background = colorful.Color{R: 0.2, G: 0.2, B: 0.2}
	c.Foreground = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	c.CheckContrast()

	if got := ContrastRatio(c.Background, c.Foreground); got < minContrast {
		t.Fatalf("foreground still unreadable: %f", got)
	}
}

func TestTo16Col(t *testing.T) {
	t.Parallel()

	c := testScheme(t)
	got := c.To16Col()
	if got.Color[0] != c.Color[0] || got.Color[7] != c.Color[7] || got.Color[9] != c.Color[9] {
		t.Fatal("only color1..color6 may change")
	}
	for i := 1; i <= 6; i++ {
		if luminance(got.Color[i]) >= luminance(c.Color[i]) {
			t.Fatalf("color%d was not darkened", i)
		}
	}
}

func TestSaturateColors(t *testing.T) {
	t.Parallel()

	c := testScheme(t)
	same := c
	same.SaturateColors(0)
	if same != c {
		t.Fatal("zero saturation must leave the scheme untouched")
	}

	c.SaturateColors(0.5)
	_, s0, _ := same.Color[1].Hsv()
	_, s1, _ := c.Color[1].Hsv()
	if s1 <= s0 {
		t.Fatalf("expected more saturation, got %f <= %f", s1, s0)
	}
	if c.Color[0] != same.Color[0] {
		t.Fatal("color0 is not a hued color")
	}
}
