package termscheme

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestPaletteSet(t *testing.T) {
	t.Parallel()

	for p, name := range paletteNames {
		var got Palette
		if err := got.Set(name); err != nil {
			t.Fatalf("set %q: %v", name, err)
		}
		if got != p || got.String() != name {
			t.Fatalf("set %q gave %v", name, got)
		}
	}

	var p Palette
	if err := p.Set("Soft-Dark-Comp16"); err != nil || p != SoftDarkComp16 {
		t.Fatalf("expected dashed alias to parse, got %v (%v)", p, err)
	}
	if err := p.Set("neon"); err == nil {
		t.Fatal("expected error for unknown palette")
	}
}

func TestPaletteOrder(t *testing.T) {
	t.Parallel()

	tests := map[Palette]ColorOrder{
		Dark:      LightFirst,
		SoftDark:  LightFirst,
		SoftLight: LightFirst,
		Light16:   DarkFirst,
		HardDark:  DarkFirst,
		AnsiDark:  DarkFirst,
	}
	for p, want := range tests {
		if got := p.Order(); got != want {
			t.Fatalf("%s: expected %s, got %s", p, want, got)
		}
	}
}

func TestPaletteRun(t *testing.T) {
	t.Parallel()

	for p := Dark; p <= SoftLightComp16; p++ {
		cols, err := p.Run(vivid[:6], vivid)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		for i, c := range cols.All() {
			if !c.IsValid() {
				t.Fatalf("%s: color %d out of gamut: %v", p, i, c)
			}
		}
	}
}

func TestPalette16Variants(t *testing.T) {
	t.Parallel()

	// every palette is followed by its 16 color variant
	for p := Dark; p <= SoftLightComp; p += 2 {
		base, err := p.Run(vivid, vivid)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		got, err := (p + 1).Run(vivid, vivid)
		if err != nil {
			t.Fatalf("%s: %v", p+1, err)
		}
		if got != base.To16Col() {
			t.Fatalf("%s is not %s with a darkened first row", p+1, p)
		}
		for i := 1; i <= 6; i++ {
			if base.Color[i] != base.Color[i+8] {
				t.Fatalf("%s: color%d and color%d differ", p, i, i+8)
			}
		}
	}
}

func TestPaletteRunFewColors(t *testing.T) {
	t.Parallel()

	if _, err := Dark.Run(nil, vivid); !errors.Is(err, ErrNotEnoughColors) {
		t.Fatalf("expected ErrNotEnoughColors, got %v", err)
	}
	cols, err := Light.Run(vivid[:2], vivid[:2])
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if cols.Foreground == (colorful.Color{}) && cols.Background == (colorful.Color{}) {
		t.Fatal("expected a composed scheme")
	}
}

func TestDarkScheme(t *testing.T) {
	t.Parallel()

	cols, err := Dark.Run(vivid, vivid)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ContrastRatio(cols.Background, cols.Foreground) < 3 {
		t.Fatalf("dark scheme background %s and foreground %s are too close",
			cols.Background.Hex(), cols.Foreground.Hex())
	}
	if luminance(cols.Background) > luminance(cols.Foreground) {
		t.Fatal("dark scheme must have a darker background than foreground")
	}
}
