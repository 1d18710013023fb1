package termscheme

import "testing"

func TestColorSpaceSet(t *testing.T) {
	t.Parallel()

	tests := map[string]ColorSpace{
		"lch":       SpaceLch,
		"LCH-mixed": SpaceLchMixed,
		"lch-ansi":  SpaceLchAnsi,
		"lab":       SpaceLab,
		"labmixed":  SpaceLabMixed,
	}
	for in, want := range tests {
		var cs ColorSpace
		if err := cs.Set(in); err != nil {
			t.Fatalf("set %q: %v", in, err)
		}
		if cs != want {
			t.Fatalf("set %q: expected %s, got %s", in, want, cs)
		}
	}

	var cs ColorSpace
	if err := cs.Set("hsv"); err == nil {
		t.Fatal("expected error for unknown color space")
	}
}

func TestColorSpaceFlags(t *testing.T) {
	t.Parallel()

	if !SpaceLabMixed.Mixed() || !SpaceLchMixed.Mixed() || SpaceLch.Mixed() {
		t.Fatal("unexpected Mixed")
	}
	if SpaceLchAnsi.Dedup() || !SpaceLab.Dedup() {
		t.Fatal("unexpected Dedup")
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	opt.CheckContrast = true
	opt.Saturation = 0.2
	cols, fallback, err := Generate(vividBuffer(), opt)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if ContrastRatio(cols.Background, cols.Foreground) < minContrast {
		t.Fatal("expected a readable foreground")
	}

	opt.Dynamic = false
	opt.Threshold = 0
	if _, _, err := Generate(vividBuffer(), opt); err == nil {
		t.Fatal("expected error for threshold 0")
	}
}

func TestGenerateAnsi(t *testing.T) {
	t.Parallel()

	opt := DefaultOptions()
	opt.ColorSpace = SpaceLchAnsi
	opt.Palette = AnsiDark
	cols, fallback, err := Generate(vividBuffer(), opt)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if fallback {
		t.Fatal("lchansi never falls back")
	}
	if cols.Foreground != cols.Color[7] {
		t.Fatal("ansidark uses gray as foreground")
	}
}
