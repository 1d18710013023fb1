package termscheme

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// pixels packs every color times[i] times into an RGB8 buffer.
func pixels(cols []colorful.Color, times ...int) []byte {
	var out []byte
	for i, c := range cols {
		n := 1
		if i < len(times) {
			n = times[i]
		}
		r, g, b := c.RGB255()
		for range n {
			out = append(out, r, g, b)
		}
	}
	return out
}

func TestRead(t *testing.T) {
	t.Parallel()

	got := Read[Lab](LabSpace{}, []byte{255, 0, 0, 0, 0, 255, 255, 0, 0})
	if len(got) != 3 {
		t.Fatalf("expected 3 colors, got %d", len(got))
	}
	if got[0] != got[2] {
		t.Fatal("identical pixels must convert to identical colors")
	}
	if got[0] != LabFromRGB(colorful.Color{R: 1}) {
		t.Fatalf("unexpected conversion: %+v", got[0])
	}
}

func TestReadPanicsOnBadLength(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a 4 byte buffer")
		}
	}()
	Read[Lch](LchSpace{}, []byte{1, 2, 3, 4})
}

func TestGatherCols(t *testing.T) {
	t.Parallel()

	sp := LabSpace{}
	cols := Read[Lab](sp, pixels([]colorful.Color{rgb(255, 0, 0), rgb(0, 0, 255), rgb(254, 0, 0), rgb(255, 0, 0)}))
	h := GatherCols[Lab](sp, cols, 10, false)
	if len(h) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h))
	}
	if h[0].Count != 3 || h[1].Count != 1 {
		t.Fatalf("unexpected counts %d, %d", h[0].Count, h[1].Count)
	}
	if h[0].Color != cols[0] {
		t.Fatal("without mixing the entry keeps the first color seen")
	}
}

func TestGatherColsMix(t *testing.T) {
	t.Parallel()

	sp := LabSpace{}
	cols := Read[Lab](sp, pixels([]colorful.Color{rgb(255, 0, 0), rgb(200, 0, 0)}))
	h := GatherCols[Lab](sp, cols, 100, true)
	if len(h) != 1 || h[0].Count != 2 {
		t.Fatalf("expected a single entry counting 2, got %+v", h)
	}
	if h[0].Color != cols[0].Mix(cols[1]) {
		t.Fatalf("expected the mixed color, got %+v", h[0].Color)
	}
}

func TestDedupCols(t *testing.T) {
	t.Parallel()

	entries := []Entry[Lab]{
		{Color: Lab{L: 80, A: -20, B: 5}, Count: 2},
		{Color: Lab{L: 50, A: 10, B: 10}, Count: 1},
		{Color: Lab{L: 50.4, A: 10.2, B: 10.3}, Count: 3},
	}
	got := DedupCols[Lab](LabSpace{}, entries, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Count != 4 || got[0].Color != (Lab{L: 50, A: 10, B: 10}) {
		t.Fatalf("expected merged run headed by the first color, got %+v", got[0])
	}
	if got[1].Count != 2 {
		t.Fatalf("expected the remaining entry to keep its count, got %+v", got[1])
	}
	if entries[0].Count != 2 {
		t.Fatal("input must not be modified")
	}
}

func TestTruncateByCount(t *testing.T) {
	t.Parallel()

	var entries []Entry[Lab]
	for i := range MaxCols + 4 {
		entries = append(entries, Entry[Lab]{Color: Lab{L: float64(i)}, Count: i})
	}
	entries[0].Synthetic = true

	got := truncateByCount(entries)
	if len(got) != MaxCols {
		t.Fatalf("expected %d entries, got %d", MaxCols, len(got))
	}
	if !got[0].Synthetic {
		t.Fatal("synthetic entries rank first")
	}
	for i := 2; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatalf("entries not ordered by count at %d: %d > %d", i, got[i].Count, got[i-1].Count)
		}
	}
}

func TestFallbackMonochromatic(t *testing.T) {
	t.Parallel()

	sp := LchSpace{}
	entries := []Entry[Lch]{
		{Color: LchFromRGB(colorful.Color{R: 1}), Count: 5},
		{Color: LchFromRGB(colorful.Color{B: 1}), Count: 3},
	}
	got := FallbackMonochromatic[Lch](sp, entries, Interpolate)
	if len(got) != 2+MinCols {
		t.Fatalf("expected %d entries, got %d", 2+MinCols, len(got))
	}
	if got[0].Count != 5 || got[1].Count != 3 {
		t.Fatal("counted entries must stay on top")
	}
}

func TestFallbackComplementary(t *testing.T) {
	t.Parallel()

	sp := LabSpace{}
	entries := []Entry[Lab]{
		{Color: LabFromRGB(colorful.Color{R: 1}), Count: 3},
		{Color: LabFromRGB(colorful.Color{B: 1}), Count: 2},
		{Color: LabFromRGB(colorful.Color{G: 1}), Count: 1},
	}
	got := Fallback[Lab](sp, entries, 1, Complementary)
	if len(got) < MinCols || len(got) > MaxCols {
		t.Fatalf("expected between %d and %d entries, got %d", MinCols, MaxCols, len(got))
	}
	if len(entries) != 3 {
		t.Fatal("input must not be modified")
	}
}
