package utils

import (
	"image"
	"testing"
)

func TestBackendBytes(t *testing.T) {
	t.Parallel()

	img := quadImage(40, 40)
	for b := BackendResized; b <= BackendDominant; b++ {
		buf, err := b.Bytes(img)
		if err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if len(buf) == 0 || len(buf)%3 != 0 {
			t.Fatalf("%s: bad buffer length %d", b, len(buf))
		}
	}
}

func TestBackendSizes(t *testing.T) {
	t.Parallel()

	small := quadImage(40, 40)
	if buf, _ := BackendResized.Bytes(small); len(buf) != 40*40*3 {
		t.Fatalf("small images must not be resized, got %d bytes", len(buf))
	}
	big := quadImage(1100, 10)
	if buf, _ := BackendResized.Bytes(big); len(buf) != 550*5*3 {
		t.Fatalf("expected a halved image, got %d bytes", len(buf))
	}
	if buf, _ := BackendThumb.Bytes(small); len(buf) != thumbSide*thumbSide*3 {
		t.Fatalf("expected a %dx%d thumbnail, got %d bytes", thumbSide, thumbSide, len(buf))
	}
	if buf, _ := BackendKmeans.Bytes(small); len(buf) != 40*40*3 {
		t.Fatalf("kmeans must keep every pixel, got %d bytes", len(buf))
	}
}

func TestBackendEmptyImage(t *testing.T) {
	t.Parallel()

	if _, err := BackendFull.Bytes(image.NewNRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("expected error for an empty image")
	}
}

func TestBackendSet(t *testing.T) {
	t.Parallel()

	for b, name := range backendNames {
		var got Backend
		if err := got.Set(name); err != nil || got != b {
			t.Fatalf("set %q: got %v (%v)", name, got, err)
		}
	}
	var b Backend
	if err := b.Set("wal"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
