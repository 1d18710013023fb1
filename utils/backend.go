package utils

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/termscheme"
)

// Backend decides how an image is turned into the RGB8 buffer the color
// spaces read.
type Backend int

const (
	// BackendResized halves images whose larger side is at least 1024 px,
	// keeping the aspect ratio. Default.
	BackendResized Backend = iota
	// BackendFull reads every pixel. Slowest, most precise.
	BackendFull
	// BackendThumb resizes to 512x512 without keeping the aspect ratio.
	BackendThumb
	// BackendKmeans replaces every pixel with its k-means centroid, which
	// gives a more diverse look.
	BackendKmeans
	// BackendDominant keeps only the dominant colors, repeated by weight.
	BackendDominant
)

var backendNames = map[Backend]string{
	BackendResized:  "resized",
	BackendFull:     "full",
	BackendThumb:    "thumb",
	BackendKmeans:   "kmeans",
	BackendDominant: "dominant",
}

const (
	shrinkSide  = 1024
	thumbSide   = 512
	maxSamples  = 12000
	dominantN   = termscheme.MaxCols
	weightScale = 1000
)

// Bytes returns the packed RGB8 buffer of img for this backend.
func (b Backend) Bytes(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	switch b {
	case BackendFull:
		return RGBBytes(img), nil
	case BackendThumb:
		return RGBBytes(imaging.Resize(img, thumbSide, thumbSide, imaging.Lanczos)), nil
	case BackendKmeans:
		buf, err := kmeansBytes(img, termscheme.MinCols)
		if err != nil {
			slog.Warn("kmeans backend failed, reading the full image", "err", err)
			return RGBBytes(img), nil
		}
		return buf, nil
	case BackendDominant:
		if buf := dominantBytes(img, dominantN); len(buf) > 0 {
			return buf, nil
		}
		slog.Warn("no dominant colors found, reading the full image")
		return RGBBytes(img), nil
	default:
		w, h := bounds.Dx(), bounds.Dy()
		if w >= shrinkSide || h >= shrinkSide {
			img = imaging.Resize(img, w/2, h/2, imaging.Gaussian)
		}
		return RGBBytes(img), nil
	}
}

// kmeansBytes clusters a subsample of the pixels in Lab and maps every pixel
// to its nearest centroid.
func kmeansBytes(img image.Image, k int) ([]byte, error) {
	pix := RGBBytes(img)
	n := len(pix) / 3
	step := n/maxSamples + 1

	labOf := func(i int) clusters.Coordinates {
		l, a, b := colorful.Color{
			R: float64(pix[i*3]) / 255.0,
			G: float64(pix[i*3+1]) / 255.0,
			B: float64(pix[i*3+2]) / 255.0,
		}.Lab()
		return clusters.Coordinates{l, a, b}
	}

	dataset := make(clusters.Observations, 0, n/step+1)
	for i := 0; i < n; i += step {
		dataset = append(dataset, labOf(i))
	}
	k = min(k, len(dataset))
	if k <= 0 {
		return nil, fmt.Errorf("no pixels to cluster")
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition: %w", err)
	}

	centroids := make([][3]byte, len(cc))
	for i, c := range cc {
		if len(c.Center) < 3 {
			return nil, fmt.Errorf("kmeans centroid %d has %d dimensions", i, len(c.Center))
		}
		r, g, b := colorful.Lab(c.Center[0], c.Center[1], c.Center[2]).Clamped().RGB255()
		centroids[i] = [3]byte{r, g, b}
	}

	out := make([]byte, 0, len(pix))
	for i := range n {
		c := centroids[cc.Nearest(labOf(i))]
		out = append(out, c[0], c[1], c[2])
	}
	return out, nil
}

// dominantBytes repeats the n dominant colors of img proportionally to their weight.
func dominantBytes(img image.Image, n int) []byte {
	var out []byte
	for _, c := range dominantcolor.FindWeight(img, n) {
		times := max(1, int(math.Round(c.Weight*weightScale)))
		for range times {
			out = append(out, c.RGBA.R, c.RGBA.G, c.RGBA.B)
		}
	}
	return out
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// Set implements pflag.Value.
func (b *Backend) Set(s string) error {
	for k, name := range backendNames {
		if strings.EqualFold(s, name) {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("unknown backend %q", s)
}

// Type implements pflag.Value.
func (b *Backend) Type() string {
	return "backend"
}
