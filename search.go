package termscheme

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNotEnoughColors is returned when fewer than two distinguishable colors
// remain, which no fallback generator can extrapolate from.
var ErrNotEnoughColors = errors.New("not enough colors")

// Result holds the colors a palette is composed from.
type Result struct {
	// Top is sorted by the requested ColorOrder.
	Top []colorful.Color
	// Orig keeps the histogram order, most dominant first.
	Orig []colorful.Color
	// Fallback is set when colors had to be generated.
	Fallback bool
}

// thresholdOrder is the order RunDynamic tries thresholds in. It starts in the
// middle of the useful range and alternates outwards.
var thresholdOrder = []uint8{
	14, 16, 13, 17, 12, 18, 11, 19, 10, 20, 9, 21, 8, 22, 7, 23, 6, 24, 5, 25, 4, 26, 3, 27, 2,
	28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44,
}

const (
	minThreshold   = 2
	trialsPerRound = 3
)

// Init reads bytes into sp and gathers the histogram at threshold.
func Init[C Value[C]](sp Space[C], bytes []byte, threshold uint8, mix bool) ([]Entry[C], error) {
	h := GatherCols(sp, Read(sp, bytes), threshold, mix)
	if len(h) < 2 {
		return nil, ErrNotEnoughColors
	}
	return h, nil
}

// RunOnce builds the histogram at a fixed threshold.
func RunOnce[C Value[C]](sp Space[C], bytes []byte, threshold uint8, gen FallbackGenerator, mix bool, ord ColorOrder, dedup bool) (Result, error) {
	h, err := Init(sp, bytes, threshold, mix)
	if err != nil {
		return Result{}, err
	}
	if dedup {
		h = DedupCols(sp, h, threshold)
	}
	if len(h) < 2 {
		return Result{}, ErrNotEnoughColors
	}
	h, fallback := complete(sp, h, threshold, gen, false)
	return finish(sp, h, ord, fallback), nil
}

// RunDynamic searches for a threshold whose histogram has between MinCols and
// MaxCols entries. Thresholds are tried three at a time, concurrently, over the
// same read-only buffer. When no threshold fits, the histogram with the most
// colors is completed with generated ones.
func RunDynamic[C Value[C]](sp Space[C], bytes []byte, _ uint8, gen FallbackGenerator, mix bool, ord ColorOrder, dedup bool) (Result, error) {
	mustRGB(bytes)

	var (
		histo     []Entry[C]
		threshold uint8
		fallback  bool
		// thresholds by histogram length, and histograms by threshold
		byLen       = make(map[int][]uint8)
		byThreshold = make(map[uint8][]Entry[C])
	)

search:
	for i := 0; i < len(thresholdOrder); i += trialsPerRound {
		round := thresholdOrder[i:min(i+trialsPerRound, len(thresholdOrder))]
		results := make([][]Entry[C], len(round))

		var wg sync.WaitGroup
		for j, th := range round {
			wg.Go(func() {
				h, err := Init(sp, bytes, th, mix)
				if err != nil {
					return
				}
				if dedup {
					h = DedupCols(sp, h, th)
				}
				results[j] = h
			})
		}
		wg.Wait()

		for j, th := range round {
			threshold = th
			h := results[j]
			switch n := len(h); {
			case n >= MinCols && n <= MaxCols:
				histo = h
				break search
			case n >= 2:
				byLen[n] = append(byLen[n], th)
				byThreshold[th] = h
			default:
				best := longest(byLen)
				if best >= 2 && best < MinCols && th < 10 {
					threshold = median(byLen[best])
					histo = byThreshold[threshold]
					fallback = true
					break search
				}
			}
			if th == minThreshold {
				break search
			}
		}
	}

	if histo == nil {
		if best := longest(byLen); best >= 2 {
			threshold = median(byLen[best])
			histo = byThreshold[threshold]
		}
	}
	if len(histo) < 2 {
		return Result{}, ErrNotEnoughColors
	}
	if len(histo) > MaxCols {
		histo = truncateByCount(slices.Clone(histo))
	}

	histo, used := complete(sp, histo, threshold, gen, fallback)
	return finish(sp, histo, ord, used), nil
}

// complete applies the fallback generators to histograms that are too small.
func complete[C Value[C]](sp Space[C], h []Entry[C], threshold uint8, gen FallbackGenerator, force bool) ([]Entry[C], bool) {
	switch {
	case len(h) == 2:
		return FallbackMonochromatic(sp, h, gen), true
	case force || len(h) < MinCols:
		return Fallback(sp, h, threshold, gen), true
	}
	return h, false
}

func finish[C Value[C]](sp Space[C], h []Entry[C], ord ColorOrder, fallback bool) Result {
	top := slices.Clone(h)
	sp.Sort(top, ord)
	return Result{
		Top:      ToRGB(top),
		Orig:     ToRGB(h),
		Fallback: fallback,
	}
}

func longest(byLen map[int][]uint8) int {
	best := 0
	for n := range byLen {
		best = max(best, n)
	}
	return best
}

func median(ths []uint8) uint8 {
	s := slices.Clone(ths)
	slices.Sort(s)
	return s[len(s)/2]
}

func mustRGB(bytes []byte) {
	if len(bytes)%3 != 0 {
		panic(fmt.Sprintf("termscheme: rgb buffer length %d is not a multiple of 3", len(bytes)))
	}
}
