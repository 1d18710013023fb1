package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/setanarut/termscheme"
	"github.com/setanarut/termscheme/utils"
	"github.com/spf13/cobra"
)

var (
	runOpts     = termscheme.DefaultOptions()
	runBackend  utils.Backend
	runPreview  string
	runJSON     bool
	runNoCache  bool
	runCacheDir string
)

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Generate a colorscheme from an image",
	Long: `Reads the image, reduces it to between 6 and 16 distinct colors and
prints the composed 16 color scheme.

With --dynamic (default) the merge threshold is searched; otherwise
--threshold is used as is.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.VarP(&runBackend, "backend", "b", "how pixels are read: resized, full, thumb, kmeans, dominant")
	f.VarP(&runOpts.ColorSpace, "colorspace", "c", "lch, lch-mixed, lch-ansi, lab, lab-mixed")
	f.VarP(&runOpts.Palette, "palette", "p", "scheme style, e.g. dark, light16, softdark-comp")
	f.VarP(&runOpts.Generator, "generator", "g", "fallback generator: interpolate, complementary")
	f.Uint8VarP(&runOpts.Threshold, "threshold", "t", runOpts.Threshold, "merge threshold in [1,100], used without --dynamic")
	f.BoolVar(&runOpts.Dynamic, "dynamic", runOpts.Dynamic, "search the threshold")
	f.Float64Var(&runOpts.Saturation, "saturation", 0, "saturation in (0,1] for the hued colors, 0 = untouched")
	f.BoolVar(&runOpts.CheckContrast, "check-contrast", false, "lighten colors unreadable on the background")
	f.StringVar(&runPreview, "preview", "", "write a PNG strip of the scheme to this path")
	f.BoolVar(&runJSON, "json", false, "print the scheme as JSON")
	f.BoolVar(&runNoCache, "no-cache", false, "skip the scheme cache")
	f.StringVar(&runCacheDir, "cache-dir", "", "cache directory (default: user cache dir)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	start := time.Now()

	img, err := utils.ReadImage(args[0])
	if err != nil {
		return err
	}
	buf, err := runBackend.Bytes(img)
	if err != nil {
		return fmt.Errorf("backend %s: %w", runBackend, err)
	}
	slog.Debug("image read", "path", args[0], "backend", runBackend, "pixels", len(buf)/3)

	var cache *utils.Cache
	key := utils.Key(buf, runBackend, runOpts)
	if !runNoCache {
		if cache, err = utils.NewCache(runCacheDir); err != nil {
			slog.Warn("cache disabled", "err", err)
		}
	}

	cols, fallback, found := termscheme.Colors{}, false, false
	if cache != nil {
		cols, fallback, found, err = cache.Load(key)
		if err != nil {
			slog.Warn("ignoring cache entry", "err", err)
		}
		if found {
			slog.Debug("cache hit", "key", key)
		}
	}
	if !found {
		cols, fallback, err = termscheme.Generate(buf, runOpts)
		if err != nil {
			return fmt.Errorf("generate %s: %w", args[0], err)
		}
		if cache != nil {
			if err := cache.Store(key, cols, fallback); err != nil {
				slog.Warn("cache store failed", "err", err)
			}
		}
	}
	if fallback {
		slog.Warn("not enough colors in the image, artificially generating colors",
			"generator", runOpts.Generator)
	}

	if err := printScheme(cols); err != nil {
		return err
	}
	if runPreview != "" {
		if err := utils.SaveScheme(cols, 64, runPreview); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		slog.Info("preview written", "path", runPreview)
	}

	slog.Debug("done", "colorspace", runOpts.ColorSpace, "palette", runOpts.Palette,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func printScheme(cols termscheme.Colors) error {
	if runJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cols)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "background %s\n", cols.Background.Hex())
	fmt.Fprintf(&sb, "foreground %s\n", cols.Foreground.Hex())
	fmt.Fprintf(&sb, "cursor     %s\n", cols.Cursor.Hex())
	for i, c := range cols.Color {
		fmt.Fprintf(&sb, "color%-5d %s\n", i, c.Hex())
	}
	_, err := os.Stdout.WriteString(sb.String())
	return err
}
