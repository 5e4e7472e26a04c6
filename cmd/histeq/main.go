package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"time"

	"mesh-rasterizer/internal/histeq"
	"mesh-rasterizer/internal/imageio"
)

func main() {
	mode := flag.String("mode", "global", "Equalization: global or adaptive")
	regionH := flag.Int("region-h", 48, "Contextual region height for adaptive mode")
	regionW := flag.Int("region-w", 64, "Contextual region width for adaptive mode")
	histFile := flag.String("hist", "", "Write input/output histograms to this CSV file")
	bins := flag.Int("bins", histeq.Levels, "Histogram bins for -hist")
	quality := flag.Int("quality", 0, "JPEG quality 1-100 (default: 90)")
	verbose := flag.Bool("v", false, "Log timing")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: histeq [flags] in out\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	src, err := imageio.LoadGray(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	var dst *image.Gray
	switch *mode {
	case "global", "g":
		dst = histeq.Global(src)
	case "adaptive", "a":
		dst, err = histeq.Adaptive(src, *regionH, *regionW)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *mode)
		os.Exit(2)
	}
	log.Debug("equalized", "mode", *mode, "size", dst.Bounds().Size().String(), "elapsed", time.Since(start))

	if err := imageio.Save(out, dst, *quality); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *histFile != "" {
		if err := writeHistograms(*histFile, src, dst, *bins); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("%s → %s (%s)\n", in, out, *mode)
}

// writeHistograms stores one row per bin: bin, input count, output count.
func writeHistograms(path string, src, dst *image.Gray, bins int) error {
	before, err := histeq.Histogram(src, bins)
	if err != nil {
		return err
	}
	after, err := histeq.Histogram(dst, bins)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"bin", "input", "output"})
	for i := range before {
		w.Write([]string{strconv.Itoa(i), strconv.Itoa(before[i]), strconv.Itoa(after[i])})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("histogram: write %s: %w", path, err)
	}
	return nil
}
