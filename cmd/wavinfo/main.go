// Command wavinfo prints wavelet filter banks and the accuracy of their
// boundary-corrected transform matrices.
//
// Usage:
//
//	wavinfo [flags] [wavelet-name ...]
//
// Without arguments it prints info for all known wavelets.
//
// Examples:
//
//	wavinfo db4
//	wavinfo -size 256 db2 db6 db8
//	wavinfo -boundary circular -size 32 haar db3
//	wavinfo -filters db2
//	wavinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-wavelet/dsp/wavelet"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/boundary"
	"github.com/cwbudde/algo-wavelet/dsp/wavelet/matmul"
)

func main() {
	size := flag.Int("size", 64, "signal length (even) for the boundary matrices")
	mode := flag.String("boundary", "gramschmidt", "boundary mode: gramschmidt or circular")
	list := flag.Bool("list", false, "list available wavelet names")
	filters := flag.Bool("filters", false, "print filter taps instead of matrix metrics")
	verbose := flag.Bool("v", false, "log matrix construction to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wavinfo [flags] [wavelet-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints filter banks and boundary matrix errors of orthogonal wavelets.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all wavelets.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  wavinfo db4\n")
		fmt.Fprintf(os.Stderr, "  wavinfo -size 256 db2 db6 db8\n")
		fmt.Fprintf(os.Stderr, "  wavinfo -filters db2\n")
		fmt.Fprintf(os.Stderr, "  wavinfo -list\n")
	}
	flag.Parse()

	if *list {
		for _, n := range wavelet.Names() {
			fmt.Println(n)
		}
		return
	}

	bmode, err := boundary.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	names := flag.Args()
	if len(names) == 0 {
		names = wavelet.Names()
	}

	wavelets := resolve(names, logger)
	if len(wavelets) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching wavelets\n")
		os.Exit(1)
	}

	if *filters {
		err = printFilters(os.Stdout, wavelets)
	} else {
		err = printMetrics(os.Stdout, wavelets, *size, bmode, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolve(names []string, logger *slog.Logger) []*wavelet.Wavelet {
	var out []*wavelet.Wavelet
	for _, name := range names {
		w, err := wavelet.Lookup(name)
		if err != nil {
			logger.Warn("skipping wavelet", "name", strings.TrimSpace(name), "err", err)
			continue
		}
		out = append(out, w)
	}
	return out
}

// metrics summarises the single-level matrices of one wavelet.
type metrics struct {
	boundaryRows int
	nnz          int
	orthError    float64
	invError     float64
	maxLevel     int
}

func analyze(w *wavelet.Wavelet, size int, mode boundary.Mode) (metrics, error) {
	a, s, err := boundary.Matrices(w, size, mode)
	if err != nil {
		return metrics{}, err
	}

	ad := a.ToDense()
	return metrics{
		boundaryRows: len(boundary.EdgeRows(w.Len(), size)),
		nnz:          a.NNZ(),
		orthError:    boundary.OrthogonalityError(ad),
		invError:     boundary.InverseError(ad, s.ToDense()),
		maxLevel:     matmul.MaxLevel(size, w.Len()),
	}, nil
}

func printMetrics(out io.Writer, wavelets []*wavelet.Wavelet, size int, mode boundary.Mode, logger *slog.Logger) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Wavelet\tTaps\tSize\tBoundary\tEdge rows\tNNZ\tOrth. error\tInv. error\tMax level\n")
	fmt.Fprintf(tw, "-------\t----\t----\t--------\t---------\t---\t-----------\t----------\t---------\n")

	for _, w := range wavelets {
		m, err := analyze(w, size, mode)
		if err != nil {
			logger.Warn("skipping wavelet", "name", w.Name, "size", size, "err", err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%d\t%d\t%.2e\t%.2e\t%d\n",
			w.Name, w.Len(), size, mode, m.boundaryRows, m.nnz, m.orthError, m.invError, m.maxLevel)
	}
	return tw.Flush()
}

func printFilters(out io.Writer, wavelets []*wavelet.Wavelet) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, w := range wavelets {
		fmt.Fprintf(tw, "%s (%d taps)\n", w.Name, w.Len())
		fmt.Fprintf(tw, "k\tdec_lo\tdec_hi\trec_lo\trec_hi\n")
		for k := range w.Len() {
			fmt.Fprintf(tw, "%d\t% .16f\t% .16f\t% .16f\t% .16f\n", k, w.DecLo[k], w.DecHi[k], w.RecLo[k], w.RecHi[k])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
