// Command huff compresses or decompresses a single file with a Huffman code.
//
// Usage:
//
//	huff MODE IN OUT
//
// MODE is -c to compress or -u to uncompress. IN must be an existing regular
// file and OUT must not exist. Settings are read from HUFF_* environment
// variables, see internal/config.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/egonelbre/exp-huffman-compression/codec"
	"github.com/egonelbre/exp-huffman-compression/internal/config"
	"github.com/egonelbre/exp-huffman-compression/internal/logger"
	"github.com/egonelbre/exp-huffman-compression/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "%s MODE IN OUT\n", prog)
	fmt.Fprintln(w, "Huffman compress or uncompress a file")
	fmt.Fprintln(w, "MODE is either:")
	fmt.Fprintln(w, "  -c: compress")
	fmt.Fprintln(w, "  -u: uncompress")
	fmt.Fprintln(w, "IN is the input file, it must exist and be a file")
	fmt.Fprintln(w, "OUT is the output file, it must NOT already exist, no overwrite functionality")
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := "huff"
	if len(args) > 0 {
		prog = args[0]
	}
	if len(args) != 4 {
		usage(stderr, prog)
		return exitUsage
	}
	mode, in, out := args[1], args[2], args[3]

	if err := checkArgs(mode, in, out); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n\n", prog, err)
		usage(stderr, prog)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return exitUsage
	}
	level, _ := cfg.Level()
	log := logger.New(stderr, level)
	opts := cfg.CodecOptions(log)

	var (
		stats   codec.Stats
		kind    report.Mode
		message string
	)
	switch mode {
	case "-c":
		kind, message = report.Compress, "File successfully compressed"
		stats, err = codec.CompressWith(in, out, opts)
	case "-u":
		kind, message = report.Decompress, "File successfully uncompressed"
		stats, err = codec.DecompressWith(in, out, opts)
	}
	if err != nil {
		log.Errorf("%s %s: %v", kind, in, err)
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return exitError
	}

	log.Infof("%s %s -> %s: %d -> %d bytes", kind, in, out, sizeIn(kind, stats), sizeOut(kind, stats))
	fmt.Fprintln(stdout, message)

	if cfg.Stats {
		if err := report.Write(stdout, kind, stats); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", prog, err)
			return exitError
		}
	}
	return exitOK
}

func checkArgs(mode, in, out string) error {
	if mode != "-c" && mode != "-u" {
		return fmt.Errorf("unknown mode %q", mode)
	}

	info, err := os.Stat(in)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", in)
	}

	if _, err := os.Lstat(out); err == nil {
		return fmt.Errorf("output %s already exists", out)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func sizeIn(kind report.Mode, s codec.Stats) uint64 {
	if kind == report.Compress {
		return s.OriginalBytes
	}
	return s.CompressedBytes
}

func sizeOut(kind report.Mode, s codec.Stats) uint64 {
	if kind == report.Compress {
		return s.CompressedBytes
	}
	return s.OriginalBytes
}
