package codec

import (
	"bufio"
	"fmt"
	"os"

	"github.com/egonelbre/exp-huffman-compression/bitstream"
	"github.com/egonelbre/exp-huffman-compression/freq"
)

// Compress compresses the file at inPath into a new file at outPath.
// outPath must not exist.
func Compress(inPath, outPath string) error {
	_, err := CompressWith(inPath, outPath, Options{})
	return err
}

// Decompress decompresses the file at inPath into a new file at outPath.
// outPath must not exist.
func Decompress(inPath, outPath string) error {
	_, err := DecompressWith(inPath, outPath, Options{})
	return err
}

// CompressWith is Compress with explicit options. It counts frequencies with
// freq.CountFile and then reads the input a second time to emit codes.
//
// An interrupted run may leave an incomplete output file behind; decoding it
// reports corruption.
func CompressWith(inPath, outPath string, opts Options) (_ Stats, err error) {
	log := opts.logger()

	table, err := freq.CountFile(inPath, opts.Count)
	if err != nil {
		return Stats{}, err
	}
	log.Debugf("counted %d bytes, %d distinct", table.Total(), len(table))

	src, err := bitstream.OpenByteReader(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer src.Close()

	w, err := bitstream.CreateWriter(outPath)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", outPath, cerr)
		}
	}()

	stats, err := encode(w, table, src, log)
	if err != nil {
		return stats, fmt.Errorf("compress %s: %w", inPath, err)
	}
	return stats, nil
}

// DecompressWith is Decompress with explicit options.
func DecompressWith(inPath, outPath string, opts Options) (_ Stats, err error) {
	log := opts.logger()

	r, err := bitstream.OpenReader(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stats{}, fmt.Errorf("create %s: %w", outPath, err)
	}
	out := bufio.NewWriter(f)
	defer func() {
		ferr := out.Flush()
		if cerr := f.Close(); ferr == nil {
			ferr = cerr
		}
		if err == nil && ferr != nil {
			err = fmt.Errorf("close %s: %w", outPath, ferr)
		}
	}()

	stats, err := decode(r, out, log)
	if err != nil {
		return stats, fmt.Errorf("decompress %s: %w", inPath, err)
	}
	return stats, nil
}
