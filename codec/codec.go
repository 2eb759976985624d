// Package codec compresses and decompresses byte streams and files with a
// Huffman code built over the whole input.
//
// A compressed stream consists of the serialized tree, the code of every
// input byte in order, the code of the end-of-stream symbol and zero padding
// up to the next byte boundary. There is no magic number or length field.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/egonelbre/exp-huffman-compression/bitstream"
	"github.com/egonelbre/exp-huffman-compression/freq"
	"github.com/egonelbre/exp-huffman-compression/huffman"
)

// Logger receives progress messages.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Options configures the file pipelines.
type Options struct {
	// Count configures the parallel frequency counting pass.
	Count freq.Options
	// Log receives debug messages, nil discards them.
	Log Logger
}

func (opts Options) logger() Logger {
	if opts.Log == nil {
		return nopLogger{}
	}
	return opts.Log
}

// Stats describes a single compression or decompression run.
type Stats struct {
	OriginalBytes   uint64 // uncompressed size
	CompressedBytes uint64 // compressed size, including padding
	Symbols         int    // distinct byte values in the tree
	TreeBits        uint64 // size of the serialized tree
	PayloadBits     uint64 // size of the codes, including end-of-stream
	MaxCodeLen      int
}

// Ratio returns the compressed size relative to the original size.
func (s Stats) Ratio() float64 {
	if s.OriginalBytes == 0 {
		return 0
	}
	return float64(s.CompressedBytes) / float64(s.OriginalBytes)
}

// byteSource is the input of the second encoding pass.
type byteSource interface {
	Next() (byte, error)
}

// Encode compresses src into dst. src is read twice: once to count byte
// frequencies and, after seeking back to the start, once to emit codes.
func Encode(src io.ReadSeeker, dst io.Writer) (Stats, error) {
	table, err := freq.Count(src)
	if err != nil {
		return Stats{}, fmt.Errorf("count: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Stats{}, fmt.Errorf("rewind: %w", err)
	}

	w := bitstream.NewWriter(dst)
	stats, err := encode(w, table, bitstream.NewByteReader(src), nopLogger{})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return stats, err
}

func encode(w *bitstream.Writer, table freq.Table, src byteSource, log Logger) (Stats, error) {
	tree := huffman.Build(table)
	codes := tree.Codes()

	stats := Stats{
		Symbols:    len(codes) - 1,
		MaxCodeLen: tree.MaxDepth(),
	}
	log.Debugf("built tree: %d symbols, max code length %d", stats.Symbols, stats.MaxCodeLen)

	if err := huffman.WriteTree(w, tree); err != nil {
		return stats, fmt.Errorf("write tree: %w", err)
	}
	stats.TreeBits = w.BitsWritten()

	for {
		b, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}
		if err := codes[huffman.Symbol(b)].Write(w); err != nil {
			return stats, fmt.Errorf("write code: %w", err)
		}
		stats.OriginalBytes++
	}
	if err := codes[huffman.EndOfStream].Write(w); err != nil {
		return stats, fmt.Errorf("write end of stream: %w", err)
	}

	stats.PayloadBits = w.BitsWritten() - stats.TreeBits
	stats.CompressedBytes = (w.BitsWritten() + 7) / 8
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush: %w", err)
	}

	log.Debugf("encoded %d bytes into %d bytes (tree %d bits, payload %d bits)",
		stats.OriginalBytes, stats.CompressedBytes, stats.TreeBits, stats.PayloadBits)
	return stats, nil
}

// Decode decompresses a stream produced by Encode from src into dst.
// Truncated or malformed input returns an error wrapping huffman.ErrCorrupt.
func Decode(src io.Reader, dst io.Writer) (Stats, error) {
	out := bufio.NewWriter(dst)
	stats, err := decode(bitstream.NewReader(src), out, nopLogger{})
	if err != nil {
		return stats, err
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("flush: %w", err)
	}
	return stats, nil
}

func decode(r *bitstream.Reader, dst io.ByteWriter, log Logger) (Stats, error) {
	tree, err := huffman.ReadTree(r)
	if err != nil {
		return Stats{}, fmt.Errorf("read tree: %w", err)
	}

	stats := Stats{
		Symbols:    len(tree.Leaves()) - 1,
		TreeBits:   r.BitsRead(),
		MaxCodeLen: tree.MaxDepth(),
	}
	log.Debugf("read tree: %d leaves, max code length %d", stats.Symbols+1, stats.MaxCodeLen)

	for {
		sym, err := tree.ReadSymbol(r)
		if err != nil {
			return stats, fmt.Errorf("byte %d: %w", stats.OriginalBytes, err)
		}
		if sym == huffman.EndOfStream {
			break
		}
		if err := dst.WriteByte(byte(sym)); err != nil {
			return stats, fmt.Errorf("write output: %w", err)
		}
		stats.OriginalBytes++
	}

	stats.PayloadBits = r.BitsRead() - stats.TreeBits
	stats.CompressedBytes = (r.BitsRead() + 7) / 8
	log.Debugf("decoded %d bytes", stats.OriginalBytes)
	return stats, nil
}
