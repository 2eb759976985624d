package freq

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunkSize is the chunk size used when Options.ChunkSize is not set.
const DefaultChunkSize = 1 << 20

// Options controls parallel counting.
type Options struct {
	// Workers limits the number of chunks counted at once.
	// Zero or negative uses GOMAXPROCS.
	Workers int
	// ChunkSize is the size of the byte range each worker counts.
	ChunkSize int64
}

func (opts Options) normalize() Options {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return opts
}

// CountFile counts the bytes of the file at path, splitting it into chunks
// that are counted concurrently and merged afterwards.
func CountFile(path string, opts Options) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	t, err := CountAt(f, info.Size(), opts)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", path, err)
	}
	return t, nil
}

// CountAt counts size bytes of r starting at offset zero, in chunks of
// opts.ChunkSize counted on at most opts.Workers goroutines.
func CountAt(r io.ReaderAt, size int64, opts Options) (Table, error) {
	opts = opts.normalize()

	chunks := int((size + opts.ChunkSize - 1) / opts.ChunkSize)
	partial := make([]Table, chunks)

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i := 0; i < chunks; i++ {
		i := i
		off := int64(i) * opts.ChunkSize
		n := min(opts.ChunkSize, size-off)
		g.Go(func() error {
			t, err := Count(io.NewSectionReader(r, off, n))
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			partial[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(partial...), nil
}
