// Package freq counts byte frequencies.
//
// A Table can be computed independently for any chunk of the input and the
// partial tables merged afterwards. Merging is associative and commutative,
// so the final table does not depend on how the input was split or in which
// order the partial tables were combined.
package freq

import (
	"bufio"
	"errors"
	"io"
	"slices"
)

// Table maps a byte value to its occurrence count.
// Bytes that do not occur are absent from the table.
type Table map[byte]uint64

// Count counts every byte read from r.
func Count(r io.Reader) (Table, error) {
	var counts [256]uint64
	if err := countInto(&counts, r); err != nil {
		return nil, err
	}
	return fromArray(&counts), nil
}

// CountBytes counts the bytes of data.
func CountBytes(data []byte) Table {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}
	return fromArray(&counts)
}

func countInto(counts *[256]uint64, r io.Reader) error {
	buf := make([]byte, 32*1024)
	br := bufio.NewReader(r)
	for {
		n, err := br.Read(buf)
		for _, b := range buf[:n] {
			counts[b]++
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func fromArray(counts *[256]uint64) Table {
	t := Table{}
	for b, n := range counts {
		if n > 0 {
			t[byte(b)] = n
		}
	}
	return t
}

// Merge returns a new table containing the summed counts of t and other.
func (t Table) Merge(other Table) Table {
	r := make(Table, max(len(t), len(other)))
	for b, n := range t {
		r[b] += n
	}
	for b, n := range other {
		r[b] += n
	}
	return r
}

// Merge folds tables pairwise into a single table.
func Merge(tables ...Table) Table {
	r := Table{}
	for _, t := range tables {
		r = r.Merge(t)
	}
	return r
}

// Total returns the sum of all counts.
func (t Table) Total() uint64 {
	var total uint64
	for _, n := range t {
		total += n
	}
	return total
}

// Symbols returns the bytes present in the table in ascending order.
func (t Table) Symbols() []byte {
	syms := make([]byte, 0, len(t))
	for b := range t {
		syms = append(syms, b)
	}
	slices.Sort(syms)
	return syms
}

// Equal reports whether a and b hold the same counts.
func Equal(a, b Table) bool {
	if len(a) != len(b) {
		return false
	}
	for k, n := range a {
		if m, ok := b[k]; !ok || m != n {
			return false
		}
	}
	return true
}
