// Package bitstream implements MSB-first bit reading and writing over
// byte-oriented streams and files.
//
// Bits are packed most significant bit first: the first bit written ends up
// in the 0x80 position of the first byte. A writer that is closed while it
// still holds a partial byte pads the unused low-order bits with zeros.
package bitstream

import (
	"bufio"
	"errors"
	"io"

	"github.com/icza/bitio"
)

// Bit is a single binary digit.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// BitOf converts a boolean into a Bit.
func BitOf(b bool) Bit {
	if b {
		return One
	}
	return Zero
}

func (b Bit) String() string {
	if b == One {
		return "1"
	}
	return "0"
}

// Reader reads individual bits from an io.Reader.
type Reader struct {
	bits   *bitio.Reader
	closer io.Closer
	read   uint64
}

// NewReader creates a bit reader over r. The reader does not take ownership of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{bits: bitio.NewReader(bufio.NewReader(r))}
}

// Next returns the next bit. It returns io.EOF once the underlying stream is
// exhausted and no bits of a previously read byte are pending.
func (r *Reader) Next() (Bit, error) {
	b, err := r.bits.ReadBool()
	if err != nil {
		return Zero, err
	}
	r.read++
	return BitOf(b), nil
}

// ReadBits reads n bits (at most 64) and returns them as the low bits of the
// result, first bit read being the most significant. A stream ending part way
// through returns io.ErrUnexpectedEOF.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	var v uint64
	for i := uint8(0); i < n; i++ {
		b, err := r.bits.ReadBool()
		if err != nil {
			if i > 0 && errors.Is(err, io.EOF) {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		r.read++
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v, nil
}

// BitsRead returns the number of bits consumed so far.
func (r *Reader) BitsRead() uint64 { return r.read }

// Close releases the underlying file when the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// Writer writes individual bits to an io.Writer.
type Writer struct {
	buf     *bufio.Writer
	bits    *bitio.Writer
	closer  io.Closer
	written uint64
	pending uint8 // bits in the current partial byte
	closed  bool
}

// NewWriter creates a bit writer over w. Close must be called to write out a
// pending partial byte; it does not close w.
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	return &Writer{
		buf:  buf,
		bits: bitio.NewWriter(buf),
	}
}

// Write appends a single bit.
func (w *Writer) Write(bit Bit) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.bits.WriteBool(bit == One); err != nil {
		return err
	}
	w.advance(1)
	return nil
}

// WriteBits appends the n low bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if w.closed {
		return ErrClosed
	}
	if n == 0 {
		return nil
	}
	if err := w.bits.WriteBits(v, n); err != nil {
		return err
	}
	w.advance(uint64(n))
	return nil
}

func (w *Writer) advance(n uint64) {
	w.written += n
	w.pending = uint8((uint64(w.pending) + n) % 8)
}

// BitsWritten returns the number of bits written so far, not counting padding.
func (w *Writer) BitsWritten() uint64 { return w.written }

// Pending returns the number of bits held in the current partial byte.
func (w *Writer) Pending() uint8 { return w.pending }

// Flush forces out a partially filled byte, zero padding the unused low-order
// bits, and flushes buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if _, err := w.bits.Align(); err != nil {
		return err
	}
	w.pending = 0
	return w.buf.Flush()
}

// Close flushes any pending partial byte and releases the underlying file
// when the writer owns one. Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	err := w.Flush()
	w.closed = true
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("bitstream: writer closed")

// ByteReader reads whole bytes from a buffered stream.
type ByteReader struct {
	buf    *bufio.Reader
	closer io.Closer
}

// NewByteReader creates a byte reader over r.
func NewByteReader(r io.Reader) *ByteReader {
	return &ByteReader{buf: bufio.NewReader(r)}
}

// Next returns the next byte or io.EOF at the end of the stream.
func (r *ByteReader) Next() (byte, error) {
	return r.buf.ReadByte()
}

// Close releases the underlying file when the reader owns one.
func (r *ByteReader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
