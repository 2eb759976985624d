package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/egonelbre/exp-huffman-compression/bitstream"
)

// BitWriter is the bit sink used for encoding.
type BitWriter interface {
	Write(bit bitstream.Bit) error
	WriteBits(v uint64, n uint8) error
}

// BitReader is the bit source used for decoding.
type BitReader interface {
	Next() (bitstream.Bit, error)
	ReadBits(n uint8) (uint64, error)
}

const (
	flagInternal = bitstream.Zero
	flagLeaf     = bitstream.One
)

// WriteTree serializes the shape and leaf symbols of t in preorder.
// An internal node is written as a 0 bit followed by its left and right
// subtrees, a leaf as a 1 bit followed by its symbol in SymbolBits bits.
func WriteTree(w BitWriter, t *Tree) error {
	return writeNode(w, t.Root)
}

func writeNode(w BitWriter, n *Node) error {
	if n.IsLeaf() {
		if err := w.Write(flagLeaf); err != nil {
			return err
		}
		return w.WriteBits(uint64(n.Symbol), SymbolBits)
	}
	if err := w.Write(flagInternal); err != nil {
		return err
	}
	if err := writeNode(w, n.Left); err != nil {
		return err
	}
	return writeNode(w, n.Right)
}

// ReadTree deserializes a tree written by WriteTree. Node frequencies are
// not part of the format and are left zero.
//
// Truncated input and shapes WriteTree never produces are reported with an
// error wrapping ErrCorrupt.
func ReadTree(r BitReader) (*Tree, error) {
	tr := treeReader{r: r}
	root, err := tr.node(0)
	if err != nil {
		return nil, err
	}
	if root.IsLeaf() {
		return nil, fmt.Errorf("%w: tree root is a leaf", ErrCorrupt)
	}
	if !tr.seen[EndOfStream] {
		return nil, fmt.Errorf("%w: tree has no end-of-stream leaf", ErrCorrupt)
	}
	return &Tree{Root: root}, nil
}

type treeReader struct {
	r    BitReader
	seen [SymbolCount]bool
}

func (tr *treeReader) node(depth int) (*Node, error) {
	// a tree over SymbolCount leaves is never deeper than this
	if depth >= SymbolCount {
		return nil, fmt.Errorf("%w: tree deeper than %d", ErrCorrupt, SymbolCount-1)
	}

	flag, err := tr.r.Next()
	if err != nil {
		return nil, truncated(err, "tree")
	}

	if flag == flagLeaf {
		v, err := tr.r.ReadBits(SymbolBits)
		if err != nil {
			return nil, truncated(err, "leaf symbol")
		}
		if v >= SymbolCount {
			return nil, fmt.Errorf("%w: leaf symbol %d out of range", ErrCorrupt, v)
		}
		sym := Symbol(v)
		if tr.seen[sym] {
			return nil, fmt.Errorf("%w: duplicate leaf %v", ErrCorrupt, sym)
		}
		tr.seen[sym] = true
		return &Node{Symbol: sym}, nil
	}

	left, err := tr.node(depth + 1)
	if err != nil {
		return nil, err
	}
	right, err := tr.node(depth + 1)
	if err != nil {
		return nil, err
	}
	return &Node{Left: left, Right: right}, nil
}

// truncated converts an end of stream into ErrCorrupt and keeps other errors.
func truncated(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s truncated", ErrCorrupt, what)
	}
	return fmt.Errorf("read %s: %w", what, err)
}
