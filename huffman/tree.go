// Package huffman builds deterministic Huffman prefix-code trees over the
// byte alphabet extended with an end-of-stream symbol, derives their code
// tables and serializes trees to a compact bit-packed form.
package huffman

import (
	"errors"
	"fmt"
)

// Symbol is a byte value 0-255 or EndOfStream.
type Symbol uint16

const (
	// EndOfStream terminates every encoded stream. It never collides with a
	// byte value.
	EndOfStream Symbol = 256
	// SymbolCount is the number of distinct symbols, bytes plus EndOfStream.
	SymbolCount = 257
	// SymbolBits is the width of a serialized leaf symbol.
	SymbolBits = 9
)

// IsByte reports whether s is a real byte value.
func (s Symbol) IsByte() bool { return s < EndOfStream }

func (s Symbol) String() string {
	if s == EndOfStream {
		return "EOS"
	}
	if s >= 0x20 && s < 0x7f {
		return fmt.Sprintf("%q", rune(s))
	}
	return fmt.Sprintf("0x%02x", uint16(s))
}

// ErrCorrupt is returned when a stream is truncated or malformed.
var ErrCorrupt = errors.New("huffman: corrupt or truncated stream")

// Node is a node of a Huffman tree. A node without children is a leaf.
type Node struct {
	Symbol Symbol // valid for leaves
	Freq   uint64
	Left   *Node
	Right  *Node

	order int // construction order, breaks frequency ties
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

// Tree is a Huffman tree. It is immutable once built.
type Tree struct {
	Root *Node

	codes CodeTable
}

// Codes returns the code table of the tree. The result must not be modified.
func (t *Tree) Codes() CodeTable {
	if t.codes == nil {
		t.codes = make(CodeTable)
		assignCodes(t.Root, nil, t.codes)
	}
	return t.codes
}

// Leaves returns the leaf symbols in preorder.
func (t *Tree) Leaves() []Symbol {
	var syms []Symbol
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() {
			syms = append(syms, n.Symbol)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t.Root)
	return syms
}

// MaxDepth returns the length of the longest code.
func (t *Tree) MaxDepth() int {
	var depth func(n *Node) int
	depth = func(n *Node) int {
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(depth(n.Left), depth(n.Right))
	}
	return depth(t.Root)
}
