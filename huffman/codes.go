package huffman

import (
	"strings"

	"github.com/egonelbre/exp-huffman-compression/bitstream"
)

// Code is the path from the root to a leaf: Zero for left, One for right.
type Code []bitstream.Bit

// CodeTable maps every leaf symbol of a tree to its code.
type CodeTable map[Symbol]Code

func (c Code) String() string {
	var s strings.Builder
	for _, b := range c {
		s.WriteString(b.String())
	}
	return s.String()
}

// HasPrefix reports whether prefix is a prefix of c.
func (c Code) HasPrefix(prefix Code) bool {
	if len(prefix) > len(c) {
		return false
	}
	for i, b := range prefix {
		if c[i] != b {
			return false
		}
	}
	return true
}

// Write writes the bits of c to w.
func (c Code) Write(w BitWriter) error {
	for _, b := range c {
		if err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

func assignCodes(n *Node, path Code, codes CodeTable) {
	if n.IsLeaf() {
		codes[n.Symbol] = append(Code(nil), path...)
		return
	}
	assignCodes(n.Left, append(path, bitstream.Zero), codes)
	assignCodes(n.Right, append(path, bitstream.One), codes)
}
