package huffman

import "github.com/egonelbre/exp-huffman-compression/bitstream"

// ReadSymbol descends from the root, one bit per level, until it reaches a
// leaf and returns the leaf's symbol. Running out of bits before reaching a
// leaf is reported as ErrCorrupt.
func (t *Tree) ReadSymbol(r BitReader) (Symbol, error) {
	n := t.Root
	for !n.IsLeaf() {
		bit, err := r.Next()
		if err != nil {
			return 0, truncated(err, "code")
		}
		if bit == bitstream.Zero {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Symbol, nil
}
