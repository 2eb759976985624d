// Package report renders codec run statistics as a protobuf Struct, so they
// can be emitted as JSON or embedded in other protobuf messages.
package report

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/egonelbre/exp-huffman-compression/codec"
)

// Mode names the direction of a run.
type Mode string

const (
	Compress   Mode = "compress"
	Decompress Mode = "decompress"
)

// Struct converts stats into a structpb.Struct.
func Struct(mode Mode, stats codec.Stats) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"mode":             string(mode),
		"original_bytes":   stats.OriginalBytes,
		"compressed_bytes": stats.CompressedBytes,
		"symbols":          stats.Symbols,
		"tree_bits":        stats.TreeBits,
		"payload_bits":     stats.PayloadBits,
		"max_code_length":  stats.MaxCodeLen,
		"ratio":            stats.Ratio(),
	})
}

// Write writes stats as indented JSON followed by a newline.
func Write(w io.Writer, mode Mode, stats codec.Stats) error {
	s, err := Struct(mode, stats)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
