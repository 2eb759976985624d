package codec

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/egonelbre/exp-huffman-compression/freq"
	"github.com/egonelbre/exp-huffman-compression/huffman"
)

func encodeBytes(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Encode(bytes.NewReader(data), &buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.Bytes()
}

func decodeBytes(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Decode(bytes.NewReader(data), &buf); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return buf.Bytes()
}

func TestRoundtrip(t *testing.T) {
	rng := rand.New(rand.NewSource(31))

	random := make([]byte, 64*1024)
	rng.Read(random)

	skewed := make([]byte, 64*1024)
	for i := range skewed {
		skewed[i] = byte(min(rng.ExpFloat64()*4, 255))
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single byte", []byte{'x'}},
		{"zero byte", []byte{0}},
		{"repeated byte", bytes.Repeat([]byte{'a'}, 1000)},
		{"repeated zeros", make([]byte, 999)},
		{"two symbols", []byte("abababababbbbbba")},
		{"concrete", []byte("AAAAABBBCCD")},
		{"all bytes", all},
		{"text", []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 100))},
		{"random", random},
		{"skewed", skewed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			compressed := encodeBytes(t, tc.data)
			decoded := decodeBytes(t, compressed)
			if !bytes.Equal(decoded, tc.data) {
				t.Fatalf("roundtrip mismatch: got %d bytes, expected %d", len(decoded), len(tc.data))
			}
		})
	}
}

func TestEncodeConcrete(t *testing.T) {
	var buf bytes.Buffer
	stats, err := Encode(strings.NewReader("AAAAABBBCCD"), &buf)
	require.NoError(t, err)

	// 4 internal flags + 5 leaves of 10 bits; A=0 B=10 C=110 D=1110 EOS=1111
	require.Equal(t, uint64(54), stats.TreeBits)
	require.Equal(t, uint64(5*1+3*2+2*3+4+4), stats.PayloadBits)
	require.Equal(t, uint64(11), stats.OriginalBytes)
	require.Equal(t, uint64(10), stats.CompressedBytes)
	require.Equal(t, 4, stats.Symbols)
	require.Equal(t, 4, stats.MaxCodeLen)
	require.Equal(t, 10, buf.Len())

	var out bytes.Buffer
	dstats, err := Decode(&buf, &out)
	require.NoError(t, err)
	require.Equal(t, "AAAAABBBCCD", out.String())
	require.Equal(t, stats, dstats)
}

func TestEncodeEmpty(t *testing.T) {
	compressed := encodeBytes(t, nil)
	// tree 0 | 1 000000000 | 1 100000000, then EOS code 1, zero padded
	require.Equal(t, []byte{0x40, 0x18, 0x04}, compressed)
	require.Empty(t, decodeBytes(t, compressed))
}

func TestEncodeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(32))
	for iter := 0; iter < 10; iter++ {
		data := make([]byte, rng.Intn(4096))
		for i := range data {
			data[i] = byte(rng.Intn(1 + iter*25))
		}
		require.Equal(t, encodeBytes(t, data), encodeBytes(t, data))
	}
}

func TestDecodeIgnoresTrailingBits(t *testing.T) {
	compressed := encodeBytes(t, []byte("AAAAABBBCCD"))
	compressed = append(compressed, 0xff, 0x00, 0xaa)
	require.Equal(t, "AAAAABBBCCD", string(decodeBytes(t, compressed)))
}

func TestDecodeTruncated(t *testing.T) {
	data := []byte(strings.Repeat("truncation must be detected, never misdecoded. ", 20))
	compressed := encodeBytes(t, data)

	for n := 0; n < len(compressed); n++ {
		var out bytes.Buffer
		_, err := Decode(bytes.NewReader(compressed[:n]), &out)
		require.ErrorIs(t, err, huffman.ErrCorrupt, "length %d", n)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "input.huff")
	unpacked := filepath.Join(dir, "output.txt")

	data := []byte(strings.Repeat("AAAAABBBCCD\n", 5000))
	require.NoError(t, os.WriteFile(in, data, 0o644))

	stats, err := CompressWith(in, packed, Options{Count: freq.Options{Workers: 4, ChunkSize: 1000}})
	require.NoError(t, err)
	require.Equal(t, uint64(len(data)), stats.OriginalBytes)

	info, err := os.Stat(packed)
	require.NoError(t, err)
	require.Equal(t, int64(stats.CompressedBytes), info.Size())
	require.Less(t, stats.Ratio(), 0.5)

	// chunked counting must not change the output
	var buf bytes.Buffer
	_, err = Encode(bytes.NewReader(data), &buf)
	require.NoError(t, err)
	packedData, err := os.ReadFile(packed)
	require.NoError(t, err)
	require.Equal(t, buf.Bytes(), packedData)

	require.NoError(t, Decompress(packed, unpacked))
	got, err := os.ReadFile(unpacked)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty")
	packed := filepath.Join(dir, "empty.huff")
	unpacked := filepath.Join(dir, "empty.out")
	require.NoError(t, os.WriteFile(in, nil, 0o644))

	require.NoError(t, Compress(in, packed))
	require.NoError(t, Decompress(packed, unpacked))

	got, err := os.ReadFile(unpacked)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFilesErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input")
	existing := filepath.Join(dir, "existing")
	require.NoError(t, os.WriteFile(in, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o644))

	err := Compress(filepath.Join(dir, "missing"), filepath.Join(dir, "out1"))
	require.ErrorIs(t, err, os.ErrNotExist)

	err = Compress(in, existing)
	require.ErrorIs(t, err, os.ErrExist)
	kept, _ := os.ReadFile(existing)
	require.Equal(t, "keep", string(kept))

	err = Decompress(filepath.Join(dir, "missing"), filepath.Join(dir, "out2"))
	require.ErrorIs(t, err, os.ErrNotExist)

	packed := filepath.Join(dir, "input.huff")
	require.NoError(t, Compress(in, packed))
	err = Decompress(packed, existing)
	require.ErrorIs(t, err, os.ErrExist)

	// truncated file
	data, err := os.ReadFile(packed)
	require.NoError(t, err)
	truncated := filepath.Join(dir, "truncated.huff")
	require.NoError(t, os.WriteFile(truncated, data[:len(data)-1], 0o644))
	err = Decompress(truncated, filepath.Join(dir, "out3"))
	require.ErrorIs(t, err, huffman.ErrCorrupt)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

type recordingLogger struct{ lines []string }

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

func TestOptionsLogger(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input")
	require.NoError(t, os.WriteFile(in, []byte("logged"), 0o644))

	log := &recordingLogger{}
	_, err := CompressWith(in, filepath.Join(dir, "packed"), Options{Log: log})
	require.NoError(t, err)
	require.NotEmpty(t, log.lines)
}

func FuzzRoundtrip(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("AAAAABBBCCD"))
	f.Add([]byte{0, 0, 0, 255})

	f.Fuzz(func(t *testing.T, data []byte) {
		compressed := encodeBytes(t, data)
		decoded := decodeBytes(t, compressed)
		if !bytes.Equal(decoded, data) {
			t.Errorf("roundtrip mismatch for %q", data)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0x40, 0x18, 0x04})
	f.Add([]byte{0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		var out bytes.Buffer
		// must not panic or hang
		_, _ = Decode(bytes.NewReader(data), &out)
	})
}
