package packfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kpack"
	"github.com/hupe1980/kpack/testutil"
)

func writeBuf[T kpack.Word](t *testing.T, words []T, size int, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(context.Background(), &buf, words, size, opts...))
	return buf.Bytes()
}

func testRoundTrip[T kpack.Word](t *testing.T, c Compression) {
	t.Helper()

	rng := testutil.NewRNG(42)
	size := 3
	words := testutil.Words[T](rng, 257, size)

	data := writeBuf(t, words, size, WithCompression(c))

	got, gotSize, err := Read[T](context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, size, gotSize)
	assert.Equal(t, words, got)
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			t.Run("int32", func(t *testing.T) { testRoundTrip[int32](t, c) })
			t.Run("uint32", func(t *testing.T) { testRoundTrip[uint32](t, c) })
			t.Run("int64", func(t *testing.T) { testRoundTrip[int64](t, c) })
			t.Run("uint64", func(t *testing.T) { testRoundTrip[uint64](t, c) })
		})
	}
}

func TestWriteReadEmpty(t *testing.T) {
	data := writeBuf[uint64](t, nil, 0)
	assert.Len(t, data, headerSize+trailerSize)

	got, size, err := Read[uint64](context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, size)
	assert.Empty(t, got)
}

func TestWriteSizeDomain(t *testing.T) {
	err := Write(context.Background(), &bytes.Buffer{}, []int32{0}, 32)
	assert.ErrorIs(t, err, kpack.ErrOverflow)

	err = Write(context.Background(), &bytes.Buffer{}, []int32{0}, -1)
	assert.ErrorIs(t, err, kpack.ErrOverflow)
}

func TestReadRejectsCorruption(t *testing.T) {
	words := []uint32{1, 2, 3}
	data := writeBuf(t, words, 4)

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] = 'X'
		_, _, err := Read[uint32](context.Background(), bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[4] = formatVersion + 1
		_, _, err := Read[uint32](context.Background(), bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})

	t.Run("word kind", func(t *testing.T) {
		_, _, err := Read[int64](context.Background(), bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrWordKindMismatch)
	})

	t.Run("payload bit flip", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[headerSize] ^= 0x01
		_, _, err := Read[uint32](context.Background(), bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("trailer bit flip", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0x01
		_, _, err := Read[uint32](context.Background(), bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("truncated", func(t *testing.T) {
		_, _, err := Read[uint32](context.Background(), bytes.NewReader(data[:len(data)-2]))
		assert.Error(t, err)
	})
}

func TestReadStoredWordsUnpack(t *testing.T) {
	rows := [][]int64{{-5, 3}, {0, 0}, {-1 << 30, 1<<30 - 1}}
	words := make([]int64, len(rows))
	for i, row := range rows {
		w, err := kpack.Pack(row)
		require.NoError(t, err)
		words[i] = w
	}

	data := writeBuf(t, words, 2, WithCompression(CompressionZSTD))
	got, size, err := Read[int64](context.Background(), bytes.NewReader(data))
	require.NoError(t, err)

	for i, w := range got {
		values, err := kpack.Unpack(w, size)
		require.NoError(t, err)
		assert.Equal(t, rows[i], values, "word %d", i)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column.kpk")

	rng := testutil.NewRNG(7)
	words := testutil.Words[int32](rng, 100, 5)

	require.NoError(t, WriteFile(context.Background(), path, words, 5, WithCompression(CompressionLZ4)))

	got, size, err := ReadFile[int32](context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, size)
	assert.Equal(t, words, got)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "column.kpk", entries[0].Name())
}

func TestWriteRateLimited(t *testing.T) {
	rng := testutil.NewRNG(11)
	words := testutil.Words[uint64](rng, 64, 8)

	// Generous limit: the write must still complete promptly and produce
	// byte-identical output.
	plain := writeBuf(t, words, 8)
	limited := writeBuf(t, words, 8, WithRateLimit(1<<30))
	assert.Equal(t, plain, limited)

	got, _, err := Read[uint64](context.Background(), bytes.NewReader(limited), WithRateLimit(1<<30))
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestWriteCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Write(ctx, &bytes.Buffer{}, []uint32{1}, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column.kpk")

	rng := testutil.NewRNG(23)
	words := testutil.Words[int64](rng, 513, 4)
	require.NoError(t, WriteFile(context.Background(), path, words, 4))

	m, err := OpenMapped[int64](path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 4, m.Size())
	assert.Equal(t, len(words), m.Count())
	assert.Equal(t, words, m.Words())

	require.NoError(t, m.Close())
}

func TestOpenMappedRejectsCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column.kpk")
	require.NoError(t, WriteFile(context.Background(), path, []uint32{1, 2}, 4,
		WithCompression(CompressionZSTD)))

	_, err := OpenMapped[uint32](path)
	assert.ErrorIs(t, err, ErrCompressed)
}

func TestOpenMappedRejectsCorruption(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "column.kpk")
	require.NoError(t, WriteFile(context.Background(), path, []uint64{1, 2, 3}, 8))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	t.Run("payload bit flip", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[headerSize] ^= 0x01
		badPath := filepath.Join(dir, "bad.kpk")
		require.NoError(t, os.WriteFile(badPath, bad, 0o644))

		_, err := OpenMapped[uint64](badPath)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := OpenMapped[int32](path)
		assert.ErrorIs(t, err, ErrWordKindMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		shortPath := filepath.Join(dir, "short.kpk")
		require.NoError(t, os.WriteFile(shortPath, data[:len(data)-4], 0o644))

		_, err := OpenMapped[uint64](shortPath)
		assert.Error(t, err)
	})
}

func TestBlockFraming(t *testing.T) {
	// Tiny blocks force the multi-block path.
	rng := testutil.NewRNG(31)
	words := testutil.Words[uint32](rng, 1000, 3)

	data := writeBuf(t, words, 3, WithCompression(CompressionLZ4), WithBlockSize(64))

	got, size, err := Read[uint32](context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, size)
	assert.Equal(t, words, got)
}

func TestCompressionShrinksRepetitiveColumns(t *testing.T) {
	words := make([]uint64, 4096)
	for i := range words {
		words[i] = 42
	}

	raw := writeBuf(t, words, 8)
	compressed := writeBuf(t, words, 8, WithCompression(CompressionZSTD))
	assert.Less(t, len(compressed), len(raw)/4)
}
