package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleData() []byte {
	// repetitive enough that every codec actually shrinks it
	return bytes.Repeat([]byte("MyNewActivity record payload "), 200)
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"none": NewNoOpCodec(),
		"zstd": NewZstdCodec(),
		"s2":   NewS2Codec(),
		"lz4":  NewLZ4Codec(),
	}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			data := sampleData()

			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, restored)
		})
	}
}

func TestCodecCompresses(t *testing.T) {
	for name, codec := range map[string]Codec{
		"zstd": NewZstdCodec(),
		"s2":   NewS2Codec(),
		"lz4":  NewLZ4Codec(),
	} {
		t.Run(name, func(t *testing.T) {
			data := sampleData()
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for name, codec := range map[string]Codec{
		"zstd": NewZstdCodec(),
		"s2":   NewS2Codec(),
		"lz4":  NewLZ4Codec(),
	} {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			restored, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, restored)
		})
	}
}

func TestForName(t *testing.T) {
	t.Run("KnownNames", func(t *testing.T) {
		for _, name := range []string{"none", "zstd", "s2", "lz4", "", "ZSTD", " lz4 "} {
			codec, err := ForName(name)
			require.NoError(t, err, "name %q", name)
			require.NotNil(t, codec)
		}
	})

	t.Run("Extensions", func(t *testing.T) {
		zstd, _ := ForName("zstd")
		require.Equal(t, ".zst", zstd.Ext())

		noop, _ := ForName("none")
		require.Equal(t, "", noop.Ext())
	})

	t.Run("UnknownName", func(t *testing.T) {
		_, err := ForName("brotli")
		require.Error(t, err)
	})
}
