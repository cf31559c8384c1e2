package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsync/format"
)

func TestMessageFieldTable(t *testing.T) {
	t.Run("GetAbsent", func(t *testing.T) {
		msg := New(format.MesgRecord)

		_, ok := msg.Get(format.RecordPower)
		require.False(t, ok)
		require.False(t, msg.Has(format.RecordPower))
	})

	t.Run("SetAndGet", func(t *testing.T) {
		msg := New(format.MesgRecord)
		msg.Set(format.RecordPower, Uint(format.TypeUint16, 250))

		v, ok := msg.Get(format.RecordPower)
		require.True(t, ok)
		require.Equal(t, uint64(250), v.Uint64())
		require.Equal(t, format.TypeUint16, v.Type())
	})

	t.Run("SetReplacesInPlace", func(t *testing.T) {
		msg := New(format.MesgRecord)
		msg.Set(1, Uint(format.TypeUint8, 1))
		msg.Set(2, Uint(format.TypeUint8, 2))
		msg.Set(1, Uint(format.TypeUint8, 42))

		require.Equal(t, 2, msg.Len())
		require.Equal(t, uint8(1), msg.Fields()[0].Num)
		require.Equal(t, uint64(42), msg.Fields()[0].Value.Uint64())
	})

	t.Run("RemovePreservesOrder", func(t *testing.T) {
		msg := New(format.MesgRecord)
		msg.Set(1, Uint(format.TypeUint8, 1))
		msg.Set(2, Uint(format.TypeUint8, 2))
		msg.Set(3, Uint(format.TypeUint8, 3))

		require.True(t, msg.Remove(2))
		require.False(t, msg.Remove(2))
		require.Equal(t, 2, msg.Len())
		require.Equal(t, uint8(1), msg.Fields()[0].Num)
		require.Equal(t, uint8(3), msg.Fields()[1].Num)
	})

	t.Run("PresentWithZeroIsNotAbsent", func(t *testing.T) {
		msg := New(format.MesgRecord)
		msg.Set(format.RecordCadence, Uint(format.TypeUint8, 0))

		v, ok := msg.Get(format.RecordCadence)
		require.True(t, ok)
		require.Equal(t, uint64(0), v.Uint64())
	})
}

func TestValueConversions(t *testing.T) {
	t.Run("AsFloat64", func(t *testing.T) {
		require.Equal(t, 200.0, Uint(format.TypeUint16, 200).AsFloat64())
		require.Equal(t, -5.0, Int(format.TypeSint8, -5).AsFloat64())
		require.Equal(t, 1.5, Float(format.TypeFloat64, 1.5).AsFloat64())
		require.Equal(t, 0.0, Bytes(format.TypeString, []byte("abc")).AsFloat64())
	})

	t.Run("Size", func(t *testing.T) {
		require.Equal(t, 2, Uint(format.TypeUint16, 1).Size())
		require.Equal(t, 8, Float(format.TypeFloat64, 1).Size())
		require.Equal(t, 5, Bytes(format.TypeString, []byte("abcd\x00")).Size())
	})
}
