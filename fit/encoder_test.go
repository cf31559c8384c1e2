package fit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsync/endian"
	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
	"github.com/arloliu/fitsync/section"
)

func newRecord(cadence, power uint64) *message.Message {
	msg := message.New(format.MesgRecord)
	msg.Set(format.RecordCadence, message.Uint(format.TypeUint8, cadence))
	msg.Set(format.RecordPower, message.Uint(format.TypeUint16, power))

	return msg
}

func TestEncoderRoundTrip(t *testing.T) {
	t.Run("FieldValueEquivalence", func(t *testing.T) {
		creator := message.New(format.MesgFileCreator)
		creator.Set(format.FileCreatorSoftwareVersion, message.Uint(format.TypeUint16, 100))

		other := message.New(format.MesgNum(207))
		other.Set(0, message.Int(format.TypeSint8, -4))
		other.Set(3, message.Float(format.TypeFloat32, 2.5))
		other.Set(8, message.Bytes(format.TypeString, []byte("whoosh\x00")))

		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(creator))
		require.NoError(t, encoder.WriteMessage(other))

		data, err := encoder.Finish()
		require.NoError(t, err)

		decoder, err := NewDecoder(data, WithChecksumValidation())
		require.NoError(t, err)

		msgs, err := decoder.DecodeAll()
		require.NoError(t, err)
		require.Len(t, msgs, 2)

		require.Equal(t, format.MesgFileCreator, msgs[0].MesgNum)
		version, ok := msgs[0].Get(format.FileCreatorSoftwareVersion)
		require.True(t, ok)
		require.Equal(t, uint64(100), version.Uint64())

		require.Equal(t, format.MesgNum(207), msgs[1].MesgNum)
		signed, ok := msgs[1].Get(0)
		require.True(t, ok)
		require.Equal(t, int64(-4), signed.Int64())

		f, ok := msgs[1].Get(3)
		require.True(t, ok)
		require.Equal(t, 2.5, f.Float64())

		raw, ok := msgs[1].Get(8)
		require.True(t, ok)
		require.Equal(t, []byte("whoosh\x00"), raw.Raw())
	})

	t.Run("NegativeTemperature", func(t *testing.T) {
		msg := message.New(format.MesgRecord)
		msg.Set(format.RecordTemperature, message.Int(format.TypeSint8, -7))

		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(msg))
		data, err := encoder.Finish()
		require.NoError(t, err)

		decoder, err := NewDecoder(data)
		require.NoError(t, err)
		msgs, err := decoder.DecodeAll()
		require.NoError(t, err)
		require.Len(t, msgs, 1)

		temp, ok := msgs[0].Get(format.RecordTemperature)
		require.True(t, ok)
		require.Equal(t, int64(-7), temp.Int64())
	})
}

func TestEncoderDefinitionReuse(t *testing.T) {
	t.Run("SameLayoutEmitsOneDefinition", func(t *testing.T) {
		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(newRecord(90, 250)))
		require.NoError(t, encoder.WriteMessage(newRecord(95, 260)))
		require.NoError(t, encoder.WriteMessage(newRecord(85, 240)))

		data, err := encoder.Finish()
		require.NoError(t, err)

		// one definition record (6 + 2*3) plus three data records (1 + 3)
		defSize := 6 + 2*3
		dataSize := 3 * (1 + 3)
		require.Len(t, data, section.HeaderSizeCRC+defSize+dataSize+section.TrailerSize)

		decoder, err := NewDecoder(data)
		require.NoError(t, err)
		msgs, err := decoder.DecodeAll()
		require.NoError(t, err)
		require.Len(t, msgs, 3)
	})

	t.Run("DifferentLayoutEmitsNewDefinition", func(t *testing.T) {
		withTemp := newRecord(90, 250)
		withTemp.Set(format.RecordTemperature, message.Int(format.TypeSint8, 21))

		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(newRecord(90, 250)))
		require.NoError(t, encoder.WriteMessage(withTemp))

		data, err := encoder.Finish()
		require.NoError(t, err)

		decoder, err := NewDecoder(data)
		require.NoError(t, err)
		msgs, err := decoder.DecodeAll()
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		require.True(t, msgs[1].Has(format.RecordTemperature))
	})

	t.Run("SlotRotationPastSixteenLayouts", func(t *testing.T) {
		encoder := NewEncoder()
		for i := 0; i < 20; i++ {
			msg := message.New(format.MesgNum(200 + i))
			msg.Set(uint8(i), message.Uint(format.TypeUint8, uint64(i)))
			require.NoError(t, encoder.WriteMessage(msg))
		}

		data, err := encoder.Finish()
		require.NoError(t, err)

		decoder, err := NewDecoder(data, WithChecksumValidation())
		require.NoError(t, err)
		msgs, err := decoder.DecodeAll()
		require.NoError(t, err)
		require.Len(t, msgs, 20)
		for i, msg := range msgs {
			require.Equal(t, format.MesgNum(200+i), msg.MesgNum)
		}
	})
}

func TestEncoderFinish(t *testing.T) {
	t.Run("PatchesDataSize", func(t *testing.T) {
		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(newRecord(90, 250)))

		data, err := encoder.Finish()
		require.NoError(t, err)

		header, err := section.ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, len(data)-section.HeaderSizeCRC-section.TrailerSize, int(header.DataSize))
	})

	t.Run("TrailerMatchesContent", func(t *testing.T) {
		encoder := NewEncoder()
		require.NoError(t, encoder.WriteMessage(newRecord(90, 250)))

		data, err := encoder.Finish()
		require.NoError(t, err)

		body := data[:len(data)-section.TrailerSize]
		trailer := endian.GetLittleEndianEngine().Uint16(data[len(data)-section.TrailerSize:])
		require.Equal(t, section.CRC16(body), trailer)
	})

	t.Run("WriteAfterFinish", func(t *testing.T) {
		encoder := NewEncoder()
		_, err := encoder.Finish()
		require.NoError(t, err)

		require.ErrorIs(t, encoder.WriteMessage(newRecord(1, 1)), errs.ErrInternalInconsistency)
	})

	t.Run("FinishTwice", func(t *testing.T) {
		encoder := NewEncoder()
		_, err := encoder.Finish()
		require.NoError(t, err)

		_, err = encoder.Finish()
		require.ErrorIs(t, err, errs.ErrInternalInconsistency)
	})
}

func TestEncodeFieldAbsent(t *testing.T) {
	// A definition field with no value in the message serializes as the base
	// type's invalid sentinel.
	engine := endian.GetLittleEndianEngine()

	buf, err := encodeField(nil, message.FieldDef{Num: 7, Size: 2, Type: format.TypeUint16}, message.Value{}, false, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF}, buf)

	buf, err = encodeField(nil, message.FieldDef{Num: 1, Size: 1, Type: format.TypeUint8z}, message.Value{}, false, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, buf)

	buf, err = encodeField(nil, message.FieldDef{Num: 2, Size: 3, Type: format.TypeString}, message.Value{}, false, engine)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x00}, buf)
}
