package fitsync

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fitsync/errs"
	"github.com/arloliu/fitsync/fit"
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
)

func buildInput(t *testing.T, msgs ...*message.Message) []byte {
	t.Helper()

	encoder := fit.NewEncoder()
	for _, msg := range msgs {
		require.NoError(t, encoder.WriteMessage(msg))
	}

	data, err := encoder.Finish()
	require.NoError(t, err)

	return data
}

func decodeOutput(t *testing.T, data []byte) []*message.Message {
	t.Helper()

	decoder, err := fit.NewDecoder(data, fit.WithChecksumValidation())
	require.NoError(t, err)

	msgs, err := decoder.DecodeAll()
	require.NoError(t, err)

	return msgs
}

func record(power, cadence, heartRate uint64) *message.Message {
	msg := message.New(format.MesgRecord)
	msg.Set(format.RecordPower, message.Uint(format.TypeUint16, power))
	msg.Set(format.RecordCadence, message.Uint(format.TypeUint8, cadence))
	msg.Set(format.RecordHeartRate, message.Uint(format.TypeUint8, heartRate))

	return msg
}

func TestCleanEndToEnd(t *testing.T) {
	creator := message.New(format.MesgFileCreator)
	creator.Set(format.FileCreatorSoftwareVersion, message.Uint(format.TypeUint16, 100))

	withTemp := record(150, 90, 130)
	withTemp.Set(format.RecordTemperature, message.Int(format.TypeSint8, 22))

	input := buildInput(t,
		creator,
		record(100, 80, 120),
		withTemp,
		record(200, 100, 140),
		message.New(format.MesgSession),
	)

	cleaned, err := Clean(input)
	require.NoError(t, err)

	msgs := decodeOutput(t, cleaned)
	require.Len(t, msgs, 5)

	require.Equal(t, format.MesgFileCreator, msgs[0].MesgNum)

	for _, msg := range msgs[1:4] {
		require.Equal(t, format.MesgRecord, msg.MesgNum)
		require.False(t, msg.Has(format.RecordTemperature))
	}

	session := msgs[4]
	require.Equal(t, format.MesgSession, session.MesgNum)

	power, ok := session.Get(format.SessionAvgPower)
	require.True(t, ok)
	require.Equal(t, uint64(150), power.Uint64())

	cadence, ok := session.Get(format.SessionAvgCadence)
	require.True(t, ok)
	require.Equal(t, uint64(90), cadence.Uint64())

	heartRate, ok := session.Get(format.SessionAvgHeartRate)
	require.True(t, ok)
	require.Equal(t, uint64(130), heartRate.Uint64())
}

func TestCleanPassThroughShape(t *testing.T) {
	creator := message.New(format.MesgFileCreator)
	creator.Set(format.FileCreatorSoftwareVersion, message.Uint(format.TypeUint16, 100))
	creator.Set(format.FileCreatorHardwareVersion, message.Uint(format.TypeUint8, 3))

	event := message.New(format.MesgEvent)
	event.Set(0, message.Uint(format.TypeEnum, 4))
	event.Set(1, message.Uint(format.TypeEnum, 1))

	cleaned, err := Clean(buildInput(t, creator, event))
	require.NoError(t, err)

	msgs := decodeOutput(t, cleaned)
	require.Len(t, msgs, 2)

	// field-value equivalence, not byte equality
	require.Equal(t, format.MesgFileCreator, msgs[0].MesgNum)
	v, ok := msgs[0].Get(format.FileCreatorHardwareVersion)
	require.True(t, ok)
	require.Equal(t, uint64(3), v.Uint64())

	require.Equal(t, format.MesgEvent, msgs[1].MesgNum)
	require.Equal(t, 2, msgs[1].Len())
}

func TestCleanRejectsBadInput(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		out, err := Clean([]byte("definitely not a binary activity file"))
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
		require.Nil(t, out)
	})

	t.Run("TruncatedMidRecord", func(t *testing.T) {
		input := buildInput(t, record(100, 80, 120))
		// keep the header intact but lie about the payload size
		truncated := input[:len(input)-6]
		truncated[4] = byte(len(truncated)) // shrink declared payload below the real record

		out, err := Clean(truncated)
		require.Error(t, err)
		require.Nil(t, out)
	})
}
