// Package pipeline implements the single-pass rewrite applied to a decoded
// message stream: record temperature stripping, session rebuilding with
// recomputed average statistics, and the per-window sample accumulation that
// feeds those averages.
package pipeline

import (
	"github.com/arloliu/fitsync/format"
	"github.com/arloliu/fitsync/message"
)

// sessionCopyFields is the whitelist of fields carried over verbatim from an
// input session into the rebuilt one. Everything else except the three
// average fields is dropped.
var sessionCopyFields = []uint8{
	format.SessionMessageIndex,
	format.SessionTimestamp,
	format.SessionStartTime,
	format.SessionSport,
	format.SessionSubSport,
	format.SessionEvent,
	format.SessionEventType,
	format.SessionFirstLapIndex,
	format.SessionNumLaps,
	format.SessionTotalElapsedTime,
	format.SessionTotalTimerTime,
	format.SessionTotalDistance,
	format.SessionTotalCalories,
	format.SessionAvgSpeed,
	format.SessionMaxSpeed,
}

// Cleaner is a stateful single-pass transform over a message stream. Its only
// state is the current window's sample accumulators, cleared each time a
// session message is processed.
//
// Auxiliary memory is bounded by the window size, not the file size.
type Cleaner struct {
	lapMetrics []float64
	cadence    []float64
	power      []float64
	heartRate  []float64
}

// NewCleaner creates a Cleaner with empty window accumulators.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Process transforms one message and returns the message to emit in its
// place. Every input yields exactly one output; relative ordering of the
// stream is preserved.
func (c *Cleaner) Process(msg *message.Message) *message.Message {
	switch msg.MesgNum {
	case format.MesgLap:
		c.collectLap(msg)
		return msg
	case format.MesgRecord:
		return c.processRecord(msg)
	case format.MesgSession:
		return c.processSession(msg)
	default:
		return msg
	}
}

// Reset clears the window accumulators without processing a session.
func (c *Cleaner) Reset() {
	c.lapMetrics = c.lapMetrics[:0]
	c.cadence = c.cadence[:0]
	c.power = c.power[:0]
	c.heartRate = c.heartRate[:0]
}

// collectLap snapshots the lap's summary metrics into the window.
//
// Nothing reads the lap metric list before the window resets; the
// accumulation is kept to match the observed behavior of the system this
// replaces and is pending product-owner confirmation before removal.
func (c *Cleaner) collectLap(msg *message.Message) {
	for _, num := range [...]uint8{
		format.LapStartTime,
		format.LapTotalElapsedTime,
		format.LapTotalDistance,
		format.LapAvgSpeed,
		format.LapMaxSpeed,
		format.LapAvgHeartRate,
		format.LapMaxHeartRate,
		format.LapAvgCadence,
		format.LapMaxCadence,
		format.LapTotalCalories,
	} {
		c.lapMetrics = append(c.lapMetrics, sample(msg, num))
	}
}

// processRecord strips the temperature field and accumulates the record's
// cadence, power and heart-rate samples. An absent sample counts as 0 rather
// than being excluded from the average; this matches the observed behavior
// being reproduced and must not change without sign-off.
func (c *Cleaner) processRecord(msg *message.Message) *message.Message {
	msg.Remove(format.RecordTemperature)

	c.cadence = append(c.cadence, sample(msg, format.RecordCadence))
	c.power = append(c.power, sample(msg, format.RecordPower))
	c.heartRate = append(c.heartRate, sample(msg, format.RecordHeartRate))

	return msg
}

// processSession rebuilds the session from the whitelist, fills the three
// average fields, and closes the window.
func (c *Cleaner) processSession(msg *message.Message) *message.Message {
	out := message.New(format.MesgSession)

	for _, num := range sessionCopyFields {
		if v, ok := msg.Get(num); ok {
			out.Set(num, v)
		}
	}

	// A present input average wins over the recomputed one.
	setAverage(out, msg, format.SessionAvgCadence, format.TypeUint8, c.cadence)
	setAverage(out, msg, format.SessionAvgPower, format.TypeUint16, c.power)
	setAverage(out, msg, format.SessionAvgHeartRate, format.TypeUint8, c.heartRate)

	c.Reset()

	return out
}

// setAverage copies the input's average field verbatim when present,
// otherwise sets the truncated mean of the window samples.
func setAverage(out, in *message.Message, num uint8, typ format.BaseType, samples []float64) {
	if v, ok := in.Get(num); ok {
		out.Set(num, v)
		return
	}

	out.Set(num, message.Uint(typ, truncatedMean(samples)))
}

// sample reads a numeric field value, substituting 0 when absent.
func sample(msg *message.Message, num uint8) float64 {
	if v, ok := msg.Get(num); ok {
		return v.AsFloat64()
	}

	return 0
}

// truncatedMean returns the arithmetic mean truncated toward zero, with the
// mean of an empty list defined as 0.
func truncatedMean(samples []float64) uint64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}

	return uint64(sum / float64(len(samples)))
}
