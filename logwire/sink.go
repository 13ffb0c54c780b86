package logwire

import "quartz/core"

// DeviceWriter bridges the device log to the wire: every log call becomes
// one timestamped frame pushed to the encoder's sink.
func DeviceWriter(enc *Encoder, clock core.Clock) core.LogWriter {
	return func(level core.LogLevel, msg string) {
		enc.Encode(Record{
			Level:  uint32(level),
			Millis: clock.Now(),
			Text:   msg,
		})
	}
}
