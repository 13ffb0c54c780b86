// Package logwire is the framed log stream the watch emits over its serial
// debug line. Each record is one frame: a length/sequence header, a small
// VLQ-encoded payload and a CRC16 trailer closed by a sync byte, so a host
// reader can attach mid-stream and resynchronize after line noise.
package logwire

const (
	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64

	framePositionLen = 0
	framePositionSeq = 1
	frameTrailerCRC  = 3
	frameTrailerSync = 1

	FrameSync    = 0x7E
	frameDest    = 0x10
	frameSeqMask = 0x0F
)

// Record levels, matching the device's log levels.
const (
	LevelInfo uint32 = iota
	LevelWarn
	LevelError
)

// Record is one decoded log entry.
type Record struct {
	Level  uint32
	Millis uint32
	Text   string
}

// LevelString names the record level for display.
func (r Record) LevelString() string {
	switch r.Level {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "?"
}

// Encoder frames records for the wire. Not safe for concurrent use; the
// device serializes records through a single log sink.
type Encoder struct {
	seq     uint8
	scratch ScratchOutput
	sink    func([]byte)
}

// NewEncoder returns an Encoder writing framed bytes to sink. The sink
// receives one complete frame per call.
func NewEncoder(sink func([]byte)) *Encoder {
	return &Encoder{sink: sink}
}

// Encode frames one record and hands it to the sink. Text longer than the
// frame can carry is truncated.
func (e *Encoder) Encode(r Record) {
	out := &e.scratch
	out.Reset()

	seq := (e.seq & frameSeqMask) | frameDest
	e.seq++
	out.Output([]byte{0, seq})

	EncodeVLQUint(out, r.Level)
	EncodeVLQUint(out, r.Millis)

	// 1-byte length prefix is enough for any text that fits a frame.
	room := FrameLengthMax - FrameTrailerSize - out.CurPosition() - 1
	text := r.Text
	if len(text) > room {
		text = text[:room]
	}
	EncodeVLQString(out, text)

	out.Update(framePositionLen, uint8(out.CurPosition()+FrameTrailerSize))

	crc := CRC16(out.DataSince(0))
	out.Output([]byte{
		uint8(crc >> 8),
		uint8(crc & 0xFF),
		FrameSync,
	})

	e.sink(out.Result())
}

// Decoder reassembles records from a byte stream. Feed raw bytes in, pull
// records out with Next.
type Decoder struct {
	fifo   *FifoBuffer
	synced bool
}

// NewDecoder returns a Decoder. It starts synchronized, so a stream read
// from device boot decodes from its first frame; a reader attaching
// mid-stream desynchronizes on the torn frame and recovers at the next
// sync marker.
func NewDecoder() *Decoder {
	return &Decoder{
		fifo:   NewFifoBuffer(4 * FrameLengthMax),
		synced: true,
	}
}

// Feed appends raw stream bytes. Overflow beyond the internal buffer is
// dropped; the decoder resynchronizes on the next sync byte.
func (d *Decoder) Feed(p []byte) {
	for len(p) > 0 {
		n := d.fifo.Write(p)
		if n == 0 {
			d.fifo.Reset()
			d.synced = false
			continue
		}
		p = p[n:]
	}
}

// Next returns the next complete record, or ok=false when the buffered
// stream holds no full frame. Corrupt frames are skipped after resync.
func (d *Decoder) Next() (rec Record, ok bool) {
	data := d.fifo.Data()

	for len(data) > 0 {
		if !d.synced {
			syncPos := -1
			for i, b := range data {
				if b == FrameSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synced = true
			continue
		}

		if data[0] == FrameSync {
			data = data[1:]
			continue
		}
		if len(data) < FrameLengthMin {
			break
		}

		frameLen := int(data[framePositionLen])
		if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
			d.synced = false
			continue
		}
		if data[framePositionSeq]&^frameSeqMask != frameDest {
			d.synced = false
			continue
		}
		if len(data) < frameLen {
			break
		}
		if data[frameLen-frameTrailerSync] != FrameSync {
			d.synced = false
			continue
		}

		frameCRC := uint16(data[frameLen-frameTrailerCRC])<<8 |
			uint16(data[frameLen-frameTrailerCRC+1])
		if frameCRC != CRC16(data[:frameLen-FrameTrailerSize]) {
			d.synced = false
			continue
		}

		payload := data[FrameHeaderSize : frameLen-FrameTrailerSize]
		data = data[frameLen:]

		r, err := decodePayload(payload)
		if err != nil {
			// Checksummed frame with a bad payload: stream corruption
			// upstream of the CRC, drop the frame and keep sync.
			continue
		}
		d.pop(data)
		return r, true
	}

	d.pop(data)
	return Record{}, false
}

func (d *Decoder) pop(remaining []byte) {
	consumed := d.fifo.Available() - len(remaining)
	if consumed > 0 {
		d.fifo.Pop(consumed)
	}
}

func decodePayload(payload []byte) (Record, error) {
	var r Record
	var err error
	if r.Level, err = DecodeVLQUint(&payload); err != nil {
		return r, err
	}
	if r.Millis, err = DecodeVLQUint(&payload); err != nil {
		return r, err
	}
	if r.Text, err = DecodeVLQString(&payload); err != nil {
		return r, err
	}
	return r, nil
}
