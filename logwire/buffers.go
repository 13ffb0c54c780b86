package logwire

// OutputBuffer is the write surface frame encoding runs against.
type OutputBuffer interface {
	// Output appends data to the buffer.
	Output(data []byte)

	// CurPosition returns the current write position.
	CurPosition() int

	// Update rewrites a byte at a previous position.
	Update(pos int, val byte)

	// DataSince returns data from a position up to the current one.
	DataSince(pos int) []byte
}

// ScratchOutput is a fixed-size OutputBuffer, sized for one frame. No
// allocation after construction, safe to use from the device side.
type ScratchOutput struct {
	buf [FrameLengthMax]byte
	pos int
}

// NewScratchOutput returns an empty scratch buffer.
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos < len(s.buf) {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns the accumulated frame bytes.
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset discards the buffer contents.
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer is a circular byte queue between the serial reader and the
// frame decoder.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer returns a FIFO holding up to capacity-1 bytes.
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// Write appends data, returning how many bytes fit.
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		next := (f.write + 1) % f.size
		if next == f.read {
			break
		}
		f.buf[f.write] = b
		f.write = next
		written++
	}
	return written
}

// Available returns the number of readable bytes.
func (f *FifoBuffer) Available() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Data returns the readable bytes as one contiguous slice. A wrapped
// buffer is copied out; frame parsing needs contiguity.
func (f *FifoBuffer) Data() []byte {
	if f.read <= f.write {
		return f.buf[f.read:f.write]
	}
	result := make([]byte, f.Available())
	firstLen := f.size - f.read
	copy(result, f.buf[f.read:])
	copy(result[firstLen:], f.buf[:f.write])
	return result
}

// Pop discards n bytes from the front.
func (f *FifoBuffer) Pop(n int) {
	for i := 0; i < n && f.read != f.write; i++ {
		f.read = (f.read + 1) % f.size
	}
}

// Reset empties the buffer.
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
