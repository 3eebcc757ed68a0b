package testutil

// ByteStream hands out fuzz input one byte at a time.
//
// Reads past the end yield zero, so a truncated input still decodes to a
// well-defined operation sequence and the fuzzer can shrink freely.
type ByteStream struct {
	data []byte
	off  int
}

// NewByteStream wraps data.
func NewByteStream(data []byte) *ByteStream {
	return &ByteStream{data: data}
}

// HasMore reports whether any input is left.
func (s *ByteStream) HasMore() bool {
	return s.off < len(s.data)
}

// NextByte consumes one byte.
func (s *ByteStream) NextByte() byte {
	if !s.HasMore() {
		return 0
	}

	b := s.data[s.off]
	s.off++

	return b
}

// NextUint16 consumes two bytes, low byte first.
func (s *ByteStream) NextUint16() uint16 {
	lo := s.NextByte()
	hi := s.NextByte()

	return uint16(hi)<<8 | uint16(lo)
}

// NextIntn maps the next one or two bytes into [0, n). Ranges up to 256
// cost a single byte. Panics if n <= 0.
func (s *ByteStream) NextIntn(n int) int {
	if n > 256 {
		return int(s.NextUint16()) % n
	}

	return int(s.NextByte()) % n
}

// Rest returns the unread tail, or nil.
func (s *ByteStream) Rest() []byte {
	if !s.HasMore() {
		return nil
	}

	return s.data[s.off:]
}
