package testutil

// OpDecoder turns a byte stream into cache operations over a small key space.
//
// Keys are drawn from [0, KeySpace). A key space a few times larger than the
// cache capacity keeps hit and miss rates both high, so inserts regularly
// replace, add and evict.
type OpDecoder struct {
	stream   *ByteStream
	keySpace int
}

// NewOpDecoder returns a decoder reading from data. keySpace must be > 0.
func NewOpDecoder(data []byte, keySpace int) *OpDecoder {
	if keySpace <= 0 {
		keySpace = 1
	}

	return &OpDecoder{stream: NewByteStream(data), keySpace: keySpace}
}

// HasMore reports whether undecoded input remains.
func (d *OpDecoder) HasMore() bool {
	return d.stream.HasMore()
}

// NextOp decodes the next operation.
//
// The first byte selects the operation by roulette; writes get the biggest
// share so that caches reach capacity quickly. Clear and Clone are rare
// because they reset or fork all state.
func (d *OpDecoder) NextOp() Operation {
	choice := d.stream.NextByte()

	switch {
	case choice < 64: // 25%
		return OpInsert{Key: d.nextKey(), Value: d.nextValue()}
	case choice < 112: // 19%
		return OpGet{Key: d.nextKey()}
	case choice < 136: // 9%
		return OpPeek{Key: d.nextKey()}
	case choice < 150: // 5%
		return OpContains{Key: d.nextKey()}
	case choice < 184: // 13%
		return OpRemove{Key: d.nextKey()}
	case choice < 196: // 5%
		return OpRemoveOldest{}
	case choice < 204: // 3%
		return OpUpdate{Key: d.nextKey(), Delta: d.nextValue()}
	case choice < 208: // 1.5%
		return OpUpdateQuiet{Key: d.nextKey(), Delta: d.nextValue()}
	case choice < 212: // 1.5%
		mode := d.stream.NextByte()

		return OpUpdateEach{Ascend: mode&1 == 1, Limit: int(mode >> 1), Delta: d.nextValue()}
	case choice < 230: // 7%
		return OpGetOrInsert{Key: d.nextKey(), Value: d.nextValue()}
	case choice < 236: // 2%
		return OpLen{}
	case choice < 241: // 2%
		return OpNewest{}
	case choice < 246: // 2%
		return OpOldest{}
	case choice < 250: // 2%
		return OpClear{}
	default: // 2%
		return OpClone{ReuseScratch: d.stream.NextByte()&1 == 1}
	}
}

func (d *OpDecoder) nextKey() int {
	return d.stream.NextIntn(d.keySpace)
}

func (d *OpDecoder) nextValue() int64 {
	return int64(d.stream.NextUint16())
}
