package cache

import "fmt"

// An AddressDecoder splits 64-bit addresses into tag, set index, and block
// offset.
type AddressDecoder struct {
	setBits   uint
	blockBits uint
	setMask   uint64
	tagMask   uint64
}

// NewAddressDecoder creates a decoder for s set bits and b offset bits. It
// panics if s+b does not fit in 64 bits.
func NewAddressDecoder(setBits, blockBits int) AddressDecoder {
	if setBits < 0 || setBits > 63 ||
		blockBits < 0 || blockBits > 63 ||
		setBits+blockBits > 64 {
		panic(fmt.Sprintf("invalid address split s=%d b=%d",
			setBits, blockBits))
	}

	d := AddressDecoder{
		setBits:   uint(setBits),
		blockBits: uint(blockBits),
		setMask:   lowBitsMask(uint(setBits)),
		tagMask:   lowBitsMask(uint(64 - setBits - blockBits)),
	}

	return d
}

func lowBitsMask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return uint64(1)<<n - 1
}

// Decode returns the set index and the tag of the address.
func (d AddressDecoder) Decode(addr uint64) (setIndex, tag uint64) {
	setIndex = (addr >> d.blockBits) & d.setMask
	tag = (addr >> (d.setBits + d.blockBits)) & d.tagMask

	return setIndex, tag
}

// Offset returns the byte offset of the address within its block.
func (d AddressDecoder) Offset(addr uint64) uint64 {
	return addr & lowBitsMask(d.blockBits)
}

// Rebuild returns the address of the first byte of the block identified by
// the tag and the set index.
func (d AddressDecoder) Rebuild(tag, setIndex uint64) uint64 {
	return tag<<(d.setBits+d.blockBits) | (setIndex&d.setMask)<<d.blockBits
}
