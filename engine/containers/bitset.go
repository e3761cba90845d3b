package containers

// Bitset256 is a fixed 256 bit set, large enough for a scancode table.
type Bitset256 [4]uint64

func (b *Bitset256) Set(i uint8) {
	b[i>>6] |= 1 << (i & 63)
}

func (b *Bitset256) Unset(i uint8) {
	b[i>>6] &^= 1 << (i & 63)
}

func (b *Bitset256) Clear() {
	*b = Bitset256{}
}

func (b Bitset256) Has(i uint8) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}

func (b Bitset256) Count() int {
	n := 0
	for _, w := range b {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}
