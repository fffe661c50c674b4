package fluid

// buffer is a current/previous pair of same-sized fields. swap exchanges
// the roles of the two slots without moving any data.
type buffer struct {
	slots [2][]float32
	cur   int
}

func newBuffer(n int) buffer {
	return buffer{slots: [2][]float32{make([]float32, n), make([]float32, n)}}
}

func (b *buffer) current() []float32  { return b.slots[b.cur] }
func (b *buffer) previous() []float32 { return b.slots[1-b.cur] }
func (b *buffer) swap()               { b.cur = 1 - b.cur }

func (b *buffer) clear() {
	fill(b.slots[0], 0)
	fill(b.slots[1], 0)
}

func fill[T any](slice []T, val T) {
	for i := range slice {
		slice[i] = val
	}
}
