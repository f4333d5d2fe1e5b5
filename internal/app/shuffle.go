package app

// Intner is the random source the shuffle draws from; *rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Shuffle returns a shuffled copy of items (Durstenfeld variant of
// Fisher-Yates) together with the new position of the element that sat at
// correctIndex. items itself is left untouched.
func Shuffle[T any](items []T, correctIndex int, rnd Intner) ([]T, int) {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		switch correctIndex {
		case j:
			correctIndex = i
		case i:
			correctIndex = j
		}
		out[i], out[j] = out[j], out[i]
	}
	return out, correctIndex
}
