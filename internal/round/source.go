package round

import "math/rand"

// Source is the randomness the engine draws targets from.
// An engine owns its source; sources are not safe for concurrent use.
type Source interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// NewSource returns a seeded pseudo-random source.
// Equal seeds yield equal target sequences.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of draws, wrapping around at the end.
// Each value is reduced modulo n so any list is valid for any option count.
type Sequence struct {
	values []int
	next   int
}

// NewSequence creates a fixed-sequence source. An empty list always draws 0.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Intn returns the next value of the sequence reduced to [0, n).
func (s *Sequence) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
