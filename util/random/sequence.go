package random

import "math"

// Sequence replays a fixed list of uniform values in a loop. Tests use it to
// force specific branches of the simulation.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Uniform() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *Sequence) Between(min float64, max float64) float64 {
	return between(s.Uniform(), min, max)
}

func (s *Sequence) Intn(n int) int {
	return intn(s.Uniform(), n)
}

func (s *Sequence) Chance(p float64) bool {
	return s.Uniform() < p
}

func (s *Sequence) Exponential(mean float64) float64 {
	return -mean * math.Log(1-s.Uniform())
}

func (s *Sequence) Read(p []byte) (int, error) {
	return read(s, p)
}

// Draws returns how many values were consumed.
func (s *Sequence) Draws() int {
	return s.next
}
