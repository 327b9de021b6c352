package random

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"nodesim/interfaces"
	"nodesim/util/logger"
)

// Random is the seeded source used by simulation runs. Uniform and exponential
// draws come from separate streams of the same seed, so adding block interval
// draws does not shift the metric random walk.
type Random struct {
	uniform           *distuv.Uniform
	exponentialSource rand.Source
	uniformCount      int
	exponentialCount  int
}

func New(seed uint64) *Random {
	// init uniform dist rand num gen
	var uniformSource rand.Source = rand.NewSource(seed)
	uniform := &distuv.Uniform{Min: 0, Max: 1, Src: uniformSource}

	// init new distributions here
	return &Random{uniform: uniform, exponentialSource: rand.NewSource(seed)}
}

func (r *Random) Uniform() float64 {
	r.uniformCount++
	return r.uniform.Rand()
}

func (r *Random) Between(min float64, max float64) float64 {
	return between(r.Uniform(), min, max)
}

func (r *Random) Intn(n int) int {
	return intn(r.Uniform(), n)
}

func (r *Random) Chance(p float64) bool {
	return r.Uniform() < p
}

func (r *Random) Exponential(mean float64) float64 {
	r.exponentialCount++
	if mean <= 0 {
		return 0
	}
	dist := distuv.Exponential{Rate: 1 / mean, Src: r.exponentialSource}
	return dist.Rand()
}

func (r *Random) Read(p []byte) (int, error) {
	return read(r, p)
}

func (r *Random) PrintCount() {
	logger.Info("random number generators call count (indicates determinism)", "uniform", r.uniformCount, "exponential", r.exponentialCount)
}

func between(u float64, min float64, max float64) float64 {
	return min + u*(max-min)
}

func intn(u float64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(u * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

func read(rng interfaces.IRandom, p []byte) (int, error) {
	for i := range p {
		p[i] = byte(math.Floor(rng.Uniform() * 256))
	}
	return len(p), nil
}
