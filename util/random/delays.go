package random

import (
	"math"

	"nodesim/interfaces"
)

const maxBlockInterval int64 = 86400000000000 // one day in ns

// TimeBetweenBlocks returns the delay until the next mining attempt in ns,
// exponentially distributed around meanSeconds.
func TimeBetweenBlocks(rng interfaces.IRandom, meanSeconds float64) int64 {
	delay := int64(math.Round(rng.Exponential(meanSeconds) * 1000000000))
	if delay < 1 || delay > maxBlockInterval { // if overflow or bigger than one day (should be big enough)
		if delay < 1 {
			return 1
		}
		return maxBlockInterval
	}
	return delay
}

// OffsetWithin returns a uniformly drawn offset in [0,window) ns.
func OffsetWithin(rng interfaces.IRandom, window int64) int64 {
	return int64(rng.Uniform() * float64(window))
}
