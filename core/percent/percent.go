// percent implements a simple and straightforward type for percentage values
package percent

import (
	"math"
	"strconv"
)

// Percent is a simple and straightforward type for percentage values
type Percent uint8

// FromFloat rounds f to a percentage, clamped to 0..100.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// Of returns the share of done in total, rounded to the nearest integer
// percentage. A non-positive total counts as complete.
func Of(done, total int) Percent {
	if total <= 0 {
		return Percent(100)
	}
	return FromFloat(100 * float64(done) / float64(total))
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
