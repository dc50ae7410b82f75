// Package dimen implements dimensions and units.
package dimen

import (
	"fmt"
	"math"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Some common paper sizes
var DINA4 = Point{210 * MM, 297 * MM}
var DINA5 = Point{148 * MM, 210 * MM}
var DINA6 = Point{105 * MM, 148 * MM}
var USLetter = Point{216 * MM, 279 * MM}

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// FromPoints converts a value in big (PDF) points to a dimension,
// rounding to the nearest scaled point.
func FromPoints(pt float64) Dimen {
	return Dimen(math.Round(pt * float64(BP)))
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// PaperSize returns one of the pre-defined paper sizes by name.
// Names are matched case-sensitive: "A4", "A5", "A6", "Letter".
func PaperSize(name string) (Point, bool) {
	switch name {
	case "A4":
		return DINA4, true
	case "A5":
		return DINA5, true
	case "A6":
		return DINA6, true
	case "Letter":
		return USLetter, true
	}
	return Origin, false
}
