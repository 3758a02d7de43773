/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package importer

import (
	"math"

	"bennypowers.dev/mishtanim/host"
)

// colorTolerance absorbs rounding drift from values that round-tripped
// through JSON or the snapshot cache.
const colorTolerance = 1e-6

// equalValues compares two variable values after normalizing numbers
// and colors, so a cached wire value compares equal to the value an
// import would write.
func equalValues(a, b any) bool {
	if ac, ok := host.ColorValue(a); ok {
		bc, ok := host.ColorValue(b)
		if !ok {
			return false
		}
		return math.Abs(ac.R-bc.R) < colorTolerance &&
			math.Abs(ac.G-bc.G) < colorTolerance &&
			math.Abs(ac.B-bc.B) < colorTolerance &&
			math.Abs(ac.A-bc.A) < colorTolerance
	}
	if af, ok := host.FloatValue(a); ok {
		bf, ok := host.FloatValue(b)
		if !ok {
			return false
		}
		return af == bf
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}
