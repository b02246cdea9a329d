package legendalpha

import "math"

// Alpha maps a value to an opacity on a linear ramp that reaches 255 at
// saturation. Negative values map to 0. The ramp rounds down, so
// Alpha(25, 50) == 127.
func Alpha(value, saturation float64) uint8 {
	if value < 0 {
		value = 0
	}
	if value < saturation {
		return uint8(math.Floor(255 * value / saturation))
	}
	return 255
}
