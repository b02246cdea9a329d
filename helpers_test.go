package legendalpha

import (
	"image"
	"image/color"
)

// legendColor gives every row in 0..510 a distinct color.
func legendColor(y int) RGB {
	return RGB{R: uint8(min(y, 255)), G: uint8(max(0, y-255)), B: 40}
}

// newLegendImage draws the default legend bar (columns 650..658) on a gray
// background of the given size.
func newLegendImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
			if x >= 650 && x <= 658 {
				c = legendColor(y).NRGBA(255)
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func newImage(pixels [][]RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(pixels[0]), len(pixels)))
	for y, row := range pixels {
		for x, c := range row {
			img.SetNRGBA(x, y, c.NRGBA(255))
		}
	}
	return img
}

var (
	red   = RGB{R: 255}
	green = RGB{G: 255}
	blue  = RGB{B: 255}
)

// primaries is the three-row calibration used throughout the tests.
func primaries() *Calibration {
	return NewCalibration(
		NewColorTable(map[int]RGB{0: red, 1: green, 2: blue}),
		ValueTable{0: 10.0, 1: 20.0, 2: 30.0},
	)
}
