package legendalpha

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel color without alpha.
type RGB struct {
	R, G, B uint8
}

// Distance returns the squared Euclidean distance between two colors.
func (c RGB) Distance(other RGB) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return c.toColorful().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

// NRGBA returns the color with the given straight alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ParseRGB parses a #rrggbb or #rgb hex string.
func ParseRGB(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := col.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// RGBFromColor drops alpha from any color.Color, undoing premultiplication.
func RGBFromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// rgbAt reads the pixel at (x, y) relative to the image origin.
func rgbAt(img image.Image, x, y int) RGB {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok {
		i := n.PixOffset(b.Min.X+x, b.Min.Y+y)
		return RGB{R: n.Pix[i], G: n.Pix[i+1], B: n.Pix[i+2]}
	}
	return RGBFromColor(img.At(b.Min.X+x, b.Min.Y+y))
}

// SampleAverage returns the mean color of the inclusive span [xStart, xEnd]
// at the given row. Channel means are truncated.
func SampleAverage(img image.Image, row, xStart, xEnd int) (RGB, error) {
	if xEnd < xStart {
		return RGB{}, fmt.Errorf("sample row %d: x %d..%d: %w", row, xStart, xEnd, ErrEmptySpan)
	}
	size := img.Bounds().Size()
	if row < 0 || row >= size.Y || xStart < 0 || xEnd >= size.X {
		return RGB{}, fmt.Errorf("sample row %d x %d..%d in %dx%d image: %w",
			row, xStart, xEnd, size.X, size.Y, ErrOutOfBounds)
	}

	var totalR, totalG, totalB, count uint32
	for x := xStart; x <= xEnd; x++ {
		c := rgbAt(img, x, row)
		totalR += uint32(c.R)
		totalG += uint32(c.G)
		totalB += uint32(c.B)
		count++
	}
	return RGB{
		R: uint8(totalR / count),
		G: uint8(totalG / count),
		B: uint8(totalB / count),
	}, nil
}
