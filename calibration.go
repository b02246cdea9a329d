package legendalpha

import (
	"fmt"
	"image"
	"math"
	"slices"

	"gonum.org/v1/gonum/interp"
)

// RowColor is one entry of a ColorTable.
type RowColor struct {
	Row   int
	Color RGB
}

// ColorTable maps legend rows to their sampled mean color, ascending by row.
type ColorTable []RowColor

// NewColorTable builds a ColorTable from an unordered map.
func NewColorTable(m map[int]RGB) ColorTable {
	t := make(ColorTable, 0, len(m))
	for row, c := range m {
		t = append(t, RowColor{Row: row, Color: c})
	}
	slices.SortFunc(t, func(a, b RowColor) int { return a.Row - b.Row })
	return t
}

// ValueTable maps legend rows to their interpolated scalar value.
type ValueTable map[int]float64

// Calibration is the read-only color->value mapping derived from a legend.
// It is never mutated after construction and may be shared by any number of
// goroutines.
type Calibration struct {
	Colors ColorTable
	Values ValueTable
}

// NewCalibration wraps prebuilt tables. colors must be ascending by row.
func NewCalibration(colors ColorTable, values ValueTable) *Calibration {
	return &Calibration{Colors: colors, Values: values}
}

// Calibrate builds the calibration tables from a reference image using the
// spans and anchors of cfg.
func Calibrate(reference image.Image, cfg Config) (*Calibration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	colors, values, err := BuildTables(reference, cfg.ScanRows, cfg.SampleColumns, cfg.Anchors)
	if err != nil {
		return nil, err
	}
	return NewCalibration(colors, values), nil
}

// BuildTables samples every row of scanRows over sampleColumns and
// interpolates a value for every row covered by anchors. Rows that cannot be
// sampled are logged and left out of the color table.
func BuildTables(reference image.Image, scanRows, sampleColumns Span, anchors []Anchor) (ColorTable, ValueTable, error) {
	if err := validateAnchors(anchors); err != nil {
		return nil, nil, err
	}
	colors := make(ColorTable, 0, scanRows.Len())
	for y := scanRows.Start; y <= scanRows.End; y++ {
		c, err := SampleAverage(reference, y, sampleColumns.Start, sampleColumns.End)
		if err != nil {
			Logger().Warn("legendalpha: skipping calibration row", "row", y, "err", err)
			continue
		}
		colors = append(colors, RowColor{Row: y, Color: c})
	}
	if len(colors) == 0 {
		return nil, nil, fmt.Errorf("rows %d..%d, columns %d..%d: %w",
			scanRows.Start, scanRows.End, sampleColumns.Start, sampleColumns.End, ErrEmptyCalibration)
	}

	values, err := interpolateRows(scanRows, anchors)
	if err != nil {
		return nil, nil, err
	}
	Logger().Debug("legendalpha: calibration built",
		"colorRows", len(colors), "valueRows", len(values))
	return colors, values, nil
}

// interpolateRows evaluates the piecewise-linear anchor curve at every row of
// rows that falls between the first and last anchor.
func interpolateRows(rows Span, anchors []Anchor) (ValueTable, error) {
	xs := make([]float64, len(anchors))
	ys := make([]float64, len(anchors))
	for i, a := range anchors {
		xs[i] = float64(a.Row)
		ys[i] = a.Value
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit anchors: %v: %w", err, ErrInvalidAnchors)
	}

	covered := Span{Start: anchors[0].Row, End: anchors[len(anchors)-1].Row}
	values := make(ValueTable, rows.Len())
	for y := rows.Start; y <= rows.End; y++ {
		if !covered.Contains(y) {
			continue
		}
		values[y] = pl.Predict(float64(y))
	}
	return values, nil
}

// Nearest returns the row whose color is closest to c. Equidistant rows
// resolve to the lowest row. Panics on an empty table, which Calibrate never
// produces.
func (cal *Calibration) Nearest(c RGB) int {
	if len(cal.Colors) == 0 {
		panic("legendalpha: nearest color lookup on empty color table")
	}
	best := cal.Colors[0]
	bestDist := best.Color.Distance(c)
	for _, rc := range cal.Colors[1:] {
		if d := rc.Color.Distance(c); d < bestDist {
			best, bestDist = rc, d
		}
	}
	return best.Row
}

// Classify returns the value of the legend row nearest to c. ok is false
// when that row has no value.
func (cal *Calibration) Classify(c RGB) (value float64, ok bool) {
	value, ok = cal.Values[cal.Nearest(c)]
	return value, ok
}

// Rows returns the number of rows in the color table.
func (cal *Calibration) Rows() int {
	return len(cal.Colors)
}

// Gaps returns the color table rows that have no value, ascending.
func (cal *Calibration) Gaps() []int {
	var gaps []int
	for _, rc := range cal.Colors {
		if _, ok := cal.Values[rc.Row]; !ok {
			gaps = append(gaps, rc.Row)
		}
	}
	return gaps
}

// ValueRange returns the smallest and largest value in the value table.
// Both are NaN for an empty table.
func (cal *Calibration) ValueRange() (lo, hi float64) {
	if len(cal.Values) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range cal.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
