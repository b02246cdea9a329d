package legendalpha

import (
	"fmt"
	"math"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Band is a group of legend rows with similar color.
type Band struct {
	// First and last row assigned to the band.
	Rows Span
	// Mean color of the band's rows.
	Color RGB
	// Value span of the rows that have a value. NaN when none do.
	MinValue, MaxValue float64
	// Number of rows in the band.
	Size int
}

// rowObservation carries its legend row through k-means.
type rowObservation struct {
	row    int
	coords clusters.Coordinates
}

func (o rowObservation) Coordinates() clusters.Coordinates { return o.coords }

func (o rowObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// Bands clusters the color table into at most k bands with k-means and
// returns them ordered by first row. Cluster seeding is random, so band
// boundaries can differ between calls.
func (cal *Calibration) Bands(k int) ([]Band, error) {
	if k < 1 {
		return nil, fmt.Errorf("band count %d must be positive", k)
	}
	if len(cal.Colors) == 0 {
		return nil, ErrEmptyCalibration
	}
	k = min(k, len(cal.Colors))

	dataset := make(clusters.Observations, 0, len(cal.Colors))
	for _, rc := range cal.Colors {
		dataset = append(dataset, rowObservation{
			row:    rc.Row,
			coords: clusters.Coordinates{float64(rc.Color.R), float64(rc.Color.G), float64(rc.Color.B)},
		})
	}
	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("partition legend colors: %w", err)
	}

	colorOf := make(map[int]RGB, len(cal.Colors))
	for _, rc := range cal.Colors {
		colorOf[rc.Row] = rc.Color
	}

	bands := make([]Band, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 {
			continue
		}
		band := Band{
			Rows:     Span{Start: math.MaxInt, End: math.MinInt},
			MinValue: math.NaN(),
			MaxValue: math.NaN(),
			Size:     len(c.Observations),
		}
		var sumR, sumG, sumB int
		for _, o := range c.Observations {
			row := o.(rowObservation).row
			band.Rows.Start = min(band.Rows.Start, row)
			band.Rows.End = max(band.Rows.End, row)
			col := colorOf[row]
			sumR += int(col.R)
			sumG += int(col.G)
			sumB += int(col.B)
			if v, ok := cal.Values[row]; ok {
				if math.IsNaN(band.MinValue) {
					band.MinValue, band.MaxValue = v, v
				}
				band.MinValue = math.Min(band.MinValue, v)
				band.MaxValue = math.Max(band.MaxValue, v)
			}
		}
		n := len(c.Observations)
		band.Color = RGB{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n)}
		bands = append(bands, band)
	}
	slices.SortFunc(bands, func(a, b Band) int { return a.Rows.Start - b.Rows.Start })
	return bands, nil
}
