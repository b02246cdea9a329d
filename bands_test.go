package legendalpha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands(t *testing.T) {
	cal, err := Calibrate(newLegendImage(660, 480), DefaultConfig())
	require.NoError(t, err)

	bands, err := cal.Bands(4)
	require.NoError(t, err)
	require.NotEmpty(t, bands)
	assert.LessOrEqual(t, len(bands), 4)

	total := 0
	for i, b := range bands {
		assert.LessOrEqual(t, b.Rows.Start, b.Rows.End)
		assert.LessOrEqual(t, b.MinValue, b.MaxValue)
		assert.GreaterOrEqual(t, b.MinValue, 0.0)
		assert.LessOrEqual(t, b.MaxValue, 50.0)
		if i > 0 {
			assert.Less(t, bands[i-1].Rows.Start, b.Rows.Start)
		}
		total += b.Size
	}
	assert.Equal(t, cal.Rows(), total)
}

func TestBands_Primaries(t *testing.T) {
	bands, err := primaries().Bands(3)
	require.NoError(t, err)
	require.Len(t, bands, 3)

	for i, want := range []RGB{red, green, blue} {
		assert.Equal(t, Span{i, i}, bands[i].Rows)
		assert.Equal(t, want, bands[i].Color)
		assert.Equal(t, 1, bands[i].Size)
		assert.Equal(t, float64(10*(i+1)), bands[i].MinValue)
	}
}

func TestBands_Errors(t *testing.T) {
	_, err := primaries().Bands(0)
	assert.Error(t, err)

	_, err = NewCalibration(nil, nil).Bands(2)
	assert.ErrorIs(t, err, ErrEmptyCalibration)
}

func TestBands_MoreThanRows(t *testing.T) {
	bands, err := primaries().Bands(10)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(bands), 3)
}
