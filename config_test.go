package legendalpha

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Span{7, 472}, cfg.ScanRows)
	assert.Equal(t, Span{650, 658}, cfg.SampleColumns)
	require.Len(t, cfg.Anchors, 13)
	assert.Equal(t, Anchor{Row: 7, Value: 50}, cfg.Anchors[0])
	assert.Equal(t, Anchor{Row: 322, Value: 10}, cfg.Anchors[8])
	assert.Equal(t, Anchor{Row: 472, Value: 0}, cfg.Anchors[12])
	assert.Equal(t, blue, cfg.Tint)
	assert.Equal(t, 50.0, cfg.SaturationThreshold)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.WorkerCount())
}

func TestSpan(t *testing.T) {
	assert.Equal(t, 466, Span{7, 472}.Len())
	assert.Equal(t, 1, Span{3, 3}.Len())
	assert.Equal(t, 0, Span{4, 3}.Len())
	assert.True(t, Span{1, 2}.Contains(2))
	assert.False(t, Span{1, 2}.Contains(3))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cal.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Partial(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"tint": "#ff0000", "saturation_threshold": 25, "workers": 3}`))
	require.NoError(t, err)

	assert.Equal(t, red, cfg.Tint)
	assert.Equal(t, 25.0, cfg.SaturationThreshold)
	assert.Equal(t, 3, cfg.WorkerCount())
	assert.Equal(t, DefaultConfig().Anchors, cfg.Anchors)
	assert.Equal(t, DefaultConfig().ScanRows, cfg.ScanRows)
}

func TestLoadConfig_Anchors(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{
		"scan_rows": {"start": 0, "end": 100},
		"sample_columns": {"start": 2, "end": 4},
		"anchors": [{"row": 0, "value": 90}, {"row": 100, "value": 40}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, Span{0, 100}, cfg.ScanRows)
	assert.Equal(t, Span{2, 4}, cfg.SampleColumns)
	assert.Equal(t, []Anchor{{0, 90}, {100, 40}}, cfg.Anchors)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, `{"tint": 12`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, `{"anchors": [{"row": 3, "value": 1}, {"row": 2, "value": 0}]}`))
	assert.ErrorIs(t, err, ErrInvalidAnchors)

	_, err = LoadConfig(writeConfig(t, `{"sample_columns": {"start": 5, "end": 4}}`))
	assert.ErrorIs(t, err, ErrEmptySpan)

	_, err = LoadConfig(writeConfig(t, `{"saturation_threshold": 0}`))
	assert.Error(t, err)
}
