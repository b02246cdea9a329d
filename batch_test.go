package legendalpha

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/legendalpha/utils"
)

func TestRun_CorruptImageDoesNotStopOthers(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "first.png")
	bad := filepath.Join(dir, "broken.png")
	good2 := filepath.Join(dir, "third.png")
	require.NoError(t, utils.SaveImage(newImage([][]RGB{{red, blue}, {green, red}}), good1))
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	require.NoError(t, utils.SaveImage(newImage([][]RGB{{blue, blue, blue}}), good2))

	cfg := DefaultConfig()
	cfg.Workers = 2
	tr := NewTransformer(primaries(), cfg, utils.Files{}, utils.Files{})
	defer tr.Close()

	results := tr.Run([]string{good1, bad, good2})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrDecode)
	assert.NoError(t, results[2].Err)
	assert.NoFileExists(t, filepath.Join(dir, "broken_alfa.png"))

	for i, want := range []image.Rectangle{image.Rect(0, 0, 2, 2), image.Rect(0, 0, 3, 1)} {
		res := results[i*2]
		assert.Equal(t, OutputPath(res.Input), res.Output)
		out, err := utils.ReadImage(res.Output)
		require.NoError(t, err)
		assert.Equal(t, want, out.Bounds())
	}

	out, err := utils.ReadImage(filepath.Join(dir, "third_alfa.png"))
	require.NoError(t, err)
	for x := range 3 {
		assert.Equal(t, blue.NRGBA(153), out.NRGBAAt(x, 0))
	}
}

func TestRun_Empty(t *testing.T) {
	tr := NewTransformer(primaries(), DefaultConfig(), utils.Files{}, utils.Files{})
	defer tr.Close()
	assert.Empty(t, tr.Run(nil))
}
