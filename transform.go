package legendalpha

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/setanarut/legendalpha/internal/parallel"
)

// OutputSuffix is appended to the input stem to name the overlay file.
const OutputSuffix = "_alfa"

// ImageSource decodes the image stored at path.
type ImageSource interface {
	Load(path string) (image.Image, error)
}

// ImageSink persists img at path.
type ImageSink interface {
	Save(path string, img image.Image) error
}

// Result describes one processed image.
type Result struct {
	Input   string
	Output  string
	Elapsed time.Duration
	// Gaps counts pixels left transparent because their nearest legend row
	// had no value.
	Gaps int
	Err  error
}

// Transformer turns target images into alpha overlays using a shared
// Calibration. A Transformer is safe for concurrent use.
type Transformer struct {
	cal        *Calibration
	tint       RGB
	saturation float64
	source     ImageSource
	sink       ImageSink
	pool       *parallel.WorkerPool
}

// NewTransformer starts cfg.WorkerCount() workers. Call Close when done.
func NewTransformer(cal *Calibration, cfg Config, source ImageSource, sink ImageSink) *Transformer {
	return &Transformer{
		cal:        cal,
		tint:       cfg.Tint,
		saturation: cfg.SaturationThreshold,
		source:     source,
		sink:       sink,
		pool:       parallel.NewWorkerPool(cfg.WorkerCount()),
	}
}

// Close stops the worker pool.
func (t *Transformer) Close() {
	t.pool.Close()
}

// Workers returns the size of the worker pool.
func (t *Transformer) Workers() int {
	return t.pool.Workers()
}

// OutputPath returns <dir>/<stem>_alfa.png for path.
func OutputPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(path), stem+OutputSuffix+".png")
}

// Transform loads path, builds its overlay and writes it next to the input.
func (t *Transformer) Transform(path string) (Result, error) {
	start := time.Now()
	res := Result{Input: path}

	img, err := t.source.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		return res, res.Err
	}

	overlay, gaps := t.Overlay(img)
	res.Gaps = gaps

	out := OutputPath(path)
	if err := t.sink.Save(out, overlay); err != nil {
		res.Err = fmt.Errorf("%w: %s: %w", ErrEncode, out, err)
		return res, res.Err
	}
	res.Output = out
	res.Elapsed = time.Since(start)

	Logger().Info("legendalpha: image done",
		"file", filepath.Base(path), "ms", res.Elapsed.Milliseconds(), "gaps", gaps)
	return res, nil
}

// overlayPixel is one classified pixel of a row.
type overlayPixel struct {
	x     int
	alpha uint8
}

// Overlay classifies every pixel of img and returns a same-sized grid of the
// tint color with per-pixel alpha, plus the number of unclassified pixels,
// which stay fully transparent. Rows are classified in parallel; the grid is
// assembled afterwards on the calling goroutine.
func (t *Transformer) Overlay(img image.Image) (*image.NRGBA, int) {
	size := img.Bounds().Size()
	rows := make([][]overlayPixel, size.Y)
	gaps := make([]int, size.Y)

	work := make([]func(), size.Y)
	for y := range size.Y {
		work[y] = func() {
			rows[y], gaps[y] = t.classifyRow(img, y, size.X)
		}
	}
	t.pool.ExecuteAll(work)

	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	total := 0
	for y, row := range rows {
		for _, px := range row {
			out.SetNRGBA(px.x, y, t.tint.NRGBA(px.alpha))
		}
		total += gaps[y]
	}
	return out, total
}

func (t *Transformer) classifyRow(img image.Image, y, width int) ([]overlayPixel, int) {
	row := make([]overlayPixel, 0, width)
	gaps := 0
	for x := range width {
		value, ok := t.cal.Classify(rgbAt(img, x, y))
		if !ok {
			Logger().Warn("legendalpha: no interpolated value for pixel", "x", x, "y", y)
			gaps++
			continue
		}
		row = append(row, overlayPixel{x: x, alpha: Alpha(value, t.saturation)})
	}
	return row, gaps
}
