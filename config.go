package legendalpha

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Span is an inclusive integer interval.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of integers in the span, 0 when End < Start.
func (s Span) Len() int {
	return max(0, s.End-s.Start+1)
}

// Contains reports whether v lies within the span.
func (s Span) Contains(v int) bool {
	return v >= s.Start && v <= s.End
}

// Anchor is a known (row, value) point on the legend's scalar curve.
type Anchor struct {
	Row   int     `json:"row"`
	Value float64 `json:"value"`
}

type Config struct {
	// Rows of the reference image scanned to build the calibration.
	ScanRows Span `json:"scan_rows"`
	// Columns averaged at every scanned row. Should sit inside the legend bar.
	SampleColumns Span `json:"sample_columns"`
	// Known points of the legend, strictly ascending in row. The first and
	// last rows should match ScanRows, otherwise edge rows get no value.
	Anchors []Anchor `json:"anchors"`
	// Overlay color. Only alpha varies between output pixels.
	Tint RGB `json:"tint"`
	// Value at which alpha saturates to 255.
	SaturationThreshold float64 `json:"saturation_threshold"`
	// Worker count for both image and row fan-out. <= 0 means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultConfig returns the calibration of the stock 0-50 legend.
func DefaultConfig() Config {
	rows := []int{7, 41, 79, 120, 161, 200, 240, 280, 322, 361, 401, 440, 472}
	values := []float64{50.0, 43.4, 36.7, 30.9, 25.4, 20.8, 16.6, 12.9, 10.0, 6.8, 4.3, 2.2, 0.0}
	anchors := make([]Anchor, len(rows))
	for i := range rows {
		anchors[i] = Anchor{Row: rows[i], Value: values[i]}
	}
	return Config{
		ScanRows:            Span{Start: 7, End: 472},
		SampleColumns:       Span{Start: 650, End: 658},
		Anchors:             anchors,
		Tint:                RGB{R: 0, G: 0, B: 255},
		SaturationThreshold: 50,
	}
}

// LoadConfig reads a JSON config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ScanRows.Len() == 0 {
		return fmt.Errorf("scan rows %d..%d: %w", c.ScanRows.Start, c.ScanRows.End, ErrEmptySpan)
	}
	if c.SampleColumns.Len() == 0 {
		return fmt.Errorf("sample columns %d..%d: %w", c.SampleColumns.Start, c.SampleColumns.End, ErrEmptySpan)
	}
	if err := validateAnchors(c.Anchors); err != nil {
		return err
	}
	if c.SaturationThreshold <= 0 {
		return fmt.Errorf("saturation threshold %g must be positive", c.SaturationThreshold)
	}
	return nil
}

// WorkerCount resolves Workers against GOMAXPROCS.
func (c Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

func validateAnchors(anchors []Anchor) error {
	if len(anchors) < 2 {
		return fmt.Errorf("%d anchors, need at least 2: %w", len(anchors), ErrInvalidAnchors)
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Row <= anchors[i-1].Row {
			return fmt.Errorf("anchor rows %d and %d not strictly ascending: %w",
				anchors[i-1].Row, anchors[i].Row, ErrInvalidAnchors)
		}
	}
	return nil
}
