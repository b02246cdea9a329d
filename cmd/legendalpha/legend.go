package main

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/setanarut/legendalpha"
	"github.com/setanarut/legendalpha/utils"
)

func newLegendCmd(o *options) *cobra.Command {
	var (
		bands  int
		colors int
		method string
		swatch string
	)
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Describe the calibration read from the reference legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pm, err := utils.ParsePaletteMethod(method)
			if err != nil {
				return err
			}
			cfg, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			ref, cal, err := o.calibrate(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSummary(w, cal, cfg)

			bs, err := cal.Bands(bands)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "\nbands (kmeans, k=%d):\n", bands)
			for _, b := range bs {
				fmt.Fprintf(w, "  rows %3d..%3d  %s  values %s  (%d rows)\n",
					b.Rows.Start, b.Rows.End, b.Color.Hex(), formatRange(b.MinValue, b.MaxValue), b.Size)
			}

			bar := image.Rect(cfg.SampleColumns.Start, cfg.ScanRows.Start,
				cfg.SampleColumns.End+1, cfg.ScanRows.End+1)
			palette, err := utils.ExtractPalette(ref, bar, colors, pm)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "\npalette (%s):\n", pm)
			for _, c := range palette {
				fmt.Fprintf(w, "  %s\n", c.Hex())
			}
			if swatch != "" {
				utils.SortPaletteByBrightness(palette)
				if err := utils.SavePalette(palette, 64, swatch); err != nil {
					return fmt.Errorf("%w: %s: %w", legendalpha.ErrEncode, swatch, err)
				}
				fmt.Fprintf(w, "swatch written to %s\n", swatch)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&bands, "bands", 6, "number of color bands to cluster the legend into")
	cmd.Flags().IntVar(&colors, "colors", 5, "number of palette colors to extract from the bar")
	cmd.Flags().StringVar(&method, "method", "dominantcolor", "palette method: dominantcolor or kmeans")
	cmd.Flags().StringVar(&swatch, "swatch", "", "write the palette as a PNG swatch")
	return cmd
}

func printSummary(w io.Writer, cal *legendalpha.Calibration, cfg legendalpha.Config) {
	lo, hi := cal.ValueRange()
	fmt.Fprintf(w, "rows sampled: %d of %d (rows %d..%d, columns %d..%d)\n",
		cal.Rows(), cfg.ScanRows.Len(), cfg.ScanRows.Start, cfg.ScanRows.End,
		cfg.SampleColumns.Start, cfg.SampleColumns.End)
	fmt.Fprintf(w, "values: %s\n", formatRange(lo, hi))
	if gaps := cal.Gaps(); len(gaps) > 0 {
		fmt.Fprintf(w, "rows without value: %v\n", gaps)
	}
}

func formatRange(lo, hi float64) string {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return "none"
	}
	return fmt.Sprintf("%.1f..%.1f", lo, hi)
}
