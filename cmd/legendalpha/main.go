// Command legendalpha reads the color legend of a reference image and writes
// an alpha overlay for every target image that shares its color scale.
//
//	legendalpha [--reference image.png] [--config cal.json] target.png...
//	legendalpha legend [--bands 6] [--swatch bar.png]
package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/setanarut/legendalpha"
	"github.com/setanarut/legendalpha/utils"
)

type options struct {
	reference  string
	configPath string
	logLevel   string
	tint       string
	workers    int
	saturation float64
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.reference, "reference", "r", "image.png", "reference image holding the color legend")
	fs.StringVarP(&o.configPath, "config", "c", "", "JSON calibration config (defaults to the built-in 0-50 legend)")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&o.tint, "tint", "", "overlay color as #rrggbb")
	fs.IntVarP(&o.workers, "workers", "j", 0, "worker count, 0 means GOMAXPROCS")
	fs.Float64Var(&o.saturation, "saturation", 0, "value at which the overlay becomes opaque")
}

// config merges the config file, if any, with flags that were set.
func (o *options) config(fs *pflag.FlagSet) (legendalpha.Config, error) {
	cfg := legendalpha.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = legendalpha.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	if fs.Changed("tint") {
		tint, err := legendalpha.ParseRGB(o.tint)
		if err != nil {
			return cfg, err
		}
		cfg.Tint = tint
	}
	if fs.Changed("workers") {
		cfg.Workers = o.workers
	}
	if fs.Changed("saturation") {
		cfg.SaturationThreshold = o.saturation
	}
	return cfg, cfg.Validate()
}

func (o *options) setupLogger(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", o.logLevel, err)
	}
	legendalpha.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// calibrate loads the reference image and builds its calibration.
func (o *options) calibrate(cfg legendalpha.Config) (*image.NRGBA, *legendalpha.Calibration, error) {
	if !utils.Exists(o.reference) {
		return nil, nil, fmt.Errorf("%s (needed for calibration): %w", o.reference, legendalpha.ErrMissingReference)
	}
	ref, err := utils.ReadImage(o.reference)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", legendalpha.ErrDecode, o.reference, err)
	}
	cal, err := legendalpha.Calibrate(ref, cfg)
	if err != nil {
		return nil, nil, err
	}
	return ref, cal, nil
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "legendalpha [flags] IMAGE...",
		Short:         "Turn legend-encoded images into alpha overlays",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.setupLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd.Flags())
			if err != nil {
				return err
			}
			_, cal, err := o.calibrate(cfg)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return legendalpha.ErrMissingArguments
			}

			t := legendalpha.NewTransformer(cal, cfg, utils.Files{}, utils.Files{})
			defer t.Close()
			for _, res := range t.Run(args) {
				if res.Err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d ms)\n", res.Input, res.Output, res.Elapsed.Milliseconds())
				}
			}
			return nil
		},
	}
	bindFlags(root.PersistentFlags(), o)
	root.AddCommand(newLegendCmd(o))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "legendalpha:", err)
		if errors.Is(err, legendalpha.ErrMissingArguments) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
