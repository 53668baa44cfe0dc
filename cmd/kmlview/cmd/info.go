package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beetlebugorg/kml/pkg/kml"
)

// Info is the sub-command invoked when running "kmlview info".
var Info SubCommand

func init() {
	Info.Cmd = &cobra.Command{
		Use:   "info [files...]",
		Short: "List the ground overlays of KML/KMZ files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(Info.Conf)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runInfo(Info.Conf, args, cmd.OutOrStdout(), logger)
		},
	}
	Info.EnvPrefix = "KMLVIEW_INFO"
	addLoadFlags(Info.Cmd.Flags())
}

func runInfo(conf *viper.Viper, args []string, out io.Writer, logger *zap.Logger) error {
	files, err := loadFiles(conf, args, logger)
	if err != nil {
		return err
	}

	for _, file := range files {
		overlays := file.GroundOverlays()

		fmt.Fprintf(out, "=== %s ===\n", file.Path())
		if st, err := os.Stat(file.Path()); err == nil {
			fmt.Fprintf(out, "Size: %s\n", humanize.Bytes(uint64(st.Size())))
		}
		fmt.Fprintf(out, "Ground overlays: %s\n", humanize.Comma(int64(len(overlays))))
		if bounds, ok := file.Bounds(); ok {
			fmt.Fprintf(out, "Longitude: %.6f to %.6f\n", bounds.West, bounds.East)
			fmt.Fprintf(out, "Latitude: %.6f to %.6f\n", bounds.South, bounds.North)
		}
		fmt.Fprintln(out)

		for i, o := range overlays {
			writeOverlay(out, i, o)
		}
	}
	return nil
}

func writeOverlay(out io.Writer, i int, o *kml.GroundOverlay) {
	name, _ := o.Name()
	fmt.Fprintf(out, "[%d] id=%q name=%q\n", i, o.ID(), name)

	if icon, ok := o.Icon(); ok {
		if href, ok := icon.Href(); ok {
			fmt.Fprintf(out, "    href: %s\n", href)
		}
	}
	if order, ok, err := o.DrawOrder(); ok && err == nil {
		fmt.Fprintf(out, "    drawOrder: %d\n", order)
	}
	if box, ok := o.LatLonBox(); ok {
		if s, err := box.Sector(); err != nil {
			fmt.Fprintf(out, "    box: invalid (%v)\n", err)
		} else {
			fmt.Fprintf(out, "    box: S %.6f N %.6f W %.6f E %.6f\n", s.South, s.North, s.West, s.East)
		}
	}
	if quad, ok := o.LatLonQuad(); ok {
		if coords, _, err := quad.Coordinates(); err != nil {
			fmt.Fprintf(out, "    quad: invalid (%v)\n", err)
		} else {
			fmt.Fprintf(out, "    quad: %v\n", coords)
		}
	}
}
