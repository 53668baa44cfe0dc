package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beetlebugorg/kml/pkg/kml"
)

// Export is the sub-command invoked when running "kmlview export".
var Export SubCommand

func init() {
	Export.Cmd = &cobra.Command{
		Use:   "export [files...]",
		Short: "Write ground overlay footprints as a GeoJSON FeatureCollection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(Export.Conf)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runExport(Export.Conf, args, cmd.OutOrStdout(), logger)
		},
	}
	Export.EnvPrefix = "KMLVIEW_EXPORT"

	flags := Export.Cmd.Flags()
	flags.StringP("out", "o", "-", "Output file, - for stdout.")
	addLoadFlags(flags)
}

func runExport(conf *viper.Viper, args []string, stdout io.Writer, logger *zap.Logger) error {
	files, err := loadFiles(conf, args, logger)
	if err != nil {
		return err
	}

	var overlays []*kml.GroundOverlay
	for _, file := range files {
		overlays = append(overlays, file.GroundOverlays()...)
	}

	out := stdout
	if p := conf.GetString("out"); p != "" && p != "-" {
		f, err := os.Create(p)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		out = f
	}

	skipped, err := kml.WriteGeoJSON(out, overlays)
	for _, s := range skipped {
		logger.Warn("overlay left out of export", zap.Error(s))
	}
	if err != nil {
		return err
	}
	logger.Info("exported overlays",
		zap.Int("written", len(overlays)-len(skipped)),
		zap.Int("skipped", len(skipped)))
	return nil
}
