package cmd

import (
	"image"
	"image/png"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/beetlebugorg/kml/pkg/kml"
)

// Render is the sub-command invoked when running "kmlview render".
var Render SubCommand

func init() {
	Render.Cmd = &cobra.Command{
		Use:   "render [files...]",
		Short: "Render ground overlays to a PNG",
		Long: `
Render draws every ground overlay that intersects the viewport onto a canvas
and writes it as a PNG. The viewport defaults to the union of all overlay
boxes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(Render.Conf)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runRender(Render.Conf, args, logger)
		},
	}
	Render.EnvPrefix = "KMLVIEW_RENDER"

	flags := Render.Cmd.Flags()
	flags.StringP("out", "o", "out.png", "Output PNG file.")
	flags.Int("width", 1024, "Canvas width in pixels.")
	flags.Int("height", 0, "Canvas height in pixels. 0 keeps the viewport aspect ratio.")
	flags.String("viewport", "", "Viewport as south,north,west,east in degrees.")
	flags.Bool("ignore_visibility", false, "Draw overlays whose <visibility> is 0.")
	flags.Int("max_frames", 4, "Frames rendered while overlays are still realizing.")
	addLoadFlags(flags)
}

func runRender(conf *viper.Viper, args []string, logger *zap.Logger) error {
	files, err := loadFiles(conf, args, logger)
	if err != nil {
		return err
	}

	viewport, err := resolveViewport(conf.GetString("viewport"), files)
	if err != nil {
		return err
	}

	// Projection divides by the viewport span
	if viewport.Width() == 0 || viewport.Height() == 0 {
		viewport = viewport.Expand(0.0001)
	}

	width := conf.GetInt("width")
	if width <= 0 {
		return errors.Errorf("invalid width %d", width)
	}
	height := conf.GetInt("height")
	if height <= 0 {
		height = canvasHeight(width, viewport)
	}

	// Each file renders on its own canvas since every frame starts clear.
	// The settled canvases are composited in argument order.
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	drawCalls := 0
	for _, file := range files {
		idx := kml.BuildIndex(file.GroundOverlays())
		visible := idx.Query(viewport)
		logger.Debug("rendering file",
			zap.String("path", file.Path()),
			zap.Int("indexed", idx.Count()),
			zap.Int("visible", len(visible)))

		scene := kml.NewScene()
		for _, o := range visible {
			scene.Add(o)
		}
		scene.Options.IgnoreVisibility = conf.GetBool("ignore_visibility")

		dc := kml.NewDrawContext(width, height, viewport)
		dc.Observer = kml.ZapObserver(logger)
		dc.Images = file.Images()
		frames := scene.RenderUntilSettled(dc, conf.GetInt("max_frames"))
		if dc.RedrawRequested {
			logger.Warn("scene did not settle", zap.String("path", file.Path()), zap.Int("frames", frames))
		}
		xdraw.Draw(canvas, canvas.Bounds(), dc.Canvas, image.Point{}, xdraw.Over)
		drawCalls += dc.DrawCalls
	}

	out, err := os.Create(conf.GetString("out"))
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer out.Close()

	if err := png.Encode(out, canvas); err != nil {
		return errors.Wrap(err, "encode png")
	}
	logger.Info("rendered",
		zap.String("out", conf.GetString("out")),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("draw_calls", drawCalls))
	return nil
}

// resolveViewport parses value, or falls back to the union of every file's
// overlay bounds when value is empty.
func resolveViewport(value string, files []*kml.File) (kml.Sector, error) {
	if value != "" {
		return parseViewport(value)
	}

	var (
		viewport kml.Sector
		found    bool
	)
	for _, f := range files {
		b, ok := f.Bounds()
		if !ok {
			continue
		}
		if !found {
			viewport, found = b, true
			continue
		}
		viewport = viewport.Union(b)
	}
	if !found {
		return kml.Sector{}, errors.New("no overlay has a valid LatLonBox; pass --viewport")
	}
	return viewport, nil
}

// parseViewport parses "south,north,west,east".
func parseViewport(value string) (kml.Sector, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return kml.Sector{}, errors.Errorf("viewport %q: want south,north,west,east", value)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return kml.Sector{}, errors.Wrapf(err, "viewport %q", value)
		}
		v[i] = f
	}
	s, err := kml.NewSector(v[0], v[1], v[2], v[3])
	if err != nil {
		return kml.Sector{}, errors.Wrapf(err, "viewport %q", value)
	}
	return s, nil
}

// canvasHeight keeps the viewport's aspect ratio for the given width.
func canvasHeight(width int, viewport kml.Sector) int {
	if viewport.Width() <= 0 {
		return width
	}
	h := int(math.Round(float64(width) * viewport.Height() / viewport.Width()))
	if h < 1 {
		h = 1
	}
	return h
}
