package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/beetlebugorg/kml/pkg/kml"
)

// RootCmd is the kmlview entry point.
var RootCmd = &cobra.Command{
	Use:   "kmlview",
	Short: "kmlview: inspect, render and export KML ground overlays",
	Long: `
kmlview reads KML and KMZ files and works with the ground overlays they
contain. It can list them, render them to a PNG for a geographic viewport
and export their footprints as GeoJSON.
`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

func init() {
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file (yaml, toml or json). Environment variables "+
			"and flags override its values.")
	RootCmd.PersistentFlags().String("log_format", "console",
		"Log format, one of [console, json]")
	RootCmd.PersistentFlags().Bool("verbose", false,
		"Log element creation and realization events.")
	rootConf.BindPFlags(RootCmd.PersistentFlags())

	var subcommands = []*SubCommand{
		&Info, &Render, &Export,
	}
	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		sc.Conf.BindPFlags(sc.Cmd.Flags())
		sc.Conf.BindPFlags(RootCmd.PersistentFlags())
		sc.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				fmt.Fprintln(os.Stderr, errors.Wrap(err, "reading config"))
				os.Exit(1)
			}
		}
	})
}

// addLoadFlags registers the flags every subcommand that reads files takes.
func addLoadFlags(flags *flag.FlagSet) {
	flags.Int("workers", 0, "Files parsed in parallel. 0 uses every CPU.")
	flags.Bool("skip_errors", true, "Keep going when a file fails to parse.")
	flags.Bool("offline", false, "Do not download http(s) image hrefs.")
	flags.String("cache_size", "256MB", "Decoded image cache size per file, e.g. 64MB. 0 is unlimited.")
}

// newLogger builds the process logger from the log_format and verbose
// settings.
func newLogger(conf *viper.Viper) (*zap.Logger, error) {
	var cfg zap.Config
	switch format := conf.GetString("log_format"); format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}

	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if conf.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// loadFiles parses paths with the load flags in conf. Files that fail are
// logged and skipped unless skip_errors is off.
func loadFiles(conf *viper.Viper, paths []string, logger *zap.Logger) ([]*kml.File, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input files")
	}

	cacheSize, err := humanize.ParseBytes(conf.GetString("cache_size"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cache_size %q", conf.GetString("cache_size"))
	}

	opts := kml.DefaultLoadOptions()
	if workers := conf.GetInt("workers"); workers > 0 {
		opts.Workers = workers
	}
	opts.SkipErrors = conf.GetBool("skip_errors")
	opts.Parse.Observer = kml.ZapObserver(logger)
	opts.Parse.DisableRemoteImages = conf.GetBool("offline")
	opts.Parse.ImageCacheSize = int64(cacheSize)

	files, errs := kml.LoadFiles(paths, opts)
	if !opts.SkipErrors && len(errs) > 0 {
		return nil, errs[0]
	}
	for _, err := range errs {
		logger.Warn("skipping file", zap.Error(err))
	}
	if len(files) == 0 {
		return nil, errors.New("no file could be parsed")
	}
	return files, nil
}
