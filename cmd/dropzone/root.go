package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gobeaver/dropzone"
)

type rootOptions struct {
	configFile string
	accept     string
	maxSize    int64
	single     bool
	replace    bool
	previews   bool
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dropzone",
		Short: "Validate files the way a dropzone would",
		Long: `Dropzone runs files through an intake pipeline: type and size checks,
optional image previews, and a working set of accepted files.

Configuration is read from BEAVER_DROPZONE_* environment variables or from
a YAML file given with --config. Flags override both.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.StringVarP(&opts.accept, "accept", "a", "*", `accepted types ("*", "image/*", "application/pdf")`)
	flags.Int64VarP(&opts.maxSize, "max-size", "m", 0, "maximum file size in bytes (0 for unlimited)")
	flags.BoolVar(&opts.single, "single", false, "accept only one file per batch")
	flags.BoolVar(&opts.replace, "replace", false, "replace the working set on every batch instead of appending")
	flags.BoolVarP(&opts.previews, "previews", "p", false, "generate data URI previews for images")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.jsonOutput, "json", "j", false, "output results in JSON format")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))

	return cmd
}

// loadConfig layers flags over the config file or the environment
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*dropzone.Config, error) {
	var (
		cfg *dropzone.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = dropzone.LoadConfigFile(opts.configFile)
	} else {
		cfg, err = dropzone.GetConfig()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("accept") {
		cfg.Accept = opts.accept
	}
	if flags.Changed("max-size") {
		cfg.MaxFileSize = opts.maxSize
	}
	if flags.Changed("single") {
		cfg.AllowMultiple = !opts.single
	}
	if flags.Changed("replace") {
		cfg.RetainAcrossBatches = !opts.replace
	}
	if flags.Changed("previews") {
		cfg.GeneratePreviews = opts.previews
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *dropzone.Config, out io.Writer, jsonOutput bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
