package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gobeaver/dropzone"
	"github.com/gobeaver/dropzone/filevalidator"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var (
		pattern  string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Treat a directory as a drop target",
		Long: `Watch submits files that appear in a directory as drop batches and
prints the outcome of every batch until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			logger := newLogger(cfg, cmd.ErrOrStderr(), opts.jsonOutput)

			dz, err := dropzone.New(ctx, *cfg,
				dropzone.WithLogger(logger),
				dropzone.WithListener(func(ev dropzone.Event) {
					switch ev.Type {
					case dropzone.EventChanged:
						logger.WithField("files", len(ev.Files)).Info("working set changed")
					case dropzone.EventBatchRejected:
						logger.WithError(ev.Err).Warn("batch refused")
					}
				}),
			)
			if err != nil {
				return err
			}

			err = dz.Watch(ctx, args[0], dropzone.WatchOptions{
				Pattern:  pattern,
				Debounce: debounce,
				OnBatch: func(result *filevalidator.Result, err error) {
					if result == nil {
						return
					}
					if werr := newBatchReport(result).write(out, opts.jsonOutput); werr != nil {
						logger.WithError(werr).Error("failed to write report")
					}
				},
			})
			if errors.Is(err, context.Canceled) {
				fmt.Fprintf(cmd.ErrOrStderr(), "stopped, %d files in working set\n", dz.Len())
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "*", "glob matched against file names")
	cmd.Flags().DurationVar(&debounce, "debounce", dropzone.DefaultDebounce, "quiet period that closes a batch")

	return cmd
}
