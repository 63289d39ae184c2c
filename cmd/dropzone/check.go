package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/dropzone"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate files as one intake batch",
		Long: `Check submits the given files as a single selection and reports which
were accepted and why the others were rejected. It exits non-zero when any
file is rejected or the batch is refused.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr(), opts.jsonOutput)
			dz, err := dropzone.New(cmd.Context(), *cfg,
				dropzone.WithLogger(logger),
				dropzone.WithSelector(dropzone.PathSelector(args...)),
			)
			if err != nil {
				return err
			}

			result, err := dz.TriggerSelection(cmd.Context())
			if err != nil {
				return err
			}

			if err := newBatchReport(result).write(cmd.OutOrStdout(), opts.jsonOutput); err != nil {
				return err
			}
			if n := len(result.Rejected); n > 0 {
				return fmt.Errorf("%d of %d files rejected", n, result.Len())
			}
			return nil
		},
	}

	return cmd
}
