package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/mapgen/compiler"
	"github.com/syssam/mapgen/compiler/watch"
)

type cmdWatch struct {
	global *cmdGlobal
	flags  configFlags

	flagDebounce time.Duration
}

func (c *cmdWatch) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "watch"
	cmd.Short = "Regenerate the mappers when the model sources change"
	cmd.Long = `Description:
  Regenerate the mappers when the model sources change

  Runs a generation, then watches the directories of the entity and
  query-model packages and runs again after every change to a Go file.
`
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.Run
	c.flags.register(cmd.Flags())
	cmd.Flags().DurationVar(&c.flagDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a run")

	return cmd
}

func (c *cmdWatch) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.global.config(cmd, &c.flags)
	if err != nil {
		return err
	}
	dirs, err := compiler.Discoverer(cfg).Dirs(cmd.Context())
	if err != nil {
		return err
	}
	w := watch.New(dirs, watch.WithDebounce(c.flagDebounce), watch.WithLogger(c.global.logger))
	return w.Run(cmd.Context(), func(ctx context.Context) error {
		report, err := compiler.Generate(ctx, cfg)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report, false)
		return report.Err()
	})
}
