package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/mapgen/compiler"
)

type cmdGenerate struct {
	global *cmdGlobal
	flags  configFlags

	flagQuiet bool
}

func (c *cmdGenerate) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "generate"
	cmd.Aliases = []string{"gen"}
	cmd.Short = "Generate the mappers of the entity package"
	cmd.Long = `Description:
  Generate the mappers of the entity package

  Every type marked with //mapgen:table gets a descriptor and, with the
  glue feature, a typed Go mapper. Hand-written fragments between
  preserve markers are carried over from the previous output.
`
	cmd.Example = `  mapgen generate -e ./entity -q ./query -t ./mappers -p mappers`
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.Run
	c.flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&c.flagQuiet, "quiet", false, "Print the totals only")

	return cmd
}

func (c *cmdGenerate) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.global.config(cmd, &c.flags)
	if err != nil {
		return err
	}
	report, err := compiler.Generate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report, !c.flagQuiet)
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d types failed", report.Failed, report.Total())
	}
	return nil
}
