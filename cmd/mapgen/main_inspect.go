package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/fvbommel/sortorder"
	"github.com/spf13/cobra"

	"github.com/syssam/mapgen/compiler"
	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/compiler/load"
)

type cmdInspect struct {
	global *cmdGlobal
	flags  configFlags

	flagDump bool
}

func (c *cmdInspect) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "inspect"
	cmd.Short = "Show the mappings mapgen would generate"
	cmd.Long = `Description:
  Show the mappings mapgen would generate

  Loads the entity and query-model packages and prints the table,
  column bindings and queries of every mapped type. Nothing is written.
`
	cmd.Args = cobra.NoArgs
	cmd.RunE = c.Run
	c.flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&c.flagDump, "dump", false, "Dump the loaded models")

	return cmd
}

func (c *cmdInspect) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.global.config(cmd, &c.flags)
	if err != nil {
		return err
	}
	if cfg.EntityPackage == "" {
		return errors.New("missing entity package (--entity or MAPGEN_ENTITY_PACKAGE)")
	}
	d := compiler.Discoverer(cfg)
	entities, err := d.Entities(cmd.Context())
	if err != nil {
		return err
	}
	queryModels, err := d.QueryModels(cmd.Context())
	if err != nil {
		return err
	}
	queries := make(map[string]*load.Model, len(queryModels))
	for _, qm := range queryModels {
		queries[qm.Name] = qm
	}
	slices.SortFunc(entities, func(a, b *load.Model) int {
		switch {
		case sortorder.NaturalLess(a.Name, b.Name):
			return -1
		case sortorder.NaturalLess(b.Name, a.Name):
			return 1
		}
		return 0
	})
	w := cmd.OutOrStdout()
	for _, m := range entities {
		printModel(w, cfg, m, queries[m.Name+cfg.QuerySuffix])
		if c.flagDump {
			spew.Fdump(w, m)
		}
	}
	return nil
}

func printModel(w io.Writer, cfg *gen.Config, m, qm *load.Model) {
	switch {
	case !m.Mapped:
		fmt.Fprintf(w, "%s %s\n", m.TypeRef(), color.New(color.FgHiBlack).Sprint("(not mapped)"))
		return
	case m.Err != nil:
		fmt.Fprintf(w, "%s %s\n", m.TypeRef(), color.New(color.FgRed).Sprintf("error: %v", m.Err))
		return
	}
	table := m.Table
	if table == "" {
		table = gen.TableName(m.Name)
	}
	fmt.Fprintf(w, "%s -> %s (%s)\n", m.TypeRef(), color.New(color.FgCyan).Sprint(table), m.Name+cfg.MapperSuffix)
	for _, f := range m.Fields {
		mm := gen.MappingFor(cfg, f)
		fmt.Fprintf(w, "  %-20s %s", mm.Column, mm.Property)
		if mm.EnumHandler != "" {
			fmt.Fprintf(w, " handler=%s", mm.EnumHandler)
		}
		if mm.GoType != "" {
			fmt.Fprintf(w, " type=%s", mm.GoType)
		}
		fmt.Fprintln(w)
	}
	if qm != nil {
		for _, q := range gen.DeriveQueries(m, qm) {
			fmt.Fprintf(w, "  query %s: %s\n", q.Name, q.Expr)
		}
	}
	for _, q := range m.Queries {
		fmt.Fprintf(w, "  query %s: %s\n", q.Name, q.Expr)
	}
}
