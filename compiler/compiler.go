// Package compiler provides an API for generating mapper descriptors and
// Go glue from the model types of compiled Go packages.
package compiler

import (
	"context"

	"github.com/syssam/mapgen/compiler/gen"
	"github.com/syssam/mapgen/compiler/load"
)

// Discoverer returns the package discoverer configured by cfg.
func Discoverer(cfg *gen.Config) *load.PackageDiscoverer {
	return &load.PackageDiscoverer{
		EntityPackage: cfg.EntityPackage,
		QueryPackage:  cfg.QueryPackage,
		BuildFlags:    cfg.BuildFlags,
	}
}

// Generate loads the entity and query-model packages of cfg and runs the
// mapper generator over them.
//
//	report, err := compiler.Generate(ctx, gen.MustNewConfig(
//		gen.WithEntityPackage("./entity"),
//		gen.WithQueryPackage("./query"),
//		gen.WithTarget("./mappers"),
//		gen.WithPackage("mappers"),
//	))
func Generate(ctx context.Context, cfg *gen.Config) (*gen.Report, error) {
	if cfg.EntityPackage == "" {
		return nil, gen.NewSetupError(gen.PhaseConfig, gen.NewConfigError("EntityPackage", nil, "missing entity package"))
	}
	return gen.NewMapperGenerator(cfg, Discoverer(cfg)).Generate(ctx)
}
