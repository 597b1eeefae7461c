// Package gen generates mapper descriptors and their Go glue from the
// model types found by a Discoverer.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Discoverer (entity and query-model packages)
//	        ↓
//	   Context per mapped type
//	        ↓
//	   Handler chain (meta → descriptor → glue → sidecar)
//	        ↓
//	   Environment (text/template or pongo2) and Writer
//	        ↓
//	   Generation log (file, database or memory)
//
// # Key Types
//
//   - Generator: runs the handler chain over every mapped type
//   - Context, BaseContext, MapperContext: per-type state of the chain
//   - Handler, HandlerFunc: one step of the chain
//   - MapperMeta, MappingMeta: the metadata handed to the templates
//   - Config: global configuration, built with options or LoadConfig
//
// A type without the //mapgen:table marker is recorded as skipped. A
// failing handler stops the chain of its type only; the other types are
// still generated.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SetupError: the run could not start, nothing was generated
//   - GenerationError: one type failed, see Report.Errors
//   - ConfigError: invalid configuration
//
// Example error handling:
//
//	report, err := gen.NewMapperGenerator(cfg, discoverer).Generate(ctx)
//	if gen.IsSetupError(err) {
//	    log.Fatal(err)
//	}
//	for _, err := range report.Errors {
//	    log.Printf("%s failed in %s: %v", err.Type, err.Handler, err.Cause)
//	}
//
// # Preserved Fragments
//
// Every descriptor carries preserve blocks. Text written between the
// PreserveBegin and PreserveEnd markers is read back on the next run and
// emitted again unchanged. With the sidecar feature the fragments are
// also kept in a msgpack file.
package gen
