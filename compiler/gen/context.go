package gen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/syssam/mapgen/compiler/genlog"
	"github.com/syssam/mapgen/compiler/load"
)

// errUnbound is returned by handlers that need run resources on a context
// that was not created by a Generator.
var errUnbound = errors.New("context is not bound to a generation run")

// Context is the per-type state handed along the handler chain. Every
// generator flavor embeds *BaseContext into its own context type.
type Context interface {
	// Model is the entity type being processed.
	Model() *load.Model
	// QueryModel is the query model of the entity, or nil.
	QueryModel() *load.Model
	HasQueryModel() bool
	Config() *Config
	// Set and Get hold free-form state written by handlers.
	Set(key string, v any)
	Get(key string) (any, bool)

	base() *BaseContext
}

// ContextFactory creates the context of one eligible model type.
type ContextFactory[C Context] func(model, queryModel *load.Model, cfg *Config) (C, error)

// BaseContext implements Context.
type BaseContext struct {
	model      *load.Model
	queryModel *load.Model
	cfg        *Config
	values     map[string]any
	run        *run
}

// NewBaseContext returns the base context of a model.
func NewBaseContext(model, queryModel *load.Model, cfg *Config) *BaseContext {
	return &BaseContext{
		model:      model,
		queryModel: queryModel,
		cfg:        cfg,
		values:     make(map[string]any),
	}
}

// Model implements Context.
func (c *BaseContext) Model() *load.Model { return c.model }

// QueryModel implements Context.
func (c *BaseContext) QueryModel() *load.Model { return c.queryModel }

// HasQueryModel implements Context.
func (c *BaseContext) HasQueryModel() bool { return c.queryModel != nil }

// Config implements Context.
func (c *BaseContext) Config() *Config { return c.cfg }

// Set implements Context.
func (c *BaseContext) Set(key string, v any) { c.values[key] = v }

// Get implements Context.
func (c *BaseContext) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *BaseContext) base() *BaseContext { return c }

// RunID returns the identifier of the run the context belongs to.
func (c *BaseContext) RunID() string {
	if c.run == nil {
		return ""
	}
	return c.run.id
}

// Logger returns the run logger scoped to the model type.
func (c *BaseContext) Logger() logrus.FieldLogger {
	if c.run == nil {
		return c.cfg.logger()
	}
	return c.run.logger.WithField("type", c.model.String())
}

// Renderer returns the template environment of the run.
func (c *BaseContext) Renderer() (Renderer, error) {
	if c.run == nil || c.run.renderer == nil {
		return nil, errUnbound
	}
	return c.run.renderer, nil
}

// Writer returns the output writer of the run.
func (c *BaseContext) Writer() (*Writer, error) {
	if c.run == nil || c.run.writer == nil {
		return nil, errUnbound
	}
	return c.run.writer, nil
}

// Preserver returns the fragment sources of the run. It is nil outside
// of a run.
func (c *BaseContext) Preserver() Preserver {
	if c.run == nil || len(c.run.preserver) == 0 {
		return nil
	}
	return c.run.preserver
}

// Sidecar returns the sidecar store, or nil when the feature is disabled.
func (c *BaseContext) Sidecar() *SidecarStore {
	if c.run == nil {
		return nil
	}
	return c.run.sidecar
}

// Claim reserves a mapper name for the model type. A name can be claimed
// once per run.
func (c *BaseContext) Claim(mapper string) error {
	if c.run == nil {
		return nil
	}
	return c.run.claims.claim(mapper, c.model.String())
}

// MapperContext is the context of the mapper generator flavor.
type MapperContext struct {
	*BaseContext
	Meta    *MapperMeta
	Outputs []Output
}

// Output is a file written by a handler.
type Output struct {
	Handler string
	Path    string
}

// NewMapperContext is the ContextFactory of the mapper flavor.
func NewMapperContext(model, queryModel *load.Model, cfg *Config) (*MapperContext, error) {
	if model == nil {
		return nil, errors.New("mapper context: nil model")
	}
	return &MapperContext{
		BaseContext: NewBaseContext(model, queryModel, cfg),
		Meta:        NewMapperMeta(),
	}, nil
}

// AddOutput records a written file.
func (c *MapperContext) AddOutput(handler, path string) {
	c.Outputs = append(c.Outputs, Output{Handler: handler, Path: path})
}

// run holds the resources shared by the contexts of one generation run.
type run struct {
	id        string
	cfg       *Config
	logger    logrus.FieldLogger
	claims    *claimSet
	renderer  Renderer
	writer    *Writer
	preserver Preservers
	sidecar   *SidecarStore
	log       genlog.Log
}

type claimSet struct {
	mu    sync.Mutex
	names map[string]string
}

func newClaimSet() *claimSet {
	return &claimSet{names: make(map[string]string)}
}

func (s *claimSet) claim(name, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.names[name]; ok && prev != owner {
		return fmt.Errorf("%w %q: already generated for %s", ErrDuplicateMapper, name, prev)
	}
	s.names[name] = owner
	return nil
}
