package gen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/mapgen/compiler/genlog"
	"github.com/syssam/mapgen/compiler/load"
)

//go:generate go run github.com/matryer/moq -fmt goimports -out discoverer_mock_gen_test.go -rm . Discoverer

// Discoverer finds the model types of a run.
type Discoverer interface {
	// Entities returns the candidate model types.
	Entities(ctx context.Context) ([]*load.Model, error)
	// QueryModels returns the query-model types.
	QueryModels(ctx context.Context) ([]*load.Model, error)
	// IsTableMapped reports whether a model carries the table marker.
	IsTableMapped(m *load.Model) bool
}

var (
	_ Discoverer = (*load.PackageDiscoverer)(nil)
	_ Discoverer = (*load.StaticDiscoverer)(nil)
)

// Generator runs a handler chain over every eligible model type. The
// context type C selects the generator flavor.
type Generator[C Context] struct {
	cfg        *Config
	discoverer Discoverer
	newContext ContextFactory[C]
	handlers   []Handler[C]
}

// NewGenerator returns a generator without handlers.
func NewGenerator[C Context](cfg *Config, d Discoverer, factory ContextFactory[C]) *Generator[C] {
	return &Generator[C]{
		cfg:        cfg,
		discoverer: d,
		newContext: factory,
	}
}

// NewMapperGenerator returns the mapper generator with its default chain.
func NewMapperGenerator(cfg *Config, d Discoverer) *Generator[*MapperContext] {
	return NewGenerator[*MapperContext](cfg, d, NewMapperContext).Use(MapperHandlers(cfg)...)
}

// Use appends handlers to the chain.
func (g *Generator[C]) Use(hs ...Handler[C]) *Generator[C] {
	g.handlers = append(g.handlers, hs...)
	return g
}

// Handlers returns the handler chain.
func (g *Generator[C]) Handlers() []Handler[C] {
	return g.handlers
}

// step is one setup phase and its teardown.
type step struct {
	phase string
	up    func(context.Context) error
	down  func() error
}

func (g *Generator[C]) steps(r *run) []step {
	env := NewEnvironment(g.cfg)
	steps := []step{
		{
			phase: PhaseConfig,
			up: func(context.Context) error {
				return g.cfg.Validate()
			},
		},
		{
			phase: PhaseTemplate,
			up: func(ctx context.Context) error {
				if err := env.Init(ctx); err != nil {
					return err
				}
				r.renderer = env
				return nil
			},
			down: env.Close,
		},
		{
			phase: PhaseWriter,
			up: func(context.Context) error {
				w, err := NewWriter(g.cfg)
				if err != nil {
					return err
				}
				r.writer = w
				r.preserver = Preservers{NewOutputScanner(g.cfg.Target, g.cfg.DescriptorExt, w.Encoding())}
				return nil
			},
		},
	}
	if g.cfg.enabled(FeatureSidecar) {
		store := NewSidecarStore(g.cfg.SidecarPath)
		steps = append(steps, step{
			phase: PhaseSidecar,
			up: func(ctx context.Context) error {
				if err := store.Open(ctx); err != nil {
					return err
				}
				r.sidecar = store
				r.preserver = append(r.preserver, store)
				return nil
			},
			down: store.Close,
		})
	}
	l := NewGenLog(g.cfg)
	return append(steps, step{
		phase: PhaseLog,
		up: func(ctx context.Context) error {
			if err := l.Open(ctx); err != nil {
				return err
			}
			r.log = l
			return nil
		},
		down: l.Close,
	})
}

// NewGenLog returns the generation log configured by cfg.
func NewGenLog(cfg *Config) genlog.Log {
	switch {
	case cfg.Log != nil:
		return cfg.Log
	case cfg.LogDriver != "":
		return genlog.NewSQLLog(cfg.LogDriver, cfg.LogDSN)
	case cfg.LogPath != "":
		return genlog.NewFileLog(cfg.LogPath)
	default:
		return genlog.NewMemoryLog()
	}
}

// Generate runs the generator. A setup or discovery failure is returned as
// a *SetupError and no type is processed. Per-type failures are isolated
// and reported in the Report; they do not fail the run.
func (g *Generator[C]) Generate(ctx context.Context) (*Report, error) {
	r := &run{
		id:     uuid.NewString(),
		cfg:    g.cfg,
		claims: newClaimSet(),
	}
	r.logger = g.cfg.logger().WithField("run", r.id)
	report := newReport(r.id)

	var up []step
	defer func() {
		for i := len(up) - 1; i >= 0; i-- {
			s := up[i]
			if s.down == nil {
				continue
			}
			if err := s.down(); err != nil {
				te := &TeardownError{Phase: s.phase, Cause: err}
				r.logger.WithError(te).Warn("teardown failed")
				report.TeardownErr = errors.Join(report.TeardownErr, te)
			}
		}
		report.finish()
	}()
	for _, s := range g.steps(r) {
		if err := s.up(ctx); err != nil {
			se := NewSetupError(s.phase, err)
			r.logger.WithError(se).Error("setup failed")
			return report, se
		}
		up = append(up, s)
	}

	models, queries, err := g.discover(ctx)
	if err != nil {
		se := NewSetupError(PhaseDiscover, err)
		r.logger.WithError(se).Error("discovery failed")
		return report, se
	}
	r.logger.WithField("types", len(models)).Debug("discovered model types")

	var eg errgroup.Group
	eg.SetLimit(g.cfg.Workers)
	for _, m := range models {
		eg.Go(func() error {
			g.record(ctx, r, report, m, g.process(ctx, r, m, queries))
			return nil
		})
	}
	_ = eg.Wait()
	return report, nil
}

func (g *Generator[C]) discover(ctx context.Context) ([]*load.Model, map[string]*load.Model, error) {
	models, err := g.discoverer.Entities(ctx)
	if err != nil {
		return nil, nil, err
	}
	qms, err := g.discoverer.QueryModels(ctx)
	if err != nil {
		return nil, nil, err
	}
	queries := make(map[string]*load.Model, len(qms))
	for _, qm := range qms {
		if prev, ok := queries[qm.Name]; ok {
			return nil, nil, fmt.Errorf("query model %s is declared by both %s and %s", qm.Name, prev.PkgPath, qm.PkgPath)
		}
		queries[qm.Name] = qm
	}
	return models, queries, nil
}

// outcome is the result of processing one model type. err is nil unless
// status is failed.
type outcome struct {
	status genlog.Status
	err    *GenerationError
}

func (g *Generator[C]) process(ctx context.Context, r *run, m *load.Model, queries map[string]*load.Model) outcome {
	failed := func(handler string, err error) outcome {
		return outcome{status: genlog.StatusFailed, err: NewGenerationError(m.String(), handler, err)}
	}
	if !g.discoverer.IsTableMapped(m) {
		return outcome{status: genlog.StatusSkipped}
	}
	if err := ctx.Err(); err != nil {
		return failed("", err)
	}
	if m.Err != nil {
		return failed("", m.Err)
	}
	c, err := g.newContext(m, queries[m.Name+g.cfg.QuerySuffix], g.cfg)
	if err != nil {
		return failed("", err)
	}
	c.base().run = r
	for _, h := range g.handlers {
		if err := handle(ctx, h, c); err != nil {
			return failed(HandlerName(h), err)
		}
	}
	return outcome{status: genlog.StatusGenerated}
}

func (g *Generator[C]) record(ctx context.Context, r *run, report *Report, m *load.Model, o outcome) {
	e := genlog.Entry{
		RunID:  r.id,
		Type:   m.String(),
		Status: o.status,
		Time:   time.Now(),
	}
	logger := r.logger.WithFields(logrus.Fields{"type": e.Type, "status": e.Status.String()})
	switch o.status {
	case genlog.StatusFailed:
		e.Reason = o.err.Error()
		logger.WithError(o.err).Error("type failed")
	case genlog.StatusSkipped:
		logger.Debug("type skipped")
	default:
		logger.Info("type generated")
	}
	report.add(e, o.err)
	if err := r.log.Record(context.WithoutCancel(ctx), e); err != nil {
		logger.WithError(err).Error("record outcome")
		report.addLogErr(err)
	}
}
