package gen

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/mapgen/compiler/genlog"
	"github.com/syssam/mapgen/compiler/load"
)

func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithTarget(t.TempDir()),
		WithPackage("mappers"),
		WithWorkers(2),
		WithoutFeatures(FeatureGlue.Name),
	}
	cfg, err := NewConfig(append(base, opts...)...)
	require.NoError(t, err)
	return cfg
}

func mapped(name string, fields ...string) *load.Model {
	m := &load.Model{
		Name:    name,
		PkgPath: "example.com/shop/entity",
		PkgName: "entity",
		Mapped:  true,
	}
	for i, f := range fields {
		m.Fields = append(m.Fields, &load.Field{Name: f, Type: "string", Index: i})
	}
	return m
}

func unmapped(name string) *load.Model {
	m := mapped(name)
	m.Mapped = false
	return m
}

// orderModel is the entity { id, customerId } marked as table-mapped.
func orderModel() *load.Model {
	return &load.Model{
		Name:    "Order",
		PkgPath: "example.com/shop/entity",
		PkgName: "entity",
		Mapped:  true,
		Fields: []*load.Field{
			{Name: "id", Type: "int64"},
			{Name: "customerId", Type: "int64", Index: 1},
		},
	}
}

func orderQueryModel() *load.Model {
	return &load.Model{
		Name:    "OrderQuery",
		PkgPath: "example.com/shop/query",
		PkgName: "query",
		Fields: []*load.Field{
			{Name: "customerIdEQ", Type: "*int64"},
			{Name: "statusIN", Type: "[]int", Index: 1},
			{Name: "createdGTE", Type: "*time.Time", Index: 2},
			{Name: "noteNL", Type: "bool", Index: 3},
		},
	}
}

// fakeLog is a memory log with injectable open and close failures.
type fakeLog struct {
	*genlog.MemoryLog
	openErr  error
	closeErr error
	opens    atomic.Int32
	closes   atomic.Int32
}

func newFakeLog() *fakeLog {
	return &fakeLog{MemoryLog: genlog.NewMemoryLog()}
}

func (l *fakeLog) Open(ctx context.Context) error {
	l.opens.Add(1)
	if l.openErr != nil {
		return l.openErr
	}
	return l.MemoryLog.Open(ctx)
}

func (l *fakeLog) Close() error {
	l.closes.Add(1)
	if err := l.MemoryLog.Close(); err != nil {
		return err
	}
	return l.closeErr
}

// metaCollector captures the frozen metadata of every type.
type metaCollector struct {
	mu    sync.Mutex
	metas map[string]*MapperMeta
}

func (m *metaCollector) handler() Handler[*MapperContext] {
	return Named("collect", HandlerFunc[*MapperContext](func(_ context.Context, c *MapperContext) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.metas == nil {
			m.metas = make(map[string]*MapperMeta)
		}
		m.metas[c.Model().Name] = c.Meta
		return nil
	}))
}

func (m *metaCollector) get(name string) *MapperMeta {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metas[name]
}
