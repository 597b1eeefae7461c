package load

import "context"

// StaticDiscoverer serves models that were built or loaded beforehand.
type StaticDiscoverer struct {
	Models  []*Model
	Queries []*Model
	// EntitiesErr and QueriesErr are returned by the matching calls.
	EntitiesErr error
	QueriesErr  error
}

// Entities returns the configured entity models.
func (d *StaticDiscoverer) Entities(context.Context) ([]*Model, error) {
	return d.Models, d.EntitiesErr
}

// QueryModels returns the configured query models.
func (d *StaticDiscoverer) QueryModels(context.Context) ([]*Model, error) {
	return d.Queries, d.QueriesErr
}

// IsTableMapped reports whether the model carries the table marker.
func (d *StaticDiscoverer) IsTableMapped(m *Model) bool {
	return m.Mapped
}
