package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperMeta_AddQuery(t *testing.T) {
	m := NewMapperMeta()
	m.SimpleName = "Order"
	require.NoError(t, m.AddQuery("byCustomer", "customer_id = :id"))
	require.NoError(t, m.AddQuery("recent", "created > :since"))

	err := m.AddQuery("byCustomer", "customer_id = :other")
	assert.ErrorIs(t, err, ErrDuplicateQuery)
	assert.Contains(t, err.Error(), `"byCustomer"`)
	assert.Equal(t, "customer_id = :id", m.Querys["byCustomer"])
	assert.Equal(t, []string{"byCustomer", "recent"}, m.QueryNames())
}

func TestMapperMeta_AddMapping(t *testing.T) {
	m := NewMapperMeta()
	require.NoError(t, m.AddMapping(MappingMeta{Column: "id", Property: "ID"}))
	assert.ErrorIs(t, m.AddMapping(MappingMeta{Property: "Total"}), ErrInvalidMapping)
	assert.ErrorIs(t, m.AddMapping(MappingMeta{Column: "total"}), ErrInvalidMapping)
	assert.Equal(t, []string{"id"}, m.Columns())
}

func TestMapperMeta_Freeze(t *testing.T) {
	m := NewMapperMeta()
	assert.False(t, m.Frozen())
	m.Freeze()
	assert.True(t, m.Frozen())

	assert.ErrorIs(t, m.AddQuery("q", "a = :b"), ErrFrozen)
	assert.ErrorIs(t, m.AddMapping(MappingMeta{Column: "id", Property: "ID"}), ErrFrozen)
	assert.ErrorIs(t, m.AddOtherMappings("<x/>"), ErrFrozen)
	assert.Empty(t, m.Querys)
	assert.Empty(t, m.MappingMetas)
	assert.Empty(t, m.OtherMappings)
}

func TestMapperMeta_Validate(t *testing.T) {
	valid := func() *MapperMeta {
		m := NewMapperMeta()
		m.MapperName = "OrderMapper"
		m.Model = "shop.Order"
		m.Table = "orders"
		m.SimpleName = "Order"
		m.Version = "v1.0.0"
		return m
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*MapperMeta)
		message string
	}{
		{"mapper name", func(m *MapperMeta) { m.MapperName = "" }, "missing mapper name"},
		{"table", func(m *MapperMeta) { m.Table = "" }, "missing table"},
		{"version", func(m *MapperMeta) { m.Version = "" }, "missing version"},
		{"query", func(m *MapperMeta) { m.HasQueryModel = true }, "query model without query"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)
			err := m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
