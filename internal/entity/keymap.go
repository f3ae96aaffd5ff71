package entity

import (
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// KeyMap maps a dimension's natural key (single or composite) to its
// persisted surrogate id. It is batch-scoped and ephemeral: produced by the
// key resolver, consumed within the same pipeline run, never persisted.
type KeyMap struct {
	keyColumns []string
	ids        map[string]int64
}

func NewKeyMap(keyColumns ...string) *KeyMap {
	return &KeyMap{
		keyColumns: append([]string(nil), keyColumns...),
		ids:        make(map[string]int64),
	}
}

// KeyColumns returns the natural-key column names the map is keyed on.
func (m *KeyMap) KeyColumns() []string {
	return m.keyColumns
}

// Put records the surrogate id for the natural key carried by the row.
func (m *KeyMap) Put(r table.Row, id int64) {
	m.ids[table.CompositeKey(r, m.keyColumns)] = id
}

// Lookup resolves the surrogate id for the natural key carried by the row.
// Keys with no persisted match are simply absent; the caller decides the
// sentinel policy.
func (m *KeyMap) Lookup(r table.Row) (int64, bool) {
	id, ok := m.ids[table.CompositeKey(r, m.keyColumns)]
	return id, ok
}

func (m *KeyMap) Len() int {
	return len(m.ids)
}
