package schema

import (
	"fmt"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

type ErrorKind string

const (
	KindMissingRequired ErrorKind = "missing_required"
	KindDuplicate       ErrorKind = "uniqueness_violation"
	KindCoercion        ErrorKind = "coercion_failure"
)

// Error is a contract violation. It carries the offending source rows so the
// caller can report why a row failed, not just that it failed.
type Error struct {
	Contract string
	Kind     ErrorKind
	Column   string
	Rows     []table.Row
}

func (e *Error) Error() string {
	return fmt.Sprintf("contract %s: %s on column %q (%d offending rows)",
		e.Contract, e.Kind, e.Column, len(e.Rows))
}
