package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Phoneshop-api/internal/domain/repository"
)

// where arma condiciones con placeholders posicionales. "$?" en la expresión se
// reemplaza por el número del argumento (todas las apariciones usan el mismo).
type where struct {
	conds []string
	args  []any
}

func (w *where) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(expr, "$?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page agrega ORDER BY + LIMIT/OFFSET. Limit 0 = sin límite.
func (w *where) page(orderBy string, limit, offset int) string {
	q := " ORDER BY " + orderBy
	if limit > 0 {
		w.args = append(w.args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(w.args))
	}
	if offset > 0 {
		w.args = append(w.args, offset)
		q += fmt.Sprintf(" OFFSET $%d", len(w.args))
	}
	return q
}

// listWhere traduce ListFilter. withAssignee=false para tablas sin asignado (ventas).
func listWhere(f repository.ListFilter, withAssignee bool) *where {
	w := &where{}
	if f.VisibleTo != "" {
		if withAssignee {
			w.add("(owner_id = $? OR assignee_id = $?)", f.VisibleTo)
		} else {
			w.add("owner_id = $?", f.VisibleTo)
		}
	}
	if withAssignee && len(f.Statuses) > 0 {
		w.add("status = ANY($?)", f.Statuses)
	}
	if f.OverdueAt != nil {
		w.add("follow_up_date < $?", *f.OverdueAt)
	}
	if f.CreatedFrom != nil {
		w.add("created_at >= $?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		w.add("created_at < $?", *f.CreatedTo)
	}
	return w
}

const newestFirst = "created_at DESC, id DESC"
