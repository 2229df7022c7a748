package query

import (
	"fmt"
	"strings"
)

// Compose appends the search predicate, ordering and paging described by c
// to base. searchable is a lower-cased SQL expression concatenating the
// searchable columns; base must already contain a WHERE clause so the search
// predicate can be joined with AND.
func Compose(c Criteria, base, searchable string) Plan {
	return ComposeOn(c, Plan{Text: base}, searchable)
}

// ComposeOn is Compose over a plan that already carries fixed predicates.
// Positional numbering continues after the existing bindings.
func ComposeOn(c Criteria, base Plan, searchable string) Plan {
	plan := base.with("")

	if c.hasSearch() && strings.TrimSpace(searchable) != "" {
		plan = plan.with(" AND "+searchable+" LIKE LOWER(?)", String("%"+c.SearchTerm+"%"))
	}

	if c.hasSort() {
		order := c.SortOrder
		if order == "" {
			order = Asc
		}
		plan = plan.with(" ORDER BY " + c.SortField + " " + string(order))
	}

	if c.PageSize != 0 {
		plan = plan.with(fmt.Sprintf(" LIMIT %d OFFSET %d", c.PageSize, StartingIndex(c.PageNumber, c.PageSize)))
	}
	return plan
}

// Predicates collects fixed AND clauses that every query over the same filter
// must share.
type Predicates struct {
	clauses []string
	values  []Value
}

// And adds clause with one value per "?" in it.
func (p *Predicates) And(clause string, values ...Value) {
	p.clauses = append(p.clauses, clause)
	p.values = append(p.values, values...)
}

// In adds "column IN (...)" over ids. An empty set renders IN (NULL), which
// matches nothing.
func (p *Predicates) In(column string, ids []int64) {
	if len(ids) == 0 {
		p.And(column + " IN (NULL)")
		return
	}
	ph := make([]string, len(ids))
	vals := make([]Value, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		vals[i] = Long(id)
	}
	p.And(column+" IN ("+strings.Join(ph, ", ")+")", vals...)
}

// MaxInSize keeps an IN list well under MySQL's placeholder limit.
const MaxInSize = 1000

// Batches splits ids into consecutive slices of at most n ids each.
func Batches(ids []int64, n int) [][]int64 {
	if n <= 0 {
		n = MaxInSize
	}
	var out [][]int64
	for len(ids) > n {
		out = append(out, ids[:n])
		ids = ids[n:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

// Apply joins the clauses onto base with AND.
func (p Predicates) Apply(base string) Plan {
	plan := Plan{Text: base}
	for _, c := range p.clauses {
		plan.Text += " AND " + c
	}
	plan = plan.with("", p.values...)
	return plan
}

// Append adds a trailing fragment with no bindings, e.g. GROUP BY or ORDER BY.
func (p Plan) Append(fragment string) Plan {
	return p.with(fragment)
}
