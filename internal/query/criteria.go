// Package query composes parameterized SQL from loosely typed list requests.
//
// Compose never escapes identifiers. Sort fields and directions must already be
// checked against an allow-list by the caller; only bound values are safe.
package query

import (
	"strings"

	"paymentapi/internal/domain"
)

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case. Empty input yields Asc.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, true
	case string(Desc):
		return Desc, true
	default:
		return "", false
	}
}

// Criteria describes an optional free-text filter, an optional sort and an
// optional page. PageNumber is 1-based; 0 addresses the first page as well.
// PageSize 0 means unbounded.
type Criteria struct {
	SearchTerm string
	SortField  string
	SortOrder  SortOrder
	PageNumber int
	PageSize   int
}

func (c Criteria) Validate() error {
	if c.PageNumber < 0 {
		return domain.ValidationError{Field: "pageNumber", Msg: "must not be negative"}
	}
	if c.PageSize < 0 {
		return domain.ValidationError{Field: "pageSize", Msg: "must not be negative"}
	}
	if !OffsetInRange(c.PageNumber, c.PageSize) {
		return domain.ValidationError{Field: "pageNumber", Msg: "is out of range"}
	}
	return nil
}

// FilterOnly keeps the predicates and drops ordering and paging, so a count
// query composed from it matches exactly the rows of the paged query.
func (c Criteria) FilterOnly() Criteria {
	return Criteria{SearchTerm: c.SearchTerm}
}

func (c Criteria) hasSearch() bool {
	return strings.TrimSpace(c.SearchTerm) != ""
}

func (c Criteria) hasSort() bool {
	return strings.TrimSpace(c.SortField) != ""
}
