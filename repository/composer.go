// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"strconv"
	"strings"
)

// QueryComposer accumulates optional WHERE fragments together with their bound
// arguments on top of a base query. Fragments and arguments are appended as
// pairs, so their ordering can never drift apart. Values are only ever bound
// as parameters, never spliced into the SQL text.
//
// The base query is expected to carry its own WHERE clause (the conventional
// "WHERE 1=1"), so every accumulated condition is rendered as an AND fragment
// in declaration order.
type QueryComposer struct {
	base  string
	conds []string
	args  []any
	order string
	limit int
}

// NewQueryComposer creates a composer over the given base query text
func NewQueryComposer(base string) *QueryComposer {
	return &QueryComposer{base: base}
}

// Where appends a raw condition with its arguments unconditionally.
func (q *QueryComposer) Where(fragment string, args ...any) *QueryComposer {
	q.conds = append(q.conds, fragment)
	q.args = append(q.args, args...)
	return q
}

// Equal adds "column = ?" when value is non-empty. An empty value means the
// caller supplied no constraint.
func (q *QueryComposer) Equal(column, value string) *QueryComposer {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

// EqualID adds "column = ?" when id is non-zero. Malformed numeric input is
// coerced to zero upstream, so it lands here as "no constraint".
func (q *QueryComposer) EqualID(column string, id uint) *QueryComposer {
	if id == 0 {
		return q
	}
	return q.Where(column+" = ?", id)
}

// Search adds an OR-group of "column LIKE ?" conditions over the given
// columns, binding one copy of the %term% pattern per column in declared
// column order. An empty term contributes nothing.
func (q *QueryComposer) Search(term string, columns ...string) *QueryComposer {
	if term == "" || len(columns) == 0 {
		return q
	}

	pattern := "%" + term + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" LIKE ?")
		args = append(args, pattern)
	}

	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// AtLeast adds "column >= ?" when value is non-empty.
func (q *QueryComposer) AtLeast(column, value string) *QueryComposer {
	if value == "" {
		return q
	}
	return q.Where(column+" >= ?", value)
}

// AtMost adds "column <= ?" when value is non-empty.
func (q *QueryComposer) AtMost(column, value string) *QueryComposer {
	if value == "" {
		return q
	}
	return q.Where(column+" <= ?", value)
}

// OrderBy sets the ORDER BY clause. The clause is trusted text supplied by
// the repository, never by the caller of the HTTP API.
func (q *QueryComposer) OrderBy(clause string) *QueryComposer {
	q.order = clause
	return q
}

// Limit caps the number of returned rows when n is positive.
func (q *QueryComposer) Limit(n int) *QueryComposer {
	q.limit = n
	return q
}

// SQL renders the final query text and the ordered argument list. With no
// accumulated conditions the base query is returned untouched with an empty
// argument list.
func (q *QueryComposer) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString(q.base)

	for _, cond := range q.conds {
		b.WriteString(" AND ")
		b.WriteString(cond)
	}

	if q.order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.order)
	}

	if q.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(q.limit))
	}

	return b.String(), q.args
}
