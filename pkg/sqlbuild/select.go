// Package sqlbuild builds parameterized SELECT and COUNT statements.
// Callers pass explicit column and table names; user-supplied values only
// ever travel through the args list as numbered placeholders.
package sqlbuild

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection normalizes a user-supplied sort order, case-insensitively.
// Anything other than "asc" becomes Desc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "asc") {
		return Asc
	}
	return Desc
}

type condition struct {
	expr string
	args []interface{}
}

type orderBy struct {
	column    string
	direction Direction
}

// SelectBuilder builds a SELECT query.
type SelectBuilder struct {
	columns []string
	from    string
	joins   []string
	where   []condition
	orderBy []orderBy
	limit   *int
	offset  *int
}

// Select creates a new SelectBuilder for the given columns.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the table to select from.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.from = table
	return b
}

// Join adds an INNER JOIN.
func (b *SelectBuilder) Join(table, on string) *SelectBuilder {
	b.joins = append(b.joins, "JOIN "+table+" ON "+on)
	return b
}

// Where adds a condition. Multiple conditions are ANDed together.
// Placeholders are written as ? and rewritten to $n in ToSQL.
func (b *SelectBuilder) Where(expr string, args ...interface{}) *SelectBuilder {
	b.where = append(b.where, condition{expr: expr, args: args})
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SelectBuilder) OrderBy(column string, direction Direction) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderBy{column: column, direction: direction})
	return b
}

// Limit sets the LIMIT clause.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = &limit
	return b
}

// Offset sets the OFFSET clause.
func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = &offset
	return b
}

// ToSQL generates the SQL query and arguments.
func (b *SelectBuilder) ToSQL() (string, []interface{}) {
	var sql strings.Builder

	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(b.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(b.from)

	args := b.writeJoinsAndWhere(&sql)

	if len(b.orderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			parts[i] = o.column + " " + string(o.direction)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	if b.limit != nil {
		fmt.Fprintf(&sql, " LIMIT %d", *b.limit)
	}
	if b.offset != nil {
		fmt.Fprintf(&sql, " OFFSET %d", *b.offset)
	}

	return sql.String(), args
}

// CountSQL generates a COUNT(*) query over the same FROM, JOIN and WHERE
// clauses, ignoring ordering and pagination.
func (b *SelectBuilder) CountSQL() (string, []interface{}) {
	var sql strings.Builder

	sql.WriteString("SELECT COUNT(*) FROM ")
	sql.WriteString(b.from)

	args := b.writeJoinsAndWhere(&sql)

	return sql.String(), args
}

func (b *SelectBuilder) writeJoinsAndWhere(sql *strings.Builder) []interface{} {
	for _, j := range b.joins {
		sql.WriteString(" ")
		sql.WriteString(j)
	}

	var args []interface{}
	if len(b.where) > 0 {
		sql.WriteString(" WHERE ")
		paramNum := 1
		parts := make([]string, len(b.where))
		for i, cond := range b.where {
			expr := cond.expr
			for range cond.args {
				expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", paramNum), 1)
				paramNum++
			}
			parts[i] = expr
			args = append(args, cond.args...)
		}
		sql.WriteString(strings.Join(parts, " AND "))
	}

	return args
}
