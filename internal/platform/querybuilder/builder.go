// Package querybuilder renders the small set of postgres statements the
// repositories need: filtered selects and single or multi-row upserts.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// statement accumulates SQL text and numbered bind arguments.
type statement struct {
	sql  strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

func (s *statement) bind(value any) {
	s.args = append(s.args, value)
	s.sql.WriteString("$" + strconv.Itoa(len(s.args)))
}

func (s *statement) list(keyword string, items []string) {
	if len(items) > 0 {
		s.write(" ", keyword, " ", strings.Join(items, ", "))
	}
}

// Condition is one predicate joined with AND in a WHERE clause.
type Condition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return Condition{column: column, value: value}
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join appends "JOIN <clause>"; the clause carries its own ON condition.
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, "JOIN "+strings.TrimSpace(clause))
	return b
}

func (b *SelectBuilder) LeftJoin(clause string) *SelectBuilder {
	b.joins = append(b.joins, "LEFT JOIN "+strings.TrimSpace(clause))
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit caps the result; zero or negative means no limit.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("select table is required")
	}

	var st statement
	st.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for _, join := range b.joins {
		st.write(" ", join)
	}
	for i, c := range b.where {
		if i == 0 {
			st.write(" WHERE ")
		} else {
			st.write(" AND ")
		}
		st.write(c.column, " = ")
		st.bind(c.value)
	}
	st.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		st.write(" LIMIT ", strconv.Itoa(b.limit))
	}

	return st.sql.String(), st.args, nil
}

type InsertBuilder struct {
	table          string
	columns        []string
	rows           [][]any
	upsert         bool
	conflictTarget []string
	conflictExtra  []string
	suffix         string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row; call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflictUpdate turns the insert into an upsert keyed by target. Every
// inserted column outside target is overwritten from EXCLUDED; extra holds
// additional "col = expr" assignments.
func (b *InsertBuilder) OnConflictUpdate(target []string, extra ...string) *InsertBuilder {
	b.upsert = true
	b.conflictTarget = append([]string(nil), target...)
	b.conflictExtra = append([]string(nil), extra...)
	return b
}

// Suffix is appended verbatim, e.g. a hand-written ON CONFLICT or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var st statement
	st.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			st.write(", ")
		}
		st.write("(")
		for j, value := range row {
			if j > 0 {
				st.write(", ")
			}
			st.bind(value)
		}
		st.write(")")
	}

	if b.upsert {
		if len(b.conflictTarget) == 0 {
			return "", nil, fmt.Errorf("conflict target is required")
		}
		st.write(" ON CONFLICT (", strings.Join(b.conflictTarget, ", "), ")")
		if sets := b.conflictAssignments(); len(sets) > 0 {
			st.write(" DO UPDATE SET ", strings.Join(sets, ", "))
		} else {
			st.write(" DO NOTHING")
		}
	}
	if b.suffix != "" {
		st.write(" ", b.suffix)
	}

	return st.sql.String(), st.args, nil
}

func (b *InsertBuilder) conflictAssignments() []string {
	keys := make(map[string]struct{}, len(b.conflictTarget))
	for _, col := range b.conflictTarget {
		keys[col] = struct{}{}
	}

	sets := make([]string, 0, len(b.columns)+len(b.conflictExtra))
	for _, col := range b.columns {
		if _, ok := keys[col]; !ok {
			sets = append(sets, col+" = EXCLUDED."+col)
		}
	}
	return append(sets, b.conflictExtra...)
}
