package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldMap is the db-tagged layout of a model struct.
type fieldMap struct {
	columns []string
	index   []int
}

var fieldMaps sync.Map // reflect.Type -> fieldMap

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	fields, value, err := modelFields(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(fields.columns...).
		Values(fields.values(value)...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts model and, on conflict with target, overwrites every
// other mapped column with the incoming value.
func UpsertModel(table string, model any, target []string, extra ...string) (string, []any, error) {
	return UpsertModels(table, []any{model}, target, extra...)
}

// UpsertModels writes every model in one multi-row statement. Postgres rejects
// a statement that updates the same row twice, so rows sharing a conflict key
// collapse to the last one given.
func UpsertModels[T any](table string, models []T, target []string, extra ...string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("upsert %s: no rows", table)
	}

	builder := InsertInto(table).OnConflictUpdate(target, extra...)
	var keyIndex []int
	rows := make([][]any, 0, len(models))
	position := make(map[string]int, len(models))
	for i, model := range models {
		fields, value, err := modelFields(model)
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			builder.Columns(fields.columns...)
			if keyIndex, err = fields.positions(target); err != nil {
				return "", nil, fmt.Errorf("upsert %s: %w", table, err)
			}
		}

		row := fields.values(value)
		key := conflictKey(row, keyIndex)
		if at, ok := position[key]; ok {
			rows[at] = row
			continue
		}
		position[key] = len(rows)
		rows = append(rows, row)
	}

	for _, row := range rows {
		builder.Values(row...)
	}
	return builder.ToSQL()
}

func conflictKey(row []any, keyIndex []int) string {
	parts := make([]string, len(keyIndex))
	for i, at := range keyIndex {
		parts[i] = fmt.Sprint(row[at])
	}
	return strings.Join(parts, "\x00")
}

func (f fieldMap) values(value reflect.Value) []any {
	out := make([]any, len(f.index))
	for i, at := range f.index {
		out[i] = value.Field(at).Interface()
	}
	return out
}

func (f fieldMap) positions(columns []string) ([]int, error) {
	out := make([]int, 0, len(columns))
	for _, col := range columns {
		found := -1
		for i, mapped := range f.columns {
			if mapped == col {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("conflict column %q is not mapped", col)
		}
		out = append(out, found)
	}
	return out, nil
}

func modelFields(model any) (fieldMap, reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return fieldMap{}, value, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fieldMap{}, value, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	if cached, ok := fieldMaps.Load(value.Type()); ok {
		return cached.(fieldMap), value, nil
	}

	fields := scanFields(value.Type())
	if len(fields.columns) == 0 {
		return fieldMap{}, value, fmt.Errorf("model %s has no db columns", value.Type())
	}
	fieldMaps.Store(value.Type(), fields)
	return fields, value, nil
}

func scanFields(typ reflect.Type) fieldMap {
	var fields fieldMap
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		fields.columns = append(fields.columns, col)
		fields.index = append(fields.index, i)
	}
	return fields
}
