package repository

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"nutrisur/shared/dto"
)

// column maps a struct field to its source. Joined columns carry the foreign table and are read-only.
type column struct {
	field  string
	source string
	table  string
}

func (c column) selectExpr() string {
	if c.source == c.field {
		return c.table + "." + c.field
	}

	return fmt.Sprintf("%s.%s AS %s", c.table, c.source, c.field)
}

// scanColumns walks db/column/table tags, descending into embedded structs such as model.Metadata.
func scanColumns(table string, typ reflect.Type) []column {
	var columns []column

	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, scanColumns(table, field.Type)...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		col := column{field: name, source: name, table: table}

		if source := field.Tag.Get("column"); source != "" {
			col.source = source
		}

		if foreign := field.Tag.Get("table"); foreign != "" {
			col.table = foreign
		}

		columns = append(columns, col)
	}

	return columns
}

func writableColumns(table string, columns []column) []string {
	var names []string

	for _, col := range columns {
		if col.table == table {
			names = append(names, col.field)
		}
	}

	return names
}

func insertStatement(table string, names []string) string {
	placeholders := make([]string, len(names))
	for i, name := range names {
		placeholders[i] = ":" + name
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
}

// selectList renders every column, or only those whose field is listed in only.
func selectList(columns []column, only ...string) string {
	exprs := make([]string, 0, len(columns))

	for _, col := range columns {
		if len(only) > 0 && !slices.Contains(only, col.field) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// orderClause accepts "field" or "table.field" for known columns only; anything else is dropped.
func orderClause(table string, columns []column, params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(params.SortDir)
	if dir != dto.SortDirAsc && dir != dto.SortDirDesc {
		dir = dto.SortDirAsc
	}

	owner, name, qualified := strings.Cut(params.SortBy, ".")
	if !qualified {
		owner, name = table, params.SortBy
	}

	idx := slices.IndexFunc(columns, func(col column) bool {
		return col.table == owner && (col.field == name || col.source == name)
	})
	if idx == -1 {
		return ""
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", columns[idx].table, columns[idx].source, dir)
}

func pageClause(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return "LIMIT :limit OFFSET :offset"
}

// setClause lists assignments in key order so generated statements are stable.
func setClause(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	assignments := make([]string, len(keys))
	for i, key := range keys {
		assignments[i] = fmt.Sprintf("%s = :%s", key, key)
	}

	return strings.Join(assignments, ", ")
}

func compact(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}
