package storage

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// flattenSep joins the names of nested fields into one column name.
const flattenSep = "_"

// Table is a header row plus data rows of typed cell values.
type Table struct {
	Header []string
	Rows   [][]any
}

// Flatten turns a slice of structs into a single-level table. Column names
// come from json tags (falling back to field names); nested structs are
// expanded into "parent_child" columns in declaration order.
func Flatten[T any](records []T) Table {
	var zero T
	t := reflect.TypeOf(zero)

	table := Table{Header: columnNames(t, "")}
	for _, r := range records {
		var row []any
		row = appendValues(row, reflect.ValueOf(r))
		table.Rows = append(table.Rows, row)
	}
	return table
}

// StringRows renders every cell as text, for delimited output.
func (t Table) StringRows() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		out = append(out, cells)
	}
	return out
}

func columnNames(t reflect.Type, prefix string) []string {
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}
		if prefix != "" {
			name = prefix + flattenSep + name
		}
		if f.Type.Kind() == reflect.Struct {
			names = append(names, columnNames(f.Type, name)...)
			continue
		}
		names = append(names, name)
	}
	return names
}

func appendValues(row []any, v reflect.Value) []any {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || fieldName(f) == "-" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			row = appendValues(row, fv)
			continue
		}
		row = append(row, fv.Interface())
	}
	return row
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
