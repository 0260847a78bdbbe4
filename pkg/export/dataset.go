package export

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// FromRows flattens a slice of structs into a Dataset. Column names come from
// json tags; fields tagged "-" are skipped.
func FromRows(rows interface{}) (Dataset, error) {
	value := reflect.ValueOf(rows)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return Dataset{}, fmt.Errorf("export rows must be a slice, got %T", rows)
	}

	elem := value.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return Dataset{}, fmt.Errorf("export rows must hold structs, got %s", elem)
	}

	headers, indexes := columns(elem)
	if len(headers) == 0 {
		return Dataset{}, fmt.Errorf("%s has no exportable fields", elem)
	}

	data := Dataset{Headers: headers, Rows: make([]map[string]string, 0, value.Len())}
	for i := 0; i < value.Len(); i++ {
		item := value.Index(i)
		if item.Kind() == reflect.Ptr {
			if item.IsNil() {
				continue
			}
			item = item.Elem()
		}
		row := make(map[string]string, len(headers))
		for col, idx := range indexes {
			row[headers[col]] = format(item.Field(idx))
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func columns(t reflect.Type) ([]string, []int) {
	var headers []string
	var indexes []int
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		headers = append(headers, name)
		indexes = append(indexes, i)
	}
	return headers, indexes
}

func format(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v.Interface())
}
