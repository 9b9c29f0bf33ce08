package toml

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Unmarshal parses TOML data into the struct pointed to by v
// Fields absent from data keep their current values
func Unmarshal(data []byte, v any) error {
	tree, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode maps a parsed tree onto v using `toml` tags, falling back to field names
// Keys with no matching field are an error
func Decode(data map[string]any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("toml: target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(data, val.Elem(), "")
}

func decodeValue(data any, val reflect.Value, path string) error {
	switch val.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return decodeValue(data, val.Elem(), path)

	case reflect.Struct:
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		return decodeStruct(m, val, path)

	case reflect.Slice:
		arr, ok := data.([]any)
		if !ok {
			return typeError(path, "array", data)
		}
		s := reflect.MakeSlice(val.Type(), len(arr), len(arr))
		for i, elem := range arr {
			if err := decodeValue(elem, s.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		val.Set(s)

	case reflect.Array:
		arr, ok := data.([]any)
		if !ok {
			return typeError(path, "array", data)
		}
		if len(arr) != val.Len() {
			return fmt.Errorf("toml: %s: expected %d elements, got %d", path, val.Len(), len(arr))
		}
		for i, elem := range arr {
			if err := decodeValue(elem, val.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toml: %s: only map[string]T is supported", path)
		}
		m, ok := data.(map[string]any)
		if !ok {
			return typeError(path, "table", data)
		}
		out := reflect.MakeMapWithSize(val.Type(), len(m))
		for k, elem := range m {
			v := reflect.New(val.Type().Elem()).Elem()
			if err := decodeValue(elem, v, joinPath(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(val.Type().Key()), v)
		}
		val.Set(out)

	case reflect.Interface:
		if data != nil {
			val.Set(reflect.ValueOf(data))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return typeError(path, "integer", data)
		}
		if val.OverflowInt(n) {
			return fmt.Errorf("toml: %s: %d overflows %s", path, n, val.Type())
		}
		val.SetInt(n)

	case reflect.Float32, reflect.Float64:
		switch n := data.(type) {
		case float64:
			if val.Kind() == reflect.Float32 && !math.IsInf(n, 0) && val.OverflowFloat(n) {
				return fmt.Errorf("toml: %s: %g overflows %s", path, n, val.Type())
			}
			val.SetFloat(n)
		case int64:
			// Integers are accepted where floats are expected
			val.SetFloat(float64(n))
		default:
			return typeError(path, "float", data)
		}

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return typeError(path, "string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return typeError(path, "bool", data)
		}
		val.SetBool(b)

	default:
		return fmt.Errorf("toml: %s: unsupported field type %s", path, val.Type())
	}

	return nil
}

func decodeStruct(data map[string]any, val reflect.Value, path string) error {
	typ := val.Type()
	seen := make(map[string]bool, len(data))

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := field.Name
		if tag := field.Tag.Get("toml"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}

		elem, ok := data[key]
		if !ok {
			continue
		}
		seen[key] = true
		if err := decodeValue(elem, val.Field(i), joinPath(path, key)); err != nil {
			return err
		}
	}

	var unknown []string
	for k := range data {
		if !seen[k] {
			unknown = append(unknown, joinPath(path, k))
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("toml: unknown keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func typeError(path, want string, got any) error {
	return fmt.Errorf("toml: %s: expected %s, got %s", path, want, kindName(got))
}

func kindName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "table"
	case []any:
		return "array"
	case int64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	return fmt.Sprintf("%T", v)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
