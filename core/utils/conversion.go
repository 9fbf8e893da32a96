package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// ToBool converts a loosely typed config value to bool.
// It handles bool, any integer or float kind (1=true), and strings
// ("1", "true", "yes", "on").
// ok is false when val is nil or of a type that cannot carry a flag,
// meaning the value counts as not set.
func ToBool(val any) (b bool, ok bool) {
	switch v := val.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		return parseBoolString(v), true
	case []byte:
		return parseBoolString(string(v)), true
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 1, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 1, true
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 1, true
	default:
		return false, false
	}
}

func parseBoolString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToStringMap converts a decoded config object to map[string]any.
// Keys of map[any]any are stringified.
func ToStringMap(val any) (map[string]any, bool) {
	switch v := val.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[ToString(k)] = item
		}
		return out, true
	default:
		return nil, false
	}
}
