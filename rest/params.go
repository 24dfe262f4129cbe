package rest

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Params are the request parameters of a call. Values may be scalars,
// nested maps or slices; see Encode.
type Params map[string]any

// Encode serializes p the way PHP's http_build_query does: nested maps
// become a[b]=v, slices become a[0]=v, booleans become 1 or 0 and nil
// values are dropped. Keys are sorted.
func (p Params) Encode() string {
	var pairs []string
	for _, k := range sortedKeys(p) {
		pairs = appendPairs(pairs, k, reflect.ValueOf(p[k]))
	}
	return strings.Join(pairs, "&")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func appendPairs(pairs []string, key string, v reflect.Value) []string {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return pairs
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return pairs
	}

	switch v.Kind() {
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		values := make(map[string]reflect.Value, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, k)
			values[k] = iter.Value()
		}
		slices.Sort(keys)
		for _, k := range keys {
			pairs = appendPairs(pairs, key+"["+k+"]", values[k])
		}
		return pairs
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(string(v.Bytes())))
		}
		for i := range v.Len() {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", v.Index(i))
		}
		return pairs
	default:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(scalar(v)))
	}
}

func scalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return "1"
		}
		return "0"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}
