package rest

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options holds the query parameters of a single request.
//
// Values may be strings, booleans, numbers, slices (joined with commas),
// pointers to any of those, or anything implementing fmt.Stringer.
// Nil values are skipped.
type Options map[string]any

// Set stores value under key, allocating the map if needed.
func (o *Options) Set(key string, value any) *Options {
	if *o == nil {
		*o = Options{}
	}
	(*o)[key] = value
	return o
}

// Merge returns a new Options holding the entries of o overridden by other.
func (o Options) Merge(other Options) Options {
	out := make(Options, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Values encodes the options as URL query values.
// Keys are converted to camelCase. The "debug" key is reserved for
// client-side use and never sent. When several keys map to the same server
// name, a key already written in camelCase wins; otherwise the first key in
// sorted order does.
func (o Options) Values() url.Values {
	q := url.Values{}
	exact := map[string]bool{}
	for _, k := range slices.Sorted(maps.Keys(o)) {
		if k == "" || k == "debug" {
			continue
		}
		s, ok := formatValue(o[k])
		if !ok {
			continue
		}
		name := CamelCase(k)
		if _, seen := q[name]; seen && (exact[name] || k != name) {
			continue
		}
		q.Set(name, s)
		exact[name] = k == name
	}
	return q
}

func formatValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []string:
		return strings.Join(t, ","), true
	case fmt.Stringer:
		return t.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false
		}
		return formatValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			if s, ok := formatValue(rv.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	}
	return fmt.Sprint(v), true
}

// CamelCase converts a snake_case name to the camelCase form used by the
// server ("job_depends_on" becomes "jobDependsOn"). Names without
// underscores are returned unchanged.
func CamelCase(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(p[size:]))
	}
	return b.String()
}
