package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"
)

// ── Value coercion ───────────────────────────────────────────────────────────
//
// Form values arrive as strings from HTML forms, as float64/bool/nil from JSON
// and as int from YAML. The helpers below give every rule the same view of them.

// truthy reports whether v counts as "present": nil, "", false, zero and NaN
// do not; nil pointers, maps and slices do not; everything else does.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	}
	if f, ok := numberOf(v); ok {
		return f != 0 && !math.IsNaN(f)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// numberOf returns v as float64 when v is a Go number or a json.Number.
// Numeric strings are NOT numbers here; see paramNumber.
func numberOf(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// paramNumber reads a rule parameter as a number. Parameters written in pipe
// syntax ("minLength:8") are strings, so numeric strings are accepted here.
// Anything else yields NaN, which fails every comparison.
func paramNumber(p any) float64 {
	if f, ok := numberOf(p); ok {
		return f
	}
	if s, ok := p.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

// stringOf renders v the way the pattern rules see it. nil renders as "",
// so pattern rules reject it rather than testing the text "null".
func stringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return string(x)
	}
	if f, ok := numberOf(v); ok {
		return formatNumber(f)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

// formatNumber prints f in its shortest form: 8 → "8", 8.5 → "8.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// lengthOf counts UTF-16 code units for strings (an emoji counts as 2) and
// elements for slices, arrays and maps. Values without a length report 0.
func lengthOf(v any) int {
	if s, ok := v.(string); ok {
		return textLength(s)
	}
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return textLength(rv.String())
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	return 0
}

// textLength measures s in UTF-16 code units, the way browsers measure
// input values.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// strictEqual compares without coercion: "8" never equals 8, but numbers of
// different Go types compare by value. Non-comparable values are never equal.
func strictEqual(a, b any) bool {
	if fa, ok := numberOf(a); ok {
		fb, ok := numberOf(b)
		return ok && fa == fb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
