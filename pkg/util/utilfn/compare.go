// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilfn

import (
	"fmt"
	"reflect"
	"strconv"
)

// ValEqual is a shallow equality used for props, attribute and context values.
// Comparable values use ==, numbers compare as float64 across types,
// maps and slices compare by identity, funcs never compare equal.
func ValEqual(a, b any) (rtn bool) {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	typeA := reflect.TypeOf(a)
	typeB := reflect.TypeOf(b)
	if typeA == typeB && typeA.Comparable() {
		// structs holding uncomparable interface values panic on ==
		defer func() {
			if recover() != nil {
				rtn = false
			}
		}()
		return a == b
	}
	if IsNumericType(a) && IsNumericType(b) {
		return CompareAsFloat64(a, b)
	}
	if typeA != typeB {
		return false
	}
	valA := reflect.ValueOf(a)
	valB := reflect.ValueOf(b)
	switch valA.Kind() {
	case reflect.Map:
		return valA.Pointer() == valB.Pointer()
	case reflect.Slice:
		return valA.Pointer() == valB.Pointer() && valA.Len() == valB.Len()
	}
	return false
}

// Helper to check if a value is a numeric type
func IsNumericType(val any) bool {
	switch val.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// Helper to handle numeric comparisons as float64
func CompareAsFloat64(a, b any) bool {
	valA, okA := ToFloat64(a)
	valB, okB := ToFloat64(b)
	return okA && okB && valA == valB
}

// Convert various numeric types to float64 for comparison
func ToFloat64(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// ToAttrString renders a scalar value the way it is written into an output attribute.
// The second return is false when the value should not be present at all (nil or false).
func ToAttrString(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if !v {
			return "", false
		}
		return "", true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	if IsNumericType(val) {
		return fmt.Sprint(val), true
	}
	if s, ok := val.(interface{ String() string }); ok {
		return s.String(), true
	}
	return "", false
}
