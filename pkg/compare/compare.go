// Package compare decides whether a field value actually changed. Composite
// values (maps, slices, arrays, structs) are compared structurally; scalars,
// pointers, channels and functions by identity.
package compare

import (
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Func reports whether two values are semantically equal.
type Func func(a, b any) bool

var structural = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateNaNs(),
}

// Equal is the default comparator.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return structuralEqual(a, b)
	case reflect.Float32, reflect.Float64:
		fa, fb := reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb && math.Signbit(fa) == math.Signbit(fb)
	case reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}

	if !ta.Comparable() {
		return false
	}
	return a == b
}

// structuralEqual never panics; values go-cmp refuses to compare are
// treated as different.
func structuralEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return cmp.Equal(a, b, structural...)
}

// Identity compares with == only, for callers that want every assignment of
// a composite value to count as a change.
func Identity(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
