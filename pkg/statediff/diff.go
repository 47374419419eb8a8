// Package statediff reports the top-level changes between consecutive state
// store snapshots.
package statediff

import (
	"reflect"

	"github.com/aretw0/sonda/pkg/domain"
)

// Diff calculates the changes from prev to cur.
// If prev is nil, every key of cur is reported as added (initial load).
// Only keys present in cur are reported: removals are never surfaced.
// Values are compared shallowly, see Same.
func Diff(prev, cur domain.Snapshot) domain.DiffRecord {
	diff := make(domain.DiffRecord)

	if prev == nil {
		for k, v := range cur {
			diff[k] = domain.Change{Current: v, Added: true}
		}
		return diff
	}

	for k, curVal := range cur {
		prevVal, exists := prev[k]
		if !exists {
			diff[k] = domain.Change{Current: curVal, Added: true}
			continue
		}
		if !Same(prevVal, curVal) {
			diff[k] = domain.Change{Previous: prevVal, Current: curVal}
		}
	}
	return diff
}

// Same reports shallow strict equality. Comparable values are compared with ==.
// Maps, slices, functions, channels and pointers are compared by identity, so a
// nested structure mutated in place is not a change while a rebuilt one is,
// even when the contents are deeply equal. It never panics.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	return safeEqual(a, b)
}

// safeEqual guards == against comparable types holding uncomparable dynamic
// values (an interface field carrying a slice, for instance).
func safeEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
