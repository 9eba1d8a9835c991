// Package reconcile combines two partial views of the same entity so that
// a later fetch only overwrites what it actually knows.
package reconcile

import (
	"maps"
	"reflect"
)

// Merge is a shallow right-biased merge: every meaningful value in update
// replaces the value in original; values that carry no information (nil,
// empty string, empty slice) leave original untouched.
//
// A nil map is treated as absent. Neither input is mutated.
func Merge(original, update map[string]any) map[string]any {
	return merge(original, update, false)
}

// MergeDeep is Merge that recurses into keys where both sides hold objects.
func MergeDeep(original, update map[string]any) map[string]any {
	return merge(original, update, true)
}

func merge(original, update map[string]any, deep bool) map[string]any {
	if original == nil {
		if update == nil {
			return map[string]any{}
		}
		return maps.Clone(update)
	}
	if update == nil {
		return maps.Clone(original)
	}

	merged := maps.Clone(original)
	for key, uv := range update {
		if deep {
			um, uok := uv.(map[string]any)
			om, ook := original[key].(map[string]any)
			if uok && ook && um != nil && om != nil {
				merged[key] = merge(om, um, true)
				continue
			}
		}
		if Meaningful(uv) {
			merged[key] = uv
		}
	}
	return merged
}

// Meaningful reports whether v carries information: it is not nil, not an
// empty string, and not an empty slice or array.
func Meaningful(v any) bool {
	if v == nil {
		return false
	}
	switch tv := v.(type) {
	case string:
		return tv != ""
	case []any:
		return len(tv) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Len() > 0
	case reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
