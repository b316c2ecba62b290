package attachment

import (
	"reflect"
)

// Harvest recursively discovers every Attachment contained in v and returns
// them as a flat list in pre-order discovery sequence.
//
// Traversal rules:
//   - an Attachment value (or pointer to one) yields itself
//   - slices and arrays are walked in index order
//   - maps are walked over their values; traversal order is unspecified
//   - anything else (scalars, unrecognized structs) yields nothing
//
// There is no depth limit and no deduplication: the same attachment appearing
// twice in the input produces two entries. Inputs are assumed acyclic; tool
// results that reference themselves are a caller error.
func Harvest(v any) []Attachment {
	var out []Attachment
	collect(reflect.ValueOf(v), &out)
	return out
}

func collect(rv reflect.Value, out *[]Attachment) {
	if !rv.IsValid() {
		return
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return
		}
		collect(rv.Elem(), out)
		return
	}

	if rv.CanInterface() {
		if a, ok := rv.Interface().(Attachment); ok {
			*out = append(*out, a)
			return
		}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			collect(rv.Index(i), out)
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			collect(rv.MapIndex(key), out)
		}
	}
}
