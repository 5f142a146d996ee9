package userdata

import "github.com/smurphik/vkts/internal/userdata/storage"

// Resolve walks path from root and returns the value it addresses. Absent
// keys, out-of-range indices, wrong-type descents, and nil intermediates
// all report not-found; no input panics.
func Resolve(root any, path Path) (any, bool) {
	current := root
	for _, seg := range path {
		if current == nil {
			return nil, false
		}
		if seg.IsIndex {
			list, ok := current.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(list) {
				return nil, false
			}
			current = list[seg.Index]
			continue
		}
		obj, ok := current.(*storage.Object)
		if !ok {
			return nil, false
		}
		value, ok := obj.Get(seg.Key)
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}
