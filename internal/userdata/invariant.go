package userdata

import "github.com/smurphik/vkts/internal/userdata/storage"

// activationKey marks the currently selected entry among siblings.
const activationKey = "is_activated"

// ensureSingleActive checks the post-mutation invariant over a sibling
// group: when no entry is active, the first-inserted one is activated.
// Precondition (checked): the parent is an object and every value in it is
// an object carrying a boolean is_activated flag.
func ensureSingleActive(parent any, doc storage.Document, path Path) error {
	siblings, ok := parent.(*storage.Object)
	if !ok {
		return notActivatableError(doc, path)
	}
	if siblings.Len() == 0 {
		return nil
	}
	keys := siblings.Keys()
	entries := make([]*storage.Object, 0, len(keys))
	anyActive := false
	for _, key := range keys {
		value, _ := siblings.Get(key)
		entry, isObject := value.(*storage.Object)
		if !isObject {
			return notActivatableError(doc, path)
		}
		flag, hasFlag := entry.Get(activationKey)
		if !hasFlag {
			return notActivatableError(doc, path)
		}
		active, isBool := flag.(bool)
		if !isBool {
			return notActivatableError(doc, path)
		}
		if active {
			anyActive = true
		}
		entries = append(entries, entry)
	}
	if !anyActive {
		entries[0].Set(activationKey, true)
	}
	return nil
}
