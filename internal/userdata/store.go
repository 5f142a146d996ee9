package userdata

import (
	"context"

	apperrors "github.com/smurphik/vkts/internal/platform/errors"
	"github.com/smurphik/vkts/internal/userdata/storage"
)

// Store runs path-addressed operations against persisted documents. Every
// call performs a full ensure-load-mutate-save cycle; no document state is
// cached across operations, so each call sees whatever is on disk.
type Store struct {
	backend storage.Store
}

// New returns a Store over the given backend.
func New(backend storage.Store) *Store {
	return &Store{backend: backend}
}

// Get resolves path within doc. Absence is reported through the boolean,
// not an error; only storage failures return an error.
func (s *Store) Get(ctx context.Context, doc storage.Document, path Path) (any, bool, error) {
	root, err := s.load(ctx, doc)
	if err != nil {
		return nil, false, err
	}
	value, ok := Resolve(root, path)
	return value, ok, nil
}

// Set writes value at path within doc. Missing intermediate containers are
// created as empty objects. When the target already holds a sequence, the
// value is appended instead of overwriting. With enforce, the parent
// container must hold activatable objects and ends up with at least one
// active entry.
func (s *Store) Set(ctx context.Context, value any, doc storage.Document, path Path, enforce bool) error {
	if len(path) == 0 {
		return emptyPathError(doc)
	}
	root, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	parentPath, last := path[:len(path)-1], path[len(path)-1]
	parent, err := vivify(root, parentPath, doc)
	if err != nil {
		return err
	}

	switch container := parent.(type) {
	case *storage.Object:
		key := last.String()
		if current, ok := container.Get(key); ok {
			if list, ok := current.([]any); ok {
				container.Set(key, append(list, value))
				break
			}
		}
		container.Set(key, value)
	case []any:
		if !last.IsIndex || last.Index < 0 || last.Index >= len(container) {
			return invalidPathError(doc, path, "sequence requires an in-range index")
		}
		if element, ok := container[last.Index].([]any); ok {
			container[last.Index] = append(element, value)
			break
		}
		container[last.Index] = value
	default:
		return invalidPathError(doc, path, "path blocked by a non-container value")
	}

	if enforce {
		if err := ensureSingleActive(parent, doc, parentPath); err != nil {
			return err
		}
	}
	return s.save(ctx, doc, root)
}

// Delete removes the value at path within doc. A path that does not fully
// resolve is a no-op that still rewrites the unchanged document. With
// enforce, the resolved parent must hold activatable objects and keeps at
// least one active entry after the removal.
func (s *Store) Delete(ctx context.Context, doc storage.Document, path Path, enforce bool) error {
	if len(path) == 0 {
		return emptyPathError(doc)
	}
	root, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	parentPath, last := path[:len(path)-1], path[len(path)-1]
	parent, replace, ok := resolveParent(root, parentPath)
	if ok {
		remove(parent, replace, last)
		if enforce {
			if err := ensureSingleActive(parent, doc, parentPath); err != nil {
				return err
			}
		}
	}
	return s.save(ctx, doc, root)
}

// DropActivations deactivates every entry of the object at path. It is the
// one operation that legitimately leaves all siblings inactive.
func (s *Store) DropActivations(ctx context.Context, doc storage.Document, path Path) error {
	root, err := s.load(ctx, doc)
	if err != nil {
		return err
	}
	target, ok := Resolve(root, path)
	siblings, isObject := target.(*storage.Object)
	if !ok || !isObject {
		return targetNotFoundError(doc, path)
	}
	keys := siblings.Keys()
	entries := make([]*storage.Object, 0, len(keys))
	for _, key := range keys {
		value, _ := siblings.Get(key)
		entry, ok := value.(*storage.Object)
		if !ok {
			return notActivatableError(doc, path)
		}
		entries = append(entries, entry)
	}
	for _, entry := range entries {
		entry.Set(activationKey, false)
	}
	return s.save(ctx, doc, root)
}

// FindActive returns the first activated entry of the object at path, in
// insertion order, paired with its key. Entries that are not activatable
// objects are skipped.
func (s *Store) FindActive(ctx context.Context, doc storage.Document, path Path) (string, *storage.Object, error) {
	root, err := s.load(ctx, doc)
	if err != nil {
		return "", nil, err
	}
	target, ok := Resolve(root, path)
	siblings, isObject := target.(*storage.Object)
	if !ok || !isObject {
		return "", nil, targetNotFoundError(doc, path)
	}
	for _, key := range siblings.Keys() {
		value, _ := siblings.Get(key)
		entry, ok := value.(*storage.Object)
		if !ok {
			continue
		}
		flag, _ := entry.Get(activationKey)
		if active, ok := flag.(bool); ok && active {
			return key, entry, nil
		}
	}
	return "", nil, noActiveEntryError(doc, path)
}

func (s *Store) load(ctx context.Context, doc storage.Document) (*storage.Object, error) {
	if err := s.backend.Ensure(ctx); err != nil {
		return nil, persistenceError(doc, "prepare data files", err)
	}
	root, err := s.backend.Load(ctx, doc)
	if err != nil {
		return nil, persistenceError(doc, "load document", err)
	}
	return root, nil
}

func (s *Store) save(ctx context.Context, doc storage.Document, root *storage.Object) error {
	if err := s.backend.Save(ctx, doc, root); err != nil {
		return persistenceError(doc, "save document", err)
	}
	return nil
}

// vivify walks path from root, creating an empty object at every missing
// or nil intermediate key. Unlike Resolve it mutates, and a blocked walk
// (scalar intermediate, unusable index) is an error rather than not-found.
func vivify(root *storage.Object, path Path, doc storage.Document) (any, error) {
	current := any(root)
	for i, seg := range path {
		switch container := current.(type) {
		case *storage.Object:
			key := seg.String()
			next, ok := container.Get(key)
			if !ok || next == nil {
				child := storage.NewObject()
				container.Set(key, child)
				next = child
			}
			current = next
		case []any:
			if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(container) {
				return nil, invalidPathError(doc, path[:i+1], "sequence requires an in-range index")
			}
			if container[seg.Index] == nil {
				container[seg.Index] = storage.NewObject()
			}
			current = container[seg.Index]
		default:
			return nil, invalidPathError(doc, path[:i+1], "path blocked by a non-container value")
		}
	}
	return current, nil
}

// resolveParent resolves like Resolve but also returns a callback that
// writes a replacement back into the holder of the resolved value. Needed
// when removing from a sequence, which changes its length.
func resolveParent(root *storage.Object, path Path) (any, func(any), bool) {
	current := any(root)
	var replace func(any)
	for _, seg := range path {
		if current == nil {
			return nil, nil, false
		}
		if seg.IsIndex {
			list, ok := current.([]any)
			if !ok || seg.Index < 0 || seg.Index >= len(list) {
				return nil, nil, false
			}
			holder, index := list, seg.Index
			replace = func(v any) { holder[index] = v }
			current = list[seg.Index]
			continue
		}
		obj, ok := current.(*storage.Object)
		if !ok {
			return nil, nil, false
		}
		value, ok := obj.Get(seg.Key)
		if !ok {
			return nil, nil, false
		}
		holder, key := obj, seg.Key
		replace = func(v any) { holder.Set(key, v) }
		current = value
	}
	return current, replace, true
}

func remove(parent any, replace func(any), last Segment) {
	switch container := parent.(type) {
	case []any:
		if replace == nil {
			return
		}
		if last.IsIndex {
			if last.Index >= 0 && last.Index < len(container) {
				replace(append(container[:last.Index:last.Index], container[last.Index+1:]...))
			}
			return
		}
		for i, element := range container {
			if str, ok := element.(string); ok && str == last.Key {
				replace(append(container[:i:i], container[i+1:]...))
				return
			}
		}
	case *storage.Object:
		container.Delete(last.String())
	}
}

func emptyPathError(doc storage.Document) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidPath, "field path is empty", errMetadata(doc, nil))
}

func invalidPathError(doc storage.Document, path Path, message string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidPath, message, errMetadata(doc, path))
}

func targetNotFoundError(doc storage.Document, path Path) error {
	return apperrors.WithMetadata(apperrors.CodeTargetNotFound, "path does not resolve to an object", errMetadata(doc, path))
}

func noActiveEntryError(doc storage.Document, path Path) error {
	return apperrors.WithMetadata(apperrors.CodeNoActiveEntry, "no activated entry found", errMetadata(doc, path))
}

func notActivatableError(doc storage.Document, path Path) error {
	return apperrors.WithMetadata(apperrors.CodeNotActivatable, "entries are not activatable objects", errMetadata(doc, path))
}

func persistenceError(doc storage.Document, message string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodePersistence, message, errMetadata(doc, nil), cause)
}

func errMetadata(doc storage.Document, path Path) map[string]string {
	metadata := map[string]string{"document": string(doc)}
	if len(path) > 0 {
		metadata["path"] = path.String()
	}
	return metadata
}
