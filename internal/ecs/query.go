package ecs

// QueryShape lists the component keys an entity must hold to match a query.
type QueryShape interface {
	Keys() []ComponentKey
}

// Single matches entities holding a T.
type Single[T any] struct{}

// Keys implements QueryShape.
func (Single[T]) Keys() []ComponentKey { return []ComponentKey{KeyOf[T]()} }

// Pair matches entities holding both a T and a U.
type Pair[T, U any] struct{}

// Keys implements QueryShape.
func (Pair[T, U]) Keys() []ComponentKey { return []ComponentKey{KeyOf[T](), KeyOf[U]()} }

// Triple matches entities holding a T, a U and a V.
type Triple[T, U, V any] struct{}

// Keys implements QueryShape.
func (Triple[T, U, V]) Keys() []ComponentKey {
	return []ComponentKey{KeyOf[T](), KeyOf[U](), KeyOf[V]()}
}

// Keys is an ad-hoc shape built from explicit keys, for callers that only
// know component types at runtime (e.g. an editor filter).
type Keys []ComponentKey

// Keys implements QueryShape.
func (k Keys) Keys() []ComponentKey { return k }

// Query returns all entities that hold every key in shape, in ascending id
// order. The result is computed fresh on every call.
func (w *World) Query(shape QueryShape) []EntityID {
	keys := shape.Keys()
	if len(keys) == 0 {
		return nil
	}
	// Use the smallest index as the candidate set.
	smallest := keys[0]
	for _, k := range keys[1:] {
		if len(w.components.holders(k)) < len(w.components.holders(smallest)) {
			smallest = k
		}
	}
	var result []EntityID
	for id := range w.components.holders(smallest) {
		if w.holdsAll(id, keys) {
			result = append(result, id)
		}
	}
	sortIDs(result)
	return result
}

func (w *World) holdsAll(id EntityID, keys []ComponentKey) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	for _, k := range keys {
		if !w.components.has(id, k) {
			return false
		}
	}
	return true
}

// Each1 calls fn with a mutable T for every entity matching Single[T].
// Entities removed or stripped by fn before their turn are skipped.
func Each1[T any](w *World, fn func(EntityID, *T)) {
	kt := KeyOf[T]()
	for _, id := range w.Query(Single[T]{}) {
		bt, ok := w.components.get(id, kt)
		if !ok {
			continue
		}
		fn(id, unbox[T](bt))
	}
}

// Each2 calls fn for every entity matching Pair[A, B].
func Each2[A, B any](w *World, fn func(EntityID, *A, *B)) {
	ka, kb := KeyOf[A](), KeyOf[B]()
	for _, id := range w.Query(Pair[A, B]{}) {
		ba, okA := w.components.get(id, ka)
		bb, okB := w.components.get(id, kb)
		if !okA || !okB {
			continue
		}
		fn(id, unbox[A](ba), unbox[B](bb))
	}
}

// Each3 calls fn for every entity matching Triple[A, B, C].
func Each3[A, B, C any](w *World, fn func(EntityID, *A, *B, *C)) {
	ka, kb, kc := KeyOf[A](), KeyOf[B](), KeyOf[C]()
	for _, id := range w.Query(Triple[A, B, C]{}) {
		ba, okA := w.components.get(id, ka)
		bb, okB := w.components.get(id, kb)
		bc, okC := w.components.get(id, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(id, unbox[A](ba), unbox[B](bb), unbox[C](bc))
	}
}
