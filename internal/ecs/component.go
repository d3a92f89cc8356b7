package ecs

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ComponentKey is the runtime key of a component type. Keys are assigned on
// first use and are unique for the lifetime of the process.
type ComponentKey uint32

// keyTable maps Go types to component keys. It is shared by every World so
// that a key means the same type everywhere in the process.
var keyTable = struct {
	sync.RWMutex
	byType map[reflect.Type]ComponentKey
	types  []reflect.Type // index = key; slot 0 unused
}{
	byType: make(map[reflect.Type]ComponentKey),
	types:  []reflect.Type{nil},
}

// KeyOf returns the component key for T.
func KeyOf[T any]() ComponentKey {
	return keyFor(reflect.TypeOf((*T)(nil)).Elem())
}

func keyFor(t reflect.Type) ComponentKey {
	keyTable.RLock()
	k, ok := keyTable.byType[t]
	keyTable.RUnlock()
	if ok {
		return k
	}

	keyTable.Lock()
	defer keyTable.Unlock()
	if k, ok := keyTable.byType[t]; ok {
		return k
	}
	k = ComponentKey(len(keyTable.types))
	keyTable.byType[t] = k
	keyTable.types = append(keyTable.types, t)
	return k
}

// Name returns the Go type name behind the key.
func (k ComponentKey) Name() string {
	keyTable.RLock()
	defer keyTable.RUnlock()
	if k == 0 || int(k) >= len(keyTable.types) {
		return fmt.Sprintf("component(%d)", uint32(k))
	}
	return keyTable.types[k].String()
}

// componentStore holds every component of a World.
// Values are boxed *T so mutable borrows point into the store.
type componentStore struct {
	byEntity map[EntityID]map[ComponentKey]any
	byKey    map[ComponentKey]map[EntityID]struct{}
}

func newComponentStore() *componentStore {
	return &componentStore{
		byEntity: make(map[EntityID]map[ComponentKey]any),
		byKey:    make(map[ComponentKey]map[EntityID]struct{}),
	}
}

// attach opens an empty component row for id.
func (s *componentStore) attach(id EntityID) {
	s.byEntity[id] = make(map[ComponentKey]any)
}

// detach drops id and all of its components.
func (s *componentStore) detach(id EntityID) int {
	row := s.byEntity[id]
	for k := range row {
		delete(s.byKey[k], id)
	}
	delete(s.byEntity, id)
	return len(row)
}

func (s *componentStore) set(id EntityID, k ComponentKey, box any) {
	s.byEntity[id][k] = box
	idx := s.byKey[k]
	if idx == nil {
		idx = make(map[EntityID]struct{})
		s.byKey[k] = idx
	}
	idx[id] = struct{}{}
}

func (s *componentStore) get(id EntityID, k ComponentKey) (any, bool) {
	box, ok := s.byEntity[id][k]
	return box, ok
}

func (s *componentStore) remove(id EntityID, k ComponentKey) bool {
	row := s.byEntity[id]
	if _, ok := row[k]; !ok {
		return false
	}
	delete(row, k)
	delete(s.byKey[k], id)
	return true
}

func (s *componentStore) has(id EntityID, k ComponentKey) bool {
	_, ok := s.byEntity[id][k]
	return ok
}

// keysOf returns the keys held by id in ascending order.
func (s *componentStore) keysOf(id EntityID) []ComponentKey {
	row := s.byEntity[id]
	keys := make([]ComponentKey, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *componentStore) holders(k ComponentKey) map[EntityID]struct{} {
	return s.byKey[k]
}

// unbox downcasts a stored value. The store only ever holds *T under KeyOf[T],
// so a mismatch is a bug in this package.
func unbox[T any](box any) *T {
	p, ok := box.(*T)
	if !ok {
		panic(fmt.Errorf("%w: want *%s, got %T", errUnreachableBoxType, KeyOf[T]().Name(), box))
	}
	return p
}

// derefBox returns a copy of the value a box points to.
func derefBox(box any) any {
	return reflect.ValueOf(box).Elem().Interface()
}
