package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ComponentKeys returns the keys held by id in ascending order.
func (w *World) ComponentKeys(id EntityID) ([]ComponentKey, error) {
	if _, ok := w.entities[id]; !ok {
		return nil, eris.Wrap(&EntityNotFoundError{ID: id}, "component keys")
	}
	return w.components.keysOf(id), nil
}

// ComponentValue returns a copy of the component stored under k, for
// inspectors that only know the key.
func (w *World) ComponentValue(id EntityID, k ComponentKey) (any, error) {
	if _, ok := w.entities[id]; !ok {
		return nil, eris.Wrap(&EntityNotFoundError{ID: id}, "component value")
	}
	box, ok := w.components.get(id, k)
	if !ok {
		return nil, eris.Wrap(&ComponentNotFoundError{ID: id, Key: k}, "component value")
	}
	return derefBox(box), nil
}

type componentNames []ComponentKey

func (c componentNames) MarshalLogArray(arr zapcore.ArrayEncoder) error {
	for _, k := range c {
		arr.AppendString(k.Name())
	}
	return nil
}

// LogEntity logs the components held by id at the given level.
func (w *World) LogEntity(level zapcore.Level, id EntityID) error {
	e, ok := w.entities[id]
	if !ok {
		return eris.Wrap(&EntityNotFoundError{ID: id}, "log entity")
	}
	w.log.Check(level, "entity").Write(
		zap.Uint64("entity_id", uint64(id)),
		zap.Bool("active", e.Active),
		zap.Uint64("generation", w.generations[id].Generation),
		zap.Array("components", componentNames(w.components.keysOf(id))),
	)
	return nil
}

// LogWorld logs entity counts and the system schedule at the given level.
func (w *World) LogWorld(level zapcore.Level) {
	w.log.Check(level, "world").Write(
		zap.Int("total_entities", len(w.entities)),
		zap.Int("tombstones", len(w.generations)-len(w.entities)),
		zap.Strings("systems", w.systems.Names()),
	)
}
