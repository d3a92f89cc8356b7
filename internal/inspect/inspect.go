// Package inspect renders entities as JSON for editor inspectors and
// debug dumps.
package inspect

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"

	"emoji-engine/internal/ecs"
)

// Entity is the inspector view of one entity.
type Entity struct {
	ID         ecs.EntityID               `json:"id"`
	Generation uint64                     `json:"generation"`
	Active     bool                       `json:"active"`
	Components map[string]json.RawMessage `json:"components"`
}

// State is the inspector view of a whole world.
type State struct {
	Systems  []string  `json:"systems"`
	Entities []*Entity `json:"entities"`
}

// Encode marshals a single component value.
func Encode(comp any) ([]byte, error) {
	bz, err := json.Marshal(comp)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}

// Decode unmarshals a component value previously produced by Encode.
func Decode[T any](bz []byte) (T, error) {
	comp := new(T)
	if err := json.Unmarshal(bz, comp); err != nil {
		return *comp, eris.Wrap(err, "")
	}
	return *comp, nil
}

// Snapshot captures one entity.
func Snapshot(w *ecs.World, id ecs.EntityID) (*Entity, error) {
	e, err := w.Entity(id)
	if err != nil {
		return nil, err
	}
	ref, err := w.Reference(id)
	if err != nil {
		return nil, err
	}
	keys, err := w.ComponentKeys(id)
	if err != nil {
		return nil, err
	}
	out := &Entity{
		ID:         id,
		Generation: ref.Generation,
		Active:     e.Active,
		Components: make(map[string]json.RawMessage, len(keys)),
	}
	for _, k := range keys {
		v, err := w.ComponentValue(id, k)
		if err != nil {
			return nil, err
		}
		data, err := Encode(v)
		if err != nil {
			return nil, eris.Wrapf(err, "encode %s of entity %d", k.Name(), id)
		}
		out.Components[k.Name()] = data
	}
	return out, nil
}

// SnapshotWorld captures every live entity in ascending id order.
func SnapshotWorld(w *ecs.World) (*State, error) {
	ids := w.Entities()
	state := &State{Systems: w.Systems(), Entities: make([]*Entity, 0, len(ids))}
	for _, id := range ids {
		e, err := Snapshot(w, id)
		if err != nil {
			return nil, err
		}
		state.Entities = append(state.Entities, e)
	}
	return state, nil
}

// WriteWorld writes an indented JSON snapshot of w to out.
func WriteWorld(out io.Writer, w *ecs.World) error {
	state, err := SnapshotWorld(w)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return eris.Wrap(err, "write world snapshot")
	}
	return nil
}
