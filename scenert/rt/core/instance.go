package core

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

type InstanceKey struct {
	Asset string
	Id    int
}

func (k InstanceKey) String() string {
	return fmt.Sprintf("%s#%d", k.Asset, k.Id)
}

type Instance struct {
	Transform Transform
	Asset     *Asset
}

// InstanceTable maps instance keys to placed copies of preloaded models.
// Iteration follows insertion order.
type InstanceTable struct {
	assets  map[string]*Asset
	records map[InstanceKey]*Instance
	order   []InstanceKey
}

func NewInstanceTable(assets map[string]*Asset) *InstanceTable {
	if assets == nil {
		assets = map[string]*Asset{}
	}
	return &InstanceTable{
		assets:  assets,
		records: make(map[InstanceKey]*Instance),
	}
}

// Add places asset with an identity transform. Adding an existing key
// resets its transform.
func (t *InstanceTable) Add(asset string, id int) error {
	a, ok := t.assets[asset]
	if !ok {
		return fmt.Errorf("%w: model %q", ErrUnknownAsset, asset)
	}
	key := InstanceKey{Asset: asset, Id: id}
	if _, exists := t.records[key]; !exists {
		t.order = append(t.order, key)
	}
	t.records[key] = &Instance{Transform: IdentityTransform(), Asset: a}
	return nil
}

func (t *InstanceTable) Remove(asset string, id int) {
	key := InstanceKey{Asset: asset, Id: id}
	if _, ok := t.records[key]; !ok {
		return
	}
	delete(t.records, key)
	t.order = slices.DeleteFunc(t.order, func(k InstanceKey) bool { return k == key })
}

func (t *InstanceTable) lookup(asset string, id int) (*Instance, error) {
	inst, ok := t.records[InstanceKey{Asset: asset, Id: id}]
	if !ok {
		return nil, fmt.Errorf("%w: %s#%d", ErrUnknownInstance, asset, id)
	}
	return inst, nil
}

func (t *InstanceTable) SetPosition(asset string, id int, v mgl32.Vec3) error {
	inst, err := t.lookup(asset, id)
	if err != nil {
		return err
	}
	inst.Transform.Position = v
	return nil
}

func (t *InstanceTable) SetScale(asset string, id int, v mgl32.Vec3) error {
	inst, err := t.lookup(asset, id)
	if err != nil {
		return err
	}
	inst.Transform.Scale = v
	return nil
}

func (t *InstanceTable) SetRotation(asset string, id int, v mgl32.Vec3) error {
	inst, err := t.lookup(asset, id)
	if err != nil {
		return err
	}
	inst.Transform.Rotation = v
	return nil
}

func (t *InstanceTable) Get(asset string, id int) (Instance, bool) {
	inst, ok := t.records[InstanceKey{Asset: asset, Id: id}]
	if !ok {
		return Instance{}, false
	}
	return *inst, true
}

func (t *InstanceTable) Len() int {
	return len(t.order)
}

func (t *InstanceTable) HasAsset(name string) bool {
	_, ok := t.assets[name]
	return ok
}

// All yields every instance in insertion order. Each call starts a new
// pass over the current contents.
func (t *InstanceTable) All() iter.Seq2[InstanceKey, Instance] {
	return func(yield func(InstanceKey, Instance) bool) {
		for _, key := range t.order {
			if !yield(key, *t.records[key]) {
				return
			}
		}
	}
}
