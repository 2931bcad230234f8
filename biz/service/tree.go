package service

import (
	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

// TreeStore is a pure in-memory index over the asset and component
// collections. It answers parent/child queries in O(1)/O(k) and holds
// no business logic beyond insert/replace/remove by id. Callers own the
// store; it is not safe for concurrent mutation.
type TreeStore struct {
	assets     map[string]*model.Asset
	components map[string]*model.Component

	// child id lists, insertion-ordered
	topLevel map[string][]string // asset id -> component ids with no parent_sub_id
	nested   map[string][]string // component id -> child component ids
}

func NewTreeStore() *TreeStore {
	return &TreeStore{
		assets:     make(map[string]*model.Asset),
		components: make(map[string]*model.Component),
		topLevel:   make(map[string][]string),
		nested:     make(map[string][]string),
	}
}

// Rebuild re-derives the whole index from the backing collections.
func (t *TreeStore) Rebuild(assets []model.Asset, components []model.Component) {
	t.assets = make(map[string]*model.Asset, len(assets))
	t.components = make(map[string]*model.Component, len(components))
	t.topLevel = make(map[string][]string)
	t.nested = make(map[string][]string)

	for i := range assets {
		a := assets[i]
		t.assets[a.AssetID] = &a
	}
	for i := range components {
		c := components[i]
		t.insertComponent(&c)
	}
}

func (t *TreeStore) insertComponent(c *model.Component) {
	t.components[c.ComponentID] = c
	if c.TopLevel() {
		t.topLevel[c.ParentID] = append(t.topLevel[c.ParentID], c.ComponentID)
	} else {
		t.nested[*c.ParentSubID] = append(t.nested[*c.ParentSubID], c.ComponentID)
	}
}

func (t *TreeStore) dropComponentLink(c *model.Component) {
	if c.TopLevel() {
		t.topLevel[c.ParentID] = removeID(t.topLevel[c.ParentID], c.ComponentID)
	} else {
		t.nested[*c.ParentSubID] = removeID(t.nested[*c.ParentSubID], c.ComponentID)
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// UpsertAsset inserts or replaces an asset by id.
func (t *TreeStore) UpsertAsset(a *model.Asset) {
	if a == nil || a.AssetID == "" {
		return
	}
	t.assets[a.AssetID] = a
}

// RemoveAsset drops the asset from the index. Its components stay until
// removed individually; the store is an index, not a cascade.
func (t *TreeStore) RemoveAsset(assetID string) {
	delete(t.assets, assetID)
}

// UpsertComponent inserts or replaces a component by id, re-linking the
// parent index when the component moved.
func (t *TreeStore) UpsertComponent(c *model.Component) {
	if c == nil || c.ComponentID == "" {
		return
	}
	if prev, ok := t.components[c.ComponentID]; ok {
		t.dropComponentLink(prev)
	}
	t.insertComponent(c)
}

// RemoveComponent drops the component from the index.
func (t *TreeStore) RemoveComponent(componentID string) {
	c, ok := t.components[componentID]
	if !ok {
		return
	}
	t.dropComponentLink(c)
	delete(t.components, componentID)
}

func (t *TreeStore) AssetByID(assetID string) (*model.Asset, bool) {
	a, ok := t.assets[assetID]
	return a, ok
}

func (t *TreeStore) ComponentByID(componentID string) (*model.Component, bool) {
	c, ok := t.components[componentID]
	return c, ok
}

// ChildrenOfAsset returns the first-level components of an asset.
func (t *TreeStore) ChildrenOfAsset(assetID string) []*model.Component {
	return t.resolve(t.topLevel[assetID])
}

// ChildrenOfComponent returns the components nested directly under the
// given component.
func (t *TreeStore) ChildrenOfComponent(componentID string) []*model.Component {
	return t.resolve(t.nested[componentID])
}

func (t *TreeStore) resolve(ids []string) []*model.Component {
	out := make([]*model.Component, 0, len(ids))
	for _, id := range ids {
		if c, ok := t.components[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Assets returns every indexed asset.
func (t *TreeStore) Assets() []*model.Asset {
	out := make([]*model.Asset, 0, len(t.assets))
	for _, a := range t.assets {
		out = append(out, a)
	}
	return out
}

// Components returns every indexed component.
func (t *TreeStore) Components() []*model.Component {
	out := make([]*model.Component, 0, len(t.components))
	for _, c := range t.components {
		out = append(out, c)
	}
	return out
}

// Descendants returns the full transitive descendant set of the given
// component, excluding the component itself.
func (t *TreeStore) Descendants(rootComponentID string) []*model.Component {
	resolver := &DescendantResolver{children: t.childrenIndex()}
	return resolver.Descendants(rootComponentID)
}

func (t *TreeStore) childrenIndex() map[string][]*model.Component {
	idx := make(map[string][]*model.Component, len(t.nested))
	for parent, ids := range t.nested {
		idx[parent] = t.resolve(ids)
	}
	return idx
}
