package service

import (
	"testing"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

func buildStore() *TreeStore {
	store := NewTreeStore()
	store.Rebuild(
		[]model.Asset{
			{AssetID: "a1", Name: "server"},
			{AssetID: "a2", Name: "printer"},
		},
		[]model.Component{
			comp("c1", "a1", nil),
			comp("c2", "a1", strPtr("c1")),
			comp("c3", "a1", strPtr("c2")),
			comp("c4", "a1", nil),
			comp("p1", "a2", nil),
		},
	)
	return store
}

func TestTreeStoreLookups(t *testing.T) {
	store := buildStore()

	if _, ok := store.AssetByID("a1"); !ok {
		t.Fatalf("a1 should be indexed")
	}
	if _, ok := store.AssetByID("missing"); ok {
		t.Fatalf("unknown asset id must miss")
	}
	if _, ok := store.ComponentByID("c3"); !ok {
		t.Fatalf("c3 should be indexed")
	}

	top := store.ChildrenOfAsset("a1")
	if len(top) != 2 || top[0].ComponentID != "c1" || top[1].ComponentID != "c4" {
		t.Fatalf("top-level of a1 = %v", componentIDs(top))
	}
	nested := store.ChildrenOfComponent("c1")
	if len(nested) != 1 || nested[0].ComponentID != "c2" {
		t.Fatalf("children of c1 = %v", componentIDs(nested))
	}
	if len(store.ChildrenOfAsset("a2")) != 1 {
		t.Fatalf("a2 should have one top-level component")
	}
}

func TestTreeStoreDescendants(t *testing.T) {
	store := buildStore()
	ids := componentIDs(store.Descendants("c1"))
	if len(ids) != 2 {
		t.Fatalf("descendants of c1 = %v, want c2 and c3", ids)
	}
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen["c2"] || !seen["c3"] {
		t.Fatalf("descendants of c1 = %v, want c2 and c3", ids)
	}
}

func TestTreeStoreUpsertComponentRelinks(t *testing.T) {
	store := buildStore()

	// move c2 from under c1 to under c4
	moved := comp("c2", "a1", strPtr("c4"))
	store.UpsertComponent(&moved)

	if len(store.ChildrenOfComponent("c1")) != 0 {
		t.Fatalf("c1 should have no children after the move")
	}
	children := store.ChildrenOfComponent("c4")
	if len(children) != 1 || children[0].ComponentID != "c2" {
		t.Fatalf("children of c4 = %v", componentIDs(children))
	}
	// c3 still hangs off c2, so it now lives under c4's subtree
	ids := componentIDs(store.Descendants("c4"))
	if len(ids) != 2 {
		t.Fatalf("descendants of c4 after move = %v", ids)
	}
}

func TestTreeStoreRemoveComponent(t *testing.T) {
	store := buildStore()

	store.RemoveComponent("c1")

	if _, ok := store.ComponentByID("c1"); ok {
		t.Fatalf("c1 should be gone")
	}
	top := store.ChildrenOfAsset("a1")
	if len(top) != 1 || top[0].ComponentID != "c4" {
		t.Fatalf("top-level of a1 after removal = %v", componentIDs(top))
	}
	// removing an unknown id is a no-op
	store.RemoveComponent("c1")
}

func TestTreeStoreRemoveAssetKeepsComponents(t *testing.T) {
	store := buildStore()

	store.RemoveAsset("a1")

	if _, ok := store.AssetByID("a1"); ok {
		t.Fatalf("a1 should be gone")
	}
	// the index does not cascade; components are removed individually
	if _, ok := store.ComponentByID("c1"); !ok {
		t.Fatalf("components must survive asset removal in the index")
	}
}

func componentIDs(list []*model.Component) []string {
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ComponentID)
	}
	return ids
}
