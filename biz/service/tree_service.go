package service

import (
	"context"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
	"github.com/yi-nology/asset_harbor/biz/model/api"
)

// --------------------- Tree queries ---------------------

// BuildTreeStore loads the full collections and indexes them. Callers
// get a consistent snapshot to run child and descendant queries on.
func (s *Service) BuildTreeStore(ctx context.Context) (*TreeStore, error) {
	assets, err := s.logic.ListAssets(ctx)
	if err != nil {
		return nil, err
	}
	components, err := s.logic.ListAllComponents(ctx)
	if err != nil {
		return nil, err
	}
	store := NewTreeStore()
	store.Rebuild(assets, components)
	return store, nil
}

// GetAssetTree returns one asset with its component hierarchy nested.
func (s *Service) GetAssetTree(ctx context.Context, assetID string) (*api.AssetTree, error) {
	asset, err := s.logic.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	components, err := s.logic.ListComponentsByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	store := NewTreeStore()
	store.Rebuild([]model.Asset{*asset}, components)

	return &api.AssetTree{
		Asset:      assetModelToView(asset),
		Components: buildComponentNodes(store, assetID),
	}, nil
}

func buildComponentNodes(store *TreeStore, assetID string) []*api.ComponentTreeNode {
	visited := make(map[string]bool)
	roots := store.ChildrenOfAsset(assetID)
	nodes := make([]*api.ComponentTreeNode, 0, len(roots))
	for _, c := range roots {
		nodes = append(nodes, buildComponentNode(store, c, visited))
	}
	return nodes
}

// buildComponentNode expands one component depth-first. The visited set
// keeps an accidental parent cycle from recursing forever.
func buildComponentNode(store *TreeStore, component *model.Component, visited map[string]bool) *api.ComponentTreeNode {
	visited[component.ComponentID] = true
	node := &api.ComponentTreeNode{Component: componentModelToView(component)}
	for _, child := range store.ChildrenOfComponent(component.ComponentID) {
		if visited[child.ComponentID] {
			continue
		}
		node.Children = append(node.Children, buildComponentNode(store, child, visited))
	}
	return node
}
