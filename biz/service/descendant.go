package service

import (
	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

// DescendantResolver computes the transitive descendant set of a
// component, used so that deleting a component also deletes everything
// nested beneath it. Traversal is breadth-first over an in-memory
// snapshot; a visited set keyed by id bounds the work at O(n) even if
// the parent links unexpectedly form a cycle.
type DescendantResolver struct {
	children map[string][]*model.Component
}

// NewDescendantResolver indexes the component snapshot by parent_sub_id.
func NewDescendantResolver(components []model.Component) *DescendantResolver {
	children := make(map[string][]*model.Component)
	for i := range components {
		c := &components[i]
		if c.TopLevel() {
			continue
		}
		parent := *c.ParentSubID
		children[parent] = append(children[parent], c)
	}
	return &DescendantResolver{children: children}
}

// Descendants returns every component reachable from root through
// parent_sub_id links. The root itself is not part of the result: the
// caller deletes it explicitly and needs to tell it apart from the
// side-effect deletions. No ordering is guaranteed.
func (r *DescendantResolver) Descendants(rootComponentID string) []*model.Component {
	if rootComponentID == "" {
		return nil
	}

	visited := map[string]bool{rootComponentID: true}
	queue := make([]string, 0, len(r.children[rootComponentID]))
	var result []*model.Component

	for _, child := range r.children[rootComponentID] {
		if !visited[child.ComponentID] {
			visited[child.ComponentID] = true
			queue = append(queue, child.ComponentID)
			result = append(result, child)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range r.children[current] {
			if visited[child.ComponentID] {
				continue
			}
			visited[child.ComponentID] = true
			queue = append(queue, child.ComponentID)
			result = append(result, child)
		}
	}

	return result
}

// DescendantIDs is Descendants projected to component ids.
func (r *DescendantResolver) DescendantIDs(rootComponentID string) []string {
	descendants := r.Descendants(rootComponentID)
	ids := make([]string, 0, len(descendants))
	for _, c := range descendants {
		ids = append(ids, c.ComponentID)
	}
	return ids
}
