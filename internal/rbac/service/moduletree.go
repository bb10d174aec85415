package service

import (
	"cmp"
	"slices"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
)

// BuildModuleTree assembles a forest from a flat module list. Siblings are
// ordered by DisplayOrder then Name. Modules whose parent is not in the list
// are dropped with their subtree, and a module is emitted at most once so a
// corrupt cycle cannot recurse forever.
func BuildModuleTree(modules []domain.Module) []domain.ModuleNode {
	children := make(map[string][]domain.Module, len(modules))
	var roots []domain.Module
	for _, m := range modules {
		if m.ParentID == nil {
			roots = append(roots, m)
			continue
		}
		children[*m.ParentID] = append(children[*m.ParentID], m)
	}

	visited := make(map[string]struct{}, len(modules))
	return buildLevel(roots, children, visited)
}

func buildLevel(level []domain.Module, children map[string][]domain.Module, visited map[string]struct{}) []domain.ModuleNode {
	slices.SortStableFunc(level, func(a, b domain.Module) int {
		return cmp.Or(
			cmp.Compare(a.DisplayOrder, b.DisplayOrder),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.ID, b.ID),
		)
	})

	out := make([]domain.ModuleNode, 0, len(level))
	for _, m := range level {
		if _, seen := visited[m.ID]; seen {
			continue
		}
		visited[m.ID] = struct{}{}
		out = append(out, domain.ModuleNode{
			Module:   m,
			Children: buildLevel(children[m.ID], children, visited),
		})
	}
	return out
}

// hasCycle walks up from proposedParent through parents. It stops after
// len(parents)+1 steps so corrupt data cannot loop it.
func hasCycle(parents map[string]*string, moduleID, proposedParent string) bool {
	if proposedParent == "" {
		return false
	}

	seen := make(map[string]struct{}, len(parents))
	cur := proposedParent
	for range len(parents) + 1 {
		if cur == moduleID {
			return true
		}
		if _, ok := seen[cur]; ok {
			return true
		}
		seen[cur] = struct{}{}

		next, ok := parents[cur]
		if !ok || next == nil {
			return false
		}
		cur = *next
	}
	return true
}
