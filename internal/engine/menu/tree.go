// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package menu

import (
	"sort"

	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// Tree is an arena over a flat button list. Nodes are indexed by ButtonId
// and children by parent id; siblings are ordered by (Position, ID).
// A node whose parent is missing is treated as a root.
type Tree struct {
	nodes    map[string]*model.MenuButtonBase
	children map[string][]*model.MenuButtonBase
	roots    []*model.MenuButtonBase
}

func NewTree(nodes []*model.MenuButtonBase) *Tree {
	t := &Tree{
		nodes:    make(map[string]*model.MenuButtonBase, len(nodes)),
		children: make(map[string][]*model.MenuButtonBase),
	}
	for _, n := range nodes {
		t.nodes[n.ButtonId] = n
	}
	for _, n := range nodes {
		if n.ParentId == "" || t.nodes[n.ParentId] == nil || n.ParentId == n.ButtonId {
			t.roots = append(t.roots, n)
			continue
		}
		t.children[n.ParentId] = append(t.children[n.ParentId], n)
	}
	sortSiblings(t.roots)
	for _, c := range t.children {
		sortSiblings(c)
	}
	return t
}

// FromButtons builds a tree over live buttons. The tree aliases the slice.
func FromButtons(buttons []model.MenuButton) *Tree {
	nodes := make([]*model.MenuButtonBase, len(buttons))
	for i := range buttons {
		nodes[i] = buttons[i].Base()
	}
	return NewTree(nodes)
}

// FromVersionButtons builds a tree over versioned buttons. The tree aliases the slice.
func FromVersionButtons(buttons []model.MenuButtonVersion) *Tree {
	nodes := make([]*model.MenuButtonBase, len(buttons))
	for i := range buttons {
		nodes[i] = buttons[i].Base()
	}
	return NewTree(nodes)
}

func sortSiblings(s []*model.MenuButtonBase) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Position != s[j].Position {
			return s[i].Position < s[j].Position
		}
		if s[i].ID != s[j].ID {
			return s[i].ID < s[j].ID
		}
		return s[i].ButtonId < s[j].ButtonId
	})
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Get(buttonId string) (*model.MenuButtonBase, bool) {
	n, ok := t.nodes[buttonId]
	return n, ok
}

func (t *Tree) Roots() []*model.MenuButtonBase {
	return t.roots
}

func (t *Tree) Children(buttonId string) []*model.MenuButtonBase {
	return t.children[buttonId]
}

// Siblings returns the nodes sharing parentId; "" means the roots.
func (t *Tree) Siblings(parentId string) []*model.MenuButtonBase {
	if parentId == "" {
		return t.roots
	}
	return t.children[parentId]
}

func (t *Tree) HasChildren(buttonId string) bool {
	return len(t.children[buttonId]) > 0
}

// Depth returns the level of a node whose parent is parentId: 1 for a
// root, 2 for its children and so on. Cycles stop the walk.
func (t *Tree) Depth(parentId string) int {
	depth := 1
	seen := make(map[string]struct{})
	for parentId != "" {
		p, ok := t.nodes[parentId]
		if !ok {
			break
		}
		if _, loop := seen[parentId]; loop {
			break
		}
		seen[parentId] = struct{}{}
		depth++
		parentId = p.ParentId
	}
	return depth
}

// IsDescendant reports whether candidate lies in the subtree of ancestor.
func (t *Tree) IsDescendant(ancestor, candidate string) bool {
	seen := make(map[string]struct{})
	for id := candidate; id != ""; {
		if id == ancestor {
			return true
		}
		if _, loop := seen[id]; loop {
			return false
		}
		seen[id] = struct{}{}
		n, ok := t.nodes[id]
		if !ok {
			return false
		}
		id = n.ParentId
	}
	return false
}

// Walk visits reachable nodes depth first in sibling order.
func (t *Tree) Walk(fn func(node *model.MenuButtonBase, depth int)) {
	var visit func(nodes []*model.MenuButtonBase, depth int)
	seen := make(map[string]struct{}, len(t.nodes))
	visit = func(nodes []*model.MenuButtonBase, depth int) {
		for _, n := range nodes {
			if _, ok := seen[n.ButtonId]; ok {
				continue
			}
			seen[n.ButtonId] = struct{}{}
			fn(n, depth)
			visit(t.children[n.ButtonId], depth+1)
		}
	}
	visit(t.roots, 1)
}

// Unreachable returns the nodes Walk never visits, i.e. nodes caught in a
// parent cycle, in (Position, ID) order.
func (t *Tree) Unreachable() []*model.MenuButtonBase {
	if len(t.nodes) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(t.nodes))
	t.Walk(func(n *model.MenuButtonBase, _ int) {
		seen[n.ButtonId] = struct{}{}
	})
	var out []*model.MenuButtonBase
	for id, n := range t.nodes {
		if _, ok := seen[id]; !ok {
			out = append(out, n)
		}
	}
	sortSiblings(out)
	return out
}

// EnabledOnly returns a tree without disabled nodes and their subtrees.
func (t *Tree) EnabledOnly() *Tree {
	kept := make([]*model.MenuButtonBase, 0, len(t.nodes))
	var visit func(nodes []*model.MenuButtonBase)
	visit = func(nodes []*model.MenuButtonBase) {
		for _, n := range nodes {
			if !n.Enabled {
				continue
			}
			kept = append(kept, n)
			visit(t.children[n.ButtonId])
		}
	}
	visit(t.roots)
	return NewTree(kept)
}
