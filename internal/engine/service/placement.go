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

package service

import (
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// checkPlacement validates b against the stored tree before it is written.
// tree still holds the previous state of b when b is being updated.
func checkPlacement(b *model.MenuButtonBase, tree *menu.Tree) error {
	if b.ParentId == "" {
		return nil
	}
	if b.ParentId == b.ButtonId || tree.IsDescendant(b.ButtonId, b.ParentId) {
		return model.Validationf("menu %q cannot be moved under itself or its sub buttons", b.Name)
	}
	parent, ok := tree.Get(b.ParentId)
	if !ok {
		return model.NewNotFoundError(resourceButton, b.ParentId)
	}
	if err := menu.ValidateParent(parent); err != nil {
		return err
	}
	if tree.HasChildren(b.ButtonId) {
		return model.Validationf("menu %q has sub buttons and cannot become a sub button", b.Name)
	}
	return nil
}

// nextPosition places a new button after its current siblings.
func nextPosition(tree *menu.Tree, parentId string) int {
	pos := 0
	for _, s := range tree.Siblings(parentId) {
		if s.Position >= pos {
			pos = s.Position + 1
		}
	}
	return pos
}
