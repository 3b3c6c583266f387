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
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// Limits enforced by the official-account menu API.
const (
	MaxRootButtons = 3
	MaxSubButtons  = 5
	MaxDepth       = 2
	MaxNameLength  = 60
	MaxKeyLength   = 128
	MaxUrlLength   = 1024
)

// MsgNoEnabledMenus is reported by previews of trees without enabled roots.
const MsgNoEnabledMenus = "no enabled menus"

// ValidateMenuButtonVersion checks one versioned button and returns the
// first violation as a *model.ValidationError.
func ValidateMenuButtonVersion(b *model.MenuButtonBase) error {
	if msg := checkButton(b); msg != "" {
		return model.NewValidationError(msg)
	}
	return nil
}

// ValidateMenuButton checks one live button, including its position in
// tree. The button does not need to be part of tree yet. A nil tree skips
// the hierarchy checks.
func ValidateMenuButton(b *model.MenuButtonBase, tree *Tree) error {
	if msg := checkButton(b); msg != "" {
		return model.NewValidationError(msg)
	}
	if tree == nil {
		return nil
	}
	if depth := tree.Depth(b.ParentId); depth > MaxDepth {
		return model.Validationf("menu depth %d exceeds the limit of %d levels", depth, MaxDepth)
	}
	if b.Type.IsAction() && tree.HasChildren(b.ButtonId) {
		return model.Validationf("menu %q has sub buttons and must not have action type %s", b.Name, b.Type.Label())
	}
	if b.ParentId != "" {
		if n := siblingCount(tree, b); n > MaxSubButtons {
			return model.Validationf("sub button count %d exceeds the limit of %d", n, MaxSubButtons)
		}
	}
	return nil
}

// ValidateParent checks that parent may receive a sub button.
func ValidateParent(parent *model.MenuButtonBase) error {
	if !parent.IsRoot() {
		return model.Validationf("menu depth exceeds the limit of %d levels", MaxDepth)
	}
	if parent.Type.IsAction() {
		return model.Validationf("menu %q has action type %s and cannot have sub buttons", parent.Name, parent.Type.Label())
	}
	return nil
}

// ValidateMenuStructure reports every structural problem of roots as a
// list. It never fails; an empty list means the structure is acceptable.
func ValidateMenuStructure(roots []*model.MenuButtonBase, tree *Tree) []string {
	errs := make([]string, 0)
	if len(roots) > MaxRootButtons {
		errs = append(errs, fmt.Sprintf("root menu count %d exceeds the limit of %d", len(roots), MaxRootButtons))
	}
	for _, root := range roots {
		children := tree.Children(root.ButtonId)
		if len(children) > MaxSubButtons {
			errs = append(errs, fmt.Sprintf("menu %q has %d sub buttons, exceeding the limit of %d", root.Name, len(children), MaxSubButtons))
		}
	}
	for _, root := range roots {
		if len(tree.Children(root.ButtonId)) > 0 && root.Type.IsAction() {
			errs = append(errs, fmt.Sprintf("menu %q has sub buttons and must not have action type %s", root.Name, root.Type.Label()))
		}
	}
	return errs
}

// ValidateTree runs the structure check and the per-button checks on the
// enabled part of tree and folds everything into one ValidationError.
// Nodes cut off from the roots by a parent cycle are reported too.
// Branch nodes only need a valid name since their type is not published.
func ValidateTree(tree *Tree) error {
	var msgs []string
	for _, n := range tree.Unreachable() {
		msgs = append(msgs, fmt.Sprintf("menu %q is not reachable from any root menu, its parent chain forms a cycle", n.Name))
	}

	enabled := tree.EnabledOnly()
	msgs = append(msgs, ValidateMenuStructure(enabled.Roots(), enabled)...)

	enabled.Walk(func(n *model.MenuButtonBase, depth int) {
		if depth > MaxDepth {
			msgs = append(msgs, fmt.Sprintf("menu %q is nested deeper than %d levels", n.Name, MaxDepth))
			return
		}
		var msg string
		if enabled.HasChildren(n.ButtonId) {
			msg = checkName(n.Name)
		} else {
			msg = checkButton(n)
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
	})

	if len(msgs) == 0 {
		return nil
	}
	return model.NewValidationError(msgs...)
}

func siblingCount(tree *Tree, b *model.MenuButtonBase) int {
	siblings := tree.Siblings(b.ParentId)
	n := len(siblings)
	for _, s := range siblings {
		if s.ButtonId == b.ButtonId {
			return n
		}
	}
	return n + 1
}

// checkButton returns the first violation message, or "".
func checkButton(b *model.MenuButtonBase) string {
	if msg := checkName(b.Name); msg != "" {
		return msg
	}
	if b.Type.IsAbsent() && b.ParentId == "" {
		return "root menu must have a type"
	}
	if !b.Type.IsAbsent() && !b.Type.IsValid() {
		return fmt.Sprintf("unknown menu type %q", string(b.Type))
	}

	label := b.Type.Label()
	switch b.Type.Group() {
	case model.GroupKey:
		if strings.TrimSpace(b.ClickKey) == "" {
			return fmt.Sprintf("click key is required for menu type %s", label)
		}
		if utf8.RuneCountInString(b.ClickKey) > MaxKeyLength {
			return fmt.Sprintf("click key for menu type %s must not exceed %d characters", label, MaxKeyLength)
		}
	case model.GroupView:
		if strings.TrimSpace(b.Url) == "" {
			return fmt.Sprintf("url is required for menu type %s", label)
		}
		if utf8.RuneCountInString(b.Url) > MaxUrlLength {
			return fmt.Sprintf("url for menu type %s must not exceed %d characters", label, MaxUrlLength)
		}
		if !isWellFormedURL(b.Url) {
			return fmt.Sprintf("url %q for menu type %s is not a valid http(s) url", b.Url, label)
		}
	case model.GroupMiniProgram:
		if strings.TrimSpace(b.Url) == "" {
			return fmt.Sprintf("url is required for menu type %s", label)
		}
		if strings.TrimSpace(b.AppId) == "" {
			return fmt.Sprintf("appid is required for menu type %s", label)
		}
		if strings.TrimSpace(b.PagePath) == "" {
			return fmt.Sprintf("pagepath is required for menu type %s", label)
		}
	}
	return ""
}

func checkName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "menu name must not be empty"
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Sprintf("menu name must not exceed %d characters", MaxNameLength)
	}
	return ""
}

func isWellFormedURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
