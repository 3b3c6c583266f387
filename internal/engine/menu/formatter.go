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
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// WechatButton is one entry of the platform menu payload.
type WechatButton struct {
	Type      string         `json:"type,omitempty"`
	Name      string         `json:"name"`
	Key       string         `json:"key,omitempty"`
	Url       string         `json:"url,omitempty"`
	AppId     string         `json:"appid,omitempty"`
	PagePath  string         `json:"pagepath,omitempty"`
	SubButton []WechatButton `json:"sub_button,omitempty"`
}

// WechatMenu is the request body of menu/create and menu/addconditional.
type WechatMenu struct {
	Button    []WechatButton `json:"button"`
	MatchRule *MatchRule     `json:"matchrule,omitempty"`
}

// ToWechatFormat serializes the enabled part of tree. Disabled nodes and
// their subtrees are skipped at every level; a branch whose children are
// all disabled is emitted as a leaf. No validation happens here.
func ToWechatFormat(tree *Tree) WechatMenu {
	menu := WechatMenu{Button: make([]WechatButton, 0, len(tree.Roots()))}
	for _, root := range tree.Roots() {
		if !root.Enabled {
			continue
		}
		menu.Button = append(menu.Button, FormatButton(root, tree))
	}
	return menu
}

// FormatConditional is ToWechatFormat plus a match rule.
func FormatConditional(tree *Tree, rule MatchRule) WechatMenu {
	menu := ToWechatFormat(tree)
	menu.MatchRule = &rule
	return menu
}

// FormatButton formats node and its enabled descendants.
func FormatButton(node *model.MenuButtonBase, tree *Tree) WechatButton {
	var subs []WechatButton
	for _, child := range tree.Children(node.ButtonId) {
		if child.Enabled {
			subs = append(subs, FormatButton(child, tree))
		}
	}
	if len(subs) > 0 {
		return WechatButton{Name: node.Name, SubButton: subs}
	}

	out := WechatButton{Name: node.Name}
	switch node.Type.Group() {
	case model.GroupKey:
		out.Type = string(node.Type)
		out.Key = node.ClickKey
	case model.GroupView:
		out.Type = string(node.Type)
		out.Url = node.Url
	case model.GroupMiniProgram:
		out.Type = string(node.Type)
		out.Url = node.Url
		out.AppId = node.AppId
		out.PagePath = node.PagePath
	}
	return out
}
