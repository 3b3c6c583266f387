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

package convert

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// ButtonDoc 菜单文档中的一个按钮，子按钮直接嵌套
type ButtonDoc struct {
	Name       string      `json:"name"`
	Type       string      `json:"type,omitempty"`
	ClickKey   string      `json:"clickKey,omitempty"`
	Url        string      `json:"url,omitempty"`
	AppId      string      `json:"appId,omitempty"`
	PagePath   string      `json:"pagePath,omitempty"`
	MediaId    string      `json:"mediaId,omitempty"`
	Enabled    *bool       `json:"enabled,omitempty"`
	SubButtons []ButtonDoc `json:"subButtons,omitempty"`
}

// MenuDocument 离线编辑的菜单文件（JSON 或 YAML）
type MenuDocument struct {
	Buttons []ButtonDoc `json:"buttons"`
}

// ParseMenuDocument 按文件名解析：.yaml/.yml 按 YAML，其余按 JSON
func ParseMenuDocument(name string, data []byte) (*MenuDocument, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		j, err := YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("invalid yaml in %s: %w", name, err)
		}
		data = j
	}
	var doc MenuDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid menu document %s: %w", name, err)
	}
	return &doc, nil
}

// ToButtons 将文档展开为带新 id 的当前菜单按钮，位置沿用文档顺序，
// 未知类型一并报错
func (d *MenuDocument) ToButtons() ([]model.MenuButton, error) {
	var (
		out  []model.MenuButton
		errs []string
		seq  int
	)
	var walk func(docs []ButtonDoc, parentId string)
	walk = func(docs []ButtonDoc, parentId string) {
		for i, doc := range docs {
			seq++
			id := "b" + strconv.Itoa(seq)
			mt, err := model.ParseMenuType(doc.Type)
			if err != nil {
				errs = append(errs, fmt.Sprintf("menu %q: %v", doc.Name, err))
			}
			if mt == "" && len(doc.SubButtons) > 0 {
				mt = model.MenuTypeNone
			}
			enabled := true
			if doc.Enabled != nil {
				enabled = *doc.Enabled
			}
			out = append(out, model.MenuButton{MenuButtonBase: model.MenuButtonBase{
				ButtonId: id,
				ParentId: parentId,
				Type:     mt,
				Name:     strings.TrimSpace(doc.Name),
				ClickKey: strings.TrimSpace(doc.ClickKey),
				Url:      strings.TrimSpace(doc.Url),
				AppId:    strings.TrimSpace(doc.AppId),
				PagePath: strings.TrimSpace(doc.PagePath),
				MediaId:  strings.TrimSpace(doc.MediaId),
				Position: i,
				Enabled:  enabled,
			}})
			walk(doc.SubButtons, id)
		}
	}
	walk(d.Buttons, "")
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs...)
	}
	return out, nil
}

// Preview 按发布时的规则校验文档
func (d *MenuDocument) Preview() (*menu.Preview, error) {
	buttons, err := d.ToButtons()
	if err != nil {
		return nil, err
	}
	return menu.BuildPreview(menu.FromButtons(buttons)), nil
}

// FromTree ToButtons 的逆操作，用于导出已保存的菜单树
func FromTree(tree *menu.Tree) *MenuDocument {
	var build func(nodes []*model.MenuButtonBase) []ButtonDoc
	build = func(nodes []*model.MenuButtonBase) []ButtonDoc {
		docs := make([]ButtonDoc, 0, len(nodes))
		for _, n := range nodes {
			enabled := n.Enabled
			docs = append(docs, ButtonDoc{
				Name:       n.Name,
				Type:       string(n.Type),
				ClickKey:   n.ClickKey,
				Url:        n.Url,
				AppId:      n.AppId,
				PagePath:   n.PagePath,
				MediaId:    n.MediaId,
				Enabled:    &enabled,
				SubButtons: build(tree.Children(n.ButtonId)),
			})
		}
		return docs
	}
	return &MenuDocument{Buttons: build(tree.Roots())}
}
