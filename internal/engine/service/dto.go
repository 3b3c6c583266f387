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
	"strings"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// AccountRequest creates or updates an account. An empty AppSecret on update
// keeps the stored secret.
type AccountRequest struct {
	AccountId   string `json:"accountId"`
	Name        string `json:"name"`
	AppId       string `json:"appId"`
	AppSecret   string `json:"appSecret"`
	Description string `json:"description"`
}

// ButtonRequest creates or updates a button. A nil pointer field takes the
// default on create and keeps the stored value on update.
type ButtonRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentId *string `json:"parentId"`
	ClickKey string  `json:"clickKey"`
	Url      string  `json:"url"`
	AppId    string  `json:"appId"`
	PagePath string  `json:"pagePath"`
	MediaId  string  `json:"mediaId"`
	Position *int    `json:"position"`
	Enabled  *bool   `json:"enabled"`
}

// apply copies the payload onto b. Type accepts wire codes and enum names.
func (r *ButtonRequest) apply(b *model.MenuButtonBase) error {
	mt, err := model.ParseMenuType(strings.TrimSpace(r.Type))
	if err != nil {
		return model.NewValidationError(err.Error())
	}
	b.Type = mt
	b.Name = strings.TrimSpace(r.Name)
	b.ClickKey = strings.TrimSpace(r.ClickKey)
	b.Url = strings.TrimSpace(r.Url)
	b.AppId = strings.TrimSpace(r.AppId)
	b.PagePath = strings.TrimSpace(r.PagePath)
	b.MediaId = strings.TrimSpace(r.MediaId)
	if r.ParentId != nil {
		b.ParentId = *r.ParentId
	}
	if r.Position != nil {
		b.Position = *r.Position
	}
	if r.Enabled != nil {
		b.Enabled = *r.Enabled
	}
	return nil
}

// CreateVersionRequest creates a version. CopyFrom and FromLive are exclusive.
type CreateVersionRequest struct {
	Description string `json:"description"`
	Version     string `json:"version"`
	CopyFrom    string `json:"copyFrom"`
	FromLive    bool   `json:"fromLive"`
}

type PublishRequest struct {
	PublishedBy string `json:"publishedBy"`
}

type ConditionalRequest struct {
	VersionId string         `json:"versionId"`
	MatchRule menu.MatchRule `json:"matchrule"`
}

// ButtonNode is the nested form of a button returned by the API.
type ButtonNode struct {
	*model.MenuButtonBase
	SubButtons []*ButtonNode `json:"subButtons"`
}

// BuildButtonNodes nests every node of tree under its parent, disabled
// nodes included.
func BuildButtonNodes(tree *menu.Tree) []*ButtonNode {
	var build func(nodes []*model.MenuButtonBase, seen map[string]struct{}) []*ButtonNode
	build = func(nodes []*model.MenuButtonBase, seen map[string]struct{}) []*ButtonNode {
		out := make([]*ButtonNode, 0, len(nodes))
		for _, n := range nodes {
			if _, ok := seen[n.ButtonId]; ok {
				continue
			}
			seen[n.ButtonId] = struct{}{}
			out = append(out, &ButtonNode{
				MenuButtonBase: n,
				SubButtons:     build(tree.Children(n.ButtonId), seen),
			})
		}
		return out
	}
	return build(tree.Roots(), make(map[string]struct{}))
}
