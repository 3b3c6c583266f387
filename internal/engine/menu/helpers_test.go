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

var nextTestID uint64

func btn(id, parent string, mt model.MenuType, name string) *model.MenuButtonBase {
	nextTestID++
	return &model.MenuButtonBase{
		BaseModel: model.BaseModel{ID: nextTestID},
		ButtonId:  id,
		ParentId:  parent,
		Type:      mt,
		Name:      name,
		Enabled:   true,
	}
}

func click(id, parent, name, key string) *model.MenuButtonBase {
	b := btn(id, parent, model.MenuTypeClick, name)
	b.ClickKey = key
	return b
}

func view(id, parent, name, url string) *model.MenuButtonBase {
	b := btn(id, parent, model.MenuTypeView, name)
	b.Url = url
	return b
}
