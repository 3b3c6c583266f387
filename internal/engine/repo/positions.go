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

package repo

import (
	"sort"

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"gorm.io/gorm"
)

// buttonColumns are the payload columns written by Update.
var buttonColumns = []string{
	"parent_id", "type", "name", "click_key", "url", "app_id",
	"page_path", "media_id", "position", "enabled", "updated_at",
}

// applyPositions updates the buttons of scope that exist and skips the
// rest. An update that would make a button its own ancestor is skipped as
// well. It returns how many updates were applied.
func applyPositions(scope func() *gorm.DB, table any, updates map[string]model.PositionUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(updates))
	for id := range updates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rows []struct {
		ButtonId string
		ParentId string
	}
	if err := scope().Model(table).Select("button_id", "parent_id").Find(&rows).Error; err != nil {
		return 0, err
	}
	parents := make(map[string]string, len(rows))
	for _, r := range rows {
		parents[r.ButtonId] = r.ParentId
	}

	applied := 0
	for _, id := range ids {
		if _, ok := parents[id]; !ok {
			continue
		}
		u := updates[id]
		values := map[string]any{"position": u.Position}
		if u.ParentId != nil {
			if createsCycle(parents, id, *u.ParentId) {
				continue
			}
			values["parent_id"] = *u.ParentId
		}
		if err := scope().Model(table).Where("button_id = ?", id).Updates(values).Error; err != nil {
			return applied, err
		}
		if u.ParentId != nil {
			parents[id] = *u.ParentId
		}
		applied++
	}
	return applied, nil
}

// createsCycle reports whether moving id under parentId would put id on
// its own ancestor chain.
func createsCycle(parents map[string]string, id, parentId string) bool {
	seen := make(map[string]struct{}, len(parents))
	for p := parentId; p != ""; p = parents[p] {
		if p == id {
			return true
		}
		if _, loop := seen[p]; loop {
			return true
		}
		seen[p] = struct{}{}
	}
	return false
}
