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
	"errors"

	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// Preview is the pre-publish view: the platform payload plus validation results.
type Preview struct {
	Menu         WechatMenu `json:"menu"`
	Valid        bool       `json:"valid"`
	Errors       []string   `json:"errors"`
	ButtonCount  int        `json:"buttonCount"`
	EnabledCount int        `json:"enabledCount"`
}

// BuildPreview formats tree and collects every problem that would block a
// publish. Unlike ValidateMenuStructure it flags a tree without enabled
// roots.
func BuildPreview(tree *Tree) *Preview {
	enabled := tree.EnabledOnly()
	p := &Preview{
		Menu:         ToWechatFormat(tree),
		Errors:       make([]string, 0),
		ButtonCount:  tree.Len(),
		EnabledCount: enabled.Len(),
	}
	if len(enabled.Roots()) == 0 {
		p.Errors = append(p.Errors, MsgNoEnabledMenus)
	}
	var verr *model.ValidationError
	if err := ValidateTree(tree); errors.As(err, &verr) {
		p.Errors = append(p.Errors, verr.Messages...)
	}
	p.Valid = len(p.Errors) == 0
	return p
}

// Err returns the preview problems as a ValidationError, or nil.
func (p *Preview) Err() error {
	if p.Valid {
		return nil
	}
	return model.NewValidationError(p.Errors...)
}
