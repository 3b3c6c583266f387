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

package model

import (
	"github.com/go-arcade/wxmenu/pkg/statemachine"
)

type MenuVersionStatus string

const (
	MenuVersionDraft     MenuVersionStatus = "DRAFT"
	MenuVersionPublished MenuVersionStatus = "PUBLISHED"
	MenuVersionArchived  MenuVersionStatus = "ARCHIVED"
)

const (
	EventPublish statemachine.Event = "publish"
	EventArchive statemachine.Event = "archive"
)

func (s MenuVersionStatus) Label() string {
	switch s {
	case MenuVersionDraft:
		return "草稿"
	case MenuVersionPublished:
		return "已发布"
	case MenuVersionArchived:
		return "已归档"
	default:
		return string(s)
	}
}

func (s MenuVersionStatus) IsValid() bool {
	switch s {
	case MenuVersionDraft, MenuVersionPublished, MenuVersionArchived:
		return true
	}
	return false
}

// NewMenuVersionStateMachine creates the version lifecycle machine.
// DRAFT → PUBLISHED | ARCHIVED, PUBLISHED → ARCHIVED, ARCHIVED is terminal.
func NewMenuVersionStateMachine(current MenuVersionStatus) *statemachine.StateMachine[MenuVersionStatus] {
	sm := statemachine.NewWithState(current)
	sm.Allow(MenuVersionDraft, MenuVersionPublished, MenuVersionArchived).
		Allow(MenuVersionPublished, MenuVersionArchived)
	return sm
}
