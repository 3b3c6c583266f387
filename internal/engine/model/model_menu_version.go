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
	"time"

	"gorm.io/datatypes"
)

// MenuVersion is a menu version owning a tree of MenuButtonVersion.
type MenuVersion struct {
	BaseModel
	VersionId   string            `gorm:"column:version_id;type:varchar(32);not null;uniqueIndex" json:"versionId"`
	AccountId   string            `gorm:"column:account_id;type:varchar(64);not null;uniqueIndex:uk_account_version,priority:1" json:"accountId"`
	Version     string            `gorm:"column:version;type:varchar(32);not null;uniqueIndex:uk_account_version,priority:2" json:"version"`
	Description string            `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	Status      MenuVersionStatus `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	PublishedAt *time.Time        `gorm:"column:published_at" json:"publishedAt,omitempty"`
	PublishedBy string            `gorm:"column:published_by;type:varchar(64)" json:"publishedBy,omitempty"`
	CopiedFrom  string            `gorm:"column:copied_from;type:varchar(32)" json:"copiedFrom,omitempty"`
	Snapshot    datatypes.JSON    `gorm:"column:snapshot" json:"snapshot,omitempty"`
	CreatedBy   string            `gorm:"column:created_by;type:varchar(64)" json:"createdBy,omitempty"`

	Buttons []MenuButtonVersion `gorm:"-" json:"buttons,omitempty"`
}

func (MenuVersion) TableName() string {
	return "t_menu_version"
}

func (v *MenuVersion) IsDraft() bool {
	return v.Status == MenuVersionDraft
}

// EnsureDraft returns a StateError unless the version is still editable.
func (v *MenuVersion) EnsureDraft(op string) error {
	if v.IsDraft() {
		return nil
	}
	return &StateError{VersionId: v.VersionId, Status: v.Status, Op: op}
}

// Publish moves a DRAFT version to PUBLISHED and stamps the actor.
// Any other source state is rejected and the version is left untouched.
func (v *MenuVersion) Publish(publishedBy string, at time.Time) error {
	sm := NewMenuVersionStateMachine(v.Status)
	if err := sm.TransitWithEvent(MenuVersionPublished, EventPublish); err != nil {
		return &StateError{VersionId: v.VersionId, Status: v.Status, Op: string(EventPublish), Err: err}
	}
	v.Status = sm.Current()
	v.PublishedAt = &at
	v.PublishedBy = publishedBy
	return nil
}

// Archive moves the version to ARCHIVED from any state. Archiving an
// archived version is a no-op. PublishedAt and PublishedBy are kept.
func (v *MenuVersion) Archive() error {
	if v.Status == MenuVersionArchived {
		return nil
	}
	sm := NewMenuVersionStateMachine(v.Status)
	if err := sm.TransitWithEvent(MenuVersionArchived, EventArchive); err != nil {
		return &StateError{VersionId: v.VersionId, Status: v.Status, Op: string(EventArchive), Err: err}
	}
	v.Status = sm.Current()
	return nil
}
