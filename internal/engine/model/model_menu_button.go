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

// MenuButtonBase holds the fields shared by live and versioned buttons.
// ParentId references the parent's ButtonId; empty for root buttons.
type MenuButtonBase struct {
	BaseModel
	ButtonId string   `gorm:"column:button_id;type:varchar(32);not null;uniqueIndex" json:"buttonId"`
	ParentId string   `gorm:"column:parent_id;type:varchar(32);index" json:"parentId,omitempty"`
	Type     MenuType `gorm:"column:type;type:varchar(32)" json:"type,omitempty"`
	Name     string   `gorm:"column:name;type:varchar(64);not null" json:"name"`
	ClickKey string   `gorm:"column:click_key;type:varchar(128)" json:"clickKey,omitempty"`
	Url      string   `gorm:"column:url;type:varchar(1024)" json:"url,omitempty"`
	AppId    string   `gorm:"column:app_id;type:varchar(64)" json:"appId,omitempty"`
	PagePath string   `gorm:"column:page_path;type:varchar(255)" json:"pagePath,omitempty"`
	MediaId  string   `gorm:"column:media_id;type:varchar(128)" json:"mediaId,omitempty"`
	Position int      `gorm:"column:position;not null" json:"position"`
	Enabled  bool     `gorm:"column:enabled;not null" json:"enabled"`
}

// Base gives access to the shared fields of either variant.
func (b *MenuButtonBase) Base() *MenuButtonBase {
	return b
}

func (b *MenuButtonBase) IsRoot() bool {
	return b.ParentId == ""
}

// MenuButton is a button of the account's live tree, published directly.
type MenuButton struct {
	MenuButtonBase
	AccountId string `gorm:"column:account_id;type:varchar(64);not null;index" json:"accountId"`
	CreatedBy string `gorm:"column:created_by;type:varchar(64)" json:"createdBy,omitempty"`
}

func (MenuButton) TableName() string {
	return "t_menu_button"
}

// MenuButtonVersion is a button inside a version. OriginalButtonId points at
// the live button it was first copied from.
type MenuButtonVersion struct {
	MenuButtonBase
	VersionId        string `gorm:"column:version_id;type:varchar(32);not null;index" json:"versionId"`
	OriginalButtonId string `gorm:"column:original_button_id;type:varchar(32)" json:"originalButtonId,omitempty"`
}

func (MenuButtonVersion) TableName() string {
	return "t_menu_button_version"
}

// NewMenuButtonVersionFromButton copies the payload of a live button.
// Identity, parent and version are assigned by the caller, which has to
// remap ParentId to the new ids.
func NewMenuButtonVersionFromButton(b *MenuButton) *MenuButtonVersion {
	return &MenuButtonVersion{
		MenuButtonBase: MenuButtonBase{
			Type:     b.Type,
			Name:     b.Name,
			ClickKey: b.ClickKey,
			Url:      b.Url,
			AppId:    b.AppId,
			PagePath: b.PagePath,
			MediaId:  b.MediaId,
			Position: b.Position,
			Enabled:  b.Enabled,
		},
		OriginalButtonId: b.ButtonId,
	}
}

// PositionUpdate moves one button; a nil ParentId keeps the parent and
// a pointer to "" promotes the button to root.
type PositionUpdate struct {
	Position int     `json:"position"`
	ParentId *string `json:"parentId,omitempty"`
}
