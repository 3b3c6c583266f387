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

// Account is an official account. AppId and AppSecret are exchanged for an access_token.
type Account struct {
	BaseModel
	AccountId   string `gorm:"column:account_id;type:varchar(64);not null;uniqueIndex" json:"accountId"`
	Name        string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	AppId       string `gorm:"column:app_id;type:varchar(64);not null" json:"appId"`
	AppSecret   string `gorm:"column:app_secret;type:varchar(128);not null" json:"-"`
	Description string `gorm:"column:description;type:varchar(512)" json:"description"`
	// PushedMenu is the default menu last accepted by the platform; drift checks compare against it.
	PushedMenu datatypes.JSON `gorm:"column:pushed_menu" json:"-"`
	PushedAt   *time.Time     `gorm:"column:pushed_at" json:"pushedAt,omitempty"`
}

func (Account) TableName() string {
	return "t_account"
}
