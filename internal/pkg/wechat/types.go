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

package wechat

import (
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

const (
	APIToken             = "token"
	APIMenuCreate        = "menu_create"
	APIMenuGet           = "menu_get"
	APIMenuDelete        = "menu_delete"
	APIAddConditional    = "menu_addconditional"
	APIDeleteConditional = "menu_delconditional"
	APITryMatch          = "menu_trymatch"
)

// access_token invalid or expired
const (
	ErrCodeInvalidCredential = 40001
	ErrCodeInvalidToken      = 40014
	ErrCodeTokenExpired      = 42001
)

// Credential is exchanged for an access_token.
type Credential struct {
	AppId     string
	AppSecret string
}

func CredentialOf(account *model.Account) Credential {
	return Credential{AppId: account.AppId, AppSecret: account.AppSecret}
}

// BaseResponse carries the error fields every endpoint returns.
type BaseResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (r *BaseResponse) base() *BaseResponse {
	return r
}

type tokenResponse struct {
	BaseResponse
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type conditionalResponse struct {
	BaseResponse
	MenuId string `json:"menuid"`
}

type tryMatchResponse struct {
	BaseResponse
	Button []menu.WechatButton `json:"button"`
}

// SelfMenuButton is one entry of get_current_selfmenu_info. Sub buttons
// come wrapped in an object with a list field.
type SelfMenuButton struct {
	Type      string         `json:"type,omitempty"`
	Name      string         `json:"name"`
	Key       string         `json:"key,omitempty"`
	Url       string         `json:"url,omitempty"`
	AppId     string         `json:"appid,omitempty"`
	PagePath  string         `json:"pagepath,omitempty"`
	Value     string         `json:"value,omitempty"`
	SubButton *SelfMenuGroup `json:"sub_button,omitempty"`
}

type SelfMenuGroup struct {
	List []SelfMenuButton `json:"list"`
}

// SelfMenuInfo is the custom menu currently active on the platform.
type SelfMenuInfo struct {
	BaseResponse
	IsMenuOpen   int `json:"is_menu_open"`
	SelfMenuInfo struct {
		Button []SelfMenuButton `json:"button"`
	} `json:"selfmenu_info"`
}

// Menu converts the platform view into the payload shape used by
// menu/create so both can be compared.
func (i *SelfMenuInfo) Menu() menu.WechatMenu {
	out := menu.WechatMenu{Button: make([]menu.WechatButton, 0, len(i.SelfMenuInfo.Button))}
	for _, b := range i.SelfMenuInfo.Button {
		out.Button = append(out.Button, b.toWechat())
	}
	return out
}

func (b SelfMenuButton) toWechat() menu.WechatButton {
	if b.SubButton != nil && len(b.SubButton.List) > 0 {
		wb := menu.WechatButton{Name: b.Name}
		for _, sub := range b.SubButton.List {
			wb.SubButton = append(wb.SubButton, sub.toWechat())
		}
		return wb
	}
	wb := menu.WechatButton{Type: b.Type, Name: b.Name}
	mt := model.MenuType(b.Type)
	switch mt.Group() {
	case model.GroupKey:
		wb.Key = b.Key
	case model.GroupView:
		wb.Url = b.Url
	case model.GroupMiniProgram:
		wb.Url = b.Url
		wb.AppId = b.AppId
		wb.PagePath = b.PagePath
	}
	return wb
}
