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
	"context"
	"net/http"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// CreateMenu replaces the default menu of the account.
func (c *Client) CreateMenu(ctx context.Context, cred Credential, m menu.WechatMenu) error {
	var resp BaseResponse
	return c.call(ctx, cred, APIMenuCreate, http.MethodPost, "/cgi-bin/menu/create", menu.WechatMenu{Button: m.Button}, &resp)
}

func (c *Client) GetCurrentMenu(ctx context.Context, cred Credential) (*SelfMenuInfo, error) {
	var resp SelfMenuInfo
	if err := c.call(ctx, cred, APIMenuGet, http.MethodGet, "/cgi-bin/get_current_selfmenu_info", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMenu removes the default menu and every conditional menu.
func (c *Client) DeleteMenu(ctx context.Context, cred Credential) error {
	var resp BaseResponse
	return c.call(ctx, cred, APIMenuDelete, http.MethodGet, "/cgi-bin/menu/delete", nil, &resp)
}

// AddConditional creates a personalised menu and returns its menuid.
func (c *Client) AddConditional(ctx context.Context, cred Credential, m menu.WechatMenu) (string, error) {
	if m.MatchRule == nil || m.MatchRule.IsEmpty() {
		return "", model.NewValidationError("matchrule is required for a conditional menu")
	}
	var resp conditionalResponse
	if err := c.call(ctx, cred, APIAddConditional, http.MethodPost, "/cgi-bin/menu/addconditional", m, &resp); err != nil {
		return "", err
	}
	return resp.MenuId, nil
}

func (c *Client) DeleteConditional(ctx context.Context, cred Credential, menuId string) error {
	var resp BaseResponse
	body := map[string]string{"menuid": menuId}
	return c.call(ctx, cred, APIDeleteConditional, http.MethodPost, "/cgi-bin/menu/delconditional", body, &resp)
}

// TryMatch returns the menu the given user would see.
func (c *Client) TryMatch(ctx context.Context, cred Credential, userId string) (menu.WechatMenu, error) {
	var resp tryMatchResponse
	body := map[string]string{"user_id": userId}
	if err := c.call(ctx, cred, APITryMatch, http.MethodPost, "/cgi-bin/menu/trymatch", body, &resp); err != nil {
		return menu.WechatMenu{}, err
	}
	if resp.Button == nil {
		resp.Button = make([]menu.WechatButton, 0)
	}
	return menu.WechatMenu{Button: resp.Button}, nil
}
