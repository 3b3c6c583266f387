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
	"context"
	"strings"
	"time"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/log"
)

// PlatformService works on the platform-side menu directly.
type PlatformService struct {
	repos     *repo.Repositories
	publisher Publisher
}

func NewPlatformService(repos *repo.Repositories, publisher Publisher) *PlatformService {
	return &PlatformService{repos: repos, publisher: publisher}
}

func (s *PlatformService) credential(ctx context.Context, accountId string) (wechat.Credential, error) {
	account, err := s.repos.Account.Get(ctx, accountId)
	if err != nil {
		return wechat.Credential{}, wrapRepoErr(err, "get account", resourceAccount, accountId)
	}
	return wechat.CredentialOf(account), nil
}

func (s *PlatformService) GetMenu(ctx context.Context, accountId string) (*wechat.SelfMenuInfo, error) {
	cred, err := s.credential(ctx, accountId)
	if err != nil {
		return nil, err
	}
	return s.publisher.GetCurrentMenu(ctx, cred)
}

// DeleteMenu removes every menu of the account on the platform. Version
// states are not touched; the empty menu becomes the drift baseline.
func (s *PlatformService) DeleteMenu(ctx context.Context, accountId string) error {
	cred, err := s.credential(ctx, accountId)
	if err != nil {
		return err
	}
	if err := s.publisher.DeleteMenu(ctx, cred); err != nil {
		return err
	}
	recordPushed(ctx, s.repos, accountId, menu.WechatMenu{}, time.Now())
	log.WithContext(ctx).Infow("platform menu deleted", "accountId", accountId)
	return nil
}

// PublishConditional publishes a personalised menu built from a version,
// or from the live tree when no version is given.
func (s *PlatformService) PublishConditional(ctx context.Context, accountId string, req *ConditionalRequest) (string, error) {
	if err := req.MatchRule.Validate(); err != nil {
		return "", err
	}
	cred, err := s.credential(ctx, accountId)
	if err != nil {
		return "", err
	}

	var tree *menu.Tree
	if req.VersionId != "" {
		if _, err := s.repos.Version.Get(ctx, accountId, req.VersionId); err != nil {
			return "", wrapRepoErr(err, "get version", resourceVersion, req.VersionId)
		}
		buttons, err := s.repos.ButtonVersion.ListByVersion(ctx, req.VersionId)
		if err != nil {
			return "", wrapRepoErr(err, "list version buttons", resourceButton, "")
		}
		tree = menu.FromVersionButtons(buttons)
	} else {
		buttons, err := s.repos.Button.ListByAccount(ctx, accountId)
		if err != nil {
			return "", wrapRepoErr(err, "list buttons", resourceButton, "")
		}
		tree = menu.FromButtons(buttons)
	}

	if err := menu.BuildPreview(tree).Err(); err != nil {
		return "", err
	}
	menuId, err := s.publisher.AddConditional(ctx, cred, menu.FormatConditional(tree, req.MatchRule))
	if err != nil {
		return "", err
	}
	log.WithContext(ctx).Infow("conditional menu published", "accountId", accountId, "menuId", menuId, "versionId", req.VersionId)
	return menuId, nil
}

func (s *PlatformService) DeleteConditional(ctx context.Context, accountId, menuId string) error {
	if strings.TrimSpace(menuId) == "" {
		return model.NewValidationError("menuId is required")
	}
	cred, err := s.credential(ctx, accountId)
	if err != nil {
		return err
	}
	return s.publisher.DeleteConditional(ctx, cred, menuId)
}

func (s *PlatformService) TryMatch(ctx context.Context, accountId, userId string) (menu.WechatMenu, error) {
	if strings.TrimSpace(userId) == "" {
		return menu.WechatMenu{}, model.NewValidationError("userId is required")
	}
	cred, err := s.credential(ctx, accountId)
	if err != nil {
		return menu.WechatMenu{}, err
	}
	return s.publisher.TryMatch(ctx, cred, userId)
}
