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

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/metrics"
)

// Publisher is where menus are pushed; the WeChat API in production.
type Publisher interface {
	CreateMenu(ctx context.Context, cred wechat.Credential, m menu.WechatMenu) error
	GetCurrentMenu(ctx context.Context, cred wechat.Credential) (*wechat.SelfMenuInfo, error)
	DeleteMenu(ctx context.Context, cred wechat.Credential) error
	AddConditional(ctx context.Context, cred wechat.Credential, m menu.WechatMenu) (string, error)
	DeleteConditional(ctx context.Context, cred wechat.Credential, menuId string) error
	TryMatch(ctx context.Context, cred wechat.Credential, userId string) (menu.WechatMenu, error)
}

// Alerter receives alerts; notify.Notifier in production.
type Alerter interface {
	Notify(ctx context.Context, title, content string) error
}

type Services struct {
	Account  *AccountService
	Button   *ButtonService
	Version  *VersionService
	Publish  *PublishService
	Platform *PlatformService
	Drift    *DriftService
}

// NewServices builds every service.
func NewServices(
	repos *repo.Repositories,
	uow repo.IUnitOfWork,
	publisher Publisher,
	menuMetrics *metrics.MenuMetrics,
	alerter Alerter,
) *Services {
	accountService := NewAccountService(repos, uow)
	versionService := NewVersionService(repos, uow)

	return &Services{
		Account:  accountService,
		Button:   NewButtonService(repos),
		Version:  versionService,
		Publish:  NewPublishService(repos, uow, versionService, publisher, menuMetrics),
		Platform: NewPlatformService(repos, publisher),
		Drift:    NewDriftService(repos, publisher, menuMetrics, alerter),
	}
}
