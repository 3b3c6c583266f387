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
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu          sync.Mutex
	created     []menu.WechatMenu
	conditional []menu.WechatMenu
	createErr   error
	current     *wechat.SelfMenuInfo
}

func (f *fakePublisher) CreateMenu(_ context.Context, _ wechat.Credential, m menu.WechatMenu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, m)
	return nil
}

func (f *fakePublisher) GetCurrentMenu(context.Context, wechat.Credential) (*wechat.SelfMenuInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return nil, errors.New("no menu")
	}
	return f.current, nil
}

func (f *fakePublisher) DeleteMenu(context.Context, wechat.Credential) error {
	return nil
}

func (f *fakePublisher) AddConditional(_ context.Context, _ wechat.Credential, m menu.WechatMenu) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conditional = append(f.conditional, m)
	return "menu-1", nil
}

func (f *fakePublisher) DeleteConditional(context.Context, wechat.Credential, string) error {
	return nil
}

func (f *fakePublisher) TryMatch(context.Context, wechat.Credential, string) (menu.WechatMenu, error) {
	return menu.WechatMenu{Button: make([]menu.WechatButton, 0)}, nil
}

func (f *fakePublisher) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeAlerter struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (a *fakeAlerter) Notify(_ context.Context, title, content string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.titles = append(a.titles, title)
	a.bodies = append(a.bodies, content)
	return nil
}

type fixture struct {
	svc       *Services
	repos     *repo.Repositories
	publisher *fakePublisher
	alerter   *fakeAlerter
	account   *model.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, err := database.NewManager(database.Database{
		Driver:      database.DriverSQLite,
		AutoMigrate: true,
		SQLite:      database.SQLiteConfig{Path: filepath.Join(t.TempDir(), "wxmenu.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	db := database.NewDatabaseAdapter(m)
	c := cache.NewLocalCache(1 << 20)
	repos := repo.NewRepositories(db, c)
	publisher := &fakePublisher{}
	alerter := &fakeAlerter{}
	svc := NewServices(repos, repo.NewUnitOfWork(db, c), publisher, nil, alerter)

	account, err := svc.Account.Create(context.Background(), &AccountRequest{
		AccountId: "acc-1", Name: "demo", AppId: "wx-demo", AppSecret: "secret",
	})
	require.NoError(t, err)
	return &fixture{svc: svc, repos: repos, publisher: publisher, alerter: alerter, account: account}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func clickReq(name, key string) *ButtonRequest {
	return &ButtonRequest{Name: name, Type: "click", ClickKey: key}
}

// draftWithMenu creates a draft holding one click root and one branch
// root with a view child.
func (f *fixture) draftWithMenu(t *testing.T) *model.MenuVersion {
	t.Helper()
	ctx := context.Background()
	v, err := f.svc.Version.Create(ctx, f.account.AccountId, "alice", &CreateVersionRequest{Description: "d"})
	require.NoError(t, err)

	_, err = f.svc.Version.CreateButton(ctx, f.account.AccountId, v.VersionId, clickReq("今日歌曲", "V1001"))
	require.NoError(t, err)
	branch, err := f.svc.Version.CreateButton(ctx, f.account.AccountId, v.VersionId, &ButtonRequest{Name: "菜单", Type: "none"})
	require.NoError(t, err)
	_, err = f.svc.Version.CreateButton(ctx, f.account.AccountId, v.VersionId, &ButtonRequest{
		Name: "搜索", Type: "view", Url: "https://www.soso.com/", ParentId: strPtr(branch.ButtonId),
	})
	require.NoError(t, err)
	return v
}
