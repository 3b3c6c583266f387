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
	"fmt"
	"testing"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// platformMenu mirrors m the way get_current_selfmenu_info reports it.
func platformMenu(m menu.WechatMenu) *wechat.SelfMenuInfo {
	var convert func(b menu.WechatButton) wechat.SelfMenuButton
	convert = func(b menu.WechatButton) wechat.SelfMenuButton {
		out := wechat.SelfMenuButton{Type: b.Type, Name: b.Name, Key: b.Key, Url: b.Url, AppId: b.AppId, PagePath: b.PagePath}
		if len(b.SubButton) > 0 {
			out.SubButton = &wechat.SelfMenuGroup{}
			for _, sub := range b.SubButton {
				out.SubButton.List = append(out.SubButton.List, convert(sub))
			}
		}
		return out
	}
	info := &wechat.SelfMenuInfo{IsMenuOpen: 1}
	for _, b := range m.Button {
		info.SelfMenuInfo.Button = append(info.SelfMenuInfo.Button, convert(b))
	}
	return info
}

func TestDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// nothing published yet
	report, err := f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	assert.Nil(t, report)

	v := f.draftWithMenu(t)
	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.NoError(t, err)

	f.publisher.current = platformMenu(f.publisher.created[0])
	report, err = f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.False(t, report.Drifted)
	require.NoError(t, f.svc.Drift.CheckAll(ctx))
	assert.Empty(t, f.alerter.titles)

	changed := f.publisher.created[0]
	changed.Button = changed.Button[:1]
	f.publisher.current = platformMenu(changed)
	report, err = f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	assert.True(t, report.Drifted)
	assert.Equal(t, v.VersionId, report.VersionId)
	require.Len(t, f.alerter.bodies, 1)
	assert.Contains(t, f.alerter.bodies[0], "acc-1")
	assert.Contains(t, f.alerter.bodies[0], report.Version)
}

func TestDrift_CheckAllJoinsErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.NoError(t, err)

	// fake has no platform menu and fails
	err = f.svc.Drift.CheckAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acc-1")
}

func TestPublishConditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.draftWithMenu(t)

	_, err := f.svc.Platform.PublishConditional(ctx, "acc-1", &ConditionalRequest{VersionId: v.VersionId})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))

	menuId, err := f.svc.Platform.PublishConditional(ctx, "acc-1", &ConditionalRequest{
		VersionId: v.VersionId,
		MatchRule: menu.MatchRule{TagId: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "menu-1", menuId)
	require.Len(t, f.publisher.conditional, 1)
	require.NotNil(t, f.publisher.conditional[0].MatchRule)
	assert.Equal(t, "2", f.publisher.conditional[0].MatchRule.TagId)

	_, err = f.svc.Platform.TryMatch(ctx, "acc-1", "")
	assert.True(t, errors.As(err, &verr))
	m, err := f.svc.Platform.TryMatch(ctx, "acc-1", "openid")
	require.NoError(t, err)
	assert.NotNil(t, m.Button)

	err = f.svc.Platform.DeleteConditional(ctx, "missing", "1")
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestDrift_FollowsLivePublishAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.NoError(t, err)

	_, err = f.svc.Button.Create(ctx, "acc-1", "alice", clickReq("live", "k_live"))
	require.NoError(t, err)
	sent, err := f.svc.Publish.PublishLive(ctx, "acc-1", "alice")
	require.NoError(t, err)

	f.publisher.current = platformMenu(*sent)
	report, err := f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.False(t, report.Drifted)
	assert.Equal(t, v.VersionId, report.VersionId)
	require.NoError(t, f.svc.Drift.CheckAll(ctx))
	assert.Empty(t, f.alerter.titles)

	// 平台仍是版本菜单，说明实时发布之后被人改回
	f.publisher.current = platformMenu(f.publisher.created[0])
	report, err = f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	assert.True(t, report.Drifted)
	require.Len(t, f.alerter.titles, 1)

	require.NoError(t, f.svc.Platform.DeleteMenu(ctx, "acc-1"))
	f.publisher.current = &wechat.SelfMenuInfo{}
	report, err = f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	assert.False(t, report.Drifted)
	assert.Len(t, f.alerter.titles, 1)
}

func TestDrift_LiveOnlyAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Button.Create(ctx, "acc-1", "alice", clickReq("live", "k_live"))
	require.NoError(t, err)
	sent, err := f.svc.Publish.PublishLive(ctx, "acc-1", "alice")
	require.NoError(t, err)

	f.publisher.current = &wechat.SelfMenuInfo{}
	report, err := f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.Drifted)
	assert.Empty(t, report.VersionId)
	require.Len(t, f.alerter.bodies, 1)
	assert.Contains(t, f.alerter.bodies[0], "实时菜单")

	f.publisher.current = platformMenu(*sent)
	report, err = f.svc.Drift.Check(ctx, f.account)
	require.NoError(t, err)
	assert.False(t, report.Drifted)
}

func TestDrift_CheckAllManyAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := range driftConcurrency * 2 {
		_, err := f.svc.Account.Create(ctx, &AccountRequest{
			AccountId: fmt.Sprintf("acc-extra-%d", i), Name: "extra", AppId: "wx", AppSecret: "s",
		})
		require.NoError(t, err)
	}
	v := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.NoError(t, err)

	// 只有 acc-1 有推送记录，其余账号跳过；平台菜单不同，产生一次告警
	f.publisher.current = &wechat.SelfMenuInfo{}
	require.NoError(t, f.svc.Drift.CheckAll(ctx))
	require.Len(t, f.alerter.titles, 1)
}
