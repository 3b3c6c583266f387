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
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/safe"
	"golang.org/x/sync/errgroup"
)

// DriftReport compares the platform menu with the last pushed menu.
type DriftReport struct {
	AccountId string `json:"accountId"`
	VersionId string `json:"versionId"`
	Version   string `json:"version"`
	Drifted   bool   `json:"drifted"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
}

// DriftService compares the platform menu of each account with the menu
// this service last pushed to it.
type DriftService struct {
	repos     *repo.Repositories
	publisher Publisher
	metrics   *metrics.MenuMetrics
	alerter   Alerter
}

func NewDriftService(repos *repo.Repositories, publisher Publisher, m *metrics.MenuMetrics, alerter Alerter) *DriftService {
	return &DriftService{repos: repos, publisher: publisher, metrics: m, alerter: alerter}
}

// driftConcurrency bounds how many accounts are checked at once.
const driftConcurrency = 4

// CheckAll checks every account. A failing account does not stop the
// others; all failures are returned joined.
func (s *DriftService) CheckAll(ctx context.Context) error {
	accounts, err := s.repos.Account.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	var (
		mu      sync.Mutex
		errs    []error
		drifted int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(driftConcurrency)
	for i := range accounts {
		account := &accounts[i]
		g.Go(func() error {
			err := safe.DoErr(func() error {
				report, err := s.Check(gctx, account)
				if report != nil && report.Drifted {
					mu.Lock()
					drifted++
					mu.Unlock()
				}
				return err
			})
			if err != nil {
				log.WithContext(gctx).Errorw("drift check failed", "accountId", account.AccountId, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("account %s: %w", account.AccountId, err))
				mu.Unlock()
			}
			// one failing account does not cancel the others
			return nil
		})
	}
	_ = g.Wait()
	log.WithContext(ctx).Infow("drift check finished", "accounts", len(accounts), "drifted", drifted, "failed", len(errs))
	return errors.Join(errs...)
}

// Check compares the platform menu of one account with the menu last
// pushed by this service, falling back to the snapshot of the current
// published version. It returns nil, nil when there is nothing to compare.
func (s *DriftService) Check(ctx context.Context, account *model.Account) (*DriftReport, error) {
	fresh, err := s.repos.Account.Get(ctx, account.AccountId)
	if err != nil {
		return nil, wrapRepoErr(err, "get account", resourceAccount, account.AccountId)
	}

	current, err := s.repos.Version.FindCurrentPublishedVersion(ctx, account.AccountId)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("find current version: %w", err)
	}
	if err != nil {
		current = nil
	}

	baseline := fresh.PushedMenu
	if len(baseline) == 0 && current != nil {
		baseline = current.Snapshot
	}
	if len(baseline) == 0 {
		return nil, nil
	}

	info, err := s.publisher.GetCurrentMenu(ctx, wechat.CredentialOf(fresh))
	if err != nil {
		return nil, err
	}

	var expected menu.WechatMenu
	if err := sonic.Unmarshal(baseline, &expected); err != nil {
		return nil, fmt.Errorf("decode pushed menu of %s: %w", account.AccountId, err)
	}

	want, err := canonicalButtons(expected.Button)
	if err != nil {
		return nil, err
	}
	got, err := canonicalButtons(info.Menu().Button)
	if err != nil {
		return nil, err
	}

	report := &DriftReport{
		AccountId: account.AccountId,
		Drifted:   want != got,
		Expected:  want,
		Actual:    got,
	}
	if current != nil {
		report.VersionId = current.VersionId
		report.Version = current.Version
	}
	if report.Drifted {
		s.metrics.IncDrift(account.AccountId)
		log.WithContext(ctx).Warnw("platform menu drifted from pushed menu",
			"accountId", account.AccountId, "version", report.Version, "expected", want, "actual", got)
		s.alert(ctx, fresh, report)
	}
	return report, nil
}

// alert only logs a failed notification; the report is unaffected.
func (s *DriftService) alert(ctx context.Context, account *model.Account, report *DriftReport) {
	if s.alerter == nil {
		return
	}
	version := report.Version
	if version == "" {
		version = "无（最近一次为实时菜单发布）"
	}
	content := fmt.Sprintf("> 账号: %s (%s)\n> 当前发布版本: %s\n\n平台菜单与最近一次推送不一致，请检查是否有人在公众平台后台直接修改了菜单。",
		account.Name, account.AccountId, version)
	if err := s.alerter.Notify(ctx, "公众号菜单漂移", content); err != nil {
		log.WithContext(ctx).Warnw("drift alert failed", "accountId", account.AccountId, "error", err)
	}
}

func canonicalButtons(buttons []menu.WechatButton) (string, error) {
	if buttons == nil {
		buttons = make([]menu.WechatButton, 0)
	}
	return sonic.MarshalString(buttons)
}
