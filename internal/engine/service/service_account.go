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

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/pkg/id"
	"github.com/go-arcade/wxmenu/pkg/log"
)

// AccountService manages official accounts.
type AccountService struct {
	repos *repo.Repositories
	uow   repo.IUnitOfWork
}

func NewAccountService(repos *repo.Repositories, uow repo.IUnitOfWork) *AccountService {
	return &AccountService{repos: repos, uow: uow}
}

func (s *AccountService) Create(ctx context.Context, req *AccountRequest) (*model.Account, error) {
	account := &model.Account{
		AccountId:   strings.TrimSpace(req.AccountId),
		Name:        strings.TrimSpace(req.Name),
		AppId:       strings.TrimSpace(req.AppId),
		AppSecret:   strings.TrimSpace(req.AppSecret),
		Description: req.Description,
	}
	var msgs []string
	if account.Name == "" {
		msgs = append(msgs, "account name is required")
	}
	if account.AppId == "" {
		msgs = append(msgs, "appId is required")
	}
	if account.AppSecret == "" {
		msgs = append(msgs, "appSecret is required")
	}
	if len(msgs) > 0 {
		return nil, model.NewValidationError(msgs...)
	}

	if account.AccountId == "" {
		account.AccountId = id.ShortId()
	} else if _, err := s.repos.Account.Get(ctx, account.AccountId); err == nil {
		return nil, model.Validationf("account %s already exists", account.AccountId)
	} else if !isNotFound(err) {
		return nil, wrapRepoErr(err, "get account", resourceAccount, account.AccountId)
	}

	if err := s.repos.Account.Create(ctx, account); err != nil {
		return nil, wrapRepoErr(err, "create account", resourceAccount, account.AccountId)
	}
	log.WithContext(ctx).Infow("account created", "accountId", account.AccountId, "appId", account.AppId)
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, accountId string) (*model.Account, error) {
	account, err := s.repos.Account.Get(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "get account", resourceAccount, accountId)
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context, page model.Page) (*model.PageResult[model.Account], error) {
	page.Normalize()
	items, total, err := s.repos.Account.List(ctx, page)
	if err != nil {
		return nil, wrapRepoErr(err, "list accounts", resourceAccount, "")
	}
	if items == nil {
		items = make([]model.Account, 0)
	}
	return &model.PageResult[model.Account]{Items: items, Total: total, PageNum: page.PageNum, PageSize: page.PageSize}, nil
}

func (s *AccountService) Update(ctx context.Context, accountId string, req *AccountRequest) (*model.Account, error) {
	account, err := s.Get(ctx, accountId)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		account.Name = name
	}
	if appId := strings.TrimSpace(req.AppId); appId != "" {
		account.AppId = appId
	}
	account.AppSecret = strings.TrimSpace(req.AppSecret)
	account.Description = req.Description

	if err := s.repos.Account.Update(ctx, account); err != nil {
		return nil, wrapRepoErr(err, "update account", resourceAccount, accountId)
	}
	return s.Get(ctx, accountId)
}

// Delete removes the account together with its live menu and every
// version.
func (s *AccountService) Delete(ctx context.Context, accountId string) error {
	if _, err := s.Get(ctx, accountId); err != nil {
		return err
	}
	err := s.uow.Transaction(ctx, func(tx *repo.Repositories) error {
		if _, err := tx.Button.DeleteByAccount(ctx, accountId); err != nil {
			return err
		}
		ids, err := tx.Version.ListIds(ctx, accountId)
		if err != nil {
			return err
		}
		for _, versionId := range ids {
			if _, err := tx.ButtonVersion.DeleteByVersion(ctx, versionId); err != nil {
				return err
			}
		}
		if _, err := tx.Version.DeleteByAccount(ctx, accountId); err != nil {
			return err
		}
		return tx.Account.Delete(ctx, accountId)
	})
	if err != nil {
		return wrapRepoErr(err, "delete account", resourceAccount, accountId)
	}
	_ = s.repos.Version.InvalidateCurrent(ctx, accountId)
	log.WithContext(ctx).Infow("account deleted", "accountId", accountId)
	return nil
}
