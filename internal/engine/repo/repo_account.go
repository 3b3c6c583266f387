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

package repo

import (
	"context"
	"time"

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/pkg/database"
	"gorm.io/datatypes"
)

type IAccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, accountId string) (*model.Account, error)
	List(ctx context.Context, page model.Page) ([]model.Account, int64, error)
	ListAll(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, accountId string) error
	// RecordPushed stores the default menu last accepted by the platform.
	RecordPushed(ctx context.Context, accountId string, menu datatypes.JSON, at time.Time) error
}

type AccountRepo struct {
	database.IDatabase
}

func NewAccountRepo(db database.IDatabase) IAccountRepository {
	return &AccountRepo{IDatabase: db}
}

func (r *AccountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.Database().WithContext(ctx).Create(account).Error
}

func (r *AccountRepo) Get(ctx context.Context, accountId string) (*model.Account, error) {
	var account model.Account
	err := database.WriteDB(r.Database().WithContext(ctx)).
		Where("account_id = ?", accountId).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) List(ctx context.Context, page model.Page) ([]model.Account, int64, error) {
	page.Normalize()
	total, err := Count(r.Database().WithContext(ctx).Model(&model.Account{}))
	if err != nil {
		return nil, 0, err
	}
	var accounts []model.Account
	err = database.ReadDB(r.Database().WithContext(ctx)).
		Order("id ASC").
		Offset(page.Offset()).Limit(page.PageSize).
		Find(&accounts).Error
	return accounts, total, err
}

func (r *AccountRepo) ListAll(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := database.ReadDB(r.Database().WithContext(ctx)).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

// Update writes the editable fields. An empty AppSecret keeps the stored one.
func (r *AccountRepo) Update(ctx context.Context, account *model.Account) error {
	columns := []string{"name", "app_id", "description"}
	if account.AppSecret != "" {
		columns = append(columns, "app_secret")
	}
	return r.Database().WithContext(ctx).
		Model(&model.Account{}).
		Where("account_id = ?", account.AccountId).
		Select(columns).
		Updates(account).Error
}

func (r *AccountRepo) Delete(ctx context.Context, accountId string) error {
	return r.Database().WithContext(ctx).
		Where("account_id = ?", accountId).
		Delete(&model.Account{}).Error
}

func (r *AccountRepo) RecordPushed(ctx context.Context, accountId string, menu datatypes.JSON, at time.Time) error {
	return r.Database().WithContext(ctx).
		Model(&model.Account{}).
		Where("account_id = ?", accountId).
		Updates(map[string]any{
			"pushed_menu": menu,
			"pushed_at":   at,
		}).Error
}
