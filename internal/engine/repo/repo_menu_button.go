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

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/pkg/database"
	"gorm.io/gorm"
)

// IMenuButtonRepository stores the live buttons of an account.
// Every lookup is scoped by account, so a foreign id behaves like a missing one.
type IMenuButtonRepository interface {
	Create(ctx context.Context, button *model.MenuButton) error
	Get(ctx context.Context, accountId, buttonId string) (*model.MenuButton, error)
	ListByAccount(ctx context.Context, accountId string) ([]model.MenuButton, error)
	Update(ctx context.Context, button *model.MenuButton) error
	Delete(ctx context.Context, accountId, buttonId string) error
	DeleteByAccount(ctx context.Context, accountId string) (int64, error)
	CountChildren(ctx context.Context, accountId, buttonId string) (int64, error)
	UpdatePositions(ctx context.Context, accountId string, updates map[string]model.PositionUpdate) (int, error)
}

type MenuButtonRepo struct {
	database.IDatabase
}

func NewMenuButtonRepo(db database.IDatabase) IMenuButtonRepository {
	return &MenuButtonRepo{IDatabase: db}
}

func (r *MenuButtonRepo) scope(ctx context.Context, accountId string) *gorm.DB {
	return r.Database().WithContext(ctx).Where("account_id = ?", accountId)
}

func (r *MenuButtonRepo) Create(ctx context.Context, button *model.MenuButton) error {
	return r.Database().WithContext(ctx).Create(button).Error
}

func (r *MenuButtonRepo) Get(ctx context.Context, accountId, buttonId string) (*model.MenuButton, error) {
	var button model.MenuButton
	if err := r.scope(ctx, accountId).Where("button_id = ?", buttonId).First(&button).Error; err != nil {
		return nil, err
	}
	return &button, nil
}

func (r *MenuButtonRepo) ListByAccount(ctx context.Context, accountId string) ([]model.MenuButton, error) {
	var buttons []model.MenuButton
	err := r.scope(ctx, accountId).Order("position ASC, id ASC").Find(&buttons).Error
	return buttons, err
}

func (r *MenuButtonRepo) Update(ctx context.Context, button *model.MenuButton) error {
	return r.scope(ctx, button.AccountId).
		Model(&model.MenuButton{}).
		Where("button_id = ?", button.ButtonId).
		Select(buttonColumns).
		Updates(button).Error
}

func (r *MenuButtonRepo) Delete(ctx context.Context, accountId, buttonId string) error {
	return r.scope(ctx, accountId).Where("button_id = ?", buttonId).Delete(&model.MenuButton{}).Error
}

func (r *MenuButtonRepo) DeleteByAccount(ctx context.Context, accountId string) (int64, error) {
	res := r.scope(ctx, accountId).Delete(&model.MenuButton{})
	return res.RowsAffected, res.Error
}

func (r *MenuButtonRepo) CountChildren(ctx context.Context, accountId, buttonId string) (int64, error) {
	return Count(r.scope(ctx, accountId).Model(&model.MenuButton{}).Where("parent_id = ?", buttonId))
}

// UpdatePositions applies each entry on its own; ids that are unknown or
// belong to another account are skipped silently.
func (r *MenuButtonRepo) UpdatePositions(ctx context.Context, accountId string, updates map[string]model.PositionUpdate) (int, error) {
	return applyPositions(func() *gorm.DB { return r.scope(ctx, accountId) }, &model.MenuButton{}, updates)
}
