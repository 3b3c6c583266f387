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

// IMenuButtonVersionRepository stores version buttons, scoped by version_id.
type IMenuButtonVersionRepository interface {
	Create(ctx context.Context, button *model.MenuButtonVersion) error
	CreateBatch(ctx context.Context, buttons []model.MenuButtonVersion) error
	Get(ctx context.Context, versionId, buttonId string) (*model.MenuButtonVersion, error)
	ListByVersion(ctx context.Context, versionId string) ([]model.MenuButtonVersion, error)
	Update(ctx context.Context, button *model.MenuButtonVersion) error
	Delete(ctx context.Context, versionId, buttonId string) error
	DeleteByVersion(ctx context.Context, versionId string) (int64, error)
	CountChildren(ctx context.Context, versionId, buttonId string) (int64, error)
	UpdatePositions(ctx context.Context, versionId string, updates map[string]model.PositionUpdate) (int, error)
}

type MenuButtonVersionRepo struct {
	database.IDatabase
}

func NewMenuButtonVersionRepo(db database.IDatabase) IMenuButtonVersionRepository {
	return &MenuButtonVersionRepo{IDatabase: db}
}

func (r *MenuButtonVersionRepo) scope(ctx context.Context, versionId string) *gorm.DB {
	return r.Database().WithContext(ctx).Where("version_id = ?", versionId)
}

func (r *MenuButtonVersionRepo) Create(ctx context.Context, button *model.MenuButtonVersion) error {
	return r.Database().WithContext(ctx).Create(button).Error
}

// CreateBatch inserts buttons in slice order so ids follow that order.
func (r *MenuButtonVersionRepo) CreateBatch(ctx context.Context, buttons []model.MenuButtonVersion) error {
	if len(buttons) == 0 {
		return nil
	}
	return r.Database().WithContext(ctx).CreateInBatches(buttons, 100).Error
}

func (r *MenuButtonVersionRepo) Get(ctx context.Context, versionId, buttonId string) (*model.MenuButtonVersion, error) {
	var button model.MenuButtonVersion
	if err := r.scope(ctx, versionId).Where("button_id = ?", buttonId).First(&button).Error; err != nil {
		return nil, err
	}
	return &button, nil
}

func (r *MenuButtonVersionRepo) ListByVersion(ctx context.Context, versionId string) ([]model.MenuButtonVersion, error) {
	var buttons []model.MenuButtonVersion
	err := r.scope(ctx, versionId).Order("position ASC, id ASC").Find(&buttons).Error
	return buttons, err
}

func (r *MenuButtonVersionRepo) Update(ctx context.Context, button *model.MenuButtonVersion) error {
	return r.scope(ctx, button.VersionId).
		Model(&model.MenuButtonVersion{}).
		Where("button_id = ?", button.ButtonId).
		Select(buttonColumns).
		Updates(button).Error
}

func (r *MenuButtonVersionRepo) Delete(ctx context.Context, versionId, buttonId string) error {
	return r.scope(ctx, versionId).Where("button_id = ?", buttonId).Delete(&model.MenuButtonVersion{}).Error
}

func (r *MenuButtonVersionRepo) DeleteByVersion(ctx context.Context, versionId string) (int64, error) {
	res := r.scope(ctx, versionId).Delete(&model.MenuButtonVersion{})
	return res.RowsAffected, res.Error
}

func (r *MenuButtonVersionRepo) CountChildren(ctx context.Context, versionId, buttonId string) (int64, error) {
	return Count(r.scope(ctx, versionId).Model(&model.MenuButtonVersion{}).Where("parent_id = ?", buttonId))
}

// UpdatePositions applies each entry on its own; ids that are unknown or
// belong to another version are skipped silently.
func (r *MenuButtonVersionRepo) UpdatePositions(ctx context.Context, versionId string, updates map[string]model.PositionUpdate) (int, error) {
	return applyPositions(func() *gorm.DB { return r.scope(ctx, versionId) }, &model.MenuButtonVersion{}, updates)
}
