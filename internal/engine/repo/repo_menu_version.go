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
	"errors"
	"fmt"

	"github.com/go-arcade/wxmenu/internal/engine/consts"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"gorm.io/gorm"
)

// IMenuVersionRepository stores menu versions.
type IMenuVersionRepository interface {
	Create(ctx context.Context, version *model.MenuVersion) error
	Get(ctx context.Context, accountId, versionId string) (*model.MenuVersion, error)
	List(ctx context.Context, accountId string, status model.MenuVersionStatus, page model.Page) ([]model.MenuVersion, int64, error)
	UpdateDescription(ctx context.Context, accountId, versionId, description string) error
	Delete(ctx context.Context, accountId, versionId string) error
	ListIds(ctx context.Context, accountId string) ([]string, error)
	DeleteByAccount(ctx context.Context, accountId string) (int64, error)
	// FindLatest returns the most recently created version of the account,
	// or nil when the account has none.
	FindLatest(ctx context.Context, accountId string) (*model.MenuVersion, error)
	GenerateNextVersionNumber(ctx context.Context, accountId string) (string, error)
	ExistsVersion(ctx context.Context, accountId, version string) (bool, error)
	// FindCurrentPublishedVersion returns the PUBLISHED version of the
	// account, or gorm.ErrRecordNotFound.
	FindCurrentPublishedVersion(ctx context.Context, accountId string) (*model.MenuVersion, error)
	InvalidateCurrent(ctx context.Context, accountId string) error
	// MarkPublished flips a DRAFT row to PUBLISHED. It returns the number
	// of affected rows; zero means the row was no longer a draft.
	MarkPublished(ctx context.Context, version *model.MenuVersion) (int64, error)
	ArchiveOldPublishedVersions(ctx context.Context, accountId, exceptVersionId string) (int64, error)
	Archive(ctx context.Context, accountId, versionId string) error
}

type MenuVersionRepo struct {
	database.IDatabase
	current *cache.CachedQuery[*model.MenuVersion]
}

func NewMenuVersionRepo(db database.IDatabase, c cache.ICache) IMenuVersionRepository {
	r := &MenuVersionRepo{IDatabase: db}
	r.current = cache.NewCachedQuery(
		c,
		func(params ...any) string {
			return fmt.Sprintf("%s%v", consts.CurrentPublishedVersionKey, params[0])
		},
		func(ctx context.Context, params ...any) (*model.MenuVersion, error) {
			return r.findCurrentPublished(ctx, params[0].(string))
		},
		cache.WithTTL[*model.MenuVersion](consts.CurrentPublishedVersionTTL),
		cache.WithLogPrefix[*model.MenuVersion]("[MenuVersionRepo]"),
	)
	return r
}

func (r *MenuVersionRepo) scope(ctx context.Context, accountId string) *gorm.DB {
	return r.Database().WithContext(ctx).Where("account_id = ?", accountId)
}

// primary reads from the write source. Numbering, duplicate checks and draft
// loads must see their own writes.
func (r *MenuVersionRepo) primary(ctx context.Context, accountId string) *gorm.DB {
	return database.WriteDB(r.Database().WithContext(ctx)).Where("account_id = ?", accountId)
}

func (r *MenuVersionRepo) Create(ctx context.Context, version *model.MenuVersion) error {
	return r.Database().WithContext(ctx).Create(version).Error
}

func (r *MenuVersionRepo) Get(ctx context.Context, accountId, versionId string) (*model.MenuVersion, error) {
	var version model.MenuVersion
	if err := r.primary(ctx, accountId).Where("version_id = ?", versionId).First(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *MenuVersionRepo) List(ctx context.Context, accountId string, status model.MenuVersionStatus, page model.Page) ([]model.MenuVersion, int64, error) {
	page.Normalize()

	query := database.ReadDB(r.scope(ctx, accountId)).Model(&model.MenuVersion{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	total, err := Count(query.Session(&gorm.Session{}))
	if err != nil {
		return nil, 0, err
	}

	var versions []model.MenuVersion
	err = query.Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&versions).Error
	return versions, total, err
}

func (r *MenuVersionRepo) UpdateDescription(ctx context.Context, accountId, versionId, description string) error {
	return r.scope(ctx, accountId).
		Model(&model.MenuVersion{}).
		Where("version_id = ?", versionId).
		Update("description", description).Error
}

func (r *MenuVersionRepo) Delete(ctx context.Context, accountId, versionId string) error {
	return r.scope(ctx, accountId).Where("version_id = ?", versionId).Delete(&model.MenuVersion{}).Error
}

func (r *MenuVersionRepo) ListIds(ctx context.Context, accountId string) ([]string, error) {
	var ids []string
	err := r.scope(ctx, accountId).Model(&model.MenuVersion{}).Order("id ASC").Pluck("version_id", &ids).Error
	return ids, err
}

func (r *MenuVersionRepo) DeleteByAccount(ctx context.Context, accountId string) (int64, error) {
	res := r.scope(ctx, accountId).Delete(&model.MenuVersion{})
	return res.RowsAffected, res.Error
}

func (r *MenuVersionRepo) FindLatest(ctx context.Context, accountId string) (*model.MenuVersion, error) {
	var versions []model.MenuVersion
	if err := r.primary(ctx, accountId).Order("created_at DESC, id DESC").Limit(1).Find(&versions).Error; err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, nil
	}
	return &versions[0], nil
}

// GenerateNextVersionNumber bumps the last segment of the latest version.
// Numbers freed by deleted versions are not reused unless they are the latest.
func (r *MenuVersionRepo) GenerateNextVersionNumber(ctx context.Context, accountId string) (string, error) {
	latest, err := r.FindLatest(ctx, accountId)
	if err != nil {
		return "", err
	}
	if latest == nil {
		return menu.InitialVersion, nil
	}
	return menu.GenerateNextVersion(latest.Version)
}

func (r *MenuVersionRepo) ExistsVersion(ctx context.Context, accountId, version string) (bool, error) {
	count, err := Count(r.primary(ctx, accountId).Model(&model.MenuVersion{}).Where("version = ?", version))
	return count > 0, err
}

func (r *MenuVersionRepo) FindCurrentPublishedVersion(ctx context.Context, accountId string) (*model.MenuVersion, error) {
	return r.current.Get(ctx, accountId)
}

func (r *MenuVersionRepo) InvalidateCurrent(ctx context.Context, accountId string) error {
	return r.current.Invalidate(ctx, accountId)
}

func (r *MenuVersionRepo) findCurrentPublished(ctx context.Context, accountId string) (*model.MenuVersion, error) {
	var version model.MenuVersion
	err := r.primary(ctx, accountId).
		Where("status = ?", model.MenuVersionPublished).
		Order("published_at DESC, id DESC").
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *MenuVersionRepo) MarkPublished(ctx context.Context, version *model.MenuVersion) (int64, error) {
	res := r.scope(ctx, version.AccountId).
		Model(&model.MenuVersion{}).
		Where("version_id = ? AND status = ?", version.VersionId, model.MenuVersionDraft).
		Updates(map[string]any{
			"status":       model.MenuVersionPublished,
			"published_at": version.PublishedAt,
			"published_by": version.PublishedBy,
			"snapshot":     version.Snapshot,
		})
	return res.RowsAffected, res.Error
}

func (r *MenuVersionRepo) ArchiveOldPublishedVersions(ctx context.Context, accountId, exceptVersionId string) (int64, error) {
	res := r.scope(ctx, accountId).
		Model(&model.MenuVersion{}).
		Where("status = ? AND version_id <> ?", model.MenuVersionPublished, exceptVersionId).
		Update("status", model.MenuVersionArchived)
	return res.RowsAffected, res.Error
}

func (r *MenuVersionRepo) Archive(ctx context.Context, accountId, versionId string) error {
	res := r.scope(ctx, accountId).
		Model(&model.MenuVersion{}).
		Where("version_id = ?", versionId).
		Update("status", model.MenuVersionArchived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
