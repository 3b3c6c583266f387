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
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/trace"
	"gorm.io/datatypes"
)

const (
	publishSuccess        = "success"
	publishInvalid        = "invalid"
	publishPlatformFailed = "platform_failed"
	publishConflict       = "conflict"
	publishError          = "error"
)

// PublishService pushes menus to the platform and keeps version status.
type PublishService struct {
	repos     *repo.Repositories
	uow       repo.IUnitOfWork
	versions  *VersionService
	publisher Publisher
	metrics   *metrics.MenuMetrics
	now       func() time.Time
}

func NewPublishService(repos *repo.Repositories, uow repo.IUnitOfWork, versions *VersionService,
	publisher Publisher, m *metrics.MenuMetrics) *PublishService {
	return &PublishService{
		repos:     repos,
		uow:       uow,
		versions:  versions,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// PublishVersion validates the draft, pushes it to the platform and marks
// it PUBLISHED. Every other published version of the account is archived
// in the same transaction. A platform failure leaves the draft untouched.
func (s *PublishService) PublishVersion(ctx context.Context, accountId, versionId, actor string) (v *model.MenuVersion, err error) {
	ctx, span := trace.StartSpan(ctx, "menu.publish_version")
	start := s.now()
	defer func() {
		s.metrics.ObservePublish(publishResult(err), time.Since(start))
		trace.EndSpan(span, err)
	}()

	account, err := s.versions.ensureAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}
	v, err = s.versions.getDraft(ctx, accountId, versionId, string(model.EventPublish))
	if err != nil {
		return nil, err
	}
	tree, err := s.versions.Tree(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	preview := menu.BuildPreview(tree)
	if err := preview.Err(); err != nil {
		return nil, err
	}

	if err := s.publisher.CreateMenu(ctx, wechat.CredentialOf(account), preview.Menu); err != nil {
		log.WithContext(ctx).Errorw("platform rejected menu", "accountId", accountId, "versionId", versionId, "error", err)
		return nil, err
	}

	snapshot, err := sonic.Marshal(preview.Menu)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := v.Publish(operator(actor), s.now()); err != nil {
		return nil, err
	}
	v.Snapshot = datatypes.JSON(snapshot)

	var archived int64
	err = s.uow.Transaction(ctx, func(tx *repo.Repositories) error {
		rows, err := tx.Version.MarkPublished(ctx, v)
		if err != nil {
			return err
		}
		if rows == 0 {
			return &model.StateError{VersionId: v.VersionId, Status: model.MenuVersionPublished, Op: string(model.EventPublish)}
		}
		archived, err = tx.Version.ArchiveOldPublishedVersions(ctx, accountId, v.VersionId)
		if err != nil {
			return err
		}
		return tx.Account.RecordPushed(ctx, accountId, v.Snapshot, *v.PublishedAt)
	})
	if err != nil {
		var se *model.StateError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, wrapRepoErr(err, "publish version", resourceVersion, versionId)
	}

	if err := s.repos.Version.InvalidateCurrent(ctx, accountId); err != nil {
		log.Warnw("failed to invalidate current version cache", "accountId", accountId, "error", err)
	}
	log.WithContext(ctx).Infow("menu version published",
		"accountId", accountId, "versionId", v.VersionId, "version", v.Version,
		"publishedBy", v.PublishedBy, "archived", archived)
	return v, nil
}

// PublishLive pushes the live tree of the account to the platform.
func (s *PublishService) PublishLive(ctx context.Context, accountId, actor string) (m *menu.WechatMenu, err error) {
	ctx, span := trace.StartSpan(ctx, "menu.publish_live")
	start := s.now()
	defer func() {
		s.metrics.ObservePublish(publishResult(err), time.Since(start))
		trace.EndSpan(span, err)
	}()

	account, err := s.versions.ensureAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}
	buttons, err := s.repos.Button.ListByAccount(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "list buttons", resourceButton, "")
	}
	preview := menu.BuildPreview(menu.FromButtons(buttons))
	if err := preview.Err(); err != nil {
		return nil, err
	}
	if err := s.publisher.CreateMenu(ctx, wechat.CredentialOf(account), preview.Menu); err != nil {
		return nil, err
	}
	recordPushed(ctx, s.repos, accountId, preview.Menu, s.now())
	log.WithContext(ctx).Infow("live menu published", "accountId", accountId, "publishedBy", operator(actor),
		"buttons", preview.EnabledCount)
	return &preview.Menu, nil
}

// PreviewLive formats and checks the live tree without publishing.
func (s *PublishService) PreviewLive(ctx context.Context, accountId string) (*menu.Preview, error) {
	if _, err := s.versions.ensureAccount(ctx, accountId); err != nil {
		return nil, err
	}
	buttons, err := s.repos.Button.ListByAccount(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "list buttons", resourceButton, "")
	}
	return menu.BuildPreview(menu.FromButtons(buttons)), nil
}

// Rollback copies a PUBLISHED or ARCHIVED version into a new draft and
// publishes it. The draft is kept when publishing fails.
func (s *PublishService) Rollback(ctx context.Context, accountId, versionId, actor string) (*model.MenuVersion, error) {
	src, err := s.versions.getVersion(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	if src.IsDraft() {
		return nil, &model.StateError{VersionId: src.VersionId, Status: src.Status, Op: "rollback"}
	}
	draft, err := s.versions.Create(ctx, accountId, actor, &CreateVersionRequest{
		Description: "rollback to " + src.Version,
		CopyFrom:    src.VersionId,
	})
	if err != nil {
		return nil, err
	}
	log.WithContext(ctx).Infow("rolling back menu", "accountId", accountId, "from", src.Version, "draft", draft.Version)
	return s.PublishVersion(ctx, accountId, draft.VersionId, actor)
}

// recordPushed runs after the platform accepted menu. A failed write is only
// logged; the next drift check reports the difference.
func recordPushed(ctx context.Context, repos *repo.Repositories, accountId string, m menu.WechatMenu, at time.Time) {
	if m.Button == nil {
		m.Button = make([]menu.WechatButton, 0)
	}
	payload, err := sonic.Marshal(m)
	if err == nil {
		err = repos.Account.RecordPushed(ctx, accountId, datatypes.JSON(payload), at)
	}
	if err != nil {
		log.WithContext(ctx).Warnw("failed to record pushed menu", "accountId", accountId, "error", err)
	}
}

func publishResult(err error) string {
	if err == nil {
		return publishSuccess
	}
	var (
		verr *model.ValidationError
		perr *model.ExternalPublishError
		serr *model.StateError
	)
	switch {
	case errors.As(err, &verr):
		return publishInvalid
	case errors.As(err, &perr):
		return publishPlatformFailed
	case errors.As(err, &serr):
		return publishConflict
	default:
		return publishError
	}
}
