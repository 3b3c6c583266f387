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

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/pkg/id"
	"github.com/go-arcade/wxmenu/pkg/log"
)

// maxVersionCandidates bounds how many numbers auto numbering tries.
const maxVersionCandidates = 100

// VersionService edits menu versions and their buttons.
type VersionService struct {
	repos *repo.Repositories
	uow   repo.IUnitOfWork
}

func NewVersionService(repos *repo.Repositories, uow repo.IUnitOfWork) *VersionService {
	return &VersionService{repos: repos, uow: uow}
}

func (s *VersionService) ensureAccount(ctx context.Context, accountId string) (*model.Account, error) {
	account, err := s.repos.Account.Get(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "get account", resourceAccount, accountId)
	}
	return account, nil
}

// getVersion loads a version of the account. A version of another account
// is reported exactly like a missing one.
func (s *VersionService) getVersion(ctx context.Context, accountId, versionId string) (*model.MenuVersion, error) {
	v, err := s.repos.Version.Get(ctx, accountId, versionId)
	if err != nil {
		return nil, wrapRepoErr(err, "get version", resourceVersion, versionId)
	}
	return v, nil
}

// getDraft loads a version and rejects it unless it is still editable.
func (s *VersionService) getDraft(ctx context.Context, accountId, versionId, op string) (*model.MenuVersion, error) {
	v, err := s.getVersion(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	if err := v.EnsureDraft(op); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VersionService) Create(ctx context.Context, accountId, actor string, req *CreateVersionRequest) (*model.MenuVersion, error) {
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return nil, err
	}
	if req.CopyFrom != "" && req.FromLive {
		return nil, model.NewValidationError("copyFrom and fromLive cannot be used together")
	}

	number := strings.TrimSpace(req.Version)
	if number == "" {
		next, err := s.nextFreeNumber(ctx, accountId)
		if err != nil {
			return nil, err
		}
		number = next
	} else {
		if err := menu.ValidateVersionString(number); err != nil {
			return nil, err
		}
		exists, err := s.repos.Version.ExistsVersion(ctx, accountId, number)
		if err != nil {
			return nil, wrapRepoErr(err, "check version", resourceVersion, number)
		}
		if exists {
			return nil, model.Validationf("version %s already exists", number)
		}
	}

	version := &model.MenuVersion{
		VersionId:   id.GetUlid(),
		AccountId:   accountId,
		Version:     number,
		Description: req.Description,
		Status:      model.MenuVersionDraft,
		CopiedFrom:  req.CopyFrom,
		CreatedBy:   operator(actor),
	}

	var buttons []model.MenuButtonVersion
	switch {
	case req.CopyFrom != "":
		if _, err := s.getVersion(ctx, accountId, req.CopyFrom); err != nil {
			return nil, err
		}
		src, err := s.repos.ButtonVersion.ListByVersion(ctx, req.CopyFrom)
		if err != nil {
			return nil, wrapRepoErr(err, "list version buttons", resourceButton, "")
		}
		buttons = cloneVersionButtons(src, version.VersionId)
	case req.FromLive:
		src, err := s.repos.Button.ListByAccount(ctx, accountId)
		if err != nil {
			return nil, wrapRepoErr(err, "list buttons", resourceButton, "")
		}
		buttons = cloneLiveButtons(src, version.VersionId)
	}

	err := s.uow.Transaction(ctx, func(tx *repo.Repositories) error {
		if err := tx.Version.Create(ctx, version); err != nil {
			return err
		}
		return tx.ButtonVersion.CreateBatch(ctx, buttons)
	})
	if err != nil {
		return nil, wrapRepoErr(err, "create version", resourceVersion, number)
	}
	version.Buttons = buttons

	log.WithContext(ctx).Infow("menu version created",
		"accountId", accountId, "versionId", version.VersionId, "version", number,
		"copiedFrom", req.CopyFrom, "fromLive", req.FromLive, "buttons", len(buttons))
	return version, nil
}

// nextFreeNumber counts up from the latest version, skipping numbers already
// taken by explicit creates.
func (s *VersionService) nextFreeNumber(ctx context.Context, accountId string) (string, error) {
	next, err := s.repos.Version.GenerateNextVersionNumber(ctx, accountId)
	if err != nil {
		return "", wrapRepoErr(err, "generate version number", resourceVersion, "")
	}
	for range maxVersionCandidates {
		exists, err := s.repos.Version.ExistsVersion(ctx, accountId, next)
		if err != nil {
			return "", wrapRepoErr(err, "check version", resourceVersion, next)
		}
		if !exists {
			return next, nil
		}
		if next, err = menu.GenerateNextVersion(next); err != nil {
			return "", err
		}
	}
	return "", model.Validationf("no free version number after %s, pass an explicit version", next)
}

// Copy creates a new draft holding a copy of the tree of versionId.
func (s *VersionService) Copy(ctx context.Context, accountId, versionId, actor string) (*model.MenuVersion, error) {
	src, err := s.getVersion(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, accountId, actor, &CreateVersionRequest{
		Description: "copy of " + src.Version,
		CopyFrom:    versionId,
	})
}

// Get returns the version with its buttons.
func (s *VersionService) Get(ctx context.Context, accountId, versionId string) (*model.MenuVersion, error) {
	v, err := s.getVersion(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	buttons, err := s.repos.ButtonVersion.ListByVersion(ctx, versionId)
	if err != nil {
		return nil, wrapRepoErr(err, "list version buttons", resourceButton, "")
	}
	v.Buttons = buttons
	return v, nil
}

func (s *VersionService) List(ctx context.Context, accountId, status string, page model.Page) (*model.PageResult[model.MenuVersion], error) {
	st := model.MenuVersionStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.IsValid() {
		return nil, model.Validationf("unknown version status %q", status)
	}
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return nil, err
	}
	page.Normalize()
	items, total, err := s.repos.Version.List(ctx, accountId, st, page)
	if err != nil {
		return nil, wrapRepoErr(err, "list versions", resourceVersion, "")
	}
	if items == nil {
		items = make([]model.MenuVersion, 0)
	}
	return &model.PageResult[model.MenuVersion]{Items: items, Total: total, PageNum: page.PageNum, PageSize: page.PageSize}, nil
}

func (s *VersionService) UpdateDescription(ctx context.Context, accountId, versionId, description string) (*model.MenuVersion, error) {
	v, err := s.getDraft(ctx, accountId, versionId, "update description")
	if err != nil {
		return nil, err
	}
	if err := s.repos.Version.UpdateDescription(ctx, accountId, versionId, description); err != nil {
		return nil, wrapRepoErr(err, "update description", resourceVersion, versionId)
	}
	v.Description = description
	return v, nil
}

// Delete removes a DRAFT or ARCHIVED version and its buttons.
func (s *VersionService) Delete(ctx context.Context, accountId, versionId string) error {
	v, err := s.getVersion(ctx, accountId, versionId)
	if err != nil {
		return err
	}
	if v.Status == model.MenuVersionPublished {
		return &model.StateError{VersionId: v.VersionId, Status: v.Status, Op: "delete"}
	}
	err = s.uow.Transaction(ctx, func(tx *repo.Repositories) error {
		if _, err := tx.ButtonVersion.DeleteByVersion(ctx, versionId); err != nil {
			return err
		}
		return tx.Version.Delete(ctx, accountId, versionId)
	})
	if err != nil {
		return wrapRepoErr(err, "delete version", resourceVersion, versionId)
	}
	log.WithContext(ctx).Infow("menu version deleted", "accountId", accountId, "versionId", versionId, "version", v.Version)
	return nil
}

// Archive moves the version to ARCHIVED. Archiving twice is a no-op.
func (s *VersionService) Archive(ctx context.Context, accountId, versionId string) (*model.MenuVersion, error) {
	v, err := s.getVersion(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	wasPublished := v.Status == model.MenuVersionPublished
	if v.Status == model.MenuVersionArchived {
		return v, nil
	}
	if err := v.Archive(); err != nil {
		return nil, err
	}
	if err := s.repos.Version.Archive(ctx, accountId, versionId); err != nil {
		return nil, wrapRepoErr(err, "archive version", resourceVersion, versionId)
	}
	if wasPublished {
		if err := s.repos.Version.InvalidateCurrent(ctx, accountId); err != nil {
			log.Warnw("failed to invalidate current version cache", "accountId", accountId, "error", err)
		}
	}
	return v, nil
}

func (s *VersionService) NextNumber(ctx context.Context, accountId string) (string, error) {
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return "", err
	}
	next, err := s.repos.Version.GenerateNextVersionNumber(ctx, accountId)
	if err != nil {
		return "", wrapRepoErr(err, "generate version number", resourceVersion, "")
	}
	return next, nil
}

func (s *VersionService) Current(ctx context.Context, accountId string) (*model.MenuVersion, error) {
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return nil, err
	}
	v, err := s.repos.Version.FindCurrentPublishedVersion(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "find current version", resourceCurrent, accountId)
	}
	return v, nil
}

// Tree loads the button tree of a version of the account.
func (s *VersionService) Tree(ctx context.Context, accountId, versionId string) (*menu.Tree, error) {
	if _, err := s.getVersion(ctx, accountId, versionId); err != nil {
		return nil, err
	}
	buttons, err := s.repos.ButtonVersion.ListByVersion(ctx, versionId)
	if err != nil {
		return nil, wrapRepoErr(err, "list version buttons", resourceButton, "")
	}
	return menu.FromVersionButtons(buttons), nil
}

func (s *VersionService) ListButtons(ctx context.Context, accountId, versionId string) ([]*ButtonNode, error) {
	tree, err := s.Tree(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	return BuildButtonNodes(tree), nil
}

func (s *VersionService) Preview(ctx context.Context, accountId, versionId string) (*menu.Preview, error) {
	tree, err := s.Tree(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	return menu.BuildPreview(tree), nil
}

func (s *VersionService) CreateButton(ctx context.Context, accountId, versionId string, req *ButtonRequest) (*model.MenuButtonVersion, error) {
	if _, err := s.getDraft(ctx, accountId, versionId, "create button"); err != nil {
		return nil, err
	}
	tree, err := s.Tree(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}

	button := &model.MenuButtonVersion{
		MenuButtonBase: model.MenuButtonBase{ButtonId: id.GetUlid(), Enabled: true},
		VersionId:      versionId,
	}
	if err := req.apply(&button.MenuButtonBase); err != nil {
		return nil, err
	}
	if req.Position == nil {
		button.Position = nextPosition(tree, button.ParentId)
	}
	if err := s.checkButton(&button.MenuButtonBase, tree); err != nil {
		return nil, err
	}
	if err := s.repos.ButtonVersion.Create(ctx, button); err != nil {
		return nil, wrapRepoErr(err, "create version button", resourceButton, button.ButtonId)
	}
	return button, nil
}

func (s *VersionService) UpdateButton(ctx context.Context, accountId, versionId, buttonId string, req *ButtonRequest) (*model.MenuButtonVersion, error) {
	if _, err := s.getDraft(ctx, accountId, versionId, "update button"); err != nil {
		return nil, err
	}
	tree, err := s.Tree(ctx, accountId, versionId)
	if err != nil {
		return nil, err
	}
	button, err := s.repos.ButtonVersion.Get(ctx, versionId, buttonId)
	if err != nil {
		return nil, wrapRepoErr(err, "get version button", resourceButton, buttonId)
	}
	if err := req.apply(&button.MenuButtonBase); err != nil {
		return nil, err
	}
	if err := s.checkButton(&button.MenuButtonBase, tree); err != nil {
		return nil, err
	}
	if err := s.repos.ButtonVersion.Update(ctx, button); err != nil {
		return nil, wrapRepoErr(err, "update version button", resourceButton, buttonId)
	}
	return button, nil
}

func (s *VersionService) DeleteButton(ctx context.Context, accountId, versionId, buttonId string) error {
	if _, err := s.getDraft(ctx, accountId, versionId, "delete button"); err != nil {
		return err
	}
	button, err := s.repos.ButtonVersion.Get(ctx, versionId, buttonId)
	if err != nil {
		return wrapRepoErr(err, "get version button", resourceButton, buttonId)
	}
	n, err := s.repos.ButtonVersion.CountChildren(ctx, versionId, buttonId)
	if err != nil {
		return wrapRepoErr(err, "count sub buttons", resourceButton, buttonId)
	}
	if n > 0 {
		return model.Validationf("menu %q has %d sub buttons and cannot be deleted", button.Name, n)
	}
	if err := s.repos.ButtonVersion.Delete(ctx, versionId, buttonId); err != nil {
		return wrapRepoErr(err, "delete version button", resourceButton, buttonId)
	}
	return nil
}

func (s *VersionService) UpdatePositions(ctx context.Context, accountId, versionId string, updates map[string]model.PositionUpdate) (int, error) {
	if _, err := s.getDraft(ctx, accountId, versionId, "reorder buttons"); err != nil {
		return 0, err
	}
	n, err := s.repos.ButtonVersion.UpdatePositions(ctx, versionId, updates)
	if err != nil {
		return n, wrapRepoErr(err, "update positions", resourceButton, "")
	}
	return n, nil
}

// checkButton applies the per-button rules only; structure is checked as
// a whole before publishing.
func (s *VersionService) checkButton(b *model.MenuButtonBase, tree *menu.Tree) error {
	if err := checkPlacement(b, tree); err != nil {
		return err
	}
	return menu.ValidateMenuButtonVersion(b)
}

// cloneVersionButtons copies src into versionId with fresh ids. Parents are
// remapped to the new ids; a parent outside src turns the copy into a root.
// OriginalButtonId keeps pointing at the live button the chain started from.
func cloneVersionButtons(src []model.MenuButtonVersion, versionId string) []model.MenuButtonVersion {
	ids := make(map[string]string, len(src))
	for _, b := range src {
		ids[b.ButtonId] = id.GetUlid()
	}
	out := make([]model.MenuButtonVersion, 0, len(src))
	for _, b := range src {
		c := model.MenuButtonVersion{
			MenuButtonBase:   b.MenuButtonBase,
			VersionId:        versionId,
			OriginalButtonId: b.OriginalButtonId,
		}
		c.BaseModel = model.BaseModel{}
		c.ButtonId = ids[b.ButtonId]
		c.ParentId = ids[b.ParentId]
		out = append(out, c)
	}
	return out
}

func cloneLiveButtons(src []model.MenuButton, versionId string) []model.MenuButtonVersion {
	ids := make(map[string]string, len(src))
	for _, b := range src {
		ids[b.ButtonId] = id.GetUlid()
	}
	out := make([]model.MenuButtonVersion, 0, len(src))
	for i := range src {
		c := model.NewMenuButtonVersionFromButton(&src[i])
		c.ButtonId = ids[src[i].ButtonId]
		c.ParentId = ids[src[i].ParentId]
		c.VersionId = versionId
		out = append(out, *c)
	}
	return out
}
