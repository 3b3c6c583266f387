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

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/pkg/id"
	"github.com/go-arcade/wxmenu/pkg/log"
)

// ButtonService edits the live tree of an account.
type ButtonService struct {
	repos *repo.Repositories
}

func NewButtonService(repos *repo.Repositories) *ButtonService {
	return &ButtonService{repos: repos}
}

func (s *ButtonService) ensureAccount(ctx context.Context, accountId string) (*model.Account, error) {
	account, err := s.repos.Account.Get(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "get account", resourceAccount, accountId)
	}
	return account, nil
}

// Tree loads the live tree of the account.
func (s *ButtonService) Tree(ctx context.Context, accountId string) (*menu.Tree, error) {
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return nil, err
	}
	buttons, err := s.repos.Button.ListByAccount(ctx, accountId)
	if err != nil {
		return nil, wrapRepoErr(err, "list buttons", resourceButton, "")
	}
	return menu.FromButtons(buttons), nil
}

func (s *ButtonService) List(ctx context.Context, accountId string) ([]*ButtonNode, error) {
	tree, err := s.Tree(ctx, accountId)
	if err != nil {
		return nil, err
	}
	return BuildButtonNodes(tree), nil
}

func (s *ButtonService) Create(ctx context.Context, accountId, actor string, req *ButtonRequest) (*model.MenuButton, error) {
	tree, err := s.Tree(ctx, accountId)
	if err != nil {
		return nil, err
	}

	button := &model.MenuButton{
		MenuButtonBase: model.MenuButtonBase{ButtonId: id.GetUlid(), Enabled: true},
		AccountId:      accountId,
		CreatedBy:      operator(actor),
	}
	if err := req.apply(&button.MenuButtonBase); err != nil {
		return nil, err
	}
	if req.Position == nil {
		button.Position = nextPosition(tree, button.ParentId)
	}
	if err := s.check(&button.MenuButtonBase, tree); err != nil {
		return nil, err
	}

	if err := s.repos.Button.Create(ctx, button); err != nil {
		return nil, wrapRepoErr(err, "create button", resourceButton, button.ButtonId)
	}
	log.WithContext(ctx).Infow("menu button created", "accountId", accountId, "buttonId", button.ButtonId, "type", button.Type)
	return button, nil
}

func (s *ButtonService) Update(ctx context.Context, accountId, buttonId string, req *ButtonRequest) (*model.MenuButton, error) {
	tree, err := s.Tree(ctx, accountId)
	if err != nil {
		return nil, err
	}
	button, err := s.repos.Button.Get(ctx, accountId, buttonId)
	if err != nil {
		return nil, wrapRepoErr(err, "get button", resourceButton, buttonId)
	}
	if err := req.apply(&button.MenuButtonBase); err != nil {
		return nil, err
	}
	if err := s.check(&button.MenuButtonBase, tree); err != nil {
		return nil, err
	}

	if err := s.repos.Button.Update(ctx, button); err != nil {
		return nil, wrapRepoErr(err, "update button", resourceButton, buttonId)
	}
	return button, nil
}

// Delete removes a childless button.
func (s *ButtonService) Delete(ctx context.Context, accountId, buttonId string) error {
	button, err := s.repos.Button.Get(ctx, accountId, buttonId)
	if err != nil {
		return wrapRepoErr(err, "get button", resourceButton, buttonId)
	}
	n, err := s.repos.Button.CountChildren(ctx, accountId, buttonId)
	if err != nil {
		return wrapRepoErr(err, "count sub buttons", resourceButton, buttonId)
	}
	if n > 0 {
		return model.Validationf("menu %q has %d sub buttons and cannot be deleted", button.Name, n)
	}
	if err := s.repos.Button.Delete(ctx, accountId, buttonId); err != nil {
		return wrapRepoErr(err, "delete button", resourceButton, buttonId)
	}
	return nil
}

// UpdatePositions applies the entries that match buttons of the account
// and returns how many were applied.
func (s *ButtonService) UpdatePositions(ctx context.Context, accountId string, updates map[string]model.PositionUpdate) (int, error) {
	if _, err := s.ensureAccount(ctx, accountId); err != nil {
		return 0, err
	}
	n, err := s.repos.Button.UpdatePositions(ctx, accountId, updates)
	if err != nil {
		return n, wrapRepoErr(err, "update positions", resourceButton, "")
	}
	return n, nil
}

func (s *ButtonService) check(b *model.MenuButtonBase, tree *menu.Tree) error {
	if err := checkPlacement(b, tree); err != nil {
		return err
	}
	return menu.ValidateMenuButton(b, tree)
}
