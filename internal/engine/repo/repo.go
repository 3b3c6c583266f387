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

	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"gorm.io/gorm"
)

type Repositories struct {
	Account       IAccountRepository
	Button        IMenuButtonRepository
	Version       IMenuVersionRepository
	ButtonVersion IMenuButtonVersionRepository
}

func NewRepositories(db database.IDatabase, cache cache.ICache) *Repositories {
	return &Repositories{
		Account:       NewAccountRepo(db),
		Button:        NewMenuButtonRepo(db),
		Version:       NewMenuVersionRepo(db, cache),
		ButtonVersion: NewMenuButtonVersionRepo(db),
	}
}

// IUnitOfWork runs fn with repositories bound to one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type IUnitOfWork interface {
	Transaction(ctx context.Context, fn func(tx *Repositories) error) error
}

type UnitOfWork struct {
	database.IDatabase
	cache cache.ICache
}

func NewUnitOfWork(db database.IDatabase, cache cache.ICache) IUnitOfWork {
	return &UnitOfWork{IDatabase: db, cache: cache}
}

func (u *UnitOfWork) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return u.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(database.NewDatabase(tx), u.cache))
	})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
