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

package database

import "gorm.io/gorm"

// IDatabase is what repositories depend on
type IDatabase interface {
	Database() *gorm.DB
}

type databaseAdapter struct {
	db *gorm.DB
}

// NewDatabaseAdapter creates an IDatabase from a Manager
func NewDatabaseAdapter(manager Manager) IDatabase {
	return &databaseAdapter{db: manager.DB()}
}

// NewDatabase wraps an already opened *gorm.DB, e.g. a transaction.
func NewDatabase(db *gorm.DB) IDatabase {
	return &databaseAdapter{db: db}
}

func (d *databaseAdapter) Database() *gorm.DB {
	return d.db
}
