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

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/trace/inject"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// Manager owns the gorm connection of the configured driver
type Manager interface {
	DB() *gorm.DB
	Close() error
}

type managerImpl struct {
	db *gorm.DB
}

func (m *managerImpl) DB() *gorm.DB {
	return m.db
}

func (m *managerImpl) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewManager opens the driver connection, registers the tracing plugin and
// runs AutoMigrate when enabled.
func NewManager(cfg Database) (Manager, error) {
	cfg.SetDefaults()

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverMySQL:
		db, err = newMySQLConnection(cfg)
	case DriverSQLite:
		db, err = newSQLiteConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	m := &managerImpl{db: db}

	if cfg.Trace {
		if err := inject.RegisterGormPlugin(db, cfg.OutPut, true); err != nil {
			log.Warnw("failed to register OpenTelemetry gorm plugin", "error", err)
		}
	}
	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), m.Close())
		}
	}

	log.Infow("database connected", "driver", cfg.Driver)
	return m, nil
}

func gormConfig(cfg Database) *gorm.Config {
	var gormLogger gormlogger.Interface
	if cfg.OutPut {
		gormLogger = NewGormLoggerAdapter(gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Info,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}, gormlogger.Info)
	} else {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // 唯一键冲突统一为 gorm.ErrDuplicatedKey
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	}
}

func newMySQLConnection(cfg Database) (*gorm.DB, error) {
	mysqlCfg := cfg.MySQL
	dsn := buildMySQLDSN(mysqlCfg.User, mysqlCfg.Password, mysqlCfg.Host, mysqlCfg.Port, mysqlCfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if len(mysqlCfg.Primary) > 0 || len(mysqlCfg.Replicas) > 0 {
		resolverConfig := dbresolver.Config{TraceResolverMode: cfg.OutPut}
		if resolverConfig.Sources, err = buildDialectors(mysqlCfg.Primary); err != nil {
			return nil, fmt.Errorf("failed to build primary dialectors: %w", err)
		}
		if resolverConfig.Replicas, err = buildDialectors(mysqlCfg.Replicas); err != nil {
			return nil, fmt.Errorf("failed to build replicas dialectors: %w", err)
		}
		err = db.Use(dbresolver.Register(resolverConfig).
			SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime)).
			SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("failed to register DBResolver plugin: %w", err)
		}
		log.Info("read-write separation enabled")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime))
	sqlDB.SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return db, nil
}

func newSQLiteConnection(cfg Database) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.SQLite.Path), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", cfg.SQLite.Path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer and each in-memory connection is its own database
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
