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

package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/trace/inject"
	"github.com/redis/go-redis/v9"
)

const (
	ModeSingle   = "single"
	ModeSentinel = "sentinel"
	ModeLocal    = "local" // 进程内 fastcache，单机部署时使用
)

type Redis struct {
	Mode             string
	Address          string
	Password         string
	DB               int
	PoolSize         int
	UseTLS           bool
	MasterName       string
	SentinelUsername string
	SentinelPassword string
	DialTimeout      int // 秒
	ReadTimeout      int // 秒
	WriteTimeout     int // 秒
	LocalMaxBytes    int // local 模式的内存上限
	Trace            bool
}

// SetDefaults 设置默认值
func (r *Redis) SetDefaults() {
	if r.Mode == "" {
		r.Mode = ModeSingle
	}
	if r.Address == "" && r.Mode != ModeLocal {
		r.Address = "127.0.0.1:6379"
	}
	if r.PoolSize <= 0 {
		r.PoolSize = 10
	}
	if r.DialTimeout <= 0 {
		r.DialTimeout = 5
	}
	if r.ReadTimeout <= 0 {
		r.ReadTimeout = 3
	}
	if r.WriteTimeout <= 0 {
		r.WriteTimeout = 3
	}
}

func NewRedis(cfg Redis) (*redis.Client, error) {
	var client *redis.Client
	switch cfg.Mode {
	case ModeSingle:
		opts := &redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		}
		if cfg.UseTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client = redis.NewClient(opts)
	case ModeSentinel:
		opts := &redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    strings.Split(cfg.Address, ","),
			Password:         cfg.Password,
			DB:               cfg.DB,
			PoolSize:         cfg.PoolSize,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:      time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout:     time.Duration(cfg.WriteTimeout) * time.Second,
		}
		if cfg.UseTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client = redis.NewFailoverClient(opts)
	default:
		return nil, fmt.Errorf("illegal redis mode: %q", cfg.Mode)
	}

	if cfg.Trace {
		inject.RegisterRedisHook(client, false)
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Errorw("failed to connect redis", "mode", cfg.Mode, "address", cfg.Address, "error", err)
		_ = client.Close()
		return nil, err
	}

	log.Infow("redis connected", "mode", cfg.Mode)
	return client, nil
}
