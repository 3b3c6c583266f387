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

package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/wxmenu/internal/pkg/notify"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/pprof"
	"github.com/go-arcade/wxmenu/pkg/trace"
	"github.com/spf13/viper"
)

// DriftConfig 定时比对平台菜单与当前发布版本
type DriftConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"`
	// Timeout 单次检查超时，秒
	Timeout int `mapstructure:"timeout"`
}

func (d *DriftConfig) SetDefaults() {
	if d.Spec == "" {
		d.Spec = "@every 30m"
	}
	if d.Timeout <= 0 {
		d.Timeout = 300
	}
}

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Redis    cache.Redis
	Wechat   wechat.Conf
	Metrics  metrics.MetricsConfig
	Pprof    pprof.PprofConfig
	Trace    trace.Conf
	Drift    DriftConfig
	Notify   notify.Conf
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()
	})
	return Current()
}

// Current 返回最近一次成功加载的配置
func Current() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadConfigFile 加载配置文件
func LoadConfigFile(confDir string) (AppConfig, error) {
	var conf AppConfig

	v := viper.New()
	v.SetConfigFile(confDir) //文件名
	if err := v.ReadInConfig(); err != nil {
		return conf, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := v.Unmarshal(&conf); err != nil {
		return conf, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("The configuration changes, re-analyze the configuration file: %s", e.Name)
		var reloaded AppConfig
		if err := v.Unmarshal(&reloaded); err != nil {
			log.Errorw("failed to unmarshal configuration file", "path", e.Name, "error", err)
			return
		}
		mu.Lock()
		cfg = reloaded
		mu.Unlock()
		// 只有日志级别支持热更新，其余配置需要重启
		log.SetLevel(reloaded.Log.Level)
	})
	log.Infow("config file loaded",
		"path", confDir,
	)

	return conf, nil
}
