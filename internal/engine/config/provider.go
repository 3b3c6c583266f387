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
	"github.com/go-arcade/wxmenu/internal/pkg/notify"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/pprof"
	"github.com/go-arcade/wxmenu/pkg/trace"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideWechatConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
	ProvideTraceConfig,
	ProvideDriftConfig,
	ProvideNotifyConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	conf := NewConf(configPath)
	return &conf
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) *database.Database {
	databaseConfig := &appConf.Database
	databaseConfig.SetDefaults()
	return databaseConfig
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) *cache.Redis {
	return &appConf.Redis
}

// ProvideWechatConfig 提供微信接口配置
func ProvideWechatConfig(appConf *AppConfig) *wechat.Conf {
	wechatConfig := &appConf.Wechat
	wechatConfig.SetDefaults()
	return wechatConfig
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	metricsConfig := appConf.Metrics
	metricsConfig.SetDefaults()
	return metricsConfig
}

// ProvidePprofConfig 提供 Pprof 配置
func ProvidePprofConfig(appConf *AppConfig) pprof.PprofConfig {
	pprofConfig := appConf.Pprof
	pprofConfig.SetDefaults()
	return pprofConfig
}

// ProvideTraceConfig 提供 Trace 配置
func ProvideTraceConfig(appConf *AppConfig) trace.Conf {
	traceConfig := appConf.Trace
	traceConfig.SetDefaults()
	return traceConfig
}

// ProvideDriftConfig 提供漂移检查配置
func ProvideDriftConfig(appConf *AppConfig) *DriftConfig {
	driftConfig := &appConf.Drift
	driftConfig.SetDefaults()
	return driftConfig
}

// ProvideNotifyConfig 提供告警通知配置
func ProvideNotifyConfig(appConf *AppConfig) *notify.Conf {
	notifyConfig := &appConf.Notify
	notifyConfig.SetDefaults()
	return notifyConfig
}
