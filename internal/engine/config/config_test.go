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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConf = `
[log]
output = "stdout"
level = "DEBUG"

[http]
port = 9000
internalContextPath = "/api/v2"

[database]
driver = "sqlite"
autoMigrate = true

[database.sqlite]
path = "/tmp/wxmenu.db"

[redis]
mode = "local"

[wechat]
baseURL = "http://127.0.0.1:8099"
maxAttempts = 5

[drift]
enabled = true
`

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConf), 0o644))

	conf, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", conf.Log.Level)
	assert.Equal(t, 9000, conf.Http.Port)
	assert.Equal(t, "/api/v2", conf.Http.InternalContextPath)
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.True(t, conf.Database.AutoMigrate)
	assert.Equal(t, "/tmp/wxmenu.db", conf.Database.SQLite.Path)
	assert.Equal(t, "local", conf.Redis.Mode)
	assert.Equal(t, "http://127.0.0.1:8099", conf.Wechat.BaseURL)
	assert.Equal(t, 5, conf.Wechat.MaxAttempts)
	assert.True(t, conf.Drift.Enabled)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestProviders_ApplyDefaults(t *testing.T) {
	conf := &AppConfig{}

	httpConf := ProvideHttpConfig(conf)
	assert.Equal(t, 8080, httpConf.Port)
	assert.Equal(t, "/api/v1", httpConf.InternalContextPath)

	wechatConf := ProvideWechatConfig(conf)
	assert.Equal(t, "https://api.weixin.qq.com", wechatConf.BaseURL)
	assert.Equal(t, 3, wechatConf.MaxAttempts)

	drift := ProvideDriftConfig(conf)
	assert.False(t, drift.Enabled)
	assert.Equal(t, "@every 30m", drift.Spec)

	// 返回的是 AppConfig 内字段的指针
	assert.Same(t, &conf.Http, httpConf)
}
