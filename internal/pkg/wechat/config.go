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

package wechat

import "time"

const DefaultBaseURL = "https://api.weixin.qq.com"

// Conf configures the WeChat API client.
type Conf struct {
	BaseURL     string `mapstructure:"baseURL"`
	Timeout     int    `mapstructure:"timeout"` // 秒
	Debug       bool   `mapstructure:"debug"`
	MaxAttempts int    `mapstructure:"maxAttempts"`
	// RetryBase is the first retry delay in milliseconds.
	RetryBase int `mapstructure:"retryBase"`
	// TokenMargin expires the access_token this many seconds early.
	TokenMargin int `mapstructure:"tokenMargin"`
}

// SetDefaults fills in default values.
func (c *Conf) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryBase <= 0 {
		c.RetryBase = 200
	}
	if c.TokenMargin <= 0 {
		c.TokenMargin = 300
	}
}

func (c *Conf) retryBase() time.Duration {
	return time.Duration(c.RetryBase) * time.Millisecond
}
