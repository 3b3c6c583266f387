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

package http

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// ClientConf 出站 HTTP 客户端配置
type ClientConf struct {
	BaseURL string
	Timeout int // 秒
	Debug   bool
}

// NewClient 创建出站 resty client
func NewClient(conf ClientConf) *resty.Client {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return resty.New().
		SetBaseURL(conf.BaseURL).
		SetTimeout(timeout).
		SetDebug(conf.Debug).
		SetHeader("Content-Type", "application/json")
}
