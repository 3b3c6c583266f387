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
	"fmt"
	"time"
)

// Http 服务端配置
type Http struct {
	Host                string
	Port                int
	Mode                string // debug | release
	InternalContextPath string
	AccessLog           bool
	BodyLimit           int // MB
	ReadTimeout         int // 秒
	WriteTimeout        int
	IdleTimeout         int
	ShutdownTimeout     int
	CorsOrigins         string // 逗号分隔，"*" 表示全部
}

// SetDefaults 设置默认值
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.Mode == "" {
		h.Mode = "release"
	}
	if h.InternalContextPath == "" {
		h.InternalContextPath = "/api/v1"
	}
	if h.BodyLimit <= 0 {
		h.BodyLimit = 4
	}
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 30
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30
	}
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10
	}
	if h.CorsOrigins == "" {
		h.CorsOrigins = "*"
	}
}

func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

func (h *Http) ShutdownDuration() time.Duration {
	return time.Duration(h.ShutdownTimeout) * time.Second
}
