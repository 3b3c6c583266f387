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

package channel

import (
	"context"
)

// Message 通知内容，Content 为 markdown
type Message struct {
	Title   string
	Content string
}

// INotifyChannel 通知渠道接口
type INotifyChannel interface {
	// Name 日志中的渠道名
	Name() string
	// Send 发送消息
	Send(ctx context.Context, msg Message) error
	// Validate 校验渠道配置
	Validate() error
}
