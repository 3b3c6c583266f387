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

package consts

import "time"

// 缓存 key 前缀，完整 key 为 前缀 + accountId / appId
const (
	CurrentPublishedVersionKey = "wxmenu:menu:current:"
	AccessTokenKey             = "wxmenu:wechat:token:"

	CurrentPublishedVersionTTL = 10 * time.Minute
)

// DefaultOperator 未携带 X-Operator 请求头时记录的操作人
const DefaultOperator = "system"
