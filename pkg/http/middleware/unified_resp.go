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

package middleware

import (
	"github.com/go-arcade/wxmenu/internal/engine/consts"
	httpx "github.com/go-arcade/wxmenu/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应
// handler 通过 c.Locals(consts.DETAIL, value) 返回数据，c.Locals(consts.OPERATION, "") 只返回操作结果
// handler 自己写了错误响应时原样返回
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		if detail := c.Locals(consts.DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}
		if c.Locals(consts.OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
