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

package router

import (
	"github.com/go-arcade/wxmenu/internal/engine/consts"
	"github.com/go-arcade/wxmenu/internal/engine/service"
	"github.com/gofiber/fiber/v2"
)

type tryMatchRequest struct {
	UserId string `json:"userId"`
}

// 直接操作微信平台上的菜单
func (rt *Router) platformRouter(r fiber.Router) {
	platformGroup := r.Group("/accounts/:accountId/platform")
	{
		platformGroup.Get("/menu", rt.getPlatformMenu)
		platformGroup.Delete("/menu", rt.deletePlatformMenu)
		platformGroup.Post("/conditional", rt.publishConditional)
		platformGroup.Delete("/conditional/:menuId", rt.deleteConditional)
		platformGroup.Post("/trymatch", rt.tryMatch)
	}
}

func (rt *Router) getPlatformMenu(c *fiber.Ctx) error {
	info, err := rt.Services.Platform.GetMenu(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, info)
	return nil
}

func (rt *Router) deletePlatformMenu(c *fiber.Ctx) error {
	if err := rt.Services.Platform.DeleteMenu(c.UserContext(), c.Params("accountId")); err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) publishConditional(c *fiber.Ctx) error {
	var req service.ConditionalRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	menuId, err := rt.Services.Platform.PublishConditional(c.UserContext(), c.Params("accountId"), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, fiber.Map{"menuId": menuId})
	return nil
}

func (rt *Router) deleteConditional(c *fiber.Ctx) error {
	if err := rt.Services.Platform.DeleteConditional(c.UserContext(), c.Params("accountId"), c.Params("menuId")); err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) tryMatch(c *fiber.Ctx) error {
	var req tryMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	m, err := rt.Services.Platform.TryMatch(c.UserContext(), c.Params("accountId"), req.UserId)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, m)
	return nil
}
