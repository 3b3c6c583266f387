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
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/service"
	"github.com/gofiber/fiber/v2"
)

// 线上（未版本化）按钮树
func (rt *Router) buttonRouter(r fiber.Router) {
	buttonGroup := r.Group("/accounts/:accountId/buttons")
	{
		buttonGroup.Get("/", rt.listButtons)
		buttonGroup.Post("/", rt.createButton)
		// 固定路径必须先于 /:buttonId 注册
		buttonGroup.Put("/positions", rt.updateButtonPositions)
		buttonGroup.Post("/publish", rt.publishLive)
		buttonGroup.Get("/preview", rt.previewLive)
		buttonGroup.Put("/:buttonId", rt.updateButton)
		buttonGroup.Delete("/:buttonId", rt.deleteButton)
	}
}

func (rt *Router) listButtons(c *fiber.Ctx) error {
	nodes, err := rt.Services.Button.List(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, nodes)
	return nil
}

func (rt *Router) createButton(c *fiber.Ctx) error {
	var req service.ButtonRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	button, err := rt.Services.Button.Create(c.UserContext(), c.Params("accountId"), actor(c), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, button)
	return nil
}

func (rt *Router) updateButton(c *fiber.Ctx) error {
	var req service.ButtonRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	button, err := rt.Services.Button.Update(c.UserContext(), c.Params("accountId"), c.Params("buttonId"), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, button)
	return nil
}

func (rt *Router) deleteButton(c *fiber.Ctx) error {
	if err := rt.Services.Button.Delete(c.UserContext(), c.Params("accountId"), c.Params("buttonId")); err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) updateButtonPositions(c *fiber.Ctx) error {
	var updates map[string]model.PositionUpdate
	if err := c.BodyParser(&updates); err != nil {
		return parseFailed(c, err)
	}
	n, err := rt.Services.Button.UpdatePositions(c.UserContext(), c.Params("accountId"), updates)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, fiber.Map{"updated": n})
	return nil
}

func (rt *Router) publishLive(c *fiber.Ctx) error {
	var req service.PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return parseFailed(c, err)
		}
	}
	if req.PublishedBy == "" {
		req.PublishedBy = actor(c)
	}
	payload, err := rt.Services.Publish.PublishLive(c.UserContext(), c.Params("accountId"), req.PublishedBy)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, payload)
	return nil
}

func (rt *Router) previewLive(c *fiber.Ctx) error {
	preview, err := rt.Services.Publish.PreviewLive(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, preview)
	return nil
}
