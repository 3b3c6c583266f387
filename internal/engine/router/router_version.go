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

type descriptionRequest struct {
	Description string `json:"description"`
}

func (rt *Router) versionRouter(r fiber.Router) {
	versionGroup := r.Group("/accounts/:accountId/versions")
	{
		versionGroup.Post("/", rt.createVersion)
		versionGroup.Get("/", rt.listVersions)
		versionGroup.Get("/current", rt.currentVersion)
		versionGroup.Get("/next-number", rt.nextVersionNumber)

		versionGroup.Get("/:versionId", rt.getVersion)
		versionGroup.Put("/:versionId", rt.updateVersion)
		versionGroup.Delete("/:versionId", rt.deleteVersion)
		versionGroup.Post("/:versionId/copy", rt.copyVersion)
		versionGroup.Get("/:versionId/preview", rt.previewVersion)
		versionGroup.Post("/:versionId/publish", rt.publishVersion)
		versionGroup.Post("/:versionId/archive", rt.archiveVersion)
		versionGroup.Post("/:versionId/rollback", rt.rollbackVersion)

		versionGroup.Get("/:versionId/buttons", rt.listVersionButtons)
		versionGroup.Post("/:versionId/buttons", rt.createVersionButton)
		versionGroup.Put("/:versionId/buttons/positions", rt.updateVersionButtonPositions)
		versionGroup.Put("/:versionId/buttons/:buttonId", rt.updateVersionButton)
		versionGroup.Delete("/:versionId/buttons/:buttonId", rt.deleteVersionButton)
	}
}

func (rt *Router) createVersion(c *fiber.Ctx) error {
	var req service.CreateVersionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return parseFailed(c, err)
		}
	}
	v, err := rt.Services.Version.Create(c.UserContext(), c.Params("accountId"), actor(c), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) listVersions(c *fiber.Ctx) error {
	result, err := rt.Services.Version.List(c.UserContext(), c.Params("accountId"), c.Query("status"), pageOf(c))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) currentVersion(c *fiber.Ctx) error {
	v, err := rt.Services.Version.Current(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) nextVersionNumber(c *fiber.Ctx) error {
	next, err := rt.Services.Version.NextNumber(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, fiber.Map{"version": next})
	return nil
}

func (rt *Router) getVersion(c *fiber.Ctx) error {
	v, err := rt.Services.Version.Get(c.UserContext(), c.Params("accountId"), c.Params("versionId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) updateVersion(c *fiber.Ctx) error {
	var req descriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	v, err := rt.Services.Version.UpdateDescription(c.UserContext(), c.Params("accountId"), c.Params("versionId"), req.Description)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) deleteVersion(c *fiber.Ctx) error {
	if err := rt.Services.Version.Delete(c.UserContext(), c.Params("accountId"), c.Params("versionId")); err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) copyVersion(c *fiber.Ctx) error {
	v, err := rt.Services.Version.Copy(c.UserContext(), c.Params("accountId"), c.Params("versionId"), actor(c))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) previewVersion(c *fiber.Ctx) error {
	preview, err := rt.Services.Version.Preview(c.UserContext(), c.Params("accountId"), c.Params("versionId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, preview)
	return nil
}

// publisher 取 body 中的 publishedBy，缺省时取 X-Operator
func (rt *Router) publisher(c *fiber.Ctx) (string, error) {
	var req service.PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return "", err
		}
	}
	if req.PublishedBy == "" {
		return actor(c), nil
	}
	return req.PublishedBy, nil
}

func (rt *Router) publishVersion(c *fiber.Ctx) error {
	by, err := rt.publisher(c)
	if err != nil {
		return parseFailed(c, err)
	}
	v, err := rt.Services.Publish.PublishVersion(c.UserContext(), c.Params("accountId"), c.Params("versionId"), by)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) archiveVersion(c *fiber.Ctx) error {
	v, err := rt.Services.Version.Archive(c.UserContext(), c.Params("accountId"), c.Params("versionId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) rollbackVersion(c *fiber.Ctx) error {
	by, err := rt.publisher(c)
	if err != nil {
		return parseFailed(c, err)
	}
	v, err := rt.Services.Publish.Rollback(c.UserContext(), c.Params("accountId"), c.Params("versionId"), by)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, v)
	return nil
}

func (rt *Router) listVersionButtons(c *fiber.Ctx) error {
	nodes, err := rt.Services.Version.ListButtons(c.UserContext(), c.Params("accountId"), c.Params("versionId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, nodes)
	return nil
}

func (rt *Router) createVersionButton(c *fiber.Ctx) error {
	var req service.ButtonRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	b, err := rt.Services.Version.CreateButton(c.UserContext(), c.Params("accountId"), c.Params("versionId"), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, b)
	return nil
}

func (rt *Router) updateVersionButton(c *fiber.Ctx) error {
	var req service.ButtonRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	b, err := rt.Services.Version.UpdateButton(c.UserContext(), c.Params("accountId"), c.Params("versionId"),
		c.Params("buttonId"), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, b)
	return nil
}

func (rt *Router) deleteVersionButton(c *fiber.Ctx) error {
	err := rt.Services.Version.DeleteButton(c.UserContext(), c.Params("accountId"), c.Params("versionId"), c.Params("buttonId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) updateVersionButtonPositions(c *fiber.Ctx) error {
	var updates map[string]model.PositionUpdate
	if err := c.BodyParser(&updates); err != nil {
		return parseFailed(c, err)
	}
	n, err := rt.Services.Version.UpdatePositions(c.UserContext(), c.Params("accountId"), c.Params("versionId"), updates)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, fiber.Map{"updated": n})
	return nil
}
