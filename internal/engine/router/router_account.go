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
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) accountRouter(r fiber.Router) {
	accountGroup := r.Group("/accounts")
	{
		accountGroup.Post("/", rt.createAccount)
		accountGroup.Get("/", rt.listAccounts)
		accountGroup.Get("/:accountId", rt.getAccount)
		accountGroup.Put("/:accountId", rt.updateAccount)
		accountGroup.Delete("/:accountId", rt.deleteAccount)
	}
}

func (rt *Router) createAccount(c *fiber.Ctx) error {
	var req service.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	account, err := rt.Services.Account.Create(c.UserContext(), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, account)
	return nil
}

func (rt *Router) listAccounts(c *fiber.Ctx) error {
	result, err := rt.Services.Account.List(c.UserContext(), pageOf(c))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) getAccount(c *fiber.Ctx) error {
	account, err := rt.Services.Account.Get(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, account)
	return nil
}

func (rt *Router) updateAccount(c *fiber.Ctx) error {
	var req service.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return parseFailed(c, err)
	}
	account, err := rt.Services.Account.Update(c.UserContext(), c.Params("accountId"), &req)
	if err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.DETAIL, account)
	return nil
}

func (rt *Router) deleteAccount(c *fiber.Ctx) error {
	if err := rt.Services.Account.Delete(c.UserContext(), c.Params("accountId")); err != nil {
		return respondErr(c, err)
	}
	c.Locals(consts.OPERATION, "")
	return nil
}

func parseFailed(c *fiber.Ctx, err error) error {
	return http.WithRepErrDetail(c.Status(fiber.StatusBadRequest), http.RequestParameterParsingFailed.Code,
		http.RequestParameterParsingFailed.Msg, err.Error(), c.Path())
}
