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
	"errors"

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// respondErr 将 service 错误转换为统一的错误响应
func respondErr(c *fiber.Ctx, err error) error {
	var (
		verr *model.ValidationError
		serr *model.StateError
		nerr *model.NotFoundError
		perr *model.ExternalPublishError
	)
	switch {
	case errors.As(err, &verr):
		return http.WithRepErrDetail(c.Status(fiber.StatusBadRequest), http.BadRequest.Code, verr.Error(),
			fiber.Map{"errors": verr.Messages}, c.Path())
	case errors.As(err, &serr):
		return http.WithRepErrMsg(c.Status(fiber.StatusConflict), http.StateConflict.Code, serr.Error(), c.Path())
	case errors.As(err, &nerr):
		return http.WithRepErrMsg(c.Status(fiber.StatusNotFound), http.NotFound.Code, nerr.Error(), c.Path())
	case errors.As(err, &perr):
		return http.WithRepErrDetail(c.Status(fiber.StatusBadGateway), http.ExternalPublishFailed.Code, perr.Error(),
			fiber.Map{"op": perr.Op, "errcode": perr.Code}, c.Path())
	default:
		log.WithContext(c.UserContext()).Errorw("request failed", "path", c.Path(), "error", err)
		return http.WithRepErrMsg(c.Status(fiber.StatusInternalServerError), http.InternalError.Code, http.InternalError.Msg, c.Path())
	}
}
