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
	"strconv"
	"time"

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/service"
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/http/middleware"
	"github.com/go-arcade/wxmenu/pkg/shutdown"
	"github.com/go-arcade/wxmenu/pkg/trace/inject"
	"github.com/go-arcade/wxmenu/pkg/version"
	"github.com/gofiber/fiber/v2"
)

// HeaderOperator 调用方标识，记录为 createdBy / publishedBy
const HeaderOperator = "X-Operator"

type Router struct {
	Http     *http.Http
	Services *service.Services
	Shutdown *shutdown.Manager
}

func NewRouter(httpConf *http.Http, services *service.Services, sm *shutdown.Manager) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Shutdown: sm,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "wxmenu",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit * 1024 * 1024,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.CorsMiddleware(rt.Http.CorsOrigins),
		inject.FiberMiddleware(),
	)
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	// 进入关闭流程后返回 503，负载均衡先摘除流量
	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group(rt.Http.InternalContextPath)
	{
		rt.accountRouter(api)
		rt.buttonRouter(api)
		rt.versionRouter(api)
		rt.platformRouter(api)
	}

	// 找不到路径时的处理，必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c.Status(fiber.StatusNotFound), http.NotFound.Code, "request path not found", c.Path())
	})

	return app
}

func actor(c *fiber.Ctx) string {
	return c.Get(HeaderOperator)
}

func pageOf(c *fiber.Ctx) model.Page {
	pageNum, _ := strconv.Atoi(c.Query("pageNum", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	return model.Page{PageNum: pageNum, PageSize: pageSize}
}
