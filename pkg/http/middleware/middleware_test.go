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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/consts"
	httpx "github.com/go-arcade/wxmenu/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	out := map[string]any{}
	if err := sonic.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return out
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(consts.DETAIL, map[string]string{"version": "1.0.0"})
		return nil
	})
	app.Post("/operation", func(c *fiber.Ctx) error {
		c.Locals(consts.OPERATION, "")
		return nil
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return httpx.WithRepErrMsg(c, httpx.StateConflict.Code, "version is not a draft", c.Path())
	})

	tests := []struct {
		method, path string
		wantCode     float64
		wantDetail   bool
	}{
		{http.MethodGet, "/detail", 200, true},
		{http.MethodPost, "/operation", 200, false},
		{http.MethodGet, "/error", 4090, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			if err != nil {
				t.Fatalf("failed to test request: %v", err)
			}
			body := decode(t, resp)
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %v", body["code"], tt.wantCode)
			}
			if _, ok := body["detail"]; ok != tt.wantDetail {
				t.Errorf("detail present = %v, want %v", ok, tt.wantDetail)
			}
		})
	}
}

func TestExceptionMiddleware_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	if err != nil {
		t.Fatalf("failed to test request: %v", err)
	}
	body := decode(t, resp)
	if body["code"] != float64(httpx.InternalError.Code) {
		t.Errorf("code = %v, want %d", body["code"], httpx.InternalError.Code)
	}
	if body["errMsg"] != "boom" {
		t.Errorf("errMsg = %v", body["errMsg"])
	}
}

func TestRealIPMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RealIPMiddleware())
	app.Get("/ip", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalIP).(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("failed to test request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "10.0.0.1" {
		t.Errorf("ip = %s, want 10.0.0.1", body)
	}
}

func TestCorsMiddleware_Wildcard(t *testing.T) {
	app := fiber.New()
	app.Use(CorsMiddleware("*"))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("failed to test request: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
