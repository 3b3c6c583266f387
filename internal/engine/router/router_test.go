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
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/engine/repo"
	"github.com/go-arcade/wxmenu/internal/engine/service"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/go-arcade/wxmenu/pkg/cache"
	"github.com/go-arcade/wxmenu/pkg/database"
	"github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	createErr error
	created   int
}

func (p *stubPublisher) CreateMenu(context.Context, wechat.Credential, menu.WechatMenu) error {
	if p.createErr != nil {
		return p.createErr
	}
	p.created++
	return nil
}

func (p *stubPublisher) GetCurrentMenu(context.Context, wechat.Credential) (*wechat.SelfMenuInfo, error) {
	return nil, errors.New("not implemented")
}

func (p *stubPublisher) DeleteMenu(context.Context, wechat.Credential) error { return nil }

func (p *stubPublisher) AddConditional(context.Context, wechat.Credential, menu.WechatMenu) (string, error) {
	return "408", nil
}

func (p *stubPublisher) DeleteConditional(context.Context, wechat.Credential, string) error {
	return nil
}

func (p *stubPublisher) TryMatch(context.Context, wechat.Credential, string) (menu.WechatMenu, error) {
	return menu.WechatMenu{Button: []menu.WechatButton{}}, nil
}

type envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	ErrMsg string          `json:"errMsg"`
	Detail json.RawMessage `json:"detail"`
}

type testServer struct {
	app       *fiber.App
	publisher *stubPublisher
	shutdown  *shutdown.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	m, err := database.NewManager(database.Database{
		Driver:      database.DriverSQLite,
		AutoMigrate: true,
		SQLite:      database.SQLiteConfig{Path: filepath.Join(t.TempDir(), "router.db")},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	db := database.NewDatabaseAdapter(m)
	c := cache.NewLocalCache(1 << 20)
	publisher := &stubPublisher{}
	services := service.NewServices(repo.NewRepositories(db, c), repo.NewUnitOfWork(db, c), publisher, nil, nil)

	conf := &http.Http{}
	conf.SetDefaults()
	sm := shutdown.NewManager()
	return &testServer{app: NewRouter(conf, services, sm).Router(), publisher: publisher, shutdown: sm}
}

func (s *testServer) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(HeaderOperator, "alice")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(env.Detail, &out))
	return out
}

// seed creates account acc-1 and a draft holding one valid click button.
func (s *testServer) seed(t *testing.T) model.MenuVersion {
	t.Helper()
	status, _ := s.do(t, nethttp.MethodPost, "/accounts",
		`{"accountId":"acc-1","name":"demo","appId":"wx1","appSecret":"secret"}`)
	require.Equal(t, nethttp.StatusOK, status)

	status, env := s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions", `{"description":"spring"}`)
	require.Equal(t, nethttp.StatusOK, status)
	v := decode[model.MenuVersion](t, env)

	status, _ = s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions/"+v.VersionId+"/buttons",
		`{"name":"今日歌曲","type":"click","clickKey":"V1001"}`)
	require.Equal(t, nethttp.StatusOK, status)
	return v
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))

	s.shutdown.Shutdown()
	resp, err = s.app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_NotFoundPath(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, nethttp.MethodGet, "/nowhere", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, http.NotFound.Code, env.Code)
}

func TestRouter_PublishFlow(t *testing.T) {
	s := newTestServer(t)
	v := s.seed(t)

	status, env := s.do(t, nethttp.MethodGet, "/accounts/acc-1/versions/"+v.VersionId+"/preview", "")
	require.Equal(t, nethttp.StatusOK, status)
	preview := decode[menu.Preview](t, env)
	assert.Empty(t, preview.Errors)
	assert.Equal(t, 1, preview.EnabledCount)

	status, env = s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions/"+v.VersionId+"/publish", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, http.Success.Code, env.Code)
	published := decode[model.MenuVersion](t, env)
	assert.Equal(t, model.MenuVersionPublished, published.Status)
	assert.Equal(t, "alice", published.PublishedBy)
	assert.Equal(t, 1, s.publisher.created)

	status, env = s.do(t, nethttp.MethodGet, "/accounts/acc-1/versions/current", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, v.VersionId, decode[model.MenuVersion](t, env).VersionId)

	status, env = s.do(t, nethttp.MethodGet, "/accounts/acc-1/versions/next-number", "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "1.0.1", decode[map[string]string](t, env)["version"])

	// 已发布版本不能再次发布
	status, env = s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions/"+v.VersionId+"/publish", `{"publishedBy":"bob"}`)
	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, http.StateConflict.Code, env.Code)
}

func TestRouter_ValidationError(t *testing.T) {
	s := newTestServer(t)
	v := s.seed(t)

	status, env := s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions/"+v.VersionId+"/buttons",
		`{"name":"缺少key","type":"click"}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, http.BadRequest.Code, env.Code)
	detail := decode[map[string][]string](t, env)
	require.NotEmpty(t, detail["errors"])
	assert.Contains(t, env.ErrMsg, "点击推事件")
}

func TestRouter_UnknownAccount(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, nethttp.MethodGet, "/accounts/missing/versions/next-number", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Equal(t, http.NotFound.Code, env.Code)
}

func TestRouter_PlatformFailureKeepsDraft(t *testing.T) {
	s := newTestServer(t)
	v := s.seed(t)
	s.publisher.createErr = &model.ExternalPublishError{Op: wechat.APIMenuCreate, Code: 40018, Message: "invalid button name size"}

	status, env := s.do(t, nethttp.MethodPost, "/accounts/acc-1/versions/"+v.VersionId+"/publish", "")
	assert.Equal(t, nethttp.StatusBadGateway, status)
	assert.Equal(t, http.ExternalPublishFailed.Code, env.Code)
	assert.Equal(t, "invalid button name size", env.ErrMsg)

	_, env = s.do(t, nethttp.MethodGet, "/accounts/acc-1/versions/"+v.VersionId, "")
	assert.Equal(t, model.MenuVersionDraft, decode[model.MenuVersion](t, env).Status)
}

func TestRouter_LiveButtonPositions(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	status, env := s.do(t, nethttp.MethodPost, "/accounts/acc-1/buttons", `{"name":"官网","type":"view","url":"https://example.com"}`)
	require.Equal(t, nethttp.StatusOK, status)
	button := decode[model.MenuButton](t, env)

	status, env = s.do(t, nethttp.MethodPut, "/accounts/acc-1/buttons/positions",
		`{"`+button.ButtonId+`":{"position":5},"ghost":{"position":1}}`)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, 1, decode[map[string]int](t, env)["updated"])

	status, env = s.do(t, nethttp.MethodGet, "/accounts/acc-1/buttons", "")
	require.Equal(t, nethttp.StatusOK, status)
	nodes := decode[[]map[string]any](t, env)
	require.Len(t, nodes, 1)
	assert.EqualValues(t, 5, nodes[0]["position"])

	status, env = s.do(t, nethttp.MethodDelete, "/accounts/acc-1/buttons/"+button.ButtonId, "")
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, http.Success.Code, env.Code)
}

func TestRouter_Conditional(t *testing.T) {
	s := newTestServer(t)
	v := s.seed(t)

	status, env := s.do(t, nethttp.MethodPost, "/accounts/acc-1/platform/conditional",
		`{"versionId":"`+v.VersionId+`","matchrule":{"tag_id":"2"}}`)
	require.Equal(t, nethttp.StatusOK, status, env.ErrMsg)
	assert.Equal(t, "408", decode[map[string]string](t, env)["menuId"])

	status, env = s.do(t, nethttp.MethodPost, "/accounts/acc-1/platform/conditional",
		`{"versionId":"`+v.VersionId+`","matchrule":{}}`)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, http.BadRequest.Code, env.Code)
}
