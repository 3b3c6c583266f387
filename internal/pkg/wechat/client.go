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

package wechat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/wxmenu/internal/engine/consts"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/pkg/cache"
	httpx "github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/go-arcade/wxmenu/pkg/metrics"
	"github.com/go-arcade/wxmenu/pkg/retry"
	"github.com/go-arcade/wxmenu/pkg/trace/inject"
	"github.com/go-resty/resty/v2"
)

type apiResponse interface {
	base() *BaseResponse
}

// errTokenRejected means the platform refused the token; retry once with a new one.
var errTokenRejected = errors.New("access token rejected")

// Client calls the official-account menu API.
type Client struct {
	conf    Conf
	http    *resty.Client
	cache   cache.ICache
	metrics *metrics.MenuMetrics

	mu     sync.Mutex
	tokens map[string]cachedToken // cache 为空时使用
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

func NewClient(conf Conf, c cache.ICache, m *metrics.MenuMetrics) *Client {
	conf.SetDefaults()
	client := httpx.NewClient(httpx.ClientConf{
		BaseURL: conf.BaseURL,
		Timeout: conf.Timeout,
		Debug:   conf.Debug,
	})
	client.SetJSONMarshaler(sonic.Marshal)
	client.SetJSONUnmarshaler(sonic.Unmarshal)
	return &Client{
		conf:    conf,
		http:    client,
		cache:   c,
		metrics: m,
		tokens:  make(map[string]cachedToken),
	}
}

// AccessToken returns a cached token for cred, fetching a new one when
// none is cached.
func (c *Client) AccessToken(ctx context.Context, cred Credential) (string, error) {
	if token := c.loadToken(ctx, cred.AppId); token != "" {
		return token, nil
	}

	var resp tokenResponse
	err := c.execute(ctx, APIToken, http.MethodGet, "/cgi-bin/token", func(r *resty.Request) {
		r.SetQueryParams(map[string]string{
			"grant_type": "client_credential",
			"appid":      cred.AppId,
			"secret":     cred.AppSecret,
		})
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &model.ExternalPublishError{Op: APIToken, Message: "empty access_token in response"}
	}

	ttl := time.Duration(resp.ExpiresIn-c.conf.TokenMargin) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	c.storeToken(ctx, cred.AppId, resp.AccessToken, ttl)
	c.metrics.IncTokenRefresh()
	log.WithContext(ctx).Infow("wechat access token refreshed", "appId", cred.AppId, "ttl", ttl.String())
	return resp.AccessToken, nil
}

// InvalidateToken drops the cached token of appId.
func (c *Client) InvalidateToken(ctx context.Context, appId string) {
	if c.cache != nil {
		if err := c.cache.Del(ctx, consts.AccessTokenKey+appId).Err(); err != nil {
			log.Warnw("failed to evict access token", "appId", appId, "error", err)
		}
		return
	}
	c.mu.Lock()
	delete(c.tokens, appId)
	c.mu.Unlock()
}

func (c *Client) loadToken(ctx context.Context, appId string) string {
	if c.cache != nil {
		token, err := c.cache.Get(ctx, consts.AccessTokenKey+appId).Result()
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			log.Warnw("failed to read access token from cache", "appId", appId, "error", err)
		}
		return token
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.tokens[appId]
	if !ok || time.Now().After(t.expiresAt) {
		return ""
	}
	return t.value
}

func (c *Client) storeToken(ctx context.Context, appId, token string, ttl time.Duration) {
	if c.cache != nil {
		if err := c.cache.Set(ctx, consts.AccessTokenKey+appId, token, ttl).Err(); err != nil {
			log.Warnw("failed to cache access token", "appId", appId, "error", err)
		}
		return
	}
	c.mu.Lock()
	c.tokens[appId] = cachedToken{value: token, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// call runs an authenticated request. A rejected token is evicted and the
// request is sent once more with a fresh one.
func (c *Client) call(ctx context.Context, cred Credential, api, method, path string, body any, out apiResponse) error {
	refreshed := false
	for {
		token, err := c.AccessToken(ctx, cred)
		if err != nil {
			return err
		}
		err = c.execute(ctx, api, method, path, func(r *resty.Request) {
			r.SetQueryParam("access_token", token)
			if body != nil {
				r.SetBody(body)
			}
		}, out)
		if errors.Is(err, errTokenRejected) && !refreshed {
			refreshed = true
			log.WithContext(ctx).Warnw("wechat rejected access token, refreshing", "api", api, "appId", cred.AppId)
			c.InvalidateToken(ctx, cred.AppId)
			continue
		}
		return err
	}
}

// execute sends one request with retry. Network failures and 5xx answers
// are retried; any errcode from the platform is returned at once.
func (c *Client) execute(ctx context.Context, api, method, path string, build func(r *resty.Request), out apiResponse) error {
	start := time.Now()
	err := retry.Do(ctx, func(ctx context.Context) error {
		return c.once(ctx, api, method, path, build, out)
	},
		retry.WithMaxAttempts(c.conf.MaxAttempts),
		retry.WithBackoff(retry.Exponential(c.conf.retryBase(), 5*time.Second)),
		retry.WithJitter(retry.FullJitter),
		retry.WithOnRetry(func(attempt int, err error, wait time.Duration) {
			log.WithContext(ctx).Warnw("wechat request failed, retrying",
				"api", api, "attempt", attempt, "wait", wait.String(), "error", err)
		}),
	)
	c.metrics.ObservePlatformCall(api, err, time.Since(start))
	if err == nil {
		return nil
	}

	var pe *model.ExternalPublishError
	if errors.As(err, &pe) {
		return err
	}
	return &model.ExternalPublishError{Op: api, Err: err}
}

func (c *Client) once(ctx context.Context, api, method, path string, build func(r *resty.Request), out apiResponse) error {
	req := c.http.R()
	build(req)

	var resp *resty.Response
	_, _, err := inject.HTTPRequest(ctx, method, path, req.Header, func(ctx context.Context) (int, int64, error) {
		var err error
		resp, err = req.SetContext(ctx).Execute(method, path)
		if err != nil {
			return 0, 0, err
		}
		return resp.StatusCode(), resp.Size(), nil
	})
	if err != nil {
		return err
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%s: unexpected status %d", api, resp.StatusCode())
	}
	if resp.StatusCode() != http.StatusOK {
		return retry.Permanent(&model.ExternalPublishError{
			Op:      api,
			Code:    resp.StatusCode(),
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode()),
		})
	}

	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return retry.Permanent(&model.ExternalPublishError{Op: api, Message: "malformed response", Err: err})
	}

	b := out.base()
	switch b.ErrCode {
	case 0:
		return nil
	case ErrCodeInvalidCredential, ErrCodeInvalidToken, ErrCodeTokenExpired:
		if api == APIToken {
			return retry.Permanent(&model.ExternalPublishError{Op: api, Code: b.ErrCode, Message: b.ErrMsg})
		}
		return retry.Permanent(&model.ExternalPublishError{Op: api, Code: b.ErrCode, Message: b.ErrMsg, Err: errTokenRejected})
	default:
		return retry.Permanent(&model.ExternalPublishError{Op: api, Code: b.ErrCode, Message: b.ErrMsg})
	}
}
