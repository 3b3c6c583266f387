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

package channel

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// WebhookChannel 通用 webhook，body 为 {"title","content"}
type WebhookChannel struct {
	name       string
	webhookURL string
	method     string
	token      string // 非空时带 Authorization: Bearer
	headers    map[string]string
	client     *resty.Client
}

func NewWebhookChannel(name, webhookURL, method, token string, headers map[string]string, client *resty.Client) *WebhookChannel {
	if method == "" {
		method = http.MethodPost
	}
	return &WebhookChannel{
		name:       name,
		webhookURL: webhookURL,
		method:     method,
		token:      token,
		headers:    headers,
		client:     client,
	}
}

func (c *WebhookChannel) Name() string {
	return c.name
}

func (c *WebhookChannel) Send(ctx context.Context, msg Message) error {
	if err := c.Validate(); err != nil {
		return err
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeaders(c.headers).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"title":   msg.Title,
			"content": msg.Content,
		})
	if c.token != "" {
		req.SetAuthToken(c.token)
	}

	resp, err := req.Execute(c.method, c.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode())
	}
	return nil
}

func (c *WebhookChannel) Validate() error {
	if c.webhookURL == "" {
		return fmt.Errorf("webhook URL is required")
	}
	switch c.method {
	case http.MethodPost, http.MethodPut:
		return nil
	default:
		return fmt.Errorf("unsupported webhook method %s", c.method)
	}
}
