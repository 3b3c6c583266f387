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

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// WeComChannel 企业微信群机器人
type WeComChannel struct {
	name       string
	webhookURL string
	client     *resty.Client
}

type wecomResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func NewWeComChannel(name, webhookURL string, client *resty.Client) *WeComChannel {
	return &WeComChannel{
		name:       name,
		webhookURL: webhookURL,
		client:     client,
	}
}

func (c *WeComChannel) Name() string {
	return c.name
}

// Send 以 markdown 消息发送
func (c *WeComChannel) Send(ctx context.Context, msg Message) error {
	if err := c.Validate(); err != nil {
		return err
	}

	payload := map[string]any{
		"msgtype": "markdown",
		"markdown": map[string]string{
			"content": fmt.Sprintf("### %s\n%s", msg.Title, msg.Content),
		},
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("wecom request failed with status %d", resp.StatusCode())
	}

	var result wecomResponse
	if err := sonic.Unmarshal(resp.Body(), &result); err == nil && result.ErrCode != 0 {
		return fmt.Errorf("wecom API error: errcode=%d, errmsg=%s", result.ErrCode, result.ErrMsg)
	}
	return nil
}

func (c *WeComChannel) Validate() error {
	if c.webhookURL == "" {
		return fmt.Errorf("wecom webhook URL is required")
	}
	return nil
}
