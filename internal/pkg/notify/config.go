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

package notify

// ChannelType represents the notification channel type
type ChannelType string

const (
	ChannelTypeWeCom   ChannelType = "wecom"
	ChannelTypeWebhook ChannelType = "webhook"
)

// ChannelConf configures one notification channel.
type ChannelConf struct {
	Name    string            `mapstructure:"name"`
	Type    ChannelType       `mapstructure:"type"`
	URL     string            `mapstructure:"url"`
	Method  string            `mapstructure:"method"` // 仅 webhook
	Token   string            `mapstructure:"token"`  // 仅 webhook
	Headers map[string]string `mapstructure:"headers"`
}

// Conf configures alerts for events such as menu drift.
type Conf struct {
	Enabled  bool          `mapstructure:"enabled"`
	Timeout  int           `mapstructure:"timeout"` // 秒
	Channels []ChannelConf `mapstructure:"channels"`
}

func (c *Conf) SetDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5
	}
	for i := range c.Channels {
		if c.Channels[i].Name == "" {
			c.Channels[i].Name = string(c.Channels[i].Type)
		}
	}
}
