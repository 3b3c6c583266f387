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

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arcade/wxmenu/internal/pkg/notify/channel"
	httpx "github.com/go-arcade/wxmenu/pkg/http"
	"github.com/go-arcade/wxmenu/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Notifier fans a message out to every configured channel.
type Notifier struct {
	channels []channel.INotifyChannel
}

// NewNotifier builds the channels of conf. A disabled conf yields a
// notifier without channels.
func NewNotifier(conf *Conf) (*Notifier, error) {
	n := &Notifier{}
	if conf == nil || !conf.Enabled {
		return n, nil
	}
	conf.SetDefaults()

	client := httpx.NewClient(httpx.ClientConf{Timeout: conf.Timeout})
	for _, cc := range conf.Channels {
		var ch channel.INotifyChannel
		switch cc.Type {
		case ChannelTypeWeCom:
			ch = channel.NewWeComChannel(cc.Name, cc.URL, client)
		case ChannelTypeWebhook:
			ch = channel.NewWebhookChannel(cc.Name, cc.URL, cc.Method, cc.Token, cc.Headers, client)
		default:
			return nil, fmt.Errorf("unsupported notify channel type %q", cc.Type)
		}
		if err := ch.Validate(); err != nil {
			return nil, fmt.Errorf("channel %s validation failed: %w", cc.Name, err)
		}
		n.channels = append(n.channels, ch)
	}
	return n, nil
}

// NewNotifierWith wraps already built channels.
func NewNotifierWith(channels ...channel.INotifyChannel) *Notifier {
	return &Notifier{channels: channels}
}

// notifyConcurrency bounds how many channels send at once.
const notifyConcurrency = 4

// Notify sends to all channels concurrently and joins the failures in
// channel order.
func (n *Notifier) Notify(ctx context.Context, title, content string) error {
	if n == nil || len(n.channels) == 0 {
		return nil
	}
	msg := channel.Message{Title: title, Content: content}
	errs := make([]error, len(n.channels))

	var g errgroup.Group
	g.SetLimit(notifyConcurrency)
	for i, ch := range n.channels {
		g.Go(func() error {
			if err := ch.Send(ctx, msg); err != nil {
				log.WithContext(ctx).Warnw("notify channel failed", "channel", ch.Name(), "error", err)
				errs[i] = fmt.Errorf("channel %s: %w", ch.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
