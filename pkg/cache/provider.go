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

package cache

import (
	"github.com/google/wire"
)

// ProviderSet 提供缓存依赖
var ProviderSet = wire.NewSet(ProvideICache)

// ProvideICache 根据 mode 选择 redis 或本地缓存
func ProvideICache(conf *Redis) (ICache, func(), error) {
	conf.SetDefaults()
	if conf.Mode == ModeLocal {
		return NewLocalCache(conf.LocalMaxBytes), func() {}, nil
	}
	client, err := NewRedis(*conf)
	if err != nil {
		return nil, nil, err
	}
	return NewRedisCache(client), func() { _ = client.Close() }, nil
}
