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
	"context"
	"encoding/binary"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const defaultLocalMaxBytes = 32 * 1024 * 1024

// LocalCache 进程内缓存，value 前 8 字节存放过期时间（unix nano，0 表示不过期）
type LocalCache struct {
	cache *fastcache.Cache
	now   func() time.Time
}

func NewLocalCache(maxBytes int) *LocalCache {
	if maxBytes <= 0 {
		maxBytes = defaultLocalMaxBytes
	}
	return &LocalCache{cache: fastcache.New(maxBytes), now: time.Now}
}

func (l *LocalCache) Get(_ context.Context, key string) *redis.StringCmd {
	raw := l.cache.GetBig(nil, []byte(key))
	if len(raw) < 8 {
		return redis.NewStringResult("", ErrCacheMiss)
	}
	if exp := int64(binary.BigEndian.Uint64(raw[:8])); exp > 0 && l.now().UnixNano() > exp {
		l.cache.Del([]byte(key))
		return redis.NewStringResult("", ErrCacheMiss)
	}
	return redis.NewStringResult(string(raw[8:]), nil)
}

func (l *LocalCache) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		b, err := sonic.Marshal(v)
		if err != nil {
			return redis.NewStatusResult("", err)
		}
		data = b
	}

	var exp int64
	if expiration > 0 {
		exp = l.now().Add(expiration).UnixNano()
	}
	buf := make([]byte, 8, 8+len(data))
	binary.BigEndian.PutUint64(buf, uint64(exp))
	l.cache.SetBig([]byte(key), append(buf, data...))
	return redis.NewStatusResult("OK", nil)
}

func (l *LocalCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if l.cache.Has([]byte(key)) {
			l.cache.Del([]byte(key))
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Stats 返回 fastcache 统计信息
func (l *LocalCache) Stats() fastcache.Stats {
	var s fastcache.Stats
	l.cache.UpdateStats(&s)
	return s
}
