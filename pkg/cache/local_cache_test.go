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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCache_SetGetDel(t *testing.T) {
	ctx := context.Background()
	lc := NewLocalCache(0)

	_, err := lc.Get(ctx, "missing").Result()
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, lc.Set(ctx, "k", "v", 0).Err())
	val, err := lc.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	n, err := lc.Del(ctx, "k", "missing").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = lc.Get(ctx, "k").Result()
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLocalCache_Expiration(t *testing.T) {
	ctx := context.Background()
	lc := NewLocalCache(0)
	now := time.Now()
	lc.now = func() time.Time { return now }

	require.NoError(t, lc.Set(ctx, "token", "abc", time.Minute).Err())
	val, err := lc.Get(ctx, "token").Result()
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	now = now.Add(2 * time.Minute)
	_, err = lc.Get(ctx, "token").Result()
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestLocalCache_MarshalsStructs(t *testing.T) {
	ctx := context.Background()
	lc := NewLocalCache(0)

	require.NoError(t, lc.Set(ctx, "row", versionRow{Version: "1.0.1"}, 0).Err())
	val, err := lc.Get(ctx, "row").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"versionId":"","version":"1.0.1"}`, val)
}

func TestProvideICache_Local(t *testing.T) {
	c, cleanup, err := ProvideICache(&Redis{Mode: ModeLocal})
	require.NoError(t, err)
	defer cleanup()
	_, ok := c.(*LocalCache)
	assert.True(t, ok)
}

func TestRedis_SetDefaults(t *testing.T) {
	r := &Redis{}
	r.SetDefaults()
	assert.Equal(t, ModeSingle, r.Mode)
	assert.Equal(t, "127.0.0.1:6379", r.Address)
	assert.Equal(t, 10, r.PoolSize)
}
