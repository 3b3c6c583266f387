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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-arcade/wxmenu/internal/engine/menu"
	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/go-arcade/wxmenu/internal/pkg/wechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishVersion_StampsAndArchivesOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1 := f.draftWithMenu(t)
	before := time.Now().Add(-time.Second)
	published, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v1.VersionId, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.MenuVersionPublished, published.Status)
	assert.Equal(t, "alice", published.PublishedBy)
	require.NotNil(t, published.PublishedAt)
	assert.False(t, published.PublishedAt.Before(before))
	assert.NotEmpty(t, published.Snapshot)

	require.Equal(t, 1, f.publisher.createCount())
	sent := f.publisher.created[0]
	require.Len(t, sent.Button, 2)
	assert.Equal(t, "click", sent.Button[0].Type)
	assert.Empty(t, sent.Button[1].Type)
	assert.Len(t, sent.Button[1].SubButton, 1)

	v2 := f.draftWithMenu(t)
	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v2.VersionId, "bob")
	require.NoError(t, err)

	old, err := f.svc.Version.Get(ctx, "acc-1", v1.VersionId)
	require.NoError(t, err)
	assert.Equal(t, model.MenuVersionArchived, old.Status)
	assert.Equal(t, "alice", old.PublishedBy)

	current, err := f.svc.Version.Current(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, v2.VersionId, current.VersionId)
}

func TestPublishVersion_RejectsNonDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.NoError(t, err)

	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	var se *model.StateError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.MenuVersionPublished, se.Status)
	assert.Equal(t, 1, f.publisher.createCount())

	_, err = f.svc.Version.CreateButton(ctx, "acc-1", v.VersionId, clickReq("x", "k"))
	assert.True(t, errors.As(err, &se))
	_, err = f.svc.Version.UpdateDescription(ctx, "acc-1", v.VersionId, "changed")
	assert.True(t, errors.As(err, &se))
	err = f.svc.Version.Delete(ctx, "acc-1", v.VersionId)
	assert.True(t, errors.As(err, &se))
}

func TestPublishVersion_PlatformFailureKeepsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.publisher.createErr = &model.ExternalPublishError{Op: wechat.APIMenuCreate, Code: 40018, Message: "invalid button name size"}

	v := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	var pe *model.ExternalPublishError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "invalid button name size", err.Error())

	got, err := f.svc.Version.Get(ctx, "acc-1", v.VersionId)
	require.NoError(t, err)
	assert.Equal(t, model.MenuVersionDraft, got.Status)
	assert.Nil(t, got.PublishedAt)
}

func TestPublishVersion_InvalidTreeNeverReachesPlatform(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.svc.Version.Create(ctx, "acc-1", "alice", &CreateVersionRequest{})
	require.NoError(t, err)
	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Messages, menu.MsgNoEnabledMenus)

	for i := 0; i < 4; i++ {
		_, err = f.svc.Version.CreateButton(ctx, "acc-1", v.VersionId, clickReq("m", "k"))
		require.NoError(t, err)
	}
	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v.VersionId, "alice")
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Error(), "4")
	assert.Equal(t, 0, f.publisher.createCount())
}

func TestPublishVersion_WrongAccountIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Account.Create(ctx, &AccountRequest{AccountId: "acc-2", Name: "other", AppId: "wx2", AppSecret: "s"})
	require.NoError(t, err)

	v := f.draftWithMenu(t)
	_, foreignErr := f.svc.Publish.PublishVersion(ctx, "acc-2", v.VersionId, "eve")
	_, missingErr := f.svc.Publish.PublishVersion(ctx, "acc-2", "missing", "eve")

	var nf *model.NotFoundError
	require.True(t, errors.As(foreignErr, &nf))
	assert.Equal(t, model.NewNotFoundError("menu version", v.VersionId).Error(), foreignErr.Error())
	require.True(t, errors.As(missingErr, &nf))
	assert.Equal(t, 0, f.publisher.createCount())
}

func TestRollback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1 := f.draftWithMenu(t)
	_, err := f.svc.Publish.PublishVersion(ctx, "acc-1", v1.VersionId, "alice")
	require.NoError(t, err)
	v2 := f.draftWithMenu(t)
	_, err = f.svc.Publish.PublishVersion(ctx, "acc-1", v2.VersionId, "alice")
	require.NoError(t, err)

	_, err = f.svc.Publish.Rollback(ctx, "acc-1", f.draftWithMenu(t).VersionId, "bob")
	var se *model.StateError
	assert.True(t, errors.As(err, &se))

	rolled, err := f.svc.Publish.Rollback(ctx, "acc-1", v1.VersionId, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.MenuVersionPublished, rolled.Status)
	assert.Equal(t, v1.VersionId, rolled.CopiedFrom)
	assert.Equal(t, "1.0.3", rolled.Version)

	prev, err := f.svc.Version.Get(ctx, "acc-1", v2.VersionId)
	require.NoError(t, err)
	assert.Equal(t, model.MenuVersionArchived, prev.Status)
}

func TestPublishLive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Publish.PublishLive(ctx, "acc-1", "alice")
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = f.svc.Button.Create(ctx, "acc-1", "alice", clickReq("hello", "k1"))
	require.NoError(t, err)
	_, err = f.svc.Button.Create(ctx, "acc-1", "alice", &ButtonRequest{Name: "off", Type: "click", ClickKey: "k2", Enabled: boolPtr(false)})
	require.NoError(t, err)

	sent, err := f.svc.Publish.PublishLive(ctx, "acc-1", "alice")
	require.NoError(t, err)
	require.Len(t, sent.Button, 1)
	assert.Equal(t, "hello", sent.Button[0].Name)

	preview, err := f.svc.Publish.PreviewLive(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, preview.Valid)
	assert.Equal(t, 2, preview.ButtonCount)
	assert.Equal(t, 1, preview.EnabledCount)
}

func TestPublishResult(t *testing.T) {
	assert.Equal(t, publishSuccess, publishResult(nil))
	assert.Equal(t, publishInvalid, publishResult(model.NewValidationError("x")))
	assert.Equal(t, publishPlatformFailed, publishResult(&model.ExternalPublishError{Op: "x"}))
	assert.Equal(t, publishConflict, publishResult(&model.StateError{}))
	assert.Equal(t, publishError, publishResult(errors.New("db down")))
}

func TestPublishLive_CyclicPositionsAreSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Button.Create(ctx, "acc-1", "alice", clickReq("Keep", "k_keep"))
	require.NoError(t, err)
	a, err := f.svc.Button.Create(ctx, "acc-1", "alice", &ButtonRequest{Name: "A", Type: "none"})
	require.NoError(t, err)
	b, err := f.svc.Button.Create(ctx, "acc-1", "alice", &ButtonRequest{
		Name: "B", Type: "click", ClickKey: "k_b", ParentId: strPtr(a.ButtonId),
	})
	require.NoError(t, err)

	applied, err := f.svc.Button.UpdatePositions(ctx, "acc-1", map[string]model.PositionUpdate{
		a.ButtonId: {Position: 1, ParentId: strPtr(b.ButtonId)},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	sent, err := f.svc.Publish.PublishLive(ctx, "acc-1", "alice")
	require.NoError(t, err)
	require.Len(t, sent.Button, 2)
	assert.Equal(t, "A", sent.Button[1].Name)
	require.Len(t, sent.Button[1].SubButton, 1)
	assert.Equal(t, "B", sent.Button[1].SubButton[0].Name)
}
