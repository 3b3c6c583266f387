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

package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-arcade/wxmenu/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr), "expected *model.ValidationError, got %v", err)
	return verr.Messages
}

func TestValidateButton_KeyTypesRequireKey(t *testing.T) {
	for _, mt := range model.AllMenuTypes {
		if mt.Group() != model.GroupKey {
			continue
		}
		b := btn("k", "", mt, "Menu")
		err := ValidateMenuButtonVersion(b)
		require.Error(t, err, mt)
		assert.Contains(t, err.Error(), mt.Label(), "message must name the type")

		// live variant reports the same
		err = ValidateMenuButton(b, NewTree(nil))
		require.Error(t, err, mt)
		assert.Contains(t, err.Error(), mt.Label())
	}
}

func TestValidateButton_Order(t *testing.T) {
	// name problems come before type problems
	b := btn("x", "", "", "")
	assert.Equal(t, []string{"menu name must not be empty"}, validationMessages(t, ValidateMenuButtonVersion(b)))

	b.Name = strings.Repeat("菜", MaxNameLength+1)
	assert.Contains(t, ValidateMenuButtonVersion(b).Error(), "60")

	b.Name = strings.Repeat("菜", MaxNameLength)
	assert.Equal(t, "root menu must have a type", ValidateMenuButtonVersion(b).Error())

	// a child without type is acceptable
	child := btn("c", "x", "", "Child")
	assert.NoError(t, ValidateMenuButtonVersion(child))
	// NONE counts as a type
	assert.NoError(t, ValidateMenuButtonVersion(btn("n", "", model.MenuTypeNone, "Root")))
}

func TestValidateButton_TypeFields(t *testing.T) {
	longKey := click("k", "", "K", strings.Repeat("k", MaxKeyLength+1))
	assert.Contains(t, ValidateMenuButtonVersion(longKey).Error(), model.MenuTypeClick.Label())

	okKey := click("k", "", "K", strings.Repeat("k", MaxKeyLength))
	assert.NoError(t, ValidateMenuButtonVersion(okKey))

	for _, u := range []string{"", "not a url", "ftp://x.com/a", "/relative/path"} {
		err := ValidateMenuButtonVersion(view("v", "", "V", u))
		require.Error(t, err, u)
		assert.Contains(t, err.Error(), model.MenuTypeView.Label())
	}
	assert.Error(t, ValidateMenuButtonVersion(view("v", "", "V", "https://x.com/"+strings.Repeat("a", MaxUrlLength))))
	assert.NoError(t, ValidateMenuButtonVersion(view("v", "", "V", "https://x.com/path?q=1")))

	mp := btn("m", "", model.MenuTypeMiniProgram, "Shop")
	mp.Url = "https://x.com"
	mp.AppId = "wx1"
	assert.Contains(t, ValidateMenuButtonVersion(mp).Error(), "pagepath")
	mp.PagePath = "pages/index"
	assert.NoError(t, ValidateMenuButtonVersion(mp))
	mp.AppId = ""
	assert.Contains(t, ValidateMenuButtonVersion(mp).Error(), model.MenuTypeMiniProgram.Label())

	unknown := btn("u", "", model.MenuType("media_id"), "U")
	assert.Contains(t, ValidateMenuButtonVersion(unknown).Error(), "unknown menu type")
}

func TestValidateMenuButton_Hierarchy(t *testing.T) {
	root := btn("r", "", model.MenuTypeNone, "Root")
	child := view("c", "r", "Child", "https://x.com")
	tree := NewTree([]*model.MenuButtonBase{root, child})

	// depth
	grandchild := click("g", "c", "Grand", "g")
	assert.Contains(t, ValidateMenuButton(grandchild, tree).Error(), "depth")

	// node with children must not carry an action type
	withType := *root
	withType.Type = model.MenuTypeClick
	withType.ClickKey = "root"
	assert.Contains(t, ValidateMenuButton(&withType, tree).Error(), "sub buttons")

	// sibling limit
	nodes := []*model.MenuButtonBase{root}
	for i := 0; i < MaxSubButtons; i++ {
		nodes = append(nodes, click(string(rune('a'+i)), "r", "S", "s"))
	}
	full := NewTree(nodes)
	assert.NoError(t, ValidateMenuButton(nodes[1], full), "an existing sibling does not count twice")
	extra := click("extra", "r", "Extra", "e")
	assert.Contains(t, ValidateMenuButton(extra, full).Error(), "sub button count")

	// nil tree only runs the field checks
	assert.NoError(t, ValidateMenuButton(grandchild, nil))
}

func TestValidateParent(t *testing.T) {
	assert.NoError(t, ValidateParent(btn("r", "", model.MenuTypeNone, "Root")))
	assert.NoError(t, ValidateParent(btn("r", "", "", "Root")))
	assert.Error(t, ValidateParent(click("r", "", "Root", "k")))
	assert.Error(t, ValidateParent(btn("c", "r", model.MenuTypeNone, "Child")))
}

func TestValidateMenuStructure_TooManyRoots(t *testing.T) {
	nodes := []*model.MenuButtonBase{
		click("a", "", "A", "a"), click("b", "", "B", "b"),
		click("c", "", "C", "c"), click("d", "", "D", "d"),
	}
	tree := NewTree(nodes)

	errs := ValidateMenuStructure(tree.Roots(), tree)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "4")
	assert.Contains(t, errs[0], "3")
}

func TestValidateMenuStructure_EmptyRoots(t *testing.T) {
	tree := NewTree(nil)
	errs := ValidateMenuStructure(tree.Roots(), tree)
	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestValidateMenuStructure_PerRootErrors(t *testing.T) {
	nodes := []*model.MenuButtonBase{
		click("a", "", "A", "a"),
		btn("b", "", model.MenuTypeNone, "B"),
	}
	for i := 0; i < MaxSubButtons+1; i++ {
		nodes = append(nodes, click("a"+string(rune('0'+i)), "a", "S", "s"))
		nodes = append(nodes, click("b"+string(rune('0'+i)), "b", "S", "s"))
	}
	tree := NewTree(nodes)

	errs := ValidateMenuStructure(tree.Roots(), tree)

	// one too-many error per root, one type conflict for A only
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], `"A"`)
	assert.Contains(t, errs[1], `"B"`)
	assert.Contains(t, errs[2], model.MenuTypeClick.Label())
}

func TestValidateTree(t *testing.T) {
	root := btn("r", "", "", "Root")
	child := view("c", "r", "Child", "https://x.com")
	disabled := click("d", "", "Off", "")
	disabled.Enabled = false

	// branch roots need no type; disabled nodes are not checked
	assert.NoError(t, ValidateTree(NewTree([]*model.MenuButtonBase{root, child, disabled})))

	bad := view("b", "r", "Bad", "nope")
	msgs := validationMessages(t, ValidateTree(NewTree([]*model.MenuButtonBase{root, child, bad})))
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "nope")

	deep := click("g", "c", "Grand", "g")
	msgs = validationMessages(t, ValidateTree(NewTree([]*model.MenuButtonBase{root, child, deep})))
	assert.Contains(t, strings.Join(msgs, "|"), "nested deeper")
}

func TestValidateTree_CycleIsReported(t *testing.T) {
	keep := click("k", "", "Keep", "k")
	a := btn("a", "b", model.MenuTypeNone, "A")
	b := click("b", "a", "B", "kb")

	msgs := validationMessages(t, ValidateTree(NewTree([]*model.MenuButtonBase{keep, a, b})))
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], `"A"`)
	assert.Contains(t, msgs[1], `"B"`)
	assert.Contains(t, msgs[0], "cycle")

	preview := BuildPreview(NewTree([]*model.MenuButtonBase{keep, a, b}))
	assert.False(t, preview.Valid)
	assert.Error(t, preview.Err())
}

// Draft 1.0.0: root "Home" (CLICK) plus "About" (VIEW) under a second root.
func TestScenario_TypeConflictOnParentRoot(t *testing.T) {
	version := &model.MenuVersion{VersionId: "v1", AccountId: "A", Version: InitialVersion, Status: model.MenuVersionDraft}
	require.NoError(t, version.EnsureDraft("create button"))

	home := click("home", "", "Home", "home")
	info := btn("info", "", "", "Info")
	about := view("about", "info", "About", "https://x.com")

	tree := NewTree([]*model.MenuButtonBase{home, info, about})
	assert.Empty(t, ValidateMenuStructure(tree.Roots(), tree))
	assert.NoError(t, ValidateMenuButton(about, tree))

	info.Type = model.MenuTypeNone
	assert.Empty(t, ValidateMenuStructure(tree.Roots(), tree))

	info.Type = model.MenuTypeClick
	info.ClickKey = "info"
	errs := ValidateMenuStructure(tree.Roots(), tree)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Info")
	assert.Contains(t, errs[0], model.MenuTypeClick.Label())
	assert.Error(t, ValidateMenuButton(info, tree))
}
