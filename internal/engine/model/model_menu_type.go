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

package model

import (
	"fmt"
	"strings"
)

// MenuType is the action type of a button, the same value as the type field
// of the platform API.
type MenuType string

const (
	MenuTypeNone            MenuType = "none"
	MenuTypeView            MenuType = "view"
	MenuTypeClick           MenuType = "click"
	MenuTypeMiniProgram     MenuType = "miniprogram"
	MenuTypeScanCodePush    MenuType = "scancode_push"
	MenuTypeScanCodeWaitMsg MenuType = "scancode_waitmsg"
	MenuTypePicSysPhoto     MenuType = "pic_sysphoto"
	MenuTypePicPhotoAlbum   MenuType = "pic_photo_or_album"
	MenuTypePicWeixin       MenuType = "pic_weixin"
	MenuTypeLocationSelect  MenuType = "location_select"
)

// MenuTypeGroup classifies a type by the fields it requires.
type MenuTypeGroup int

const (
	GroupNone MenuTypeGroup = iota
	GroupKey
	GroupView
	GroupMiniProgram
)

// AllMenuTypes lists every variant in declaration order.
var AllMenuTypes = []MenuType{
	MenuTypeNone,
	MenuTypeView,
	MenuTypeClick,
	MenuTypeMiniProgram,
	MenuTypeScanCodePush,
	MenuTypeScanCodeWaitMsg,
	MenuTypePicSysPhoto,
	MenuTypePicPhotoAlbum,
	MenuTypePicWeixin,
	MenuTypeLocationSelect,
}

var menuTypeNames = map[string]MenuType{
	"NONE":               MenuTypeNone,
	"VIEW":               MenuTypeView,
	"CLICK":              MenuTypeClick,
	"MINI_PROGRAM":       MenuTypeMiniProgram,
	"SCAN_CODE_PUSH":     MenuTypeScanCodePush,
	"SCAN_CODE_WAIT_MSG": MenuTypeScanCodeWaitMsg,
	"PIC_SYS_PHOTO":      MenuTypePicSysPhoto,
	"PIC_PHOTO_ALBUM":    MenuTypePicPhotoAlbum,
	"PIC_WEIXIN":         MenuTypePicWeixin,
	"LOCATION_SELECT":    MenuTypeLocationSelect,
}

// Label returns the display name of the type.
func (t MenuType) Label() string {
	switch t {
	case MenuTypeNone:
		return "无"
	case MenuTypeView:
		return "跳转URL"
	case MenuTypeClick:
		return "点击推事件"
	case MenuTypeMiniProgram:
		return "小程序"
	case MenuTypeScanCodePush:
		return "扫码推事件"
	case MenuTypeScanCodeWaitMsg:
		return "扫码推事件且弹出\"消息接收中\"提示框"
	case MenuTypePicSysPhoto:
		return "弹出系统拍照发图"
	case MenuTypePicPhotoAlbum:
		return "弹出拍照或者相册发图"
	case MenuTypePicWeixin:
		return "弹出微信相册发图器"
	case MenuTypeLocationSelect:
		return "弹出地理位置选择器"
	default:
		return string(t)
	}
}

// Group returns the field-requirement group of the type.
func (t MenuType) Group() MenuTypeGroup {
	switch t {
	case MenuTypeClick, MenuTypeScanCodePush, MenuTypeScanCodeWaitMsg,
		MenuTypePicSysPhoto, MenuTypePicPhotoAlbum, MenuTypePicWeixin, MenuTypeLocationSelect:
		return GroupKey
	case MenuTypeView:
		return GroupView
	case MenuTypeMiniProgram:
		return GroupMiniProgram
	default:
		return GroupNone
	}
}

func (t MenuType) IsValid() bool {
	switch t {
	case MenuTypeNone, MenuTypeView, MenuTypeClick, MenuTypeMiniProgram,
		MenuTypeScanCodePush, MenuTypeScanCodeWaitMsg, MenuTypePicSysPhoto,
		MenuTypePicPhotoAlbum, MenuTypePicWeixin, MenuTypeLocationSelect:
		return true
	}
	return false
}

// IsAbsent reports whether no type was set at all. NONE is a set type.
func (t MenuType) IsAbsent() bool {
	return t == ""
}

// IsAction reports whether the type is set and not NONE.
func (t MenuType) IsAction() bool {
	return t != "" && t != MenuTypeNone
}

// ParseMenuType accepts a wire code ("scancode_push") or an enum name
// ("SCAN_CODE_PUSH"). The empty string parses to an absent type.
func ParseMenuType(s string) (MenuType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t := MenuType(strings.ToLower(s)); t.IsValid() {
		return t, nil
	}
	if t, ok := menuTypeNames[strings.ToUpper(s)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown menu type %q", s)
}
