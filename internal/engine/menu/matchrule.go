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
	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// MatchRule selects the users a conditional menu applies to.
type MatchRule struct {
	TagId              string `json:"tag_id,omitempty"`
	Sex                string `json:"sex,omitempty"`
	Country            string `json:"country,omitempty"`
	Province           string `json:"province,omitempty"`
	City               string `json:"city,omitempty"`
	ClientPlatformType string `json:"client_platform_type,omitempty"`
	Language           string `json:"language,omitempty"`
}

func (r MatchRule) IsEmpty() bool {
	return r == MatchRule{}
}

// Validate requires at least one criterion and checks the enumerated ones.
func (r MatchRule) Validate() error {
	if r.IsEmpty() {
		return model.NewValidationError("match rule requires at least one criterion")
	}
	switch r.Sex {
	case "", "1", "2":
	default:
		return model.Validationf("match rule sex must be 1 (male) or 2 (female), got %q", r.Sex)
	}
	switch r.ClientPlatformType {
	case "", "1", "2", "3":
	default:
		return model.Validationf("match rule client_platform_type must be 1, 2 or 3, got %q", r.ClientPlatformType)
	}
	if r.City != "" && r.Province == "" {
		return model.NewValidationError("match rule city requires province")
	}
	if r.Province != "" && r.Country == "" {
		return model.NewValidationError("match rule province requires country")
	}
	return nil
}
