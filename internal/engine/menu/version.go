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
	"strconv"
	"strings"

	"github.com/go-arcade/wxmenu/internal/engine/model"
)

// InitialVersion is assigned to the first version of an account.
const InitialVersion = "1.0.0"

// GenerateNextVersion increments the last dot-separated segment without
// carrying: "1.0.9" -> "1.0.10", "1" -> "2". An empty input yields
// InitialVersion.
func GenerateNextVersion(current string) (string, error) {
	current = strings.TrimSpace(current)
	if current == "" {
		return InitialVersion, nil
	}
	segments := strings.Split(current, ".")
	last := segments[len(segments)-1]
	n, err := strconv.ParseUint(last, 10, 63)
	if err != nil {
		return "", model.Validationf("version %q must end with a numeric segment", current)
	}
	segments[len(segments)-1] = strconv.FormatUint(n+1, 10)
	return strings.Join(segments, "."), nil
}

// ValidateVersionString accepts dot-separated non-negative integers.
func ValidateVersionString(v string) error {
	if v == "" {
		return model.NewValidationError("version must not be empty")
	}
	if len(v) > 32 {
		return model.NewValidationError("version must not exceed 32 characters")
	}
	for _, seg := range strings.Split(v, ".") {
		if _, err := strconv.ParseUint(seg, 10, 63); err != nil {
			return model.Validationf("version %q must consist of dot-separated numbers", v)
		}
	}
	return nil
}
