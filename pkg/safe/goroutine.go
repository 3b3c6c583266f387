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

package safe

import (
	"fmt"
	"runtime/debug"

	"github.com/go-arcade/wxmenu/pkg/log"
)

// Go runs f in a new goroutine, recovering and logging any panic.
func Go(f func()) {
	go Do(f)
}

// Do runs f and recovers from a panic. It reports whether a panic occurred.
func Do(f func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			log.Errorw("recovered from panic", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	f()
	return false
}

// DoErr runs f and turns a panic into an error.
func DoErr(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("recovered from panic", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}
