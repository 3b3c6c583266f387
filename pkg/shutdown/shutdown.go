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

package shutdown

import (
	"sync"
	"sync/atomic"
)

// Manager tracks whether the process has begun shutting down. Health
// checks consult it so load balancers drain traffic before listeners close.
type Manager struct {
	shuttingDown atomic.Bool
	once         sync.Once
	done         chan struct{}
}

func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

func (m *Manager) IsShuttingDown() bool {
	return m.shuttingDown.Load()
}

// Shutdown marks the manager; it returns false if already shutting down.
func (m *Manager) Shutdown() bool {
	if !m.shuttingDown.CompareAndSwap(false, true) {
		return false
	}
	m.once.Do(func() { close(m.done) })
	return true
}

// Wait returns a channel closed once Shutdown was called.
func (m *Manager) Wait() <-chan struct{} {
	return m.done
}
