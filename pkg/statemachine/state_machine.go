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

package statemachine

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrInvalidTransition is returned when no rule allows from → to.
var ErrInvalidTransition = errors.New("invalid transition")

// Event names the action that caused a transition. Optional.
type Event string

// StateHook is triggered when entering a state.
type StateHook[T comparable] func(state T) error

// TransitionValidator validates whether a state transition is allowed.
type TransitionValidator[T comparable] func(from, to T, event Event) error

// TransitionRecord records a state transition in the FSM history.
type TransitionRecord[T comparable] struct {
	From      T
	To        T
	Event     Event
	Timestamp time.Time
	Error     error
}

// StateMachine is a small generic finite state machine.
// Transitions are whitelisted with Allow; everything else is rejected
// with ErrInvalidTransition. Safe for concurrent use.
type StateMachine[T comparable] struct {
	mu sync.RWMutex

	currentState T
	initialState T

	// from state -> valid next states
	validTransitions map[T][]T

	history        []TransitionRecord[T]
	maxHistorySize int

	onEnter    map[T][]StateHook[T]
	validators []TransitionValidator[T]

	onError func(from, to T, err error)
}

// New creates a new StateMachine instance.
func New[T comparable]() *StateMachine[T] {
	return &StateMachine[T]{
		validTransitions: make(map[T][]T),
		onEnter:          make(map[T][]StateHook[T]),
		history:          make([]TransitionRecord[T], 0),
		maxHistorySize:   100,
	}
}

// NewWithState creates a new StateMachine with an initial state.
func NewWithState[T comparable](initialState T) *StateMachine[T] {
	sm := New[T]()
	sm.currentState = initialState
	sm.initialState = initialState
	return sm
}

// Allow registers from → to for every target.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, t := range to {
		if !slices.Contains(sm.validTransitions[from], t) {
			sm.validTransitions[from] = append(sm.validTransitions[from], t)
		}
	}
	return sm
}

// CanTransition reports whether from → to is registered.
func (sm *StateMachine[T]) CanTransition(from, to T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Contains(sm.validTransitions[from], to)
}

// CanTransitTo reports whether the current state may move to `to`.
func (sm *StateMachine[T]) CanTransitTo(to T) bool {
	return sm.CanTransition(sm.Current(), to)
}

func (sm *StateMachine[T]) Current() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

func (sm *StateMachine[T]) Initial() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.initialState
}

// Reset returns to the initial state and clears the history.
func (sm *StateMachine[T]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.currentState = sm.initialState
	sm.history = sm.history[:0]
}

// GetValidNextStates returns a copy of the targets reachable from `from`.
func (sm *StateMachine[T]) GetValidNextStates(from T) []T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.validTransitions[from])
}

// Is reports whether the machine is currently in state.
func (sm *StateMachine[T]) Is(state T) bool {
	return sm.Current() == state
}

// IsOneOf reports whether the machine is in any of states.
func (sm *StateMachine[T]) IsOneOf(states ...T) bool {
	return slices.Contains(states, sm.Current())
}

func (sm *StateMachine[T]) History() []TransitionRecord[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.history)
}

// SetMaxHistorySize bounds the number of kept records.
func (sm *StateMachine[T]) SetMaxHistorySize(size int) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if size > 0 {
		sm.maxHistorySize = size
	}
	return sm
}

// OnEnter registers a hook called after the state changed to `state`.
func (sm *StateMachine[T]) OnEnter(state T, h StateHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onEnter[state] = append(sm.onEnter[state], h)
	return sm
}

// AddValidator registers a guard checked before every transition.
func (sm *StateMachine[T]) AddValidator(v TransitionValidator[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.validators = append(sm.validators, v)
	return sm
}

// OnError registers a handler for failed transitions.
func (sm *StateMachine[T]) OnError(handler func(from, to T, err error)) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onError = handler
	return sm
}

func (sm *StateMachine[T]) Transit(from, to T) error {
	return sm.Transition(from, to, "")
}

// Transition performs from → to. It checks the whitelist, runs validators,
// updates the current state, fires OnEnter hooks and records history.
func (sm *StateMachine[T]) Transition(from, to T, event Event) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	startTime := time.Now()
	var transitionErr error

	defer func() {
		sm.history = append(sm.history, TransitionRecord[T]{
			From:      from,
			To:        to,
			Event:     event,
			Timestamp: startTime,
			Error:     transitionErr,
		})
		if len(sm.history) > sm.maxHistorySize {
			sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
		}
		if transitionErr != nil && sm.onError != nil {
			sm.onError(from, to, transitionErr)
		}
	}()

	if !slices.Contains(sm.validTransitions[from], to) {
		transitionErr = fmt.Errorf("%w: %v → %v", ErrInvalidTransition, from, to)
		return transitionErr
	}

	for _, validator := range sm.validators {
		if err := validator(from, to, event); err != nil {
			transitionErr = fmt.Errorf("validation failed: %w", err)
			return transitionErr
		}
	}

	sm.currentState = to

	for _, h := range sm.onEnter[to] {
		if err := h(to); err != nil {
			transitionErr = fmt.Errorf("enter hook failed for state %v: %w", to, err)
			return transitionErr
		}
	}

	return nil
}

// TransitTo performs a transition from the current state to the target state.
func (sm *StateMachine[T]) TransitTo(to T) error {
	return sm.Transition(sm.Current(), to, "")
}

// TransitWithEvent is TransitTo with an event recorded in history.
func (sm *StateMachine[T]) TransitWithEvent(to T, event Event) error {
	return sm.Transition(sm.Current(), to, event)
}
