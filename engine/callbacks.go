package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/tetrix/game"
)

// CallbackType defines the session lifecycle points where callbacks run.
type CallbackType string

const (
	// CallbackSessionCreated runs before a new session starts. Returning an
	// error aborts the creation.
	CallbackSessionCreated CallbackType = "session_created"

	// CallbackGameOver runs once a session's game has ended and its final
	// summary is recorded.
	CallbackGameOver CallbackType = "game_over"

	// CallbackSessionRemoved runs after a session has been deregistered.
	CallbackSessionRemoved CallbackType = "session_removed"
)

// CallbackContext carries the information available to a callback.
type CallbackContext struct {
	// SessionID identifies the session the callback fires for.
	SessionID string

	// Summary is the final game summary. Only set for CallbackGameOver.
	Summary *game.Summary

	// CallbackType indicates which lifecycle point triggered the callback.
	// It is filled in by the manager.
	CallbackType CallbackType

	// Metadata provides extensible storage for custom callback data.
	Metadata map[string]any
}

// Callback is a hook run at one lifecycle point.
type Callback interface {
	// Type returns the lifecycle point this callback handles.
	Type() CallbackType

	// Execute performs the callback logic.
	Execute(ctx context.Context, callbackCtx *CallbackContext) error
}

// FunctionCallback adapts a plain function to the Callback interface.
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, callbackCtx *CallbackContext) error
}

// NewFunctionCallback creates a callback from fn.
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, callbackCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{
		callbackType: callbackType,
		fn:           fn,
	}
}

func (c *FunctionCallback) Type() CallbackType {
	return c.callbackType
}

func (c *FunctionCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	return c.fn(ctx, callbackCtx)
}

// CallbackManager routes lifecycle notifications to registered callbacks.
// It is safe for concurrent use.
type CallbackManager struct {
	mu        sync.RWMutex
	callbacks map[CallbackType][]Callback
}

func NewCallbackManager() *CallbackManager {
	return &CallbackManager{
		callbacks: make(map[CallbackType][]Callback),
	}
}

func (cm *CallbackManager) RegisterCallback(callback Callback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks runs the callbacks of the given type in registration
// order and stops at the first error.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	callbackCtx *CallbackContext,
) error {
	cm.mu.RLock()
	callbacks := cm.callbacks[callbackType]
	cm.mu.RUnlock()

	callbackCtx.CallbackType = callbackType
	for _, callback := range callbacks {
		if err := callback.Execute(ctx, callbackCtx); err != nil {
			return err
		}
	}

	return nil
}

// LoggingCallback writes a one-line message for every notification.
type LoggingCallback struct {
	callbackType CallbackType
	logger       func(message string)
}

func NewLoggingCallback(callbackType CallbackType, logger func(message string)) *LoggingCallback {
	return &LoggingCallback{
		callbackType: callbackType,
		logger:       logger,
	}
}

func (c *LoggingCallback) Type() CallbackType {
	return c.callbackType
}

func (c *LoggingCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	if c.logger == nil {
		return nil
	}
	message := fmt.Sprintf("[%s] Session: %s", c.callbackType, callbackCtx.SessionID)
	if callbackCtx.Summary != nil {
		message += fmt.Sprintf(", Score: %d, Reason: %s", callbackCtx.Summary.Score, callbackCtx.Summary.Reason)
	}
	c.logger(message)
	return nil
}
