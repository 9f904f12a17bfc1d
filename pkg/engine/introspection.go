package engine

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Subscriptions  int    `json:"subscriptions"`
	ChangeListener int    `json:"change_listeners"`
	StoreType      string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.mu.Lock()
	defer e.mu.Unlock()

	storeType := "store"
	if comp, ok := e.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	return EngineState{
		Subscriptions:  len(e.subs),
		ChangeListener: len(e.changed),
		StoreType:      storeType,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
