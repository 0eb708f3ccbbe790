package request

import (
	"context"
	"time"

	"dao/core"
)

type key int

const (
	callerKey key = iota
	nowKey
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithCaller context with the caller identity
func (c ContextX) WithCaller(caller string) context.Context {
	return context.WithValue(c, callerKey, caller)
}

// GetCaller get the caller identity from context
func (c ContextX) GetCaller() (string, bool) {
	caller, ok := c.Value(callerKey).(string)
	return caller, ok && caller != ""
}

// WithNow fix the time seen by invocations built from this context
func (c ContextX) WithNow(t time.Time) context.Context {
	return context.WithValue(c, nowKey, t)
}

// Invocation caller and current time of the request
func (c ContextX) Invocation() *core.Invocation {
	caller, _ := c.GetCaller()

	now, ok := c.Value(nowKey).(time.Time)
	if !ok {
		now = time.Now()
	}

	return core.NewInvocation(caller, now)
}
