// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"context"
)

type renderContextKeyType struct{}

var renderContextKey = renderContextKeyType{}

// RenderContext is what the engine exposes to hooks while a component renders.
type RenderContext interface {
	GetOrderedHook() *Hook
	AddEffectWork(hookIdx int)
	Handle() Handle
}

func WithRenderContext(ctx context.Context, rc RenderContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, renderContextKey, rc)
}

func GetRenderContext(ctx context.Context) RenderContext {
	if ctx == nil {
		return nil
	}
	v := ctx.Value(renderContextKey)
	if v == nil {
		return nil
	}
	return v.(RenderContext)
}
