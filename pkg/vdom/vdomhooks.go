// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"context"

	"github.com/wavetermdev/riptide/pkg/util/utilfn"
)

// generic hook structure
type Hook struct {
	Init      bool          // is initialized
	Idx       int           // index in the hook array
	Fn        func() func() // for UseEffect
	UnmountFn func()        // cleanup returned by the last UseEffect run
	Val       any           // for UseState, UseRef, UseSelect
	Deps      []any
	Select    func() any // for UseSelect, polled by the dirty-check pass
}

type SimpleRef[T any] struct {
	Current T `json:"current"`
}

func mustRenderContext(ctx context.Context, hookName string) RenderContext {
	rc := GetRenderContext(ctx)
	if rc == nil {
		panic(hookName + " must be called within a component (no context)")
	}
	return rc
}

// UseState provides persistent state within a component, returning the current
// value, a setter and an updater. Setting a value invalidates the component.
func UseState[T any](ctx context.Context, initialVal T) (T, func(T), func(func(T) T)) {
	rc := mustRenderContext(ctx, "UseState")
	hookVal := rc.GetOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Val = initialVal
	}
	rtnVal, ok := hookVal.Val.(T)
	if !ok {
		panic("UseState hook value is not a state (possible out of order or conditional hooks)")
	}
	handle := rc.Handle()
	setVal := func(newVal T) {
		hookVal.Val = newVal
		handle.Invalidate()
	}
	setFn := func(updateFn func(T) T) {
		hookVal.Val = updateFn(hookVal.Val.(T))
		handle.Invalidate()
	}
	return rtnVal, setVal, setFn
}

// UseRef provides a mutable ref object that persists across re-renders.
func UseRef[T any](ctx context.Context, val T) *SimpleRef[T] {
	rc := mustRenderContext(ctx, "UseRef")
	hookVal := rc.GetOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Val = &SimpleRef[T]{Current: val}
	}
	typedRef, ok := hookVal.Val.(*SimpleRef[T])
	if !ok {
		panic("UseRef hook value is not a ref (possible out of order or conditional hooks)")
	}
	return typedRef
}

// depsEqual compares deps shallowly; slices and maps match only the same instance.
func depsEqual(deps1 []any, deps2 []any) bool {
	if len(deps1) != len(deps2) {
		return false
	}
	for i := range deps1 {
		if !utilfn.ValEqual(deps1[i], deps2[i]) {
			return false
		}
	}
	return true
}

// UseEffect queues fn to run after the current pass has been committed.
// The returned cleanup runs before the next run and when the component unmounts.
// A nil deps slice runs the effect after every render.
func UseEffect(ctx context.Context, fn func() func(), deps []any) {
	// note UseEffect never actually runs anything, it just queues the effect to run later
	rc := mustRenderContext(ctx, "UseEffect")
	hookVal := rc.GetOrderedHook()
	if !hookVal.Init {
		hookVal.Init = true
		hookVal.Fn = fn
		hookVal.Deps = deps
		rc.AddEffectWork(hookVal.Idx)
		return
	}
	if deps != nil && depsEqual(hookVal.Deps, deps) {
		return
	}
	hookVal.Fn = fn
	hookVal.Deps = deps
	rc.AddEffectWork(hookVal.Idx)
}

// UseSelect reads external state through selector. On every dirty-check pass the
// selector is called again and the component re-renders if the result changed.
func UseSelect[T any](ctx context.Context, selector func() T) T {
	rc := mustRenderContext(ctx, "UseSelect")
	hookVal := rc.GetOrderedHook()
	hookVal.Init = true
	hookVal.Select = func() any { return selector() }
	val := selector()
	hookVal.Val = val
	return val
}

// UseId returns the component instance id. It is recreated when the component is remounted.
func UseId(ctx context.Context) string {
	return mustRenderContext(ctx, "UseId").Handle().Id()
}

// UseHandle returns the component's handle, e.g. to invalidate from a goroutine's callback.
func UseHandle(ctx context.Context) Handle {
	return mustRenderContext(ctx, "UseHandle").Handle()
}

// UseInvalidate returns a function that marks the component dirty.
func UseInvalidate(ctx context.Context) func() {
	handle := mustRenderContext(ctx, "UseInvalidate").Handle()
	return handle.Invalidate
}

// UseContext reads a value provided by an enclosing ContextOp.
func UseContext[T any](ctx context.Context, key any) (T, bool) {
	var rtn T
	val := ctx.Value(key)
	if val == nil {
		return rtn, false
	}
	rtn, ok := val.(T)
	return rtn, ok
}
