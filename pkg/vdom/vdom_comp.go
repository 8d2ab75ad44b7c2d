// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"context"
	"fmt"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
)

// Handle is the stable identity of a mounted component instance.
// It stays valid across re-renders and becomes inert after unmount.
type Handle interface {
	Id() string
	Name() string
	Mounted() bool
	// Invalidate marks the component dirty; it re-renders on the next pass.
	Invalidate()
	// FirstNode is the first output node the component currently renders, or nil.
	FirstNode() surface.Node
}

// Component is a stateless descriptor; its pointer is the component's identity.
// Only Render is required. ShouldUpdate defaults to "always" when props differ.
// Attached and Updated run after the pass that mounted / re-rendered the component,
// Unmount runs after the component's output has been detached.
type Component struct {
	Name         string
	Render       func(ctx context.Context, props any) Op
	ShouldUpdate func(oldProps any, newProps any) bool
	Attached     func(h Handle)
	Updated      func(h Handle)
	Unmount      func(h Handle)
}

// Op returns an invocation of the component.
func (c *Component) Op(props any) *CompOp {
	return &CompOp{Comp: c, Props: props}
}

func (c *Component) String() string {
	if c == nil {
		return "<nil component>"
	}
	return c.Name
}

// DefineComponent adapts a typed render function. Props may be passed either as P
// or as a map[string]any (for example when decoded from JSON), which is decoded
// into P using its json tags.
func DefineComponent[P any](name string, render func(ctx context.Context, props P) Op) *Component {
	return &Component{
		Name: name,
		Render: func(ctx context.Context, props any) Op {
			return render(ctx, ConvertProps[P](name, props))
		},
	}
}

// ConvertProps returns props as P, accepting P, *P or a map[string]any decoded
// through json tags. It panics on any other type.
func ConvertProps[P any](name string, props any) P {
	var rtn P
	if props == nil {
		return rtn
	}
	if typed, ok := props.(P); ok {
		return typed
	}
	if typedPtr, ok := props.(*P); ok && typedPtr != nil {
		return *typedPtr
	}
	if m, ok := props.(map[string]any); ok {
		if err := utilfn.MapToStruct(m, &rtn); err != nil {
			panic(fmt.Sprintf("component %q: cannot convert props: %v", name, err))
		}
		return rtn
	}
	panic(fmt.Sprintf("component %q: props type %T, expected %T", name, props, rtn))
}
