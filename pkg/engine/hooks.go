// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/google/uuid"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// compState is the runtime of a mounted component: its hook table, dirty bit
// and the handle given to user code. It implements vdom.RenderContext while the
// component renders and vdom.Handle for its whole lifetime.
type compState struct {
	id        string
	root      *Root
	inst      *Instance
	dirty     bool
	unmounted bool

	hooks          []*vdom.Hook
	hookIdx        int
	pendingEffects []int

	hasSelect  bool
	hasCleanup bool
}

func makeCompState(root *Root, inst *Instance) *compState {
	return &compState{id: uuid.New().String(), root: root, inst: inst}
}

func (c *compState) comp() *vdom.Component {
	return c.inst.Op.(*vdom.CompOp).Comp
}

func (c *compState) GetOrderedHook() *vdom.Hook {
	for len(c.hooks) <= c.hookIdx {
		c.hooks = append(c.hooks, &vdom.Hook{Idx: len(c.hooks)})
	}
	hookVal := c.hooks[c.hookIdx]
	c.hookIdx++
	return hookVal
}

func (c *compState) AddEffectWork(hookIdx int) {
	c.pendingEffects = append(c.pendingEffects, hookIdx)
}

func (c *compState) Handle() vdom.Handle {
	return c
}

func (c *compState) Id() string {
	return c.id
}

func (c *compState) Name() string {
	return c.comp().Name
}

// Mounted walks up to the top of the instance tree; a detached subtree never
// reaches the root's current instance.
func (c *compState) Mounted() bool {
	if c.unmounted {
		return false
	}
	top := c.inst
	for top.Parent != nil {
		top = top.Parent
	}
	return top == c.root.Instance || top == c.root.building
}

func (c *compState) FirstNode() surface.Node {
	return firstNode(c.inst.Child)
}

// Invalidate marks the component dirty and flags every ancestor up to the first
// one that is already flagged. The work happens on the next pass, even when
// called during the current one.
func (c *compState) Invalidate() {
	if !c.Mounted() {
		return
	}
	c.dirty = true
	for p := c.inst.Parent; p != nil && !p.dirtyDescendant; p = p.Parent {
		p.dirtyDescendant = true
	}
	c.root.markDirty()
}

// refreshSelf recomputes the component's own subtree contributions after a render.
func (c *compState) refreshSelf() {
	c.hasSelect = false
	c.hasCleanup = c.comp().Unmount != nil
	for _, hook := range c.hooks {
		if hook.Select != nil {
			c.hasSelect = true
		}
		if hook.Fn != nil || hook.UnmountFn != nil {
			c.hasCleanup = true
		}
	}
}

// selectorsChanged polls UseSelect selectors against their last rendered value.
func (c *compState) selectorsChanged() bool {
	for _, hook := range c.hooks {
		if hook.Select == nil {
			continue
		}
		if !utilfn.ValEqual(hook.Select(), hook.Val) {
			return true
		}
	}
	return false
}

// runUnmountHooks runs effect cleanups, then the component's Unmount callback.
func (c *compState) runUnmountHooks() {
	c.unmounted = true
	for _, hook := range c.hooks {
		if hook.UnmountFn != nil {
			fn := hook.UnmountFn
			hook.UnmountFn = nil
			fn()
		}
	}
	if unmountFn := c.comp().Unmount; unmountFn != nil {
		unmountFn(c)
	}
}
