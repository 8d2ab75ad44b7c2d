// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// SubtreeFlags summarize what a node or any of its descendants needs.
type SubtreeFlags struct {
	DirtyCheck   bool // a component below polls selectors on every dirty-check pass
	UnmountHooks bool // a component or ref below must be torn down explicitly
}

func (f SubtreeFlags) or(other SubtreeFlags) SubtreeFlags {
	return SubtreeFlags{
		DirtyCheck:   f.DirtyCheck || other.DirtyCheck,
		UnmountHooks: f.UnmountHooks || other.UnmountHooks,
	}
}

// Instance mirrors one mounted Op. The instance tree is owned by a single Root
// and mutated in place by update and dirty-check passes.
//
// Exactly one content pattern is used per kind:
//   - text, elem: Node is the live output node (elem children live in Child)
//   - comp, events, context, ref: Child is the single wrapped instance
//   - fragment, keyed: Children, aligned with the op's entries
type Instance struct {
	Kind     vdom.Kind
	Op       vdom.Op
	Subtree  SubtreeFlags
	Parent   *Instance
	Node     surface.Node
	Child    *Instance
	Children []*Instance

	Comp *compState      // comp only
	Ctx  context.Context // context only: the merged context in effect below this node

	dirtyDescendant bool // a component below was invalidated since the last pass
}

func (inst *Instance) needsVisit() bool {
	if inst.Subtree.DirtyCheck || inst.dirtyDescendant {
		return true
	}
	return inst.Comp != nil && inst.Comp.dirty
}

func (inst *Instance) refreshSubtree() {
	var f SubtreeFlags
	switch inst.Kind {
	case vdom.KindComp:
		f.DirtyCheck = inst.Comp.hasSelect
		f.UnmountHooks = inst.Comp.hasCleanup
	case vdom.KindRef:
		f.UnmountHooks = inst.Op.(*vdom.RefOp).Ref != nil
	}
	if inst.Child != nil {
		f = f.or(inst.Child.Subtree)
	}
	for _, child := range inst.Children {
		if child != nil {
			f = f.or(child.Subtree)
		}
	}
	inst.Subtree = f
}

// FirstNode returns the first top-level output node produced by the instance, or nil.
func (inst *Instance) FirstNode() surface.Node {
	return firstNode(inst)
}

// EventHandlers returns the handlers bound by an events instance.
func (inst *Instance) EventHandlers() map[string]any {
	if inst == nil || inst.Kind != vdom.KindEvents {
		return nil
	}
	return inst.Op.(*vdom.EventsOp).Handlers
}

// Handle returns the component handle of a comp instance.
func (inst *Instance) Handle() vdom.Handle {
	if inst == nil || inst.Comp == nil {
		return nil
	}
	return inst.Comp
}

func firstNode(inst *Instance) surface.Node {
	for inst != nil {
		switch inst.Kind {
		case vdom.KindText, vdom.KindElem:
			return inst.Node
		case vdom.KindFragment, vdom.KindKeyed:
			for _, child := range inst.Children {
				if node := firstNode(child); node != nil {
					return node
				}
			}
			return nil
		default:
			inst = inst.Child
		}
	}
	return nil
}

// nextNode returns the first output node among items[from:to+1], or fallback.
func nextNode(items []*Instance, from int, to int, fallback surface.Node) surface.Node {
	for i := from; i <= to; i++ {
		if node := firstNode(items[i]); node != nil {
			return node
		}
	}
	return fallback
}
