// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// unmount detaches inst's output from parent and then tears the subtree down.
// sole means inst's output is everything parent contains, so one ClearChildren
// replaces the per-node removals.
func (p *pass) unmount(parent surface.Node, inst *Instance, sole bool) {
	if inst == nil {
		return
	}
	if sole {
		p.s.ClearChildren(parent)
	} else {
		p.detach(parent, inst)
	}
	p.teardown(inst)
}

// unmountItems unmounts items[from:to+1]. When they are the whole list and the
// list is parent's sole content, the parent is cleared in one call.
func (p *pass) unmountItems(parent surface.Node, items []*Instance, from int, to int, sole bool) {
	if sole && from == 0 && to == len(items)-1 {
		p.s.ClearChildren(parent)
		for i := from; i <= to; i++ {
			if items[i] != nil {
				p.teardown(items[i])
			}
		}
		return
	}
	for i := from; i <= to; i++ {
		p.unmount(parent, items[i], false)
	}
}

// detach removes the top-level output nodes of inst. Nodes nested inside a
// removed element leave with it.
func (p *pass) detach(parent surface.Node, inst *Instance) {
	if inst == nil {
		return
	}
	switch inst.Kind {
	case vdom.KindText, vdom.KindElem:
		p.s.RemoveChild(parent, inst.Node)
	case vdom.KindFragment, vdom.KindKeyed:
		for _, child := range inst.Children {
			p.detach(parent, child)
		}
	default:
		p.detach(parent, inst.Child)
	}
}

// teardown cuts inst from its parent and runs unmount hooks, descending only
// into subtrees that registered any.
func (p *pass) teardown(inst *Instance) {
	p.stats.Unmounts++
	inst.Parent = nil
	p.runUnmountHooks(inst)
}

func (p *pass) runUnmountHooks(inst *Instance) {
	if inst == nil || !inst.Subtree.UnmountHooks {
		return
	}
	switch inst.Kind {
	case vdom.KindComp:
		p.runUnmountHooks(inst.Child)
		inst.Comp.runUnmountHooks()
	case vdom.KindRef:
		p.runUnmountHooks(inst.Child)
		if ref := inst.Op.(*vdom.RefOp).Ref; ref != nil {
			ref.Current = nil
		}
	case vdom.KindFragment, vdom.KindKeyed:
		for _, child := range inst.Children {
			p.runUnmountHooks(child)
		}
	default:
		p.runUnmountHooks(inst.Child)
	}
}
