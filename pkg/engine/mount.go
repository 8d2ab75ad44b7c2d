// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// mount materializes op into fresh instances and output nodes, inserting the
// output before next in parent. owner becomes the new instance's parent.
func (p *pass) mount(parent surface.Node, owner *Instance, op vdom.Op, next surface.Node, sc scope) *Instance {
	if vdom.IsNil(op) {
		return nil
	}
	p.stats.Mounts++
	inst := &Instance{Kind: op.Kind(), Op: op, Parent: owner}
	if owner == nil {
		p.root.building = inst
	}
	switch o := op.(type) {
	case *vdom.TextOp:
		inst.Node = p.s.CreateText(o.Text)
		p.insert(parent, inst.Node, next)

	case *vdom.ElemOp:
		childScope := sc.forElem(o)
		node := p.s.CreateElement(o.Tag, sc.svg || o.Svg)
		inst.Node = node
		if o.ClassName != "" {
			p.s.SetAttribute(node, vdom.ClassAttr, o.ClassName)
		}
		p.diffAttrs(node, nil, o.Attrs)
		p.diffStyle(node, nil, o.Style)
		// children go into the detached node, so none of these inserts touch live output
		inst.Child = p.mount(node, inst, o.Children, nil, childScope)
		p.insert(parent, node, next)

	case *vdom.CompOp:
		inst.Comp = makeCompState(p.root, inst)
		rendered := p.callRender(inst, sc)
		inst.Child = p.mount(parent, inst, rendered, next, sc)
		p.queueCompWork(inst.Comp, o.Comp.Attached)

	case *vdom.FragmentOp:
		inst.Children = p.mountList(parent, inst, o.Children, next, sc)

	case *vdom.KeyedOp:
		if p.opts.StrictKeys {
			checkUniqueKeys(o)
		}
		ops := make([]vdom.Op, len(o.Items))
		for idx, item := range o.Items {
			ops[idx] = item.Op
		}
		inst.Children = p.mountList(parent, inst, ops, next, sc)

	case *vdom.EventsOp:
		inst.Child = p.mount(parent, inst, o.Child, next, sc)

	case *vdom.ContextOp:
		inst.Ctx = context.WithValue(sc.ctx, o.Key, o.Value)
		childScope := sc
		childScope.ctx = inst.Ctx
		childScope.dirtyCtx = false
		inst.Child = p.mount(parent, inst, o.Child, next, childScope)

	case *vdom.RefOp:
		inst.Child = p.mount(parent, inst, o.Child, next, sc)
		if o.Ref != nil {
			o.Ref.Current = firstNode(inst.Child)
		}

	default:
		defect(ErrUnknownOp, "%T", op)
	}
	inst.refreshSubtree()
	return inst
}

// mountList mounts entries right to left so each insert's reference node already exists.
// Their post-commit work is still queued in document order.
func (p *pass) mountList(parent surface.Node, owner *Instance, ops []vdom.Op, next surface.Node, sc scope) []*Instance {
	rtn := make([]*Instance, len(ops))
	order := p.trackSiblings()
	for i := len(ops) - 1; i >= 0; i-- {
		mark := order.mark()
		child := p.mount(parent, owner, ops[i], next, sc)
		order.add(i, mark)
		rtn[i] = child
		if node := firstNode(child); node != nil {
			next = node
		}
	}
	order.restore()
	return rtn
}

// callRender runs the component's render function with the component's hooks
// and the current context. The dirty bit is cleared first, so an invalidation
// raised during render survives for the next pass.
func (p *pass) callRender(inst *Instance, sc scope) (rtn vdom.Op) {
	cs := inst.Comp
	op := inst.Op.(*vdom.CompOp)
	if op.Comp == nil || op.Comp.Render == nil {
		defect(ErrNilRender, "%v", op.Comp)
	}
	cs.dirty = false
	cs.hookIdx = 0
	cs.pendingEffects = nil
	p.stats.Renders++
	defer func() {
		if r := recover(); r != nil {
			panic(&RenderError{Component: op.Comp.Name, Val: r})
		}
	}()
	rtn = op.Comp.Render(vdom.WithRenderContext(sc.ctx, cs), op.Props)
	cs.refreshSelf()
	return rtn
}
