// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// update reconciles old against op and returns the instance now occupying the slot.
// next is the output node the slot's content must precede. reinsert asks for the
// slot's output to be moved before next even when it is patched in place. sole
// means the slot's output is everything parent contains.
//
// Passing the op old was built from skips diffing. The caller promises such an op
// was not mutated in place.
func (p *pass) update(parent surface.Node, owner *Instance, old *Instance, op vdom.Op, next surface.Node, reinsert bool, sole bool, sc scope) *Instance {
	if vdom.IsNil(op) {
		p.release(old)
		p.unmount(parent, old, sole)
		return nil
	}
	if old == nil {
		return p.mount(parent, owner, op, next, sc)
	}
	if old.Op == op {
		p.stats.Skipped++
		p.dirtyCheck(parent, old, next, reinsert, sole, sc)
		return old
	}
	if !vdom.TypeCompatible(old.Op, op) {
		p.release(old)
		p.unmount(parent, old, sole)
		return p.mount(parent, owner, op, next, sc)
	}
	p.stats.Updates++
	old.dirtyDescendant = false
	p.patch(parent, old, op, next, reinsert, sole, sc)
	old.refreshSubtree()
	return old
}

// release forgets the root's instance before it is torn down, so handles of the
// outgoing tree stop reporting themselves as mounted.
func (p *pass) release(old *Instance) {
	if old != nil && old == p.root.Instance {
		p.root.Instance = nil
	}
}

func (p *pass) patch(parent surface.Node, inst *Instance, op vdom.Op, next surface.Node, reinsert bool, sole bool, sc scope) {
	switch o := op.(type) {
	case *vdom.TextOp:
		oldOp := inst.Op.(*vdom.TextOp)
		inst.Op = o
		if oldOp.Text != o.Text {
			p.s.SetTextValue(inst.Node, o.Text)
		}
		if reinsert {
			p.move(parent, inst.Node, next)
		}

	case *vdom.ElemOp:
		oldOp := inst.Op.(*vdom.ElemOp)
		inst.Op = o
		if reinsert {
			p.move(parent, inst.Node, next)
		}
		p.diffClass(inst.Node, oldOp.ClassName, o.ClassName)
		p.diffAttrs(inst.Node, oldOp.Attrs, o.Attrs)
		p.diffStyle(inst.Node, oldOp.Style, o.Style)
		inst.Child = p.update(inst.Node, inst, inst.Child, o.Children, nil, false, true, sc.forElem(o))

	case *vdom.CompOp:
		oldOp := inst.Op.(*vdom.CompOp)
		inst.Op = o
		if inst.Comp.dirty || sc.dirtyCtx || propsChanged(o.Comp, oldOp.Props, o.Props) {
			p.rerender(parent, inst, next, reinsert, sole, sc)
		} else {
			p.dirtyCheck(parent, inst.Child, next, reinsert, sole, sc)
		}

	case *vdom.FragmentOp:
		oldOp := inst.Op.(*vdom.FragmentOp)
		if len(oldOp.Children) != len(o.Children) {
			defect(ErrFragmentArity, "%d -> %d entries", len(oldOp.Children), len(o.Children))
		}
		inst.Op = o
		childSole := sole && len(o.Children) == 1
		order := p.trackSiblings()
		for i := len(o.Children) - 1; i >= 0; i-- {
			mark := order.mark()
			child := p.update(parent, inst, inst.Children[i], o.Children[i], next, reinsert, childSole, sc)
			order.add(i, mark)
			inst.Children[i] = child
			if node := firstNode(child); node != nil {
				next = node
			}
		}
		order.restore()

	case *vdom.KeyedOp:
		if p.opts.StrictKeys {
			checkUniqueKeys(o)
		}
		oldOp := inst.Op.(*vdom.KeyedOp)
		inst.Op = o
		inst.Children = p.updateKeyed(parent, inst, inst.Children, oldOp, o, next, sole, sc)
		if reinsert {
			p.reinsert(parent, inst, next)
		}

	case *vdom.EventsOp:
		inst.Op = o
		inst.Child = p.update(parent, inst, inst.Child, o.Child, next, reinsert, sole, sc)

	case *vdom.ContextOp:
		oldOp := inst.Op.(*vdom.ContextOp)
		inst.Op = o
		changed := sc.dirtyCtx || !utilfn.ValEqual(oldOp.Key, o.Key) || !utilfn.ValEqual(oldOp.Value, o.Value)
		if changed {
			inst.Ctx = context.WithValue(sc.ctx, o.Key, o.Value)
		}
		childScope := sc
		childScope.ctx = inst.Ctx
		childScope.dirtyCtx = changed
		inst.Child = p.update(parent, inst, inst.Child, o.Child, next, reinsert, sole, childScope)

	case *vdom.RefOp:
		oldRef := inst.Op.(*vdom.RefOp).Ref
		inst.Op = o
		inst.Child = p.update(parent, inst, inst.Child, o.Child, next, reinsert, sole, sc)
		if oldRef != nil && oldRef != o.Ref {
			oldRef.Current = nil
		}
		if o.Ref != nil {
			o.Ref.Current = firstNode(inst.Child)
		}

	default:
		defect(ErrUnknownOp, "%T", op)
	}
}

// rerender renders inst again and patches its previous output with the result.
func (p *pass) rerender(parent surface.Node, inst *Instance, next surface.Node, reinsert bool, sole bool, sc scope) {
	rendered := p.callRender(inst, sc)
	inst.Child = p.update(parent, inst, inst.Child, rendered, next, reinsert, sole, sc)
	p.queueCompWork(inst.Comp, inst.Comp.comp().Updated)
}

func propsChanged(comp *vdom.Component, oldProps any, newProps any) bool {
	if utilfn.ValEqual(oldProps, newProps) {
		return false
	}
	if comp.ShouldUpdate == nil {
		return true
	}
	return comp.ShouldUpdate(oldProps, newProps)
}
