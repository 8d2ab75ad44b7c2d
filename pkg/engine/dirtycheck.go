// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// dirtyCheck walks inst without a new op, re-rendering dirty components and
// components whose selectors report a change. Subtrees with nothing flagged are
// skipped; they are only moved when reinsert is set.
func (p *pass) dirtyCheck(parent surface.Node, inst *Instance, next surface.Node, reinsert bool, sole bool, sc scope) {
	if inst == nil {
		return
	}
	if !sc.dirtyCtx && !inst.needsVisit() {
		if reinsert {
			p.reinsert(parent, inst, next)
		}
		return
	}
	p.stats.Visited++
	inst.dirtyDescendant = false
	switch inst.Kind {
	case vdom.KindText:
		if reinsert {
			p.move(parent, inst.Node, next)
		}

	case vdom.KindElem:
		if reinsert {
			p.move(parent, inst.Node, next)
		}
		p.dirtyCheck(inst.Node, inst.Child, nil, false, true, sc.forElem(inst.Op.(*vdom.ElemOp)))

	case vdom.KindComp:
		cs := inst.Comp
		if cs.dirty || sc.dirtyCtx || (cs.hasSelect && cs.selectorsChanged()) {
			p.rerender(parent, inst, next, reinsert, sole, sc)
		} else {
			p.dirtyCheck(parent, inst.Child, next, reinsert, sole, sc)
		}

	case vdom.KindFragment, vdom.KindKeyed:
		childSole := sole && len(inst.Children) == 1
		order := p.trackSiblings()
		for i := len(inst.Children) - 1; i >= 0; i-- {
			child := inst.Children[i]
			mark := order.mark()
			p.dirtyCheck(parent, child, next, reinsert, childSole, sc)
			order.add(i, mark)
			if node := firstNode(child); node != nil {
				next = node
			}
		}
		order.restore()

	case vdom.KindEvents:
		p.dirtyCheck(parent, inst.Child, next, reinsert, sole, sc)

	case vdom.KindContext:
		if sc.dirtyCtx {
			op := inst.Op.(*vdom.ContextOp)
			inst.Ctx = context.WithValue(sc.ctx, op.Key, op.Value)
		}
		childScope := sc
		childScope.ctx = inst.Ctx
		p.dirtyCheck(parent, inst.Child, next, reinsert, sole, childScope)

	case vdom.KindRef:
		p.dirtyCheck(parent, inst.Child, next, reinsert, sole, sc)
		if ref := inst.Op.(*vdom.RefOp).Ref; ref != nil {
			ref.Current = firstNode(inst.Child)
		}

	default:
		defect(ErrUnknownOp, "%v", inst.Kind)
	}
	inst.refreshSubtree()
}
