// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"slices"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// scope is the inherited state of a walk. It is passed by value, so every
// recursive call sees exactly its parent's scope and nothing needs restoring.
type scope struct {
	ctx      context.Context
	dirtyCtx bool // an enclosing context value changed during this pass
	svg      bool
}

func (sc scope) forElem(e *vdom.ElemOp) scope {
	rtn := sc
	rtn.svg = (sc.svg || e.Svg) && e.Tag != "foreignObject"
	return rtn
}

// pass holds the state of one commit pass.
type pass struct {
	root  *Root
	s     surface.Surface
	opts  *Options
	stats *Stats
	work  []*effectWork
}

type effectWork struct {
	comp      *compState
	hookIdx   int
	lifecycle func(vdom.Handle)
}

func (p *pass) insert(parent surface.Node, node surface.Node, next surface.Node) {
	p.s.InsertBefore(parent, node, next)
}

func (p *pass) move(parent surface.Node, node surface.Node, next surface.Node) {
	p.stats.Moves++
	p.s.InsertBefore(parent, node, next)
}

// queueCompWork schedules the component's effects and lifecycle callback.
// It is called after the component's children were mounted or patched, so
// children always precede their parents in the queue.
func (p *pass) queueCompWork(cs *compState, lifecycle func(vdom.Handle)) {
	for _, hookIdx := range cs.pendingEffects {
		p.work = append(p.work, &effectWork{comp: cs, hookIdx: hookIdx})
	}
	cs.pendingEffects = nil
	if lifecycle != nil {
		p.work = append(p.work, &effectWork{comp: cs, hookIdx: -1, lifecycle: lifecycle})
	}
}

// siblingWork puts work queued while walking siblings right to left back into
// document order. Work queued by one sibling stays contiguous and keeps its
// children-first order.
type siblingWork struct {
	p    *pass
	base int
	segs []workSeg
}

type workSeg struct {
	idx   int
	start int
	end   int
}

func (p *pass) trackSiblings() siblingWork {
	return siblingWork{p: p, base: len(p.work)}
}

func (sw *siblingWork) mark() int {
	return len(sw.p.work)
}

// add assigns the work queued since start to the sibling at idx.
func (sw *siblingWork) add(idx int, start int) {
	if len(sw.p.work) > start {
		sw.segs = append(sw.segs, workSeg{idx: idx, start: start, end: len(sw.p.work)})
	}
}

func (sw *siblingWork) restore() {
	if len(sw.segs) < 2 {
		return
	}
	slices.SortStableFunc(sw.segs, func(a, b workSeg) int { return a.idx - b.idx })
	tail := make([]*effectWork, 0, len(sw.p.work)-sw.base)
	for _, seg := range sw.segs {
		tail = append(tail, sw.p.work[seg.start:seg.end]...)
	}
	sw.segs = nil
	if len(tail) != len(sw.p.work)-sw.base {
		// work queued outside any sibling keeps its order
		return
	}
	copy(sw.p.work[sw.base:], tail)
}

// reinsert moves every top-level output node of inst before next, keeping their order.
func (p *pass) reinsert(parent surface.Node, inst *Instance, next surface.Node) {
	if inst == nil {
		return
	}
	switch inst.Kind {
	case vdom.KindText, vdom.KindElem:
		p.move(parent, inst.Node, next)
	case vdom.KindFragment, vdom.KindKeyed:
		for i := len(inst.Children) - 1; i >= 0; i-- {
			child := inst.Children[i]
			if child == nil {
				continue
			}
			p.reinsert(parent, child, next)
			if node := firstNode(child); node != nil {
				next = node
			}
		}
	default:
		p.reinsert(parent, inst.Child, next)
	}
}
