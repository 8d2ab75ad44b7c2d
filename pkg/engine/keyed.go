// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

// updateKeyed reconciles a keyed list and returns the instances aligned with
// newOp.Items. Keys are compared with ==, so they must be comparable values.
//
// Matching affixes are patched first: the trailing one right to left, then the
// leading one left to right. What remains is either a pure insert, a pure
// removal, or a middle range where matched entries are located by key and only
// those outside the longest increasing run of old positions are moved.
func (p *pass) updateKeyed(parent surface.Node, owner *Instance, oldItems []*Instance, oldOp *vdom.KeyedOp, newOp *vdom.KeyedOp, next surface.Node, sole bool, sc scope) []*Instance {
	oldKeys := oldOp.Items
	newKeys := newOp.Items
	rtn := make([]*Instance, len(newKeys))
	order := p.trackSiblings()
	defer order.restore()
	if len(oldKeys) == 0 {
		p.mountRange(parent, owner, newKeys, rtn, 0, len(newKeys)-1, next, sc, &order)
		return rtn
	}
	if len(newKeys) == 0 {
		p.unmountItems(parent, oldItems, 0, len(oldItems)-1, sole)
		return rtn
	}

	oldEnd := len(oldKeys) - 1
	newEnd := len(newKeys) - 1
	for oldEnd >= 0 && newEnd >= 0 && keyEq(oldKeys[oldEnd].Key, newKeys[newEnd].Key) {
		mark := order.mark()
		child := p.update(parent, owner, oldItems[oldEnd], newKeys[newEnd].Op, next, false, false, sc)
		order.add(newEnd, mark)
		rtn[newEnd] = child
		if node := firstNode(child); node != nil {
			next = node
		}
		oldEnd--
		newEnd--
	}
	start := 0
	for start <= oldEnd && start <= newEnd && keyEq(oldKeys[start].Key, newKeys[start].Key) {
		// everything after this entry is still in its old place
		itemNext := nextNode(oldItems, start+1, oldEnd, next)
		mark := order.mark()
		rtn[start] = p.update(parent, owner, oldItems[start], newKeys[start].Op, itemNext, false, false, sc)
		order.add(start, mark)
		start++
	}

	if start > oldEnd {
		p.mountRange(parent, owner, newKeys, rtn, start, newEnd, next, sc, &order)
		return rtn
	}
	if start > newEnd {
		p.unmountItems(parent, oldItems, start, oldEnd, sole)
		return rtn
	}

	// middle range: sources[k] is the old index matched by new index start+k, or -1
	midLen := newEnd - start + 1
	sources := make([]int, midLen)
	for k := range sources {
		sources[k] = -1
	}
	var keyIndex map[any]int
	if midLen > p.opts.LinearScanThreshold {
		keyIndex = make(map[any]int, midLen)
		for j := start; j <= newEnd; j++ {
			keyIndex[newKeys[j].Key] = j
		}
	}
	matched := 0
	moved := false
	lastPos := -1
	var removals []int
	for i := start; i <= oldEnd; i++ {
		j := -1
		if keyIndex != nil {
			if pos, ok := keyIndex[oldKeys[i].Key]; ok {
				j = pos
			}
		} else {
			for k := start; k <= newEnd; k++ {
				if sources[k-start] < 0 && keyEq(oldKeys[i].Key, newKeys[k].Key) {
					j = k
					break
				}
			}
		}
		if j < 0 || sources[j-start] >= 0 {
			removals = append(removals, i)
			continue
		}
		sources[j-start] = i
		matched++
		if j < lastPos {
			moved = true
		} else {
			lastPos = j
		}
	}

	if matched == 0 {
		p.unmountItems(parent, oldItems, start, oldEnd, sole)
		p.mountRange(parent, owner, newKeys, rtn, start, newEnd, next, sc, &order)
		return rtn
	}
	for _, i := range removals {
		p.unmount(parent, oldItems[i], false)
	}

	var stay []bool
	if moved {
		stay = markLIS(sources)
	}
	for k := midLen - 1; k >= 0; k-- {
		j := start + k
		var child *Instance
		mark := order.mark()
		if sources[k] < 0 {
			child = p.mount(parent, owner, newKeys[j].Op, next, sc)
		} else {
			child = p.update(parent, owner, oldItems[sources[k]], newKeys[j].Op, next, moved && !stay[k], false, sc)
		}
		order.add(j, mark)
		rtn[j] = child
		if node := firstNode(child); node != nil {
			next = node
		}
	}
	return rtn
}

// mountRange mounts items[from:to+1] right to left before next into rtn.
func (p *pass) mountRange(parent surface.Node, owner *Instance, items []vdom.KeyedItem, rtn []*Instance, from int, to int, next surface.Node, sc scope, order *siblingWork) {
	for i := to; i >= from; i-- {
		mark := order.mark()
		child := p.mount(parent, owner, items[i].Op, next, sc)
		order.add(i, mark)
		rtn[i] = child
		if node := firstNode(child); node != nil {
			next = node
		}
	}
}

func keyEq(a any, b any) bool {
	return a == b
}

func checkUniqueKeys(op *vdom.KeyedOp) {
	seen := make(map[any]struct{}, len(op.Items))
	for _, item := range op.Items {
		if _, found := seen[item.Key]; found {
			defect(ErrDuplicateKey, "%v", item.Key)
		}
		seen[item.Key] = struct{}{}
	}
}
