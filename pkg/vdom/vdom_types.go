// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"fmt"

	"github.com/wavetermdev/riptide/pkg/surface"
)

const ClassAttr = "class"

// Kind is the closed set of operation variants.
type Kind int

const (
	KindText Kind = iota
	KindElem
	KindComp
	KindFragment
	KindKeyed
	KindEvents
	KindContext
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElem:
		return "elem"
	case KindComp:
		return "comp"
	case KindFragment:
		return "fragment"
	case KindKeyed:
		return "keyed"
	case KindEvents:
		return "events"
	case KindContext:
		return "context"
	case KindRef:
		return "ref"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op is an immutable description of one node of the desired output.
// Ops are never mutated by the engine. Passing the same *Op pointer again on a
// later update is a promise that nothing under it changed; the engine then skips
// diffing that subtree and only services dirty components inside it.
type Op interface {
	Kind() Kind
	isOp() // restricts implementations to this package
}

type TextOp struct {
	Text string
}

// ElemOp describes an output element. Tag and Svg form its identity.
// Children is a single slot; use a FragmentOp or KeyedOp for several children.
type ElemOp struct {
	Tag       string
	Svg       bool
	ClassName string
	Attrs     map[string]any
	Style     map[string]string
	Children  Op
}

// CompOp invokes a component with props.
type CompOp struct {
	Comp  *Component
	Props any
}

// FragmentOp is an unkeyed ordered list. Its length must stay the same across
// updates of the same slot; use nil entries for "nothing here".
type FragmentOp struct {
	Children []Op
}

type KeyedItem struct {
	Key any
	Op  Op
}

// KeyedOp is an ordered list whose entries are matched across updates by Key.
// Keys must be comparable and unique among siblings.
type KeyedOp struct {
	Items []KeyedItem
}

// EventsOp attaches opaque event handlers to the output of Child.
// The engine stores them; dispatch is done by whoever hit-tests the instance tree.
type EventsOp struct {
	Handlers map[string]any
	Child    Op
}

// ContextOp makes Value visible to every component under Child through ctx.Value(Key).
type ContextOp struct {
	Key   any
	Value any
	Child Op
}

// NodeRef receives the first output node of a RefOp's child.
type NodeRef struct {
	Current surface.Node
}

type RefOp struct {
	Ref   *NodeRef
	Child Op
}

// AttrDirective is an attribute value that applies itself to the output node
// instead of being written with SetAttribute. prev is the previous value for
// the same key (nil on mount).
type AttrDirective interface {
	ApplyAttr(s surface.Surface, node surface.Node, key string, prev any)
}

func (*TextOp) Kind() Kind     { return KindText }
func (*ElemOp) Kind() Kind     { return KindElem }
func (*CompOp) Kind() Kind     { return KindComp }
func (*FragmentOp) Kind() Kind { return KindFragment }
func (*KeyedOp) Kind() Kind    { return KindKeyed }
func (*EventsOp) Kind() Kind   { return KindEvents }
func (*ContextOp) Kind() Kind  { return KindContext }
func (*RefOp) Kind() Kind      { return KindRef }

func (*TextOp) isOp()     {}
func (*ElemOp) isOp()     {}
func (*CompOp) isOp()     {}
func (*FragmentOp) isOp() {}
func (*KeyedOp) isOp()    {}
func (*EventsOp) isOp()   {}
func (*ContextOp) isOp()  {}
func (*RefOp) isOp()      {}
