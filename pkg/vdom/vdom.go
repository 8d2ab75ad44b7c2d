// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package vdom

// TypeCompatible reports whether an instance built from a can be patched in place to b.
// Keyed list entries additionally need equal keys, which the keyed reconciler checks.
func TypeCompatible(a Op, b Op) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch at := a.(type) {
	case *ElemOp:
		bt := b.(*ElemOp)
		return at.Tag == bt.Tag && at.Svg == bt.Svg
	case *CompOp:
		return at.Comp == b.(*CompOp).Comp
	}
	return true
}

func Text(text string) *TextOp {
	return &TextOp{Text: text}
}

// H builds an element. No children leaves the slot empty, one child is stored
// directly, more than one is wrapped in a FragmentOp.
func H(tag string, attrs map[string]any, children ...Op) *ElemOp {
	return &ElemOp{Tag: tag, Attrs: attrs, Children: childSlot(children)}
}

// S builds an element in the SVG namespace.
func S(tag string, attrs map[string]any, children ...Op) *ElemOp {
	rtn := H(tag, attrs, children...)
	rtn.Svg = true
	return rtn
}

func childSlot(children []Op) Op {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &FragmentOp{Children: children}
}

func (e *ElemOp) WithClass(className string) *ElemOp {
	e.ClassName = className
	return e
}

func (e *ElemOp) WithStyle(style map[string]string) *ElemOp {
	e.Style = style
	return e
}

func Fragment(children ...Op) *FragmentOp {
	return &FragmentOp{Children: children}
}

func Item(key any, op Op) KeyedItem {
	return KeyedItem{Key: key, Op: op}
}

func Keyed(items ...KeyedItem) *KeyedOp {
	return &KeyedOp{Items: items}
}

// ForEach maps items to a keyed list.
func ForEach[T any](items []T, keyFn func(T, int) any, fn func(T, int) Op) *KeyedOp {
	rtn := &KeyedOp{Items: make([]KeyedItem, 0, len(items))}
	for idx, item := range items {
		rtn.Items = append(rtn.Items, KeyedItem{Key: keyFn(item, idx), Op: fn(item, idx)})
	}
	return rtn
}

func Provide(key any, value any, child Op) *ContextOp {
	return &ContextOp{Key: key, Value: value, Child: child}
}

func On(handlers map[string]any, child Op) *EventsOp {
	return &EventsOp{Handlers: handlers, Child: child}
}

func BindRef(ref *NodeRef, child Op) *RefOp {
	return &RefOp{Ref: ref, Child: child}
}

func If(cond bool, op Op) Op {
	if cond {
		return op
	}
	return nil
}

func (k *KeyedOp) Keys() []any {
	rtn := make([]any, len(k.Items))
	for idx, item := range k.Items {
		rtn[idx] = item.Key
	}
	return rtn
}

// IsNil reports whether op is nil or a typed nil pointer.
func IsNil(op Op) bool {
	switch o := op.(type) {
	case nil:
		return true
	case *TextOp:
		return o == nil
	case *ElemOp:
		return o == nil
	case *CompOp:
		return o == nil
	case *FragmentOp:
		return o == nil
	case *KeyedOp:
		return o == nil
	case *EventsOp:
		return o == nil
	case *ContextOp:
		return o == nil
	case *RefOp:
		return o == nil
	}
	return false
}
