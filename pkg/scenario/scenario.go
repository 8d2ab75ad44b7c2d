// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package scenario reads operation trees written as JSON, so trees and update
// sequences can be fed to the engine from files.
package scenario

import (
	"fmt"
	"strings"

	"github.com/wavetermdev/riptide/pkg/vdom"
)

// Node is the JSON form of one operation. Exactly one of text, tag, fragment,
// keyed, component, context, ref or events selects the kind. A JSON null in
// children or fragment is an empty slot.
type Node struct {
	Text *string `json:"text,omitempty" jsonschema:"description=text node content"`

	Tag      string            `json:"tag,omitempty" jsonschema:"description=element tag name"`
	Svg      bool              `json:"svg,omitempty" jsonschema:"description=create the element in the svg namespace"`
	Class    string            `json:"class,omitempty"`
	Attrs    map[string]any    `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []*Node           `json:"children,omitempty" jsonschema:"description=element children"`

	Fragment []*Node     `json:"fragment,omitempty" jsonschema:"description=unkeyed list; keep its length stable across steps"`
	Keyed    []KeyedNode `json:"keyed,omitempty" jsonschema:"description=keyed list"`

	Component string         `json:"component,omitempty" jsonschema:"description=registered component name"`
	Props     map[string]any `json:"props,omitempty"`

	Context *ContextBinding `json:"context,omitempty" jsonschema:"description=provides a value to components under child"`
	Ref     string          `json:"ref,omitempty" jsonschema:"description=named ref bound to the first node of child"`
	Events  []string        `json:"events,omitempty" jsonschema:"description=event names bound to child"`
	Child   *Node           `json:"child,omitempty" jsonschema:"description=wrapped node for context, ref and events"`
}

type KeyedNode struct {
	Key  string `json:"key" jsonschema:"required"`
	Node *Node  `json:"node"`
}

type ContextBinding struct {
	Key   string `json:"key" jsonschema:"required"`
	Value any    `json:"value"`
}

// ContextKey is the context key type used for values provided from JSON.
type ContextKey string

func (n *Node) kinds() []string {
	var rtn []string
	if n.Text != nil {
		rtn = append(rtn, "text")
	}
	if n.Tag != "" {
		rtn = append(rtn, "tag")
	}
	if n.Fragment != nil {
		rtn = append(rtn, "fragment")
	}
	if n.Keyed != nil {
		rtn = append(rtn, "keyed")
	}
	if n.Component != "" {
		rtn = append(rtn, "component")
	}
	if n.Context != nil {
		rtn = append(rtn, "context")
	}
	if n.Ref != "" {
		rtn = append(rtn, "ref")
	}
	if n.Events != nil {
		rtn = append(rtn, "events")
	}
	return rtn
}

// Decoder turns Nodes into operations. Refs are shared across Decode calls so a
// named ref keeps its identity from one step to the next.
type Decoder struct {
	Registry *Registry
	Refs     map[string]*vdom.NodeRef
	// Handler builds the value stored for an event name. Defaults to the name itself.
	Handler func(event string) any
}

func MakeDecoder(registry *Registry) *Decoder {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Decoder{Registry: registry, Refs: make(map[string]*vdom.NodeRef)}
}

func (d *Decoder) Decode(n *Node) (vdom.Op, error) {
	return d.decode(n, "$")
}

func (d *Decoder) decode(n *Node, path string) (vdom.Op, error) {
	if n == nil {
		return nil, nil
	}
	kinds := n.kinds()
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%s: node has no kind (set one of text, tag, fragment, keyed, component, context, ref, events)", path)
	}
	if len(kinds) > 1 {
		return nil, fmt.Errorf("%s: node mixes kinds %s", path, strings.Join(kinds, ", "))
	}
	switch kinds[0] {
	case "text":
		return vdom.Text(*n.Text), nil

	case "tag":
		children, err := d.decodeList(n.Children, path+".children")
		if err != nil {
			return nil, err
		}
		elem := vdom.H(n.Tag, n.Attrs, children...)
		elem.Svg = n.Svg
		elem.ClassName = n.Class
		elem.Style = n.Style
		return elem, nil

	case "fragment":
		children, err := d.decodeList(n.Fragment, path+".fragment")
		if err != nil {
			return nil, err
		}
		return vdom.Fragment(children...), nil

	case "keyed":
		rtn := &vdom.KeyedOp{Items: make([]vdom.KeyedItem, 0, len(n.Keyed))}
		for idx, item := range n.Keyed {
			op, err := d.decode(item.Node, fmt.Sprintf("%s.keyed[%d].node", path, idx))
			if err != nil {
				return nil, err
			}
			rtn.Items = append(rtn.Items, vdom.Item(item.Key, op))
		}
		return rtn, nil

	case "component":
		comp := d.Registry.Get(n.Component)
		if comp == nil {
			return nil, fmt.Errorf("%s: unknown component %q", path, n.Component)
		}
		if err := checkChildless(n, path); err != nil {
			return nil, err
		}
		return comp.Op(n.Props), nil

	case "context":
		child, err := d.decode(n.Child, path+".child")
		if err != nil {
			return nil, err
		}
		return vdom.Provide(ContextKey(n.Context.Key), n.Context.Value, child), nil

	case "ref":
		child, err := d.decode(n.Child, path+".child")
		if err != nil {
			return nil, err
		}
		ref := d.Refs[n.Ref]
		if ref == nil {
			ref = &vdom.NodeRef{}
			d.Refs[n.Ref] = ref
		}
		return vdom.BindRef(ref, child), nil

	case "events":
		child, err := d.decode(n.Child, path+".child")
		if err != nil {
			return nil, err
		}
		handlers := make(map[string]any, len(n.Events))
		for _, event := range n.Events {
			if d.Handler != nil {
				handlers[event] = d.Handler(event)
			} else {
				handlers[event] = event
			}
		}
		return vdom.On(handlers, child), nil
	}
	return nil, fmt.Errorf("%s: unhandled kind %q", path, kinds[0])
}

func (d *Decoder) decodeList(nodes []*Node, path string) ([]vdom.Op, error) {
	rtn := make([]vdom.Op, len(nodes))
	for idx, node := range nodes {
		op, err := d.decode(node, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		rtn[idx] = op
	}
	return rtn, nil
}

func checkChildless(n *Node, path string) error {
	if n.Child != nil || n.Children != nil {
		return fmt.Errorf("%s: component nodes take props, not children", path)
	}
	return nil
}
