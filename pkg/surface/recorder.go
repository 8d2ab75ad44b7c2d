// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package surface

import "fmt"

// Mutation is one recorded primitive call.
type Mutation struct {
	Op     string `json:"op"`
	Node   string `json:"node,omitempty"`
	Parent string `json:"parent,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Recorder wraps a Surface and appends every call to Mutations before forwarding it.
// Nodes returned by the create calls are the inner surface's nodes.
type Recorder struct {
	Inner     Surface
	Mutations []Mutation
}

func MakeRecorder(inner Surface) *Recorder {
	return &Recorder{Inner: inner}
}

// Take returns the recorded mutations and clears the log.
func (r *Recorder) Take() []Mutation {
	rtn := r.Mutations
	r.Mutations = nil
	return rtn
}

// Count returns how many recorded mutations used the given primitive.
func (r *Recorder) Count(op string) int {
	count := 0
	for _, m := range r.Mutations {
		if m.Op == op {
			count++
		}
	}
	return count
}

func describe(n Node) string {
	if n == nil {
		return ""
	}
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", n)
}

func (r *Recorder) add(m Mutation) {
	r.Mutations = append(r.Mutations, m)
}

func (r *Recorder) CreateElement(tag string, namespaced bool) Node {
	node := r.Inner.CreateElement(tag, namespaced)
	r.add(Mutation{Op: Primitive_CreateElement, Node: describe(node), Value: tag})
	return node
}

func (r *Recorder) CreateText(value string) Node {
	node := r.Inner.CreateText(value)
	r.add(Mutation{Op: Primitive_CreateText, Node: describe(node), Value: value})
	return node
}

func (r *Recorder) InsertBefore(parent Node, node Node, ref Node) {
	r.add(Mutation{Op: Primitive_InsertBefore, Parent: describe(parent), Node: describe(node), Ref: describe(ref)})
	r.Inner.InsertBefore(parent, node, ref)
}

func (r *Recorder) RemoveChild(parent Node, node Node) {
	r.add(Mutation{Op: Primitive_RemoveChild, Parent: describe(parent), Node: describe(node)})
	r.Inner.RemoveChild(parent, node)
}

func (r *Recorder) ClearChildren(parent Node) {
	r.add(Mutation{Op: Primitive_ClearChildren, Parent: describe(parent)})
	r.Inner.ClearChildren(parent)
}

func (r *Recorder) SetAttribute(node Node, key string, value string) {
	r.add(Mutation{Op: Primitive_SetAttribute, Node: describe(node), Key: key, Value: value})
	r.Inner.SetAttribute(node, key, value)
}

func (r *Recorder) RemoveAttribute(node Node, key string) {
	r.add(Mutation{Op: Primitive_RemoveAttribute, Node: describe(node), Key: key})
	r.Inner.RemoveAttribute(node, key)
}

func (r *Recorder) SetStyleProperty(node Node, key string, value string) {
	r.add(Mutation{Op: Primitive_SetStyle, Node: describe(node), Key: key, Value: value})
	r.Inner.SetStyleProperty(node, key, value)
}

func (r *Recorder) RemoveStyleProperty(node Node, key string) {
	r.add(Mutation{Op: Primitive_RemoveStyle, Node: describe(node), Key: key})
	r.Inner.RemoveStyleProperty(node, key)
}

func (r *Recorder) SetTextValue(node Node, value string) {
	r.add(Mutation{Op: Primitive_SetText, Node: describe(node), Value: value})
	r.Inner.SetTextValue(node, value)
}
