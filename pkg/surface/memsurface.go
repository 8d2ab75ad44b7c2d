// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"fmt"
	"html"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// MemNode is a node of the in-memory reference renderer.
// Attributes and style properties are kept sorted so serialization is stable.
type MemNode struct {
	Id         int
	Tag        string
	Namespaced bool
	IsText     bool
	Text       string
	Attrs      *treemap.Map // string -> string
	Style      *treemap.Map // string -> string
	Parent     *MemNode
	Children   []*MemNode
}

func (n *MemNode) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText {
		return fmt.Sprintf("#text%d", n.Id)
	}
	return fmt.Sprintf("%s#%d", n.Tag, n.Id)
}

func (n *MemNode) indexOf(child *MemNode) int {
	for idx, c := range n.Children {
		if c == child {
			return idx
		}
	}
	return -1
}

func (n *MemNode) detach(child *MemNode) {
	idx := n.indexOf(child)
	if idx < 0 {
		panic(fmt.Sprintf("memsurface: %v is not a child of %v", child, n))
	}
	n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	child.Parent = nil
}

// GetAttr returns the attribute value and whether it is set.
func (n *MemNode) GetAttr(key string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	val, ok := n.Attrs.Get(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

// GetStyle returns the style property value and whether it is set.
func (n *MemNode) GetStyle(key string) (string, bool) {
	if n.Style == nil {
		return "", false
	}
	val, ok := n.Style.Get(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

// HTML serializes the node and its subtree.
func (n *MemNode) HTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

// InnerHTML serializes the children of the node.
func (n *MemNode) InnerHTML() string {
	var sb strings.Builder
	for _, child := range n.Children {
		child.writeHTML(&sb)
	}
	return sb.String()
}

func (n *MemNode) writeHTML(sb *strings.Builder) {
	if n.IsText {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}
	sb.WriteString("<")
	sb.WriteString(n.Tag)
	if n.Attrs != nil {
		it := n.Attrs.Iterator()
		for it.Next() {
			fmt.Fprintf(sb, " %s=\"%s\"", it.Key().(string), html.EscapeString(it.Value().(string)))
		}
	}
	if n.Style != nil && n.Style.Size() > 0 {
		var parts []string
		it := n.Style.Iterator()
		for it.Next() {
			parts = append(parts, it.Key().(string)+":"+it.Value().(string))
		}
		fmt.Fprintf(sb, " style=\"%s\"", html.EscapeString(strings.Join(parts, ";")))
	}
	sb.WriteString(">")
	for _, child := range n.Children {
		child.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteString(">")
}

// Counts tallies every primitive a MemSurface has executed.
// Moves counts InsertBefore calls on nodes that were already attached.
type Counts struct {
	CreateElement   int `json:"createelement"`
	CreateText      int `json:"createtext"`
	InsertBefore    int `json:"insertbefore"`
	Moves           int `json:"moves"`
	RemoveChild     int `json:"removechild"`
	ClearChildren   int `json:"clearchildren"`
	SetAttribute    int `json:"setattribute"`
	RemoveAttribute int `json:"removeattribute"`
	SetStyle        int `json:"setstyle"`
	RemoveStyle     int `json:"removestyle"`
	SetText         int `json:"settext"`
}

// Total is the number of primitives issued (moves are already part of InsertBefore).
func (c Counts) Total() int {
	return c.CreateElement + c.CreateText + c.InsertBefore + c.RemoveChild + c.ClearChildren +
		c.SetAttribute + c.RemoveAttribute + c.SetStyle + c.RemoveStyle + c.SetText
}

// MemSurface is an in-memory Surface. It enforces DOM-like structural rules
// (ref must be a child of parent, removed node must be a child) and panics
// when the engine breaks them.
type MemSurface struct {
	nextId int
	Counts Counts
}

func MakeMemSurface() *MemSurface {
	return &MemSurface{}
}

// MakeContainer creates a detached element for use as a root container.
// It is not counted as a primitive.
func (s *MemSurface) MakeContainer(tag string) *MemNode {
	return s.makeNode(tag)
}

func (s *MemSurface) ResetCounts() {
	s.Counts = Counts{}
}

func (s *MemSurface) makeNode(tag string) *MemNode {
	s.nextId++
	return &MemNode{Id: s.nextId, Tag: tag}
}

func asMem(n Node) *MemNode {
	if n == nil {
		return nil
	}
	mn, ok := n.(*MemNode)
	if !ok {
		panic(fmt.Sprintf("memsurface: foreign node type %T", n))
	}
	return mn
}

func (s *MemSurface) CreateElement(tag string, namespaced bool) Node {
	s.Counts.CreateElement++
	node := s.makeNode(tag)
	node.Namespaced = namespaced
	return node
}

func (s *MemSurface) CreateText(value string) Node {
	s.Counts.CreateText++
	node := s.makeNode("#text")
	node.IsText = true
	node.Text = value
	return node
}

func (s *MemSurface) InsertBefore(parent Node, node Node, ref Node) {
	s.Counts.InsertBefore++
	p := asMem(parent)
	c := asMem(node)
	r := asMem(ref)
	if p == nil || c == nil {
		panic("memsurface: InsertBefore with nil parent or node")
	}
	if c == r {
		s.Counts.Moves++
		return
	}
	if c.Parent != nil {
		s.Counts.Moves++
		c.Parent.detach(c)
	}
	if r == nil {
		p.Children = append(p.Children, c)
		c.Parent = p
		return
	}
	idx := p.indexOf(r)
	if idx < 0 {
		panic(fmt.Sprintf("memsurface: ref %v is not a child of %v", r, p))
	}
	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = c
	c.Parent = p
}

func (s *MemSurface) RemoveChild(parent Node, node Node) {
	s.Counts.RemoveChild++
	asMem(parent).detach(asMem(node))
}

func (s *MemSurface) ClearChildren(parent Node) {
	s.Counts.ClearChildren++
	p := asMem(parent)
	for _, child := range p.Children {
		child.Parent = nil
	}
	p.Children = nil
}

func (s *MemSurface) SetAttribute(node Node, key string, value string) {
	s.Counts.SetAttribute++
	n := asMem(node)
	if n.Attrs == nil {
		n.Attrs = treemap.NewWithStringComparator()
	}
	n.Attrs.Put(key, value)
}

func (s *MemSurface) RemoveAttribute(node Node, key string) {
	s.Counts.RemoveAttribute++
	n := asMem(node)
	if n.Attrs != nil {
		n.Attrs.Remove(key)
	}
}

func (s *MemSurface) SetStyleProperty(node Node, key string, value string) {
	s.Counts.SetStyle++
	n := asMem(node)
	if n.Style == nil {
		n.Style = treemap.NewWithStringComparator()
	}
	n.Style.Put(key, value)
}

func (s *MemSurface) RemoveStyleProperty(node Node, key string) {
	s.Counts.RemoveStyle++
	n := asMem(node)
	if n.Style != nil {
		n.Style.Remove(key)
	}
}

func (s *MemSurface) SetTextValue(node Node, value string) {
	s.Counts.SetText++
	asMem(node).Text = value
}
