// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemSurfaceInsertAndMove(t *testing.T) {
	s := MakeMemSurface()
	root := s.MakeContainer("ul")
	a := s.CreateElement("li", false)
	b := s.CreateElement("li", false)
	c := s.CreateText("c")
	s.InsertBefore(root, a, nil)
	s.InsertBefore(root, c, nil)
	s.InsertBefore(root, b, c)
	assert.Equal(t, []*MemNode{a.(*MemNode), b.(*MemNode), c.(*MemNode)}, root.Children)
	assert.Equal(t, 0, s.Counts.Moves)

	s.InsertBefore(root, a, nil)
	assert.Equal(t, []*MemNode{b.(*MemNode), c.(*MemNode), a.(*MemNode)}, root.Children)
	assert.Equal(t, 1, s.Counts.Moves)
	assert.Equal(t, 4, s.Counts.InsertBefore)

	s.RemoveChild(root, b)
	assert.Nil(t, b.(*MemNode).Parent)
	s.ClearChildren(root)
	assert.Empty(t, root.Children)
	assert.Nil(t, a.(*MemNode).Parent)
	assert.Equal(t, 9, s.Counts.Total())
}

func TestMemSurfaceRejectsForeignRef(t *testing.T) {
	s := MakeMemSurface()
	root := s.MakeContainer("div")
	other := s.MakeContainer("div")
	stray := s.CreateElement("p", false)
	s.InsertBefore(other, stray, nil)
	assert.Panics(t, func() {
		s.InsertBefore(root, s.CreateElement("span", false), stray)
	})
	assert.Panics(t, func() {
		s.RemoveChild(root, stray)
	})
}

func TestMemNodeHTML(t *testing.T) {
	s := MakeMemSurface()
	root := s.MakeContainer("body")
	div := s.CreateElement("div", false)
	s.SetAttribute(div, "title", `a "b"`)
	s.SetAttribute(div, "id", "x")
	s.SetStyleProperty(div, "width", "1px")
	s.SetStyleProperty(div, "color", "red")
	s.InsertBefore(div, s.CreateText("1 < 2"), nil)
	s.InsertBefore(root, div, nil)
	assert.Equal(t, `<div id="x" title="a &#34;b&#34;" style="color:red;width:1px">1 &lt; 2</div>`, root.InnerHTML())

	s.RemoveAttribute(div, "title")
	s.RemoveStyleProperty(div, "width")
	val, ok := div.(*MemNode).GetAttr("id")
	require.True(t, ok)
	assert.Equal(t, "x", val)
	_, ok = div.(*MemNode).GetAttr("title")
	assert.False(t, ok)
	_, ok = div.(*MemNode).GetStyle("width")
	assert.False(t, ok)
	assert.Equal(t, `<body><div id="x" style="color:red">1 &lt; 2</div></body>`, root.HTML())
}

func TestRecorder(t *testing.T) {
	mem := MakeMemSurface()
	rec := MakeRecorder(mem)
	root := mem.MakeContainer("div")
	span := rec.CreateElement("span", false)
	text := rec.CreateText("hi")
	rec.InsertBefore(span, text, nil)
	rec.InsertBefore(root, span, nil)
	rec.SetTextValue(text, "yo")

	assert.Equal(t, 2, rec.Count(Primitive_InsertBefore))
	muts := rec.Take()
	require.Len(t, muts, 5)
	assert.Equal(t, Mutation{Op: Primitive_CreateElement, Node: "span#2", Value: "span"}, muts[0])
	assert.Equal(t, Mutation{Op: Primitive_InsertBefore, Parent: "div#1", Node: "span#2"}, muts[3])
	assert.Equal(t, Mutation{Op: Primitive_SetText, Node: "#text3", Value: "yo"}, muts[4])
	assert.Empty(t, rec.Take())
	assert.Equal(t, "<div><span>yo</span></div>", root.HTML())
}

func TestInstrument(t *testing.T) {
	before := testutil.ToFloat64(PrimitiveCounter.WithLabelValues(Primitive_CreateText))
	mem := MakeMemSurface()
	s := Instrument(mem)
	root := mem.MakeContainer("div")
	s.InsertBefore(root, s.CreateText("a"), nil)
	s.InsertBefore(root, s.CreateText("b"), nil)
	assert.Equal(t, before+2, testutil.ToFloat64(PrimitiveCounter.WithLabelValues(Primitive_CreateText)))
	assert.Equal(t, "ab", root.InnerHTML())
}
