// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

func makeTestRoot(t *testing.T, opts *Options) (*Root, *surface.MemSurface, *surface.MemNode) {
	t.Helper()
	s := surface.MakeMemSurface()
	container := s.MakeContainer("body")
	return MakeRoot(s, container, opts), s, container
}

func sampleTree(title string) vdom.Op {
	return vdom.H("div", map[string]any{"id": "main", "tabindex": 1},
		vdom.H("h1", nil, vdom.Text(title)).WithClass("title"),
		vdom.H("p", nil, vdom.Text("body")).WithStyle(map[string]string{"color": "red"}),
	)
}

func TestMountRendersTree(t *testing.T) {
	root, s, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(sampleTree("hello")))
	assert.Equal(t, `<div id="main" tabindex="1"><h1 class="title">hello</h1><p style="color:red">body</p></div>`, container.InnerHTML())
	assert.Equal(t, 3, s.Counts.CreateElement)
	assert.Equal(t, 2, s.Counts.CreateText)
	assert.Equal(t, 0, s.Counts.Moves)
	assert.ErrorIs(t, root.Mount(sampleTree("again")), ErrAlreadyMounted)
}

func TestUpdateSameOpIsIdempotent(t *testing.T) {
	root, s, _ := makeTestRoot(t, nil)
	op := sampleTree("hello")
	require.NoError(t, root.Mount(op))
	s.ResetCounts()

	require.NoError(t, root.Update(op))
	assert.Equal(t, 0, s.Counts.Total())

	// an equal but freshly built tree also diffs to nothing
	require.NoError(t, root.Update(sampleTree("hello")))
	assert.Equal(t, 0, s.Counts.Total())
}

func TestMountUnmountRoundTrip(t *testing.T) {
	t.Run("shared container", func(t *testing.T) {
		root, s, container := makeTestRoot(t, nil)
		existing := s.CreateText("keep")
		s.InsertBefore(container, existing, nil)
		before := container.InnerHTML()

		require.NoError(t, root.Mount(vdom.Fragment(sampleTree("a"), vdom.Text("tail"), nil)))
		require.NotEqual(t, before, container.InnerHTML())
		require.NoError(t, root.Unmount())
		assert.Equal(t, before, container.InnerHTML())
		assert.Equal(t, []*surface.MemNode{existing.(*surface.MemNode)}, container.Children)
		assert.Nil(t, root.Instance)
	})

	t.Run("owned container", func(t *testing.T) {
		opts := DefaultOptions()
		opts.OwnsContainer = true
		root, s, container := makeTestRoot(t, &opts)
		require.NoError(t, root.Mount(vdom.Fragment(sampleTree("a"), vdom.Text("tail"))))
		s.ResetCounts()
		require.NoError(t, root.Unmount())
		assert.Empty(t, container.Children)
		assert.Equal(t, 1, s.Counts.ClearChildren)
		assert.Equal(t, 0, s.Counts.RemoveChild)
	})
}

func TestAttrAndStyleDiff(t *testing.T) {
	root, s, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("input", map[string]any{"type": "text", "value": "a", "disabled": true}).
		WithClass("x").WithStyle(map[string]string{"color": "red", "width": "10px"})))
	s.ResetCounts()

	require.NoError(t, root.Update(vdom.H("input", map[string]any{"type": "text", "value": "b", "disabled": false}).
		WithStyle(map[string]string{"color": "blue"})))
	assert.Equal(t, `<input type="text" value="b" style="color:blue"></input>`, container.InnerHTML())
	assert.Equal(t, 1, s.Counts.SetAttribute)    // value
	assert.Equal(t, 2, s.Counts.RemoveAttribute) // class, disabled
	assert.Equal(t, 1, s.Counts.SetStyle)
	assert.Equal(t, 1, s.Counts.RemoveStyle)
	assert.Equal(t, 0, s.Counts.CreateElement)
}

type upperDirective struct {
	val     string
	applied *int
}

func (d upperDirective) ApplyAttr(s surface.Surface, node surface.Node, key string, prev any) {
	*d.applied++
	s.SetAttribute(node, key, "<"+d.val+">")
}

func TestAttrDirective(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	applied := 0
	require.NoError(t, root.Mount(vdom.H("a", map[string]any{"href": upperDirective{val: "x", applied: &applied}})))
	assert.Equal(t, 1, applied)
	href, ok := container.Children[0].GetAttr("href")
	require.True(t, ok)
	assert.Equal(t, "<x>", href)

	require.NoError(t, root.Update(vdom.H("a", nil)))
	_, ok = container.Children[0].GetAttr("href")
	assert.False(t, ok)
}

func TestTextUpdateKeepsNode(t *testing.T) {
	root, s, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("p", nil, vdom.Text("one"))))
	textNode := container.Children[0].Children[0]
	s.ResetCounts()
	require.NoError(t, root.Update(vdom.H("p", nil, vdom.Text("two"))))
	assert.Same(t, textNode, container.Children[0].Children[0])
	assert.Equal(t, "two", textNode.Text)
	assert.Equal(t, 1, s.Counts.Total())
}

func TestElementToComponentReplaces(t *testing.T) {
	badge := &vdom.Component{
		Name: "Badge",
		Render: func(ctx context.Context, props any) vdom.Op {
			return vdom.H("span", nil, vdom.Text(props.(string)))
		},
	}
	root, s, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("div", map[string]any{"id": "x"}, vdom.Text("old"))))
	oldDiv := container.Children[0]
	s.ResetCounts()
	root.ResetStats()

	require.NoError(t, root.Update(badge.Op("new")))
	assert.Equal(t, `<span>new</span>`, container.InnerHTML())
	assert.Nil(t, oldDiv.Parent)
	assert.Equal(t, 1, s.Counts.RemoveChild)
	assert.Equal(t, 0, s.Counts.RemoveAttribute)
	assert.Equal(t, 0, s.Counts.SetText)
	assert.Equal(t, 0, root.Stats().Updates)
	assert.Equal(t, 1, root.Stats().Unmounts)
	assert.Equal(t, vdom.KindComp, root.Instance.Kind)
}

func TestTagChangeReplacesElement(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("ul", nil, vdom.H("b", nil, vdom.Text("x")), vdom.Text("y"))))
	require.NoError(t, root.Update(vdom.H("ul", nil, vdom.H("i", nil, vdom.Text("x")), vdom.Text("y"))))
	assert.Equal(t, `<ul><i>x</i>y</ul>`, container.InnerHTML())
}

func TestFragmentNilSlots(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	frag := func(showA bool, showC bool) vdom.Op {
		return vdom.H("div", nil,
			vdom.If(showA, vdom.Text("a")),
			vdom.Text("b"),
			vdom.If(showC, vdom.Text("c")),
		)
	}
	require.NoError(t, root.Mount(frag(false, true)))
	assert.Equal(t, `<div>bc</div>`, container.InnerHTML())
	require.NoError(t, root.Update(frag(true, false)))
	assert.Equal(t, `<div>ab</div>`, container.InnerHTML())
	require.NoError(t, root.Update(frag(true, true)))
	assert.Equal(t, `<div>abc</div>`, container.InnerHTML())
}

func TestFragmentArityIsDefect(t *testing.T) {
	root, _, _ := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.Fragment(vdom.Text("a"), vdom.Text("b"))))
	err := root.Update(vdom.Fragment(vdom.Text("a"), vdom.Text("b"), vdom.Text("c")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFragmentArity)
}

func TestSvgNamespace(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.S("svg", nil,
		vdom.H("circle", map[string]any{"r": 4}),
		vdom.H("foreignObject", nil, vdom.H("div", nil)),
	)))
	svg := container.Children[0]
	assert.True(t, svg.Namespaced)
	assert.True(t, svg.Children[0].Namespaced)
	assert.True(t, svg.Children[1].Namespaced)
	assert.False(t, svg.Children[1].Children[0].Namespaced)
}

func TestRefBinding(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	ref := &vdom.NodeRef{}
	require.NoError(t, root.Mount(vdom.H("div", nil, vdom.BindRef(ref, vdom.H("input", nil)))))
	assert.Same(t, container.Children[0].Children[0], ref.Current)

	other := &vdom.NodeRef{}
	require.NoError(t, root.Update(vdom.H("div", nil, vdom.BindRef(other, vdom.H("input", nil)))))
	assert.Nil(t, ref.Current)
	assert.Same(t, container.Children[0].Children[0], other.Current)

	require.NoError(t, root.Unmount())
	assert.Nil(t, other.Current)
}

func TestEventHandlersStored(t *testing.T) {
	root, _, _ := makeTestRoot(t, nil)
	clicked := 0
	handlers := map[string]any{"click": func() { clicked++ }}
	require.NoError(t, root.Mount(vdom.On(handlers, vdom.H("button", nil))))
	assert.Equal(t, vdom.KindEvents, root.Instance.Kind)
	root.Instance.EventHandlers()["click"].(func())()
	assert.Equal(t, 1, clicked)
	assert.NotNil(t, root.Instance.FirstNode())
}

func TestRenderPanicBecomesError(t *testing.T) {
	broken := &vdom.Component{
		Name: "Broken",
		Render: func(ctx context.Context, props any) vdom.Op {
			panic("boom")
		},
	}
	root, _, _ := makeTestRoot(t, nil)
	err := root.Mount(vdom.H("div", nil, broken.Op(nil)))
	require.Error(t, err)
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, "Broken", renderErr.Component)
	assert.Equal(t, "boom", renderErr.Val)

	// the guard is released after a failed pass
	assert.NoError(t, root.Unmount())
}

func TestDuplicateKeysRejected(t *testing.T) {
	root, _, _ := makeTestRoot(t, nil)
	err := root.Mount(vdom.Keyed(vdom.Item("a", vdom.Text("1")), vdom.Item("a", vdom.Text("2"))))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	opts := DefaultOptions()
	opts.StrictKeys = false
	lax, _, container := makeTestRoot(t, &opts)
	require.NoError(t, lax.Mount(vdom.Keyed(vdom.Item("a", vdom.Text("1")), vdom.Item("a", vdom.Text("2")))))
	assert.Equal(t, "12", container.InnerHTML())
}

func TestScheduleAndCommit(t *testing.T) {
	root, _, container := makeTestRoot(t, nil)
	notified := 0
	root.OnInvalidate = func() { notified++ }
	assert.False(t, root.Dirty())
	assert.NoError(t, root.Commit())

	root.Schedule(vdom.Text("first"))
	root.Schedule(vdom.Text("second"))
	assert.True(t, root.Dirty())
	assert.Equal(t, 2, notified)
	require.NoError(t, root.Commit())
	assert.False(t, root.Dirty())
	assert.Equal(t, "second", container.InnerHTML())
	assert.Equal(t, 1, root.Stats().Passes)
}
