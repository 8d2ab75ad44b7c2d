// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

type counterProps struct {
	Label string `json:"label"`
}

// makeCounter returns a component whose state setter is published through setter.
func makeCounter(setter *func(int)) *vdom.Component {
	return vdom.DefineComponent("Counter", func(ctx context.Context, props counterProps) vdom.Op {
		count, setCount, _ := vdom.UseState(ctx, 0)
		*setter = setCount
		return vdom.H("span", nil, vdom.Text(fmt.Sprintf("%s:%d", props.Label, count)))
	})
}

func staticLeaf() vdom.Op {
	return vdom.H("i", nil, vdom.Text("static"))
}

// deepTree nests depth levels of <section>[subtree, static, static], with leaf at the bottom.
func deepTree(depth int, leaf vdom.Op) vdom.Op {
	op := leaf
	for i := 0; i < depth; i++ {
		op = vdom.H("section", nil, op, staticLeaf(), staticLeaf())
	}
	return op
}

func TestDirtyCheckVisitsOnlyDirtyPath(t *testing.T) {
	const depth = 8
	var setCount func(int)
	counter := makeCounter(&setCount)
	root, s, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(deepTree(depth, counter.Op(counterProps{Label: "n"}))))
	mounted := root.Stats().Mounts
	root.ResetStats()
	s.ResetCounts()

	setCount(5)
	assert.True(t, root.Dirty())
	require.NoError(t, root.Commit())
	assert.False(t, root.Dirty())
	assert.Contains(t, container.InnerHTML(), "<span>n:5</span>")

	stats := root.Stats()
	assert.Equal(t, 1, stats.Renders)
	// section + fragment per level, then the component itself
	assert.Equal(t, 2*depth+1, stats.Visited)
	assert.Less(t, stats.Visited, mounted/2)
	assert.Equal(t, 1, s.Counts.SetText)
	assert.Equal(t, 1, s.Counts.Total())

	// nothing left to do
	root.ResetStats()
	require.NoError(t, root.DirtyCheck())
	assert.Equal(t, 0, root.Stats().Visited)
	assert.Equal(t, 0, root.Stats().Renders)
}

func TestUnchangedOpServicesDirtyDescendant(t *testing.T) {
	var setCount func(int)
	counter := makeCounter(&setCount)
	inner := vdom.H("div", nil, counter.Op(counterProps{Label: "c"}))
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("main", nil, inner, vdom.Text("x"))))

	setCount(2)
	// inner is passed again unchanged; the dirty counter below it must still re-render
	require.NoError(t, root.Update(vdom.H("main", nil, inner, vdom.Text("y"))))
	assert.Equal(t, `<main><div><span>c:2</span></div>y</main>`, container.InnerHTML())
	assert.False(t, root.Dirty())
}

func TestParentSkipsCleanChildRender(t *testing.T) {
	renders := 0
	child := &vdom.Component{
		Name: "Child",
		Render: func(ctx context.Context, props any) vdom.Op {
			renders++
			return vdom.Text(props.(string))
		},
	}
	root, _, _ := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("div", map[string]any{"n": 1}, child.Op("same"))))
	require.NoError(t, root.Update(vdom.H("div", map[string]any{"n": 2}, child.Op("same"))))
	assert.Equal(t, 1, renders)
	require.NoError(t, root.Update(vdom.H("div", map[string]any{"n": 2}, child.Op("changed"))))
	assert.Equal(t, 2, renders)
}

func TestShouldUpdateVetoesRender(t *testing.T) {
	renders := 0
	comp := &vdom.Component{
		Name: "Sticky",
		Render: func(ctx context.Context, props any) vdom.Op {
			renders++
			return vdom.Text(fmt.Sprint(props))
		},
		ShouldUpdate: func(oldProps any, newProps any) bool {
			return newProps.(int) > 10
		},
	}
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(comp.Op(1)))
	require.NoError(t, root.Update(comp.Op(2)))
	assert.Equal(t, 1, renders)
	assert.Equal(t, "1", container.InnerHTML())
	require.NoError(t, root.Update(comp.Op(11)))
	assert.Equal(t, 2, renders)
	assert.Equal(t, "11", container.InnerHTML())
}

func TestSelectorTriggersRender(t *testing.T) {
	external := "a"
	watcher := &vdom.Component{
		Name: "Watcher",
		Render: func(ctx context.Context, props any) vdom.Op {
			val := vdom.UseSelect(ctx, func() string { return external })
			return vdom.Text(val)
		},
	}
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("div", nil, staticLeaf(), watcher.Op(nil))))
	assert.True(t, root.Instance.Subtree.DirtyCheck)

	root.ResetStats()
	require.NoError(t, root.DirtyCheck())
	assert.Equal(t, 0, root.Stats().Renders)

	external = "b"
	require.NoError(t, root.DirtyCheck())
	assert.Equal(t, 1, root.Stats().Renders)
	assert.Equal(t, `<div><i>static</i>b</div>`, container.InnerHTML())
}

func TestInvalidateDuringRenderIsDeferred(t *testing.T) {
	renders := 0
	comp := &vdom.Component{
		Name: "SelfInvalidating",
		Render: func(ctx context.Context, props any) vdom.Op {
			renders++
			if renders == 1 {
				vdom.UseInvalidate(ctx)()
			} else {
				vdom.UseInvalidate(ctx)
			}
			return vdom.Text(fmt.Sprint(renders))
		},
	}
	root, _, container := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("p", nil, comp.Op(nil))))
	assert.Equal(t, 1, renders)
	assert.True(t, root.Dirty())

	require.NoError(t, root.Commit())
	assert.Equal(t, 2, renders)
	assert.Equal(t, "<p>2</p>", container.InnerHTML())
	assert.False(t, root.Dirty())
}

func TestInvalidateAfterUnmountIsNoop(t *testing.T) {
	var handle vdom.Handle
	comp := &vdom.Component{
		Name: "Gone",
		Render: func(ctx context.Context, props any) vdom.Op {
			handle = vdom.UseHandle(ctx)
			return nil
		},
	}
	root, _, _ := makeTestRoot(t, nil)
	require.NoError(t, root.Mount(vdom.H("div", nil, comp.Op(nil))))
	require.True(t, handle.Mounted())
	require.NoError(t, root.Update(vdom.H("div", nil)))
	assert.False(t, handle.Mounted())
	handle.Invalidate()
	assert.False(t, root.Dirty())
}
