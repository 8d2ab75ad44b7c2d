// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetermdev/riptide/pkg/engine"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

const listSteps = `[
  {"tag": "ul", "children": [{"keyed": [
    {"key": "a", "node": {"tag": "li", "children": [{"text": "a"}]}},
    {"key": "b", "node": {"tag": "li", "children": [{"text": "b"}]}},
    {"key": "c", "node": {"tag": "li", "children": [{"text": "c"}]}}
  ]}]},
  {"tag": "ul", "children": [{"keyed": [
    {"key": "c", "node": {"tag": "li", "children": [{"text": "c"}]}},
    {"key": "a", "node": {"tag": "li", "children": [{"text": "a"}]}},
    {"key": "b", "node": {"tag": "li", "children": [{"text": "b"}]}}
  ]}]}
]`

func TestRunnerSteps(t *testing.T) {
	steps, err := ParseSteps([]byte(listSteps))
	require.NoError(t, err)
	require.Len(t, steps, 2)

	runner := MakeRunner(nil, nil, false)
	results, err := runner.RunAll(steps)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "<ul><li>a</li><li>b</li><li>c</li></ul>", results[0].HTML)
	assert.Equal(t, "<ul><li>c</li><li>a</li><li>b</li></ul>", results[1].HTML)
	assert.Equal(t, 1, results[1].Stats.Moves)
	assert.Equal(t, 1, results[1].Counts.Moves)
	require.Len(t, results[1].Mutations, 1)
	assert.Equal(t, surface.Primitive_InsertBefore, results[1].Mutations[0].Op)

	final, err := runner.Unmount()
	require.NoError(t, err)
	assert.Equal(t, "", final.HTML)
	assert.Equal(t, 3, final.Step)
}

func TestDecodeKinds(t *testing.T) {
	data := `{"context": {"key": "theme", "value": "dark"}, "child":
		{"events": ["click"], "child":
			{"ref": "box", "child":
				{"tag": "div", "class": "box", "attrs": {"n": 1}, "style": {"color": "red"}, "children": [
					{"component": "Themed", "props": {"text": "hi"}},
					null,
					{"fragment": [{"text": "x"}, {"svg": true, "tag": "svg"}]}
				]}}}}`
	steps, err := ParseSteps([]byte(data))
	require.NoError(t, err)
	runner := MakeRunner(nil, nil, false)
	result, err := runner.Apply(steps[0])
	require.NoError(t, err)
	assert.Equal(t, `<div class="box" n="1" style="color:red"><div data-theme="dark">hi</div>x<svg></svg></div>`, result.HTML)

	ref := runner.Decoder.Refs["box"]
	require.NotNil(t, ref)
	assert.Same(t, runner.Container.Children[0], ref.Current)
	svg := runner.Container.Children[0].Children[2]
	assert.True(t, svg.Namespaced)

	events := runner.Root.Instance.Child.EventHandlers()
	assert.Equal(t, map[string]any{"click": "click"}, events)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"no kind", `{}`, "node has no kind"},
		{"mixed", `{"tag": "div", "text": "x"}`, "mixes kinds"},
		{"unknown comp", `{"component": "Nope"}`, `unknown component "Nope"`},
		{"comp children", `{"component": "List", "child": {"text": "x"}}`, "take props"},
		{"nested path", `{"tag": "p", "children": [{"text": "a"}, {}]}`, "$.children[1]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			steps, err := ParseSteps([]byte(tc.data))
			require.NoError(t, err)
			_, err = MakeDecoder(nil).Decode(steps[0])
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ParseSteps([]byte("  "))
	assert.Error(t, err)
	_, err = ParseSteps([]byte("{\n  \"tag\": \"div\",\n  \"bogus\": 1\n}"))
	assert.ErrorContains(t, err, "bogus")
	_, err = ParseSteps([]byte("{\n  \"tag\": 5\n}"))
	assert.ErrorContains(t, err, "line 2")
	_, err = ParseSteps([]byte("{\n  \"tag\": \n}"))
	assert.ErrorContains(t, err, "line 3")
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "one.json")
	require.NoError(t, os.WriteFile(single, []byte(`{"text": "x"}`), 0644))
	node, err := ReadNodeFile(single)
	require.NoError(t, err)
	assert.Equal(t, "x", *node.Text)

	multi := filepath.Join(dir, "steps.json")
	require.NoError(t, os.WriteFile(multi, []byte(listSteps), 0644))
	_, err = ReadNodeFile(multi)
	assert.ErrorContains(t, err, "expected a single node")
	steps, err := ReadStepsFile(multi)
	require.NoError(t, err)
	assert.Len(t, steps, 2)
}

func TestBuiltinComponents(t *testing.T) {
	assert.Equal(t, []string{"Card", "Counter", "List", "Themed"}, DefaultRegistry().Names())

	opts := engine.DefaultOptions()
	runner := MakeRunner(&opts, nil, true)
	steps, err := ParseSteps([]byte(`[
		{"fragment": [
			{"component": "Counter", "props": {"label": "n", "start": 3}},
			{"component": "List", "props": {"items": ["x", "y"], "ordered": true}},
			{"component": "Card", "props": {"title": "T", "body": "B"}}
		]},
		{"fragment": [
			{"component": "Counter", "props": {"label": "m", "start": 9}},
			{"component": "List", "props": {"items": ["y", "x"], "ordered": true}},
			{"component": "Card", "props": {"title": "U", "body": ""}}
		]}
	]`))
	require.NoError(t, err)
	results, err := runner.RunAll(steps)
	require.NoError(t, err)
	assert.Equal(t, `<span class="counter">n: 3</span><ol><li>x</li><li>y</li></ol><article><h2>T</h2><p>B</p></article>`, results[0].HTML)
	// the counter keeps its state; the card vetoes the update
	assert.Equal(t, `<span class="counter">m: 3</span><ol><li>y</li><li>x</li></ol><article><h2>T</h2><p>B</p></article>`, results[1].HTML)
	assert.Equal(t, 2, results[1].Stats.Renders)
}

func TestCounterCountsUpOnDirtyCheck(t *testing.T) {
	steps, err := ParseSteps([]byte(`[
		{"component": "Counter", "props": {"label": "n", "start": 1, "until": 3}},
		null,
		null,
		null
	]`))
	require.NoError(t, err)
	runner := MakeRunner(nil, nil, false)
	results, err := runner.RunAll(steps)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, `<span class="counter">n: 1</span>`, results[0].HTML)
	assert.Equal(t, `<span class="counter">n: 2</span>`, results[1].HTML)
	assert.Equal(t, 1, results[1].Stats.Renders)
	assert.Equal(t, 1, results[1].Counts.SetText)
	assert.Equal(t, `<span class="counter">n: 3</span>`, results[2].HTML)
	assert.Equal(t, `<span class="counter">n: 3</span>`, results[3].HTML)
	assert.Equal(t, 0, results[3].Stats.Renders)
	assert.False(t, runner.Root.Dirty())
}

func TestCardTypedProps(t *testing.T) {
	mem := surface.MakeMemSurface()
	container := mem.MakeContainer("root")
	root := engine.MakeRoot(mem, container, nil)
	require.NoError(t, root.Mount(CardComponent.Op(CardProps{Title: "T", Body: "B"})))
	assert.Equal(t, `<article><h2>T</h2><p>B</p></article>`, container.InnerHTML())

	// an empty body is vetoed for typed props as well
	require.NoError(t, root.Update(CardComponent.Op(&CardProps{Title: "U"})))
	assert.Equal(t, `<article><h2>T</h2><p>B</p></article>`, container.InnerHTML())

	require.NoError(t, root.Update(CardComponent.Op(CardProps{Title: "U", Body: "C"})))
	assert.Equal(t, `<article><h2>U</h2><p>C</p></article>`, container.InnerHTML())
}

func TestCustomRegistry(t *testing.T) {
	registry := MakeRegistry()
	registry.Register(&vdom.Component{Name: "Hello", Render: func(ctx context.Context, props any) vdom.Op {
		return vdom.Text("hello")
	}})
	runner := MakeRunner(nil, registry, false)
	result, err := runner.Apply(&Node{Component: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.HTML)
}

func TestSchema(t *testing.T) {
	out, err := SchemaJSON(false)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Contains(t, string(out), "keyed")
	assert.Contains(t, string(out), "riptide scenario node")

	out, err = SchemaJSON(true)
	require.NoError(t, err)
	assert.Contains(t, string(out), "riptide scenario steps")
}
