// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/wavetermdev/riptide/pkg/util/utilfn"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

type Registry struct {
	lock  sync.Mutex
	comps map[string]*vdom.Component
}

func MakeRegistry() *Registry {
	return &Registry{comps: make(map[string]*vdom.Component)}
}

// Register adds comp under its name, replacing any earlier registration.
func (r *Registry) Register(comp *vdom.Component) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.comps[comp.Name] = comp
}

func (r *Registry) Get(name string) *vdom.Component {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.comps[name]
}

func (r *Registry) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return utilfn.GetOrderedMapKeys(r.comps)
}

var defaultRegistryOnce sync.Once
var defaultRegistry *Registry

// DefaultRegistry holds the built-in components: Counter, List, Themed and Card.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = MakeRegistry()
		defaultRegistry.Register(CounterComponent)
		defaultRegistry.Register(ListComponent)
		defaultRegistry.Register(ThemedComponent)
		defaultRegistry.Register(CardComponent)
	})
	return defaultRegistry
}

type CounterProps struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	Until int    `json:"until,omitempty"`
}

// CounterComponent keeps its count in state; Start only seeds the first render.
// While the count is below Until it adds one after every commit, so each
// following dirty-check pass re-renders it.
var CounterComponent = vdom.DefineComponent("Counter", func(ctx context.Context, props CounterProps) vdom.Op {
	count, _, updateCount := vdom.UseState(ctx, props.Start)
	vdom.UseEffect(ctx, func() func() {
		if count < props.Until {
			updateCount(func(n int) int { return n + 1 })
		}
		return nil
	}, []any{count, props.Until})
	return vdom.H("span", nil, vdom.Text(fmt.Sprintf("%s: %d", props.Label, count))).WithClass("counter")
})

type ListProps struct {
	Items   []string `json:"items"`
	Ordered bool     `json:"ordered"`
}

var ListComponent = vdom.DefineComponent("List", func(ctx context.Context, props ListProps) vdom.Op {
	tag := "ul"
	if props.Ordered {
		tag = "ol"
	}
	return vdom.H(tag, nil, vdom.ForEach(props.Items,
		func(item string, _ int) any { return item },
		func(item string, _ int) vdom.Op { return vdom.H("li", nil, vdom.Text(item)) },
	))
})

type ThemedProps struct {
	Text string `json:"text"`
}

// ThemedComponent reads the "theme" context value.
var ThemedComponent = vdom.DefineComponent("Themed", func(ctx context.Context, props ThemedProps) vdom.Op {
	theme, ok := vdom.UseContext[string](ctx, ContextKey("theme"))
	if !ok {
		theme = "default"
	}
	return vdom.H("div", map[string]any{"data-theme": theme}, vdom.Text(props.Text))
})

type CardProps struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CardComponent skips re-rendering when only the body changes to an empty string.
var CardComponent = makeCardComponent()

func makeCardComponent() *vdom.Component {
	comp := vdom.DefineComponent("Card", func(ctx context.Context, props CardProps) vdom.Op {
		return vdom.H("article", nil,
			vdom.H("h2", nil, vdom.Text(props.Title)),
			vdom.If(props.Body != "", vdom.H("p", nil, vdom.Text(props.Body))),
		)
	})
	comp.ShouldUpdate = func(oldProps any, newProps any) bool {
		return vdom.ConvertProps[CardProps](comp.Name, newProps).Body != ""
	}
	return comp
}
