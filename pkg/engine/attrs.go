// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"maps"
	"slices"

	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

func (p *pass) diffClass(node surface.Node, oldClass string, newClass string) {
	if oldClass == newClass {
		return
	}
	if newClass == "" {
		p.s.RemoveAttribute(node, vdom.ClassAttr)
		return
	}
	p.s.SetAttribute(node, vdom.ClassAttr, newClass)
}

// diffAttrs sets changed and new keys, then removes keys missing from newAttrs.
// Keys are visited in sorted order so the emitted primitives are deterministic.
// The removal scan is skipped when every old key was seen again.
func (p *pass) diffAttrs(node surface.Node, oldAttrs map[string]any, newAttrs map[string]any) {
	if len(oldAttrs) == 0 && len(newAttrs) == 0 {
		return
	}
	if oldAttrs != nil && utilfn.ValEqual(oldAttrs, newAttrs) {
		return
	}
	present := 0
	for _, key := range slices.Sorted(maps.Keys(newAttrs)) {
		newVal := newAttrs[key]
		oldVal, had := oldAttrs[key]
		if had {
			present++
			if utilfn.ValEqual(oldVal, newVal) {
				continue
			}
		}
		p.setAttr(node, key, oldVal, newVal)
	}
	if present == len(oldAttrs) {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(oldAttrs)) {
		if _, ok := newAttrs[key]; !ok {
			p.s.RemoveAttribute(node, key)
		}
	}
}

func (p *pass) setAttr(node surface.Node, key string, prev any, val any) {
	if directive, ok := val.(vdom.AttrDirective); ok {
		directive.ApplyAttr(p.s, node, key, prev)
		return
	}
	strVal, ok := utilfn.ToAttrString(val)
	if ok {
		p.s.SetAttribute(node, key, strVal)
		return
	}
	if _, prevOk := utilfn.ToAttrString(prev); prevOk {
		p.s.RemoveAttribute(node, key)
	} else if _, wasDirective := prev.(vdom.AttrDirective); wasDirective {
		p.s.RemoveAttribute(node, key)
	}
}

func (p *pass) diffStyle(node surface.Node, oldStyle map[string]string, newStyle map[string]string) {
	if len(oldStyle) == 0 && len(newStyle) == 0 {
		return
	}
	if oldStyle != nil && utilfn.ValEqual(oldStyle, newStyle) {
		return
	}
	present := 0
	for _, key := range slices.Sorted(maps.Keys(newStyle)) {
		newVal := newStyle[key]
		oldVal, had := oldStyle[key]
		if had {
			present++
			if oldVal == newVal {
				continue
			}
		}
		p.s.SetStyleProperty(node, key, newVal)
	}
	if present == len(oldStyle) {
		return
	}
	for _, key := range slices.Sorted(maps.Keys(oldStyle)) {
		if _, ok := newStyle[key]; !ok {
			p.s.RemoveStyleProperty(node, key)
		}
	}
}
