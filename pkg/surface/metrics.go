// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package surface

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PrimitiveCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riptide_surface_primitives_total",
	Help: "Output surface primitives issued by the reconciler",
}, []string{"primitive"})

type instrumented struct {
	inner Surface
}

// Instrument returns a Surface that counts every primitive in PrimitiveCounter.
func Instrument(inner Surface) Surface {
	return &instrumented{inner: inner}
}

func count(primitive string) {
	PrimitiveCounter.WithLabelValues(primitive).Inc()
}

func (s *instrumented) CreateElement(tag string, namespaced bool) Node {
	count(Primitive_CreateElement)
	return s.inner.CreateElement(tag, namespaced)
}

func (s *instrumented) CreateText(value string) Node {
	count(Primitive_CreateText)
	return s.inner.CreateText(value)
}

func (s *instrumented) InsertBefore(parent Node, node Node, ref Node) {
	count(Primitive_InsertBefore)
	s.inner.InsertBefore(parent, node, ref)
}

func (s *instrumented) RemoveChild(parent Node, node Node) {
	count(Primitive_RemoveChild)
	s.inner.RemoveChild(parent, node)
}

func (s *instrumented) ClearChildren(parent Node) {
	count(Primitive_ClearChildren)
	s.inner.ClearChildren(parent)
}

func (s *instrumented) SetAttribute(node Node, key string, value string) {
	count(Primitive_SetAttribute)
	s.inner.SetAttribute(node, key, value)
}

func (s *instrumented) RemoveAttribute(node Node, key string) {
	count(Primitive_RemoveAttribute)
	s.inner.RemoveAttribute(node, key)
}

func (s *instrumented) SetStyleProperty(node Node, key string, value string) {
	count(Primitive_SetStyle)
	s.inner.SetStyleProperty(node, key, value)
}

func (s *instrumented) RemoveStyleProperty(node Node, key string) {
	count(Primitive_RemoveStyle)
	s.inner.RemoveStyleProperty(node, key)
}

func (s *instrumented) SetTextValue(node Node, value string) {
	count(Primitive_SetText)
	s.inner.SetTextValue(node, value)
}
