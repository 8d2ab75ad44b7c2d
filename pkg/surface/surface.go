// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package surface defines the boundary between the reconciliation engine and
// whatever renderer owns the real output tree.
//
// The engine only ever mutates output through a Surface. Implementations decide
// what a node is (a browser element, a terminal cell, an in-memory record); the
// engine treats every Node as an opaque handle and never inspects it.
package surface

// Node is an opaque handle to a node owned by a Surface.
type Node any

// primitive names, used by the mutation log and by metric labels
const (
	Primitive_CreateElement   = "createelement"
	Primitive_CreateText      = "createtext"
	Primitive_InsertBefore    = "insertbefore"
	Primitive_RemoveChild     = "removechild"
	Primitive_ClearChildren   = "clearchildren"
	Primitive_SetAttribute    = "setattribute"
	Primitive_RemoveAttribute = "removeattribute"
	Primitive_SetStyle        = "setstyle"
	Primitive_RemoveStyle     = "removestyle"
	Primitive_SetText         = "settext"
)

var AllPrimitives = []string{
	Primitive_CreateElement,
	Primitive_CreateText,
	Primitive_InsertBefore,
	Primitive_RemoveChild,
	Primitive_ClearChildren,
	Primitive_SetAttribute,
	Primitive_RemoveAttribute,
	Primitive_SetStyle,
	Primitive_RemoveStyle,
	Primitive_SetText,
}

// Surface is the mutable output tree.
//
// InsertBefore with a nil ref appends. Inserting a node that already has a parent
// moves it (DOM semantics), which is how the engine relocates keyed children.
type Surface interface {
	CreateElement(tag string, namespaced bool) Node
	CreateText(value string) Node
	InsertBefore(parent Node, node Node, ref Node)
	RemoveChild(parent Node, node Node)
	ClearChildren(parent Node)
	SetAttribute(node Node, key string, value string)
	RemoveAttribute(node Node, key string)
	SetStyleProperty(node Node, key string, value string)
	RemoveStyleProperty(node Node, key string)
	SetTextValue(node Node, value string)
}
