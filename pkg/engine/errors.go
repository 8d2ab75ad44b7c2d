// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOp        = errors.New("unknown operation type")
	ErrDuplicateKey     = errors.New("duplicate key in keyed list")
	ErrFragmentArity    = errors.New("fragment length changed between updates")
	ErrNilRender        = errors.New("component has no render function")
	ErrCommitInProgress = errors.New("commit pass already in progress")
	ErrAlreadyMounted   = errors.New("root is already mounted")
)

// RenderError is raised when a component's render function panics.
type RenderError struct {
	Component string
	Val       any
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render component %q: %v", e.Component, e.Val)
}

func (e *RenderError) Unwrap() error {
	if err, ok := e.Val.(error); ok {
		return err
	}
	return nil
}

func defect(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
