// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"fmt"

	"github.com/wavetermdev/riptide/pkg/engine"
	"github.com/wavetermdev/riptide/pkg/surface"
)

type StepResult struct {
	Step      int                `json:"step"`
	HTML      string             `json:"html"`
	Mutations []surface.Mutation `json:"mutations,omitempty"`
	Counts    surface.Counts     `json:"counts"`
	Stats     engine.Stats       `json:"stats"`
}

// Runner applies scenario steps to one root rendering into an in-memory surface.
type Runner struct {
	Mem       *surface.MemSurface
	Recorder  *surface.Recorder
	Container *surface.MemNode
	Root      *engine.Root
	Decoder   *Decoder

	step int
}

// MakeRunner builds the surface stack Recorder -> (Instrument ->) MemSurface.
func MakeRunner(opts *engine.Options, registry *Registry, instrument bool) *Runner {
	mem := surface.MakeMemSurface()
	var inner surface.Surface = mem
	if instrument {
		inner = surface.Instrument(mem)
	}
	rec := surface.MakeRecorder(inner)
	container := mem.MakeContainer("root")
	return &Runner{
		Mem:       mem,
		Recorder:  rec,
		Container: container,
		Root:      engine.MakeRoot(rec, container, opts),
		Decoder:   MakeDecoder(registry),
	}
}

// Apply commits node as the next step. Passing a nil node runs a dirty-check pass.
func (r *Runner) Apply(node *Node) (*StepResult, error) {
	r.step++
	r.Mem.ResetCounts()
	r.Root.ResetStats()
	r.Recorder.Take()
	if node == nil {
		if err := r.Root.DirtyCheck(); err != nil {
			return nil, fmt.Errorf("step %d: %w", r.step, err)
		}
	} else {
		op, err := r.Decoder.Decode(node)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", r.step, err)
		}
		r.Root.Schedule(op)
		if err := r.Root.Commit(); err != nil {
			return nil, fmt.Errorf("step %d: %w", r.step, err)
		}
	}
	return &StepResult{
		Step:      r.step,
		HTML:      r.Container.InnerHTML(),
		Mutations: r.Recorder.Take(),
		Counts:    r.Mem.Counts,
		Stats:     r.Root.Stats(),
	}, nil
}

func (r *Runner) RunAll(steps []*Node) ([]*StepResult, error) {
	rtn := make([]*StepResult, 0, len(steps))
	for _, step := range steps {
		result, err := r.Apply(step)
		if err != nil {
			return rtn, err
		}
		rtn = append(rtn, result)
	}
	return rtn, nil
}

// Unmount removes the tree and reports the final step.
func (r *Runner) Unmount() (*StepResult, error) {
	r.step++
	r.Mem.ResetCounts()
	r.Root.ResetStats()
	r.Recorder.Take()
	if err := r.Root.Unmount(); err != nil {
		return nil, fmt.Errorf("unmount: %w", err)
	}
	return &StepResult{
		Step:      r.step,
		HTML:      r.Container.InnerHTML(),
		Mutations: r.Recorder.Take(),
		Counts:    r.Mem.Counts,
		Stats:     r.Root.Stats(),
	}, nil
}
