// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"log"
	"time"

	"github.com/wavetermdev/riptide/pkg/panichandler"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
)

const (
	Pass_Mount      = "mount"
	Pass_Update     = "update"
	Pass_DirtyCheck = "dirtycheck"
	Pass_Unmount    = "unmount"
)

// Root owns one instance tree rendered into Container. All passes run
// synchronously on the calling goroutine and never overlap. Invalidate must be
// called from the goroutine that drives the root; OnInvalidate is the place to
// hand work over to a scheduler.
type Root struct {
	Container    surface.Node
	Surface      surface.Surface
	Instance     *Instance
	Opts         Options
	OnInvalidate func()

	pending    vdom.Op
	hasPending bool
	dirty      bool
	building   *Instance

	outerCtx     context.Context
	outerChanged bool

	stats Stats
	guard passGuard
}

// MakeRoot creates a root rendering into container. A nil opts uses DefaultOptions.
func MakeRoot(s surface.Surface, container surface.Node, opts *Options) *Root {
	rtn := &Root{
		Container: container,
		Surface:   s,
		Opts:      DefaultOptions(),
		outerCtx:  context.Background(),
	}
	if opts != nil {
		rtn.Opts = *opts
	}
	return rtn
}

// SetOuterCtx replaces the context every render starts from. Values provided
// by ContextOps are layered on top of it. All components re-render on the next pass.
func (r *Root) SetOuterCtx(ctx context.Context) {
	r.outerCtx = ctx
	r.outerChanged = true
	r.markDirty()
}

func (r *Root) markDirty() {
	r.dirty = true
	if r.OnInvalidate != nil {
		r.OnInvalidate()
	}
}

// Dirty reports whether a scheduled op or an invalidation is waiting for Commit.
func (r *Root) Dirty() bool {
	return r.dirty || r.hasPending
}

func (r *Root) Stats() Stats {
	return r.stats
}

func (r *Root) ResetStats() {
	r.stats = Stats{}
}

func (r *Root) Mount(op vdom.Op) error {
	if r.Instance != nil {
		return ErrAlreadyMounted
	}
	return r.runPass(Pass_Mount, func(p *pass, sc scope) {
		r.Instance = p.mount(r.Container, nil, op, nil, sc)
	})
}

// Update reconciles the mounted tree against op, mounting it if nothing is mounted yet.
func (r *Root) Update(op vdom.Op) error {
	return r.runPass(Pass_Update, func(p *pass, sc scope) {
		r.Instance = p.update(r.Container, nil, r.Instance, op, nil, false, r.Opts.OwnsContainer, sc)
	})
}

// Schedule records op for the next Commit. A later Schedule replaces an earlier one.
func (r *Root) Schedule(op vdom.Op) {
	r.pending = op
	r.hasPending = true
	r.markDirty()
}

// Commit applies the scheduled op, or runs a dirty-check pass when nothing is
// scheduled but components were invalidated. It does nothing on a clean root.
func (r *Root) Commit() error {
	if r.hasPending {
		op := r.pending
		r.pending = nil
		r.hasPending = false
		return r.Update(op)
	}
	if r.dirty {
		return r.DirtyCheck()
	}
	return nil
}

// DirtyCheck re-renders invalidated components without a new op.
func (r *Root) DirtyCheck() error {
	return r.runPass(Pass_DirtyCheck, func(p *pass, sc scope) {
		p.dirtyCheck(r.Container, r.Instance, nil, false, r.Opts.OwnsContainer, sc)
	})
}

// Unmount removes the tree's output from the container and runs unmount hooks.
func (r *Root) Unmount() error {
	return r.runPass(Pass_Unmount, func(p *pass, sc scope) {
		inst := r.Instance
		r.Instance = nil
		r.pending = nil
		r.hasPending = false
		p.unmount(r.Container, inst, r.Opts.OwnsContainer)
	})
}

func (r *Root) runPass(name string, fn func(p *pass, sc scope)) (rtnErr error) {
	if err := r.guard.enter(name); err != nil {
		return err
	}
	defer r.guard.exit()
	start := time.Now()
	before := r.stats
	r.stats.Passes++
	r.dirty = false
	sc := scope{ctx: r.outerCtx, dirtyCtx: r.outerChanged}
	r.outerChanged = false
	p := &pass{root: r, s: r.Surface, opts: &r.Opts, stats: &r.stats}
	defer func() {
		r.building = nil
		panicErr := panichandler.PanicHandler("riptide "+name, recover())
		if panicErr != nil {
			rtnErr = panicErr
		}
		delta := r.stats.sub(before)
		observePass(name, start, delta, rtnErr)
		if r.Opts.Debug {
			log.Printf("[riptide] %s pass in %v err:%v %s\n", name, time.Since(start), rtnErr, delta)
		}
	}()
	fn(p, sc)
	r.building = nil
	p.flush()
	return nil
}

// flush runs the work queued during the pass: every effect cleanup first, then
// lifecycle callbacks and effects in queue order (children before parents).
func (p *pass) flush() {
	work := p.work
	p.work = nil
	for _, w := range work {
		if w.lifecycle != nil || !w.comp.Mounted() {
			continue
		}
		hook := w.comp.hooks[w.hookIdx]
		if hook.UnmountFn != nil {
			cleanup := hook.UnmountFn
			hook.UnmountFn = nil
			cleanup()
		}
	}
	for _, w := range work {
		if !w.comp.Mounted() {
			continue
		}
		if w.lifecycle != nil {
			w.lifecycle(w.comp)
			continue
		}
		hook := w.comp.hooks[w.hookIdx]
		if hook.Fn != nil {
			hook.UnmountFn = hook.Fn()
		}
	}
}
