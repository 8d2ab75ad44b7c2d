// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"sync"

	"github.com/outrigdev/goid"
)

// passGuard makes commit passes on one root mutually exclusive. It remembers the
// goroutine running the pass so a re-entrant call from a hook can be told apart
// from a call racing in from another goroutine.
type passGuard struct {
	lock     sync.Mutex
	active   bool
	passGoId uint64
	passName string
}

func (g *passGuard) enter(name string) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	gid := goid.Get()
	if g.active {
		if gid == g.passGoId {
			return fmt.Errorf("%w: %s called from within %s", ErrCommitInProgress, name, g.passName)
		}
		return fmt.Errorf("%w: %s called concurrently with %s", ErrCommitInProgress, name, g.passName)
	}
	g.active = true
	g.passGoId = gid
	g.passName = name
	return nil
}

func (g *passGuard) exit() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.active = false
	g.passGoId = 0
	g.passName = ""
}
