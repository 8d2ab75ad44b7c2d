// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import "fmt"

// Stats counts reconciler work since the root was created or last reset.
type Stats struct {
	Passes   int `json:"passes"`
	Mounts   int `json:"mounts"`   // instances created
	Unmounts int `json:"unmounts"` // subtrees torn down
	Updates  int `json:"updates"`  // instances patched in place
	Skipped  int `json:"skipped"`  // updates short-circuited by an identical op
	Renders  int `json:"renders"`
	Visited  int `json:"visited"` // instances entered by the dirty-check walk
	Moves    int `json:"moves"`   // already mounted output nodes relocated
}

func (s Stats) String() string {
	return fmt.Sprintf("passes:%d mounts:%d unmounts:%d updates:%d skipped:%d renders:%d visited:%d moves:%d",
		s.Passes, s.Mounts, s.Unmounts, s.Updates, s.Skipped, s.Renders, s.Visited, s.Moves)
}

func (s Stats) sub(other Stats) Stats {
	return Stats{
		Passes:   s.Passes - other.Passes,
		Mounts:   s.Mounts - other.Mounts,
		Unmounts: s.Unmounts - other.Unmounts,
		Updates:  s.Updates - other.Updates,
		Skipped:  s.Skipped - other.Skipped,
		Renders:  s.Renders - other.Renders,
		Visited:  s.Visited - other.Visited,
		Moves:    s.Moves - other.Moves,
	}
}
