// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

const DefaultLinearScanThreshold = 8

type Options struct {
	// LinearScanThreshold is the largest unmatched middle of a keyed list that is
	// matched by scanning instead of building a key index.
	LinearScanThreshold int `json:"linearscanthreshold"`
	// StrictKeys rejects keyed lists with duplicate keys on mount and update.
	StrictKeys bool `json:"strictkeys"`
	// OwnsContainer declares that the root's output is all the container holds,
	// so removing it may clear the container in one call.
	OwnsContainer bool `json:"ownscontainer"`
	Debug         bool `json:"debug"`
}

func DefaultOptions() Options {
	return Options{
		LinearScanThreshold: DefaultLinearScanThreshold,
		StrictKeys:          true,
	}
}
