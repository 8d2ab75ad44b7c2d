// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkLIS(t *testing.T) {
	tests := []struct {
		seq    []int
		length int
	}{
		{nil, 0},
		{[]int{-1, -1}, 0},
		{[]int{0}, 1},
		{[]int{1, 0}, 1},
		{[]int{0, 1, 2, 3}, 4},
		{[]int{2, 1, -1, 5, 4}, 2},
		{[]int{4, 1, 2, 3, 0}, 3},
		{[]int{3, -1, 2, 1, 0, -1}, 1},
		{[]int{1, 0, 3, 2, 5, 4}, 3},
		{[]int{0, 8, 4, 12, 2, 10, 6, 14, 1, 9}, 4},
	}
	for _, tc := range tests {
		mask := markLIS(tc.seq)
		assert.Len(t, mask, len(tc.seq))
		assert.Equal(t, tc.length, LISLength(tc.seq), "seq %v", tc.seq)
		last := -1
		for i, in := range mask {
			if !in {
				continue
			}
			assert.GreaterOrEqual(t, tc.seq[i], 0, "seq %v: negative entry marked", tc.seq)
			assert.Greater(t, tc.seq[i], last, "seq %v: marked entries not increasing", tc.seq)
			last = tc.seq[i]
		}
	}
}

func TestMarkLISDeterministic(t *testing.T) {
	seq := []int{2, 1, -1, 5, 4}
	assert.Equal(t, markLIS(seq), markLIS(seq))
	assert.Equal(t, []bool{false, true, false, false, true}, markLIS(seq))
}
