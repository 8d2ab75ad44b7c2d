// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import "sort"

// markLIS marks one longest strictly increasing subsequence of seq. Negative
// entries never take part. Among equally long subsequences the one ending at the
// smallest last value found by patience sorting is chosen, so the result is
// deterministic for a given seq.
func markLIS(seq []int) []bool {
	rtn := make([]bool, len(seq))
	prev := make([]int, len(seq))
	var tails []int // tails[l] is the index of the smallest tail of a subsequence of length l+1
	for i, v := range seq {
		if v < 0 {
			continue
		}
		pos := sort.Search(len(tails), func(k int) bool { return seq[tails[k]] >= v })
		prev[i] = -1
		if pos > 0 {
			prev[i] = tails[pos-1]
		}
		if pos == len(tails) {
			tails = append(tails, i)
		} else {
			tails[pos] = i
		}
	}
	if len(tails) == 0 {
		return rtn
	}
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		rtn[i] = true
	}
	return rtn
}

// LISLength returns the length of the longest strictly increasing subsequence of
// seq, ignoring negative entries. A keyed update moves exactly
// matched - LISLength(sources) entries.
func LISLength(seq []int) int {
	count := 0
	for _, in := range markLIS(seq) {
		if in {
			count++
		}
	}
	return count
}
