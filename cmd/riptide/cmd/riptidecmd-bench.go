// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/engine"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/vdom"
	"golang.org/x/sync/errgroup"
)

var benchRoots int
var benchSize int
var benchIters int
var benchSeed int64
var benchParallel int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Reorder keyed lists on many roots and check the move counts",
	Long:  `bench drives independent roots concurrently through random keyed-list reorders. Every update must issue exactly matched - LIS moves.`,
	Args:  cobra.NoArgs,
	RunE:  runBenchCmd,
}

func init() {
	benchCmd.Flags().IntVar(&benchRoots, "roots", 8, "number of independent roots")
	benchCmd.Flags().IntVar(&benchSize, "size", 100, "list length")
	benchCmd.Flags().IntVar(&benchIters, "iterations", 200, "updates per root")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed (root i uses seed+i)")
	benchCmd.Flags().IntVar(&benchParallel, "parallel", 0, "max roots running at once (0 means no limit)")
	rootCmd.AddCommand(benchCmd)
}

type benchResult struct {
	Updates int
	Moves   int
	Prims   int
	Stats   engine.Stats
}

func benchList(keys []int) vdom.Op {
	return vdom.H("ul", nil, vdom.ForEach(keys,
		func(key int, _ int) any { return key },
		func(key int, _ int) vdom.Op { return vdom.H("li", nil, vdom.Text(strconv.Itoa(key))) },
	))
}

// nextKeys shuffles a random window of keys, drops some and appends fresh ones.
func nextKeys(r *rand.Rand, keys []int, nextKey *int) []int {
	rtn := make([]int, 0, len(keys)+4)
	for _, key := range keys {
		if r.Intn(10) == 0 {
			continue
		}
		rtn = append(rtn, key)
	}
	if len(rtn) > 1 {
		start := r.Intn(len(rtn))
		end := start + r.Intn(len(rtn)-start) + 1
		window := rtn[start:end]
		r.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })
	}
	for n := r.Intn(4); n > 0; n-- {
		pos := r.Intn(len(rtn) + 1)
		rtn = append(rtn[:pos], append([]int{*nextKey}, rtn[pos:]...)...)
		*nextKey++
	}
	return rtn
}

// expectedMoves is the number of surviving items outside one longest increasing run of old positions.
func expectedMoves(oldKeys []int, newKeys []int) int {
	oldIdx := make(map[int]int, len(oldKeys))
	for idx, key := range oldKeys {
		oldIdx[key] = idx
	}
	sources := make([]int, len(newKeys))
	matched := 0
	for idx, key := range newKeys {
		if oldPos, ok := oldIdx[key]; ok {
			sources[idx] = oldPos
			matched++
		} else {
			sources[idx] = -1
		}
	}
	return matched - engine.LISLength(sources)
}

func runBenchRoot(ctx context.Context, rootNum int) (*benchResult, error) {
	r := rand.New(rand.NewSource(benchSeed + int64(rootNum)))
	mem := surface.MakeMemSurface()
	container := mem.MakeContainer("root")
	root := engine.MakeRoot(mem, container, RiptideConfig.EngineOptions())
	keys := make([]int, benchSize)
	for idx := range keys {
		keys[idx] = idx
	}
	nextKey := benchSize
	if err := root.Mount(benchList(keys)); err != nil {
		return nil, err
	}
	result := &benchResult{}
	for iter := 0; iter < benchIters; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		newKeys := nextKeys(r, keys, &nextKey)
		expected := expectedMoves(keys, newKeys)
		mem.ResetCounts()
		if err := root.Update(benchList(newKeys)); err != nil {
			return nil, fmt.Errorf("root %d iteration %d: %w", rootNum, iter, err)
		}
		if mem.Counts.Moves != expected {
			return nil, fmt.Errorf("root %d iteration %d: %d moves, expected %d", rootNum, iter, mem.Counts.Moves, expected)
		}
		result.Updates++
		result.Moves += mem.Counts.Moves
		result.Prims += mem.Counts.Total()
		keys = newKeys
	}
	if err := root.Unmount(); err != nil {
		return nil, err
	}
	result.Stats = root.Stats()
	return result, nil
}

func runBenchCmd(cmd *cobra.Command, args []string) error {
	if benchRoots <= 0 || benchSize < 0 || benchIters < 0 {
		return fmt.Errorf("--roots must be positive, --size and --iterations must not be negative")
	}
	startTs := time.Now()
	results := make([]*benchResult, benchRoots)
	g, ctx := errgroup.WithContext(cmd.Context())
	if benchParallel > 0 {
		g.SetLimit(benchParallel)
	}
	for idx := 0; idx < benchRoots; idx++ {
		g.Go(func() error {
			result, err := runBenchRoot(ctx, idx)
			if err != nil {
				return err
			}
			results[idx] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	var total benchResult
	for _, result := range results {
		total.Updates += result.Updates
		total.Moves += result.Moves
		total.Prims += result.Prims
		total.Stats.Renders += result.Stats.Renders
		total.Stats.Updates += result.Stats.Updates
		total.Stats.Mounts += result.Stats.Mounts
		total.Stats.Unmounts += result.Stats.Unmounts
	}
	elapsed := time.Since(startTs)
	WriteStdout("roots:%d updates:%d moves:%d primitives:%d elapsed:%v\n", benchRoots, total.Updates, total.Moves, total.Prims, elapsed.Round(time.Millisecond))
	WriteStdout("instances mounted:%d unmounted:%d updated:%d\n", total.Stats.Mounts, total.Stats.Unmounts, total.Stats.Updates)
	return writeMetrics()
}

func writeMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "riptide_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %v", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.6f", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		WriteStdout("%s\n", line)
	}
	return nil
}
