// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/panichandler"
	"github.com/wavetermdev/riptide/pkg/riptidebase"
	"github.com/wavetermdev/riptide/pkg/scenario"
	"github.com/wavetermdev/riptide/pkg/surface"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
)

var (
	rootCmd = &cobra.Command{
		Use:               "riptide",
		Short:             "Drive the riptide reconciler from JSON scenarios",
		Long:              `riptide mounts operation trees described in JSON into an in-memory surface and reports the mutations each update issues.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
)

var WrappedStdout io.Writer = os.Stdout
var WrappedStderr io.Writer = os.Stderr

var envFileArg string
var thresholdArg int
var debugArg bool
var jsonArg bool

var RiptideConfig = riptidebase.DefaultConfig()

func init() {
	rootCmd.PersistentFlags().StringVar(&envFileArg, "env-file", "", "env file to load before reading RIPTIDE_* variables (default .env)")
	rootCmd.PersistentFlags().IntVar(&thresholdArg, "threshold", 0, "keyed-list linear scan threshold (overrides "+riptidebase.LinearScanThresholdEnvVar+")")
	rootCmd.PersistentFlags().BoolVar(&debugArg, "debug", false, "log every commit pass")
	rootCmd.PersistentFlags().BoolVar(&jsonArg, "json", false, "print results as JSON")
}

func WriteStderr(fmtStr string, args ...interface{}) {
	WrappedStderr.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func WriteStdout(fmtStr string, args ...interface{}) {
	WrappedStdout.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := riptidebase.LoadConfig(envFileArg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("threshold") {
		if thresholdArg < 0 {
			return fmt.Errorf("--threshold must not be negative")
		}
		cfg.LinearScanThreshold = thresholdArg
	}
	if debugArg {
		cfg.Debug = true
	}
	panichandler.PrintStacks = cfg.Debug
	RiptideConfig = cfg
	return nil
}

func makeRunner(instrument bool) *scenario.Runner {
	return scenario.MakeRunner(RiptideConfig.EngineOptions(), scenario.DefaultRegistry(), instrument)
}

func printResults(results []*scenario.StepResult, withMutations bool) {
	if jsonArg {
		WriteStdout("%s\n", utilfn.MustPrettyPrintJSON(results))
		return
	}
	for _, result := range results {
		WriteStdout("step %d: %s\n", result.Step, result.HTML)
		if withMutations {
			for _, m := range result.Mutations {
				WriteStdout("  %s\n", formatMutation(m))
			}
		}
		WriteStdout("  primitives:%d moves:%d | %s\n", result.Counts.Total(), result.Counts.Moves, result.Stats)
	}
}

func formatMutation(m surface.Mutation) string {
	parts := []string{m.Op}
	add := func(name string, val string) {
		if val != "" {
			parts = append(parts, name+"="+val)
		}
	}
	add("node", m.Node)
	add("parent", m.Parent)
	add("ref", m.Ref)
	add("key", m.Key)
	if m.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%q", m.Value))
	}
	return strings.Join(parts, " ")
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
