// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/scenario"
)

var stepsUnmount bool
var stepsMutations bool

var stepsCmd = &cobra.Command{
	Use:   "steps file.json",
	Short: "Commit each tree of a steps file in order",
	Long:  `steps reads a JSON array of nodes and commits them one after another against the same root. A null entry runs a dirty-check pass.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStepsCmd,
}

func init() {
	stepsCmd.Flags().BoolVar(&stepsUnmount, "unmount", false, "unmount the tree after the last step")
	stepsCmd.Flags().BoolVarP(&stepsMutations, "mutations", "m", false, "print every mutation")
	rootCmd.AddCommand(stepsCmd)
}

func runStepsCmd(cmd *cobra.Command, args []string) error {
	steps, err := scenario.ReadStepsFile(args[0])
	if err != nil {
		return err
	}
	runner := makeRunner(false)
	results, err := runner.RunAll(steps)
	if err != nil {
		printResults(results, stepsMutations)
		return err
	}
	if stepsUnmount {
		final, err := runner.Unmount()
		if err != nil {
			return err
		}
		results = append(results, final)
	}
	printResults(results, stepsMutations)
	return nil
}
