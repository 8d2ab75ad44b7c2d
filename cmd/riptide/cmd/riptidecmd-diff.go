// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/scenario"
)

var diffCmd = &cobra.Command{
	Use:   "diff old.json new.json",
	Short: "Mount one tree, update it to another and print the mutations",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiffCmd,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	oldNode, err := scenario.ReadNodeFile(args[0])
	if err != nil {
		return err
	}
	newNode, err := scenario.ReadNodeFile(args[1])
	if err != nil {
		return err
	}
	runner := makeRunner(false)
	if _, err := runner.Apply(oldNode); err != nil {
		return err
	}
	result, err := runner.Apply(newNode)
	if err != nil {
		return err
	}
	printResults([]*scenario.StepResult{result}, true)
	return nil
}
