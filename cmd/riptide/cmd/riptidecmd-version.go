// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/riptidebase"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version [-v]",
	Short: "Print the version number of riptide",
	RunE:  runVersionCmd,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Display build time and effective config")
	rootCmd.AddCommand(versionCmd)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	if !versionVerbose {
		WriteStdout("riptide v%s\n", riptidebase.RiptideVersion)
		return nil
	}
	WriteStdout("riptide v%s (%s)\n", riptidebase.RiptideVersion, riptidebase.BuildTime)
	WriteStdout("linearscanthreshold: %d\n", RiptideConfig.LinearScanThreshold)
	WriteStdout("strictkeys: %v\n", RiptideConfig.StrictKeys)
	WriteStdout("ownscontainer: %v\n", RiptideConfig.OwnsContainer)
	WriteStdout("debug: %v\n", RiptideConfig.Debug)
	return nil
}
