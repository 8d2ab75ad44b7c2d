// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/scenario"
	"github.com/wavetermdev/riptide/pkg/util/utilfn"
)

var schemaSteps bool
var schemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of scenario files",
	Args:  cobra.NoArgs,
	RunE:  runSchemaCmd,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaSteps, "steps", false, "schema for a steps file instead of a single node")
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "write the schema to this file instead of stdout")
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaCmd(cmd *cobra.Command, args []string) error {
	out, err := scenario.SchemaJSON(schemaSteps)
	if err != nil {
		return err
	}
	if schemaOut == "" {
		WriteStdout("%s\n", out)
		return nil
	}
	written, err := utilfn.WriteFileIfDifferent(schemaOut, out)
	if err != nil {
		return fmt.Errorf("writing %s: %w", schemaOut, err)
	}
	if !written {
		WriteStderr("no changes to %s\n", schemaOut)
	}
	return nil
}
