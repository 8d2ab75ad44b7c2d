// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/wavetermdev/riptide/cmd/riptide/cmd"
	"github.com/wavetermdev/riptide/pkg/riptidebase"
)

// these are set at build time
var RiptideVersion = "0.0.0"
var BuildTime = "0"

func main() {
	riptidebase.RiptideVersion = RiptideVersion
	riptidebase.BuildTime = BuildTime
	cmd.Execute()
}
