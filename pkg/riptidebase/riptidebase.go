// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package riptidebase

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/wavetermdev/riptide/pkg/engine"
)

// set by cmd/riptide at startup
var RiptideVersion = "0.0.0"
var BuildTime = "0"

const (
	LinearScanThresholdEnvVar = "RIPTIDE_LINEAR_SCAN_THRESHOLD"
	StrictKeysEnvVar          = "RIPTIDE_STRICT_KEYS"
	DebugEnvVar               = "RIPTIDE_DEBUG"
	OwnsContainerEnvVar       = "RIPTIDE_OWNS_CONTAINER"
)

const DefaultEnvFile = ".env"

type Config struct {
	LinearScanThreshold int  `json:"linearscanthreshold"`
	StrictKeys          bool `json:"strictkeys"`
	Debug               bool `json:"debug"`
	OwnsContainer       bool `json:"ownscontainer"`
}

func DefaultConfig() Config {
	opts := engine.DefaultOptions()
	return Config{
		LinearScanThreshold: opts.LinearScanThreshold,
		StrictKeys:          opts.StrictKeys,
		Debug:               opts.Debug,
		OwnsContainer:       opts.OwnsContainer,
	}
}

// LoadConfig loads envFile (missing files are ignored when envFile is the
// default) without overriding variables already set, then reads the config from
// the environment.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	err := godotenv.Load(envFile)
	if err != nil && !(envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist)) {
		return Config{}, fmt.Errorf("loading env file %q: %w", envFile, err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv reads the config through getenv, starting from DefaultConfig.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	rtn := DefaultConfig()
	if val := getenv(LinearScanThresholdEnvVar); val != "" {
		threshold, err := strconv.Atoi(val)
		if err != nil || threshold < 0 {
			return Config{}, fmt.Errorf("invalid %s %q", LinearScanThresholdEnvVar, val)
		}
		rtn.LinearScanThreshold = threshold
	}
	var err error
	if rtn.StrictKeys, err = envBool(getenv, StrictKeysEnvVar, rtn.StrictKeys); err != nil {
		return Config{}, err
	}
	if rtn.Debug, err = envBool(getenv, DebugEnvVar, rtn.Debug); err != nil {
		return Config{}, err
	}
	if rtn.OwnsContainer, err = envBool(getenv, OwnsContainerEnvVar, rtn.OwnsContainer); err != nil {
		return Config{}, err
	}
	return rtn, nil
}

func envBool(getenv func(string) string, name string, def bool) (bool, error) {
	val := strings.TrimSpace(getenv(name))
	if val == "" {
		return def, nil
	}
	rtn, err := strconv.ParseBool(val)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", name, val, err)
	}
	return rtn, nil
}

func (c Config) EngineOptions() *engine.Options {
	return &engine.Options{
		LinearScanThreshold: c.LinearScanThreshold,
		StrictKeys:          c.StrictKeys,
		Debug:               c.Debug,
		OwnsContainer:       c.OwnsContainer,
	}
}
