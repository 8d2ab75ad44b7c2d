// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/riptide/pkg/panichandler"
	"github.com/wavetermdev/riptide/pkg/scenario"
)

const watchDebounce = 100 * time.Millisecond

var watchMutations bool

var watchCmd = &cobra.Command{
	Use:   "watch file.json",
	Short: "Re-commit a steps file against the same root every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchCmd,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchMutations, "mutations", "m", false, "print every mutation")
	rootCmd.AddCommand(watchCmd)
}

// FileWatcher calls OnChange (on the goroutine running Run) after the file is written or replaced.
// Bursts of events are collapsed into one call.
type FileWatcher struct {
	FileName string
	OnChange func()
	watcher  *fsnotify.Watcher
}

func MakeFileWatcher(fileName string, onChange func()) (*FileWatcher, error) {
	absName, err := filepath.Abs(fileName)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// watch the directory, editors often replace the file instead of writing it
	err = watcher.Add(filepath.Dir(absName))
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absName), err)
	}
	return &FileWatcher{FileName: absName, OnChange: onChange, watcher: watcher}, nil
}

func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Clean(event.Name) != w.FileName {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *FileWatcher) fire() {
	defer func() {
		panichandler.LogPanic("riptide watch", recover())
	}()
	w.OnChange()
}

// Run blocks until ctx is done or the watcher is closed.
func (w *FileWatcher) Run(ctx context.Context) error {
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("watcher error:", err)
		case <-timer.C:
			w.fire()
		}
	}
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	fileName := args[0]
	runner := makeRunner(false)
	runFile := func() {
		steps, err := scenario.ReadStepsFile(fileName)
		if err != nil {
			WriteStderr("%v\n", err)
			return
		}
		results, err := runner.RunAll(steps)
		printResults(results, watchMutations)
		if err != nil {
			WriteStderr("%v\n", err)
		}
	}
	watcher, err := MakeFileWatcher(fileName, runFile)
	if err != nil {
		return err
	}
	defer watcher.Close()
	runFile()
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	WriteStderr("watching %s\n", watcher.FileName)
	return watcher.Run(ctx)
}
