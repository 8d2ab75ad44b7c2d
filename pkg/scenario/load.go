// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/wavetermdev/riptide/pkg/util/utilfn"
)

// ParseSteps parses either a single node object or an array of nodes (one per
// commit step). Unknown fields are rejected.
func ParseSteps(data []byte) ([]*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty scenario")
	}
	if trimmed[0] == '[' {
		var steps []*Node
		if err := strictUnmarshal(data, &steps); err != nil {
			return nil, err
		}
		return steps, nil
	}
	var node Node
	if err := strictUnmarshal(data, &node); err != nil {
		return nil, err
	}
	return []*Node{&node}, nil
}

func strictUnmarshal(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineCol(data, syntaxErr.Offset)
		return fmt.Errorf("line %d col %d: %w", line, col, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := lineCol(data, typeErr.Offset)
		return fmt.Errorf("line %d col %d: %w", line, col, err)
	}
	return err
}

func ReadStepsFile(fileName string) ([]*Node, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	steps, err := ParseSteps(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return steps, nil
}

// ReadNodeFile reads a file holding exactly one node.
func ReadNodeFile(fileName string) (*Node, error) {
	steps, err := ReadStepsFile(fileName)
	if err != nil {
		return nil, err
	}
	if len(steps) != 1 {
		return nil, fmt.Errorf("%s: expected a single node, got %d", fileName, len(steps))
	}
	return steps[0], nil
}

func lineCol(data []byte, offset int64) (int, int) {
	return utilfn.GetLineColFromOffset(data, int(offset))
}
