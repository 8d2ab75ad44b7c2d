// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

func Schema() *jsonschema.Schema {
	schema := jsonschema.Reflect(&Node{})
	schema.Title = "riptide scenario node"
	return schema
}

// StepsSchema describes a steps file: an array of nodes.
func StepsSchema() *jsonschema.Schema {
	schema := jsonschema.Reflect([]*Node{})
	schema.Title = "riptide scenario steps"
	return schema
}

func SchemaJSON(steps bool) ([]byte, error) {
	schema := Schema()
	if steps {
		schema = StepsSchema()
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return out, nil
}
