// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses data as YAML (which covers JSON as well) into a
// normalized Value. If YAML parsing fails it retries as JSON so that
// JSON-specific parse errors surface when the input was clearly JSON.
func Decode(data []byte) (interface{}, error) {
	var raw interface{}

	yamlErr := yaml.Unmarshal(data, &raw)
	if yamlErr != nil {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		jsonErr := dec.Decode(&raw)
		if jsonErr != nil {
			return nil, fmt.Errorf("parsing as YAML (%s) or JSON (%s)", yamlErr, jsonErr)
		}
	}

	return Normalize(raw)
}

// DecodeString is Decode over a string, used for expression results
// that arrive as serialized text (e.g. from_json/from_yaml filters).
func DecodeString(data string) (interface{}, error) {
	return Decode([]byte(data))
}
