// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/k14s/hostexpr/pkg/orderedmap"
	"github.com/k14s/hostexpr/pkg/value"
)

func ToJSON(val interface{}, args []interface{}) (interface{}, error) {
	bs, err := encodeJSON(val, "")
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

func ToNiceJSON(val interface{}, args []interface{}) (interface{}, error) {
	bs, err := encodeJSON(val, "    ")
	if err != nil {
		return nil, err
	}
	return string(bs), nil
}

// encodeJSON canonicalizes through the Value union first so that map
// keys come out in a stable order.
func encodeJSON(val interface{}, indent string) ([]byte, error) {
	normalized, err := value.Normalize(val)
	if err != nil {
		return nil, err
	}
	if len(indent) > 0 {
		return json.MarshalIndent(normalized, "", indent)
	}
	return json.Marshal(normalized)
}

func FromJSON(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	// UseNumber keeps integers intact so to_json | from_json round-trips
	dec := json.NewDecoder(strings.NewReader(str))
	dec.UseNumber()
	var raw interface{}
	err = dec.Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %s", err)
	}
	normalized, err := value.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return orderedmap.Conversion{Object: normalized}.AsUnordered(), nil
}

func ToYAML(val interface{}, args []interface{}) (interface{}, error) {
	return encodeYAML(val, 2)
}

func ToNiceYAML(val interface{}, args []interface{}) (interface{}, error) {
	return encodeYAML(val, 4)
}

func encodeYAML(val interface{}, indent int) (interface{}, error) {
	normalized, err := value.Normalize(val)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	err = enc.Encode(normalized)
	if err != nil {
		return nil, fmt.Errorf("encoding YAML: %s", err)
	}
	err = enc.Close()
	if err != nil {
		return nil, err
	}
	return buf.String(), nil
}

func FromYAML(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	err = yaml.Unmarshal([]byte(str), &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing YAML: %s", err)
	}
	normalized, err := value.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return orderedmap.Conversion{Object: normalized}.AsUnordered(), nil
}

func B64Encode(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.EncodeToString([]byte(str)), nil
}

func B64Decode(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	bs, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %s", err)
	}
	return string(bs), nil
}

func ToInt(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case bool:
		if typedVal {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return int64(typedVal), nil
	case int64:
		return typedVal, nil
	case float64:
		return int64(typedVal), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(typedVal), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert '%s' to int", typedVal)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("cannot convert %s to int", typeName(val))
	}
}

func ToFloat(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case int:
		return float64(typedVal), nil
	case int64:
		return float64(typedVal), nil
	case float64:
		return typedVal, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typedVal), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert '%s' to float", typedVal)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("cannot convert %s to float", typeName(val))
	}
}

func ToString(val interface{}, args []interface{}) (interface{}, error) {
	return stringify(val), nil
}

func ToBool(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case nil:
		return false, nil
	case bool:
		return typedVal, nil
	case int:
		return typedVal != 0, nil
	case int64:
		return typedVal != 0, nil
	case float64:
		return typedVal != 0, nil
	case string:
		switch strings.ToLower(typedVal) {
		case "true", "yes", "1":
			return true, nil
		case "false", "no", "0", "":
			return false, nil
		}
		return nil, fmt.Errorf("cannot convert '%s' to bool", typedVal)
	default:
		return nil, fmt.Errorf("cannot convert %s to bool", typeName(val))
	}
}
