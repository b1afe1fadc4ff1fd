// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"strconv"
)

func asSequence(val interface{}) ([]interface{}, error) {
	seq, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %s", typeName(val))
	}
	return seq, nil
}

func asMapping(val interface{}) (map[string]interface{}, error) {
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %s", typeName(val))
	}
	return m, nil
}

func asString(val interface{}) (string, error) {
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %s", typeName(val))
	}
	return str, nil
}

func asNumber(val interface{}) (num float64, isInt bool, err error) {
	switch typedVal := val.(type) {
	case int:
		return float64(typedVal), true, nil
	case int64:
		return float64(typedVal), true, nil
	case float64:
		return typedVal, false, nil
	default:
		return 0, false, fmt.Errorf("expected a number, got %s", typeName(val))
	}
}

func lessThan(left, right interface{}) (bool, error) {
	leftStr, leftIsStr := left.(string)
	rightStr, rightIsStr := right.(string)
	if leftIsStr && rightIsStr {
		return leftStr < rightStr, nil
	}

	leftNum, _, leftErr := asNumber(left)
	rightNum, _, rightErr := asNumber(right)
	if leftErr == nil && rightErr == nil {
		return leftNum < rightNum, nil
	}

	return false, fmt.Errorf("cannot compare %s with %s", typeName(left), typeName(right))
}

// pick scans a sequence for its least (wantLeast) or greatest element,
// using lessThan's ordering (numbers numerically, strings
// lexicographically).
func pick(val interface{}, wantLeast bool) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("sequence is empty")
	}

	best := seq[0]
	for _, item := range seq[1:] {
		var better bool
		var err error
		if wantLeast {
			better, err = lessThan(item, best)
		} else {
			better, err = lessThan(best, item)
		}
		if err != nil {
			return nil, err
		}
		if better {
			best = item
		}
	}
	return best, nil
}

func stringify(val interface{}) string {
	switch typedVal := val.(type) {
	case nil:
		return ""
	case string:
		return typedVal
	case bool:
		return strconv.FormatBool(typedVal)
	case int:
		return strconv.Itoa(typedVal)
	case int64:
		return strconv.FormatInt(typedVal, 10)
	case float64:
		return strconv.FormatFloat(typedVal, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func typeName(val interface{}) string {
	switch val.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case []interface{}:
		return "sequence"
	case map[string]interface{}:
		return "mapping"
	default:
		return fmt.Sprintf("%T", val)
	}
}
