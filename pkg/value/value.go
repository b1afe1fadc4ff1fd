// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"encoding/json"
	"fmt"

	"github.com/k14s/hostexpr/pkg/orderedmap"
)

// A Value is one of: nil, bool, int64, float64, string, []interface{}
// of Values, or *orderedmap.Map of Values. Everything entering the
// session (loaded host vars, engine results, bind targets) is pushed
// through Normalize first so the rest of the code only ever sees this
// union.

// Normalize converts an arbitrary decoded or engine-produced tree into
// the Value union. Plain maps become ordered maps (keys sorted, since
// plain Go maps carry no ordering); integer types widen to int64.
func Normalize(val interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case nil:
		return nil, nil

	case bool, string, int64, float64:
		return typedVal, nil

	case int:
		return int64(typedVal), nil

	case int8:
		return int64(typedVal), nil

	case int16:
		return int64(typedVal), nil

	case int32:
		return int64(typedVal), nil

	case uint:
		return int64(typedVal), nil

	case uint8:
		return int64(typedVal), nil

	case uint16:
		return int64(typedVal), nil

	case uint32:
		return int64(typedVal), nil

	case uint64:
		return int64(typedVal), nil

	case float32:
		return float64(typedVal), nil

	case json.Number:
		if i, err := typedVal.Int64(); err == nil {
			return i, nil
		}
		f, err := typedVal.Float64()
		if err != nil {
			return nil, fmt.Errorf("unrepresentable number '%s'", typedVal)
		}
		return f, nil

	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			normalized, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			result[i] = normalized
		}
		return result, nil

	case map[string]interface{}, map[interface{}]interface{}:
		ordered := orderedmap.Conversion{Object: typedVal}.FromUnordered()
		return normalizeOrdered(ordered.(*orderedmap.Map))

	case *orderedmap.Map:
		return normalizeOrdered(typedVal)

	default:
		return nil, fmt.Errorf("unsupported value type %T", val)
	}
}

func normalizeOrdered(m *orderedmap.Map) (interface{}, error) {
	result := orderedmap.NewMap()
	err := m.IterateErr(func(k string, v interface{}) error {
		normalized, err := Normalize(v)
		if err != nil {
			return err
		}
		result.Set(k, normalized)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeepCopy returns a copy of val sharing no mutable state with it.
// val must already be in the Value union.
func DeepCopy(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = DeepCopy(item)
		}
		return result

	case *orderedmap.Map:
		result := orderedmap.NewMap()
		typedVal.Iterate(func(k string, v interface{}) {
			result.Set(k, DeepCopy(v))
		})
		return result

	default:
		return typedVal
	}
}

// Equal compares two Values. Mappings compare by key set and per-key
// values (key order is a rendering concern, not an equality one).
func Equal(left, right interface{}) bool {
	switch typedLeft := left.(type) {
	case []interface{}:
		typedRight, ok := right.([]interface{})
		if !ok || len(typedLeft) != len(typedRight) {
			return false
		}
		for i, item := range typedLeft {
			if !Equal(item, typedRight[i]) {
				return false
			}
		}
		return true

	case *orderedmap.Map:
		typedRight, ok := right.(*orderedmap.Map)
		if !ok || typedLeft.Len() != typedRight.Len() {
			return false
		}
		equal := true
		typedLeft.Iterate(func(k string, v interface{}) {
			otherVal, found := typedRight.Get(k)
			if !found || !Equal(v, otherVal) {
				equal = false
			}
		})
		return equal

	default:
		return left == right
	}
}
