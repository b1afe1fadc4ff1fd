// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"sort"
)

// Conversion moves a tree between plain Go maps (what decoders and the
// expression engines speak) and ordered maps (what the rest of the
// session speaks). Plain maps carry no ordering, so FromUnordered
// inserts keys sorted; the resulting order is what rendering sees.
type Conversion struct {
	Object interface{}
}

func (c Conversion) FromUnordered() interface{} {
	return c.fromUnordered(c.Object)
}

func (c Conversion) fromUnordered(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[string]interface{}:
		result := NewMap()
		for _, key := range c.sortedKeys(typedObj) {
			result.Set(key, c.fromUnordered(typedObj[key]))
		}
		return result

	case map[interface{}]interface{}:
		result := NewMap()
		strKeyed := map[string]interface{}{}
		for k, v := range typedObj {
			strK, ok := k.(string)
			if !ok {
				strK = fmt.Sprintf("%v", k)
			}
			strKeyed[strK] = v
		}
		for _, key := range c.sortedKeys(strKeyed) {
			result.Set(key, c.fromUnordered(strKeyed[key]))
		}
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnordered(item)
		}
		return result

	default:
		return typedObj
	}
}

func (c Conversion) AsUnordered() interface{} {
	return c.asUnordered(c.Object)
}

func (c Conversion) asUnordered(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case *Map:
		result := map[string]interface{}{}
		typedObj.Iterate(func(k string, v interface{}) {
			result[k] = c.asUnordered(v)
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.asUnordered(item)
		}
		return result

	default:
		return typedObj
	}
}

func (c Conversion) sortedKeys(m map[string]interface{}) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
