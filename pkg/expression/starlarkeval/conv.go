// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package starlarkeval

import (
	"fmt"

	"github.com/k14s/starlark-go/starlark"
)

// GoValue converts plain Go values into starlark values.
type GoValue struct {
	val interface{}
}

func NewGoValue(val interface{}) GoValue { return GoValue{val} }

func (e GoValue) AsStarlarkValue() (starlark.Value, error) {
	return e.asStarlarkValue(e.val)
}

func (e GoValue) asStarlarkValue(val interface{}) (starlark.Value, error) {
	switch typedVal := val.(type) {
	case nil:
		return starlark.None, nil

	case bool:
		return starlark.Bool(typedVal), nil

	case string:
		return starlark.String(typedVal), nil

	case int:
		return starlark.MakeInt(typedVal), nil

	case int64:
		return starlark.MakeInt64(typedVal), nil

	case uint64:
		return starlark.MakeUint64(typedVal), nil

	case float64:
		return starlark.Float(typedVal), nil

	case []interface{}:
		return e.listAsStarlarkValue(typedVal)

	case map[string]interface{}:
		return e.dictAsStarlarkValue(typedVal)

	default:
		return nil, fmt.Errorf("unknown type %T for conversion to starlark value", val)
	}
}

func (e GoValue) dictAsStarlarkValue(val map[string]interface{}) (starlark.Value, error) {
	result := &starlark.Dict{}
	for k, v := range val {
		conv, err := e.asStarlarkValue(v)
		if err != nil {
			return nil, err
		}
		err = result.SetKey(starlark.String(k), conv)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e GoValue) listAsStarlarkValue(val []interface{}) (starlark.Value, error) {
	result := []starlark.Value{}
	for _, v := range val {
		conv, err := e.asStarlarkValue(v)
		if err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	return starlark.NewList(result), nil
}

// StarlarkValue converts starlark values back into plain Go values.
type StarlarkValue struct {
	val starlark.Value
}

func NewStarlarkValue(val starlark.Value) StarlarkValue { return StarlarkValue{val} }

func (e StarlarkValue) AsGoValue() (interface{}, error) {
	return e.asInterface(e.val)
}

func (e StarlarkValue) asInterface(val starlark.Value) (interface{}, error) {
	switch typedVal := val.(type) {
	case nil, starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(typedVal), nil

	case starlark.String:
		return string(typedVal), nil

	case starlark.Int:
		i1, ok := typedVal.Int64()
		if ok {
			return i1, nil
		}
		i2, ok := typedVal.Uint64()
		if ok {
			return i2, nil
		}
		return nil, fmt.Errorf("integer value out of range")

	case starlark.Float:
		return float64(typedVal), nil

	case *starlark.List:
		return e.itemsAsInterface(typedVal.Len(), typedVal.Index)

	case starlark.Tuple:
		return e.itemsAsInterface(typedVal.Len(), typedVal.Index)

	case *starlark.Dict:
		result := map[string]interface{}{}
		for _, item := range typedVal.Items() {
			key, err := e.asInterface(item[0])
			if err != nil {
				return nil, err
			}
			keyStr, ok := key.(string)
			if !ok {
				keyStr = fmt.Sprintf("%v", key)
			}
			conv, err := e.asInterface(item[1])
			if err != nil {
				return nil, err
			}
			result[keyStr] = conv
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unknown type %T for conversion to go value", val)
	}
}

func (e StarlarkValue) itemsAsInterface(count int, at func(int) starlark.Value) (interface{}, error) {
	result := []interface{}{}
	for i := 0; i < count; i++ {
		conv, err := e.asInterface(at(i))
		if err != nil {
			return nil, err
		}
		result = append(result, conv)
	}
	return result, nil
}
