// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package filters provides the default FilterRegistry: the common
// Jinja builtins plus the automation-engine extras (combine,
// dict2items, to_json and friends). Each filter is a pure function
// over plain Go values.
package filters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/k14s/hostexpr/pkg/expression"
)

type Registry struct {
	filters map[string]expression.FilterFunc
}

var _ expression.FilterRegistry = &Registry{}

func NewRegistry() *Registry {
	return &Registry{filters: map[string]expression.FilterFunc{}}
}

func (r *Registry) Register(name string, filter expression.FilterFunc) {
	r.filters[name] = filter
}

func (r *Registry) Lookup(name string) (expression.FilterFunc, bool) {
	filter, found := r.filters[name]
	return filter, found
}

func (r *Registry) Names() []string {
	var names []string
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultRegistry returns the filter set available in a fresh
// session.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("length", Length)
	r.Register("count", Length)
	r.Register("first", First)
	r.Register("last", Last)
	r.Register("min", Min)
	r.Register("max", Max)
	r.Register("sum", Sum)
	r.Register("sort", Sort)
	r.Register("reverse", Reverse)
	r.Register("unique", Unique)
	r.Register("flatten", Flatten)
	r.Register("join", Join)
	r.Register("split", Split)
	r.Register("upper", Upper)
	r.Register("lower", Lower)
	r.Register("capitalize", Capitalize)
	r.Register("trim", Trim)
	r.Register("replace", Replace)
	r.Register("default", Default)
	r.Register("d", Default)
	r.Register("int", ToInt)
	r.Register("float", ToFloat)
	r.Register("string", ToString)
	r.Register("bool", ToBool)
	r.Register("abs", Abs)
	r.Register("round", Round)
	r.Register("keys", Keys)
	r.Register("values", Values)
	r.Register("combine", Combine)
	r.Register("dict2items", Dict2Items)
	r.Register("items2dict", Items2Dict)
	r.Register("to_json", ToJSON)
	r.Register("to_nice_json", ToNiceJSON)
	r.Register("from_json", FromJSON)
	r.Register("to_yaml", ToYAML)
	r.Register("to_nice_yaml", ToNiceYAML)
	r.Register("from_yaml", FromYAML)
	r.Register("b64encode", B64Encode)
	r.Register("b64decode", B64Decode)

	return r
}

func Length(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case string:
		return len(typedVal), nil
	case []interface{}:
		return len(typedVal), nil
	case map[string]interface{}:
		return len(typedVal), nil
	default:
		return nil, fmt.Errorf("object of type %s has no length", typeName(val))
	}
}

func First(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("sequence is empty")
	}
	return seq[0], nil
}

func Last(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("sequence is empty")
	}
	return seq[len(seq)-1], nil
}

func Min(val interface{}, args []interface{}) (interface{}, error) {
	return pick(val, true)
}

func Max(val interface{}, args []interface{}) (interface{}, error) {
	return pick(val, false)
}

func Sum(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	total := 0.0
	allInts := true
	for _, item := range seq {
		num, isInt, err := asNumber(item)
		if err != nil {
			return nil, err
		}
		allInts = allInts && isInt
		total += num
	}
	if allInts {
		return int64(total), nil
	}
	return total, nil
}

func Sort(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	result := append([]interface{}{}, seq...)
	var sortErr error
	sort.SliceStable(result, func(i, j int) bool {
		less, err := lessThan(result[i], result[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return result, nil
}

func Reverse(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case string:
		runes := []rune(typedVal)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[len(typedVal)-1-i] = item
		}
		return result, nil
	default:
		return nil, fmt.Errorf("cannot reverse %s", typeName(val))
	}
}

func Unique(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	var result []interface{}
	seen := map[string]struct{}{}
	for _, item := range seq {
		key := fmt.Sprintf("%T:%v", item, item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	if result == nil {
		result = []interface{}{}
	}
	return result, nil
}

func Flatten(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	result := []interface{}{}
	for _, item := range seq {
		if nested, ok := item.([]interface{}); ok {
			flat, err := Flatten(nested, nil)
			if err != nil {
				return nil, err
			}
			result = append(result, flat.([]interface{})...)
		} else {
			result = append(result, item)
		}
	}
	return result, nil
}

func Join(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	sep := ""
	if len(args) > 0 {
		sepStr, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("separator must be a string, got %s", typeName(args[0]))
		}
		sep = sepStr
	}
	parts := make([]string, len(seq))
	for i, item := range seq {
		parts[i] = stringify(item)
	}
	return strings.Join(parts, sep), nil
}

func Split(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		fields := strings.Fields(str)
		result := make([]interface{}, len(fields))
		for i, f := range fields {
			result[i] = f
		}
		return result, nil
	}
	sep, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("separator must be a string, got %s", typeName(args[0]))
	}
	parts := strings.Split(str, sep)
	result := make([]interface{}, len(parts))
	for i, p := range parts {
		result[i] = p
	}
	return result, nil
}

func Upper(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(str), nil
}

func Lower(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	return strings.ToLower(str), nil
}

func Capitalize(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	if len(str) == 0 {
		return str, nil
	}
	return strings.ToUpper(str[:1]) + strings.ToLower(str[1:]), nil
}

func Trim(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(str), nil
}

func Replace(val interface{}, args []interface{}) (interface{}, error) {
	str, err := asString(val)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("expected exactly two arguments (old, new), got %d", len(args))
	}
	oldStr, ok1 := args[0].(string)
	newStr, ok2 := args[1].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("old and new must be strings")
	}
	return strings.ReplaceAll(str, oldStr, newStr), nil
}

// Default substitutes for nil or empty values. Undefined variables
// fail before any filter runs, so this covers null and ''.
func Default(val interface{}, args []interface{}) (interface{}, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("expected a default value argument")
	}
	if val == nil {
		return args[0], nil
	}
	if str, ok := val.(string); ok && len(str) == 0 {
		return args[0], nil
	}
	return val, nil
}

func Abs(val interface{}, args []interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case int:
		if typedVal < 0 {
			return -typedVal, nil
		}
		return typedVal, nil
	case int64:
		if typedVal < 0 {
			return -typedVal, nil
		}
		return typedVal, nil
	case float64:
		if typedVal < 0 {
			return -typedVal, nil
		}
		return typedVal, nil
	default:
		return nil, fmt.Errorf("expected a number, got %s", typeName(val))
	}
}

func Round(val interface{}, args []interface{}) (interface{}, error) {
	num, isInt, err := asNumber(val)
	if err != nil {
		return nil, err
	}
	if isInt {
		return val, nil
	}
	if num < 0 {
		return int64(num - 0.5), nil
	}
	return int64(num + 0.5), nil
}

func Keys(val interface{}, args []interface{}) (interface{}, error) {
	m, err := asMapping(val)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]interface{}, len(keys))
	for i, k := range keys {
		result[i] = k
	}
	return result, nil
}

func Values(val interface{}, args []interface{}) (interface{}, error) {
	m, err := asMapping(val)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]interface{}, len(keys))
	for i, k := range keys {
		result[i] = m[k]
	}
	return result, nil
}

// Combine merges mappings left to right, later keys winning. A final
// boolean argument of true asks for a recursive merge.
func Combine(val interface{}, args []interface{}) (interface{}, error) {
	base, err := asMapping(val)
	if err != nil {
		return nil, err
	}

	recursive := false
	if len(args) > 0 {
		if flag, ok := args[len(args)-1].(bool); ok {
			recursive = flag
			args = args[:len(args)-1]
		}
	}

	result := map[string]interface{}{}
	for k, v := range base {
		result[k] = v
	}

	for _, arg := range args {
		overlay, err := asMapping(arg)
		if err != nil {
			return nil, err
		}
		for k, v := range overlay {
			if recursive {
				existing, found := result[k]
				existingMap, ok1 := existing.(map[string]interface{})
				overlayMap, ok2 := v.(map[string]interface{})
				if found && ok1 && ok2 {
					merged, err := Combine(existingMap, []interface{}{overlayMap, true})
					if err != nil {
						return nil, err
					}
					result[k] = merged
					continue
				}
			}
			result[k] = v
		}
	}
	return result, nil
}

func Dict2Items(val interface{}, args []interface{}) (interface{}, error) {
	m, err := asMapping(val)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]interface{}, len(keys))
	for i, k := range keys {
		result[i] = map[string]interface{}{"key": k, "value": m[k]}
	}
	return result, nil
}

func Items2Dict(val interface{}, args []interface{}) (interface{}, error) {
	seq, err := asSequence(val)
	if err != nil {
		return nil, err
	}
	result := map[string]interface{}{}
	for _, item := range seq {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a sequence of key/value mappings, got item of type %s", typeName(item))
		}
		key, found := entry["key"]
		if !found {
			return nil, fmt.Errorf("item is missing a 'key' field")
		}
		keyStr, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("item key must be a string, got %s", typeName(key))
		}
		result[keyStr] = entry["value"]
	}
	return result, nil
}
