// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package filters_test

import (
	"testing"

	"github.com/k14s/hostexpr/pkg/expression/filters"
	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	reg := filters.NewDefaultRegistry()
	length, found := reg.Lookup("length")
	require.True(t, found)

	result, err := length([]interface{}{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, result)

	result, err = length("abcd", nil)
	require.NoError(t, err)
	require.Equal(t, 4, result)

	result, err = length(map[string]interface{}{"a": 1}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result)

	_, err = length(5, nil)
	require.Error(t, err)
}

func TestFirstLast(t *testing.T) {
	seq := []interface{}{int64(1), int64(2), int64(3)}

	result, err := filters.First(seq, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), result)

	result, err = filters.Last(seq, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), result)

	_, err = filters.First([]interface{}{}, nil)
	require.Error(t, err)
}

func TestNumeric(t *testing.T) {
	seq := []interface{}{int64(3), int64(1), int64(2)}

	result, err := filters.Min(seq, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), result)

	result, err = filters.Max(seq, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), result)

	result, err = filters.Sum(seq, nil)
	require.NoError(t, err)
	require.Equal(t, int64(6), result)

	result, err = filters.Sum([]interface{}{int64(1), 0.5}, nil)
	require.NoError(t, err)
	require.Equal(t, 1.5, result)

	// strings order lexicographically
	words := []interface{}{"pear", "apple", "plum"}
	result, err = filters.Min(words, nil)
	require.NoError(t, err)
	require.Equal(t, "apple", result)

	result, err = filters.Max(words, nil)
	require.NoError(t, err)
	require.Equal(t, "plum", result)

	_, err = filters.Min([]interface{}{"a", int64(1)}, nil)
	require.Error(t, err)
}

func TestSortAndSetOps(t *testing.T) {
	result, err := filters.Sort([]interface{}{"b", "a", "c"}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a", "b", "c"}, result)

	_, err = filters.Sort([]interface{}{"b", int64(1)}, nil)
	require.Error(t, err)

	result, err = filters.Unique([]interface{}{int64(1), int64(1), int64(2)}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(1), int64(2)}, result)

	result, err = filters.Reverse([]interface{}{int64(1), int64(2)}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(2), int64(1)}, result)

	result, err = filters.Flatten([]interface{}{int64(1), []interface{}{int64(2), []interface{}{int64(3)}}}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, result)
}

func TestStrings(t *testing.T) {
	result, err := filters.Join([]interface{}{"a", "b"}, []interface{}{", "})
	require.NoError(t, err)
	require.Equal(t, "a, b", result)

	result, err = filters.Split("a b  c", nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a", "b", "c"}, result)

	result, err = filters.Split("a,b", []interface{}{","})
	require.NoError(t, err)
	require.Equal(t, []interface{}{"a", "b"}, result)

	result, err = filters.Upper("abc", nil)
	require.NoError(t, err)
	require.Equal(t, "ABC", result)

	result, err = filters.Capitalize("hELLO", nil)
	require.NoError(t, err)
	require.Equal(t, "Hello", result)

	result, err = filters.Replace("aXa", []interface{}{"X", "-"})
	require.NoError(t, err)
	require.Equal(t, "a-a", result)
}

func TestDefault(t *testing.T) {
	result, err := filters.Default(nil, []interface{}{"fallback"})
	require.NoError(t, err)
	require.Equal(t, "fallback", result)

	result, err = filters.Default("", []interface{}{"fallback"})
	require.NoError(t, err)
	require.Equal(t, "fallback", result)

	result, err = filters.Default("set", []interface{}{"fallback"})
	require.NoError(t, err)
	require.Equal(t, "set", result)

	_, err = filters.Default(nil, nil)
	require.Error(t, err)
}

func TestCombine(t *testing.T) {
	base := map[string]interface{}{"a": int64(1), "nested": map[string]interface{}{"x": int64(1)}}
	overlay := map[string]interface{}{"b": int64(2), "nested": map[string]interface{}{"y": int64(2)}}

	result, err := filters.Combine(base, []interface{}{overlay})
	require.NoError(t, err)
	merged := result.(map[string]interface{})
	require.Equal(t, int64(1), merged["a"])
	require.Equal(t, int64(2), merged["b"])
	// shallow merge replaces nested wholesale
	require.Equal(t, map[string]interface{}{"y": int64(2)}, merged["nested"])

	result, err = filters.Combine(base, []interface{}{overlay, true})
	require.NoError(t, err)
	merged = result.(map[string]interface{})
	require.Equal(t, map[string]interface{}{"x": int64(1), "y": int64(2)}, merged["nested"])
}

func TestDictItemConversions(t *testing.T) {
	result, err := filters.Dict2Items(map[string]interface{}{"b": int64(2), "a": int64(1)}, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{
		map[string]interface{}{"key": "a", "value": int64(1)},
		map[string]interface{}{"key": "b", "value": int64(2)},
	}, result)

	back, err := filters.Items2Dict(result, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": int64(1), "b": int64(2)}, back)
}

func TestSerializationFilters(t *testing.T) {
	val := map[string]interface{}{"b": int64(2), "a": int64(1)}

	jsonStr, err := filters.ToJSON(val, nil)
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":2}`, jsonStr)

	back, err := filters.FromJSON(jsonStr, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": int64(1), "b": int64(2)}, back)

	yamlStr, err := filters.ToYAML(val, nil)
	require.NoError(t, err)
	require.Equal(t, "a: 1\nb: 2\n", yamlStr)

	back, err = filters.FromYAML(yamlStr, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"a": int64(1), "b": int64(2)}, back)
}

func TestBase64(t *testing.T) {
	encoded, err := filters.B64Encode("hello", nil)
	require.NoError(t, err)
	require.Equal(t, "aGVsbG8=", encoded)

	decoded, err := filters.B64Decode(encoded, nil)
	require.NoError(t, err)
	require.Equal(t, "hello", decoded)

	_, err = filters.B64Decode("not base64!", nil)
	require.Error(t, err)
}

func TestConversions(t *testing.T) {
	result, err := filters.ToInt("42", nil)
	require.NoError(t, err)
	require.Equal(t, int64(42), result)

	result, err = filters.ToFloat("1.5", nil)
	require.NoError(t, err)
	require.Equal(t, 1.5, result)

	result, err = filters.ToBool("yes", nil)
	require.NoError(t, err)
	require.Equal(t, true, result)

	result, err = filters.ToString(int64(7), nil)
	require.NoError(t, err)
	require.Equal(t, "7", result)

	_, err = filters.ToInt("abc", nil)
	require.Error(t, err)
}

func TestRegistryNames(t *testing.T) {
	reg := filters.NewDefaultRegistry()
	names := reg.Names()
	require.Contains(t, names, "length")
	require.Contains(t, names, "combine")

	_, found := reg.Lookup("no_such_filter")
	require.False(t, found)
}
