// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Map is a mapping from string keys to arbitrary values that remembers
// the order in which keys were first inserted. Marshaling (JSON or
// YAML) emits keys in that order, which keeps rendered output stable.
type Map struct {
	items []MapItem
}

type MapItem struct {
	Key   string
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	return &Map{items}
}

// Set inserts key, or replaces its value keeping the original position.
func (m *Map) Set(key string, value interface{}) {
	for i, item := range m.items {
		if item.Key == key {
			item.Value = value
			m.items[i] = item
			return
		}
	}
	m.items = append(m.items, MapItem{key, value})
}

func (m *Map) Get(key string) (interface{}, bool) {
	for _, item := range m.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

func (m *Map) Delete(key string) bool {
	for i, item := range m.items {
		if item.Key == key {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) Keys() (keys []string) {
	m.Iterate(func(k string, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Iterate(iterFunc func(k string, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k string, v interface{}) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int { return len(m.items) }

var _ json.Marshaler = &Map{}
var _ yaml.Marshaler = &Map{}

func (m *Map) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, item := range m.items {
		if i > 0 {
			buf.WriteString(",")
		}
		keyBs, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		valBs, err := json.Marshal(item.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)
		buf.WriteString(":")
		buf.Write(valBs)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, item := range m.items {
		keyNode := &yaml.Node{}
		err := keyNode.Encode(item.Key)
		if err != nil {
			return nil, err
		}
		valNode := &yaml.Node{}
		err = valNode.Encode(item.Value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
