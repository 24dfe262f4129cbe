package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kbukum/gorest/rest"
)

// parseParams turns key=value arguments into request parameters. Bracketed
// keys nest: "a[b]=1" sets Params{"a": {"b": "1"}} and "a[]=x" appends.
// Numeric bracket keys index lists: "l[0][sku]=A1".
func parseParams(args []string) (rest.Params, error) {
	params := rest.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", arg)
		}
		path, err := splitKey(key)
		if err != nil {
			return nil, err
		}
		if err := setParam(params, path, value); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", arg, err)
		}
	}
	return params, nil
}

func splitKey(key string) ([]string, error) {
	head, tail, ok := strings.Cut(key, "[")
	if !ok {
		return []string{key}, nil
	}
	if head == "" {
		return nil, fmt.Errorf("invalid key %q", key)
	}
	path := []string{head}
	tail = "[" + tail
	for tail != "" {
		if tail[0] != '[' {
			return nil, fmt.Errorf("invalid key %q", key)
		}
		end := strings.IndexByte(tail, ']')
		if end < 0 {
			return nil, fmt.Errorf("unclosed bracket in %q", key)
		}
		path = append(path, tail[1:end])
		tail = tail[end+1:]
	}
	return path, nil
}

func setParam(params map[string]any, path []string, value string) error {
	node := params
	for i, part := range path[:len(path)-1] {
		next := path[i+1]
		child, exists := node[part]
		if !exists {
			child = make(map[string]any)
			node[part] = child
		}
		m, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("%q is both a value and a group", part)
		}
		if next == "" {
			next = strconv.Itoa(len(m))
			path[i+1] = next
		}
		node = m
	}
	last := path[len(path)-1]
	if _, exists := node[last]; exists {
		return fmt.Errorf("duplicate key %q", last)
	}
	node[last] = value
	return nil
}
