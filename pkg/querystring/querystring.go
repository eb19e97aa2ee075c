// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package querystring encodes and decodes query strings using the bracket
// notation of the catalog API, where "a[]=1&a[]=2" is a list and
// "property[0][type]=eq" is a nested mapping.
//
// Decoded values are strings, []any (for keys 0..n-1 in order) or
// map[string]any. Encoding also accepts bool, integers and floats.
package querystring

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	// MaxPairs is the number of pairs decoded from one query string; later
	// pairs are ignored
	MaxPairs = 1000
	// MaxDepth is the number of bracket levels of a key; deeper keys are ignored
	MaxDepth = 64
)

// node is a mapping being decoded. next is the index given to the next
// "[]" segment, one past the largest integer key seen.
type node struct {
	values map[string]any
	next   int
}

func newNode() *node {
	return &node{values: map[string]any{}}
}

// Parse decodes a raw query string into a nested mapping.
// Malformed escapes are kept verbatim; pairs without a name are ignored.
func Parse(raw string) map[string]any {
	root := newNode()
	for pairs := 0; raw != "" && pairs < MaxPairs; {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		pairs++

		rawKey, rawValue, _ := strings.Cut(pair, "=")
		segments := splitKey(unescape(rawKey))
		if len(segments) == 0 || segments[0] == "" || len(segments)-1 > MaxDepth {
			continue
		}
		root.set(segments, unescape(rawValue))
	}

	values := root.finish()
	for k, v := range values {
		values[k] = normalize(v)
	}
	return values
}

// Build encodes a nested mapping into a query string. Keys are emitted in
// sorted order, numeric keys numerically, so the output is stable.
func Build(values map[string]any) string {
	var pairs []string
	for _, key := range sortedKeys(values) {
		pairs = appendPairs(pairs, key, values[key])
	}
	return strings.Join(pairs, "&")
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return u
}

// splitKey turns "a[b][]" into ["a", "b", ""]. Dots and spaces of the base
// name become underscores and an unclosed bracket is part of the name.
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.Contains(key[open:], "]") {
		return []string{baseName(key)}
	}

	segments := []string{baseName(key[:open])}
	rest := key[open:]
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return segments
}

func baseName(name string) string {
	return strings.NewReplacer(".", "_", " ", "_").Replace(name)
}

func (n *node) set(segments []string, value string) {
	segment := segments[0]
	if segment == "" {
		segment = strconv.Itoa(n.next)
	}
	if i, err := strconv.Atoi(segment); err == nil && i >= n.next {
		n.next = i + 1
	}
	if len(segments) == 1 {
		n.values[segment] = value
		return
	}
	child, ok := n.values[segment].(*node)
	if !ok {
		child = newNode()
		n.values[segment] = child
	}
	child.set(segments[1:], value)
}

// finish converts the decoded nodes into plain mappings
func (n *node) finish() map[string]any {
	for k, v := range n.values {
		if child, ok := v.(*node); ok {
			n.values[k] = child.finish()
		}
	}
	return n.values
}

// normalize converts nested mappings keyed 0..n-1 into lists.
func normalize(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, child := range m {
		m[k] = normalize(child)
	}
	list := make([]any, len(m))
	for k, child := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 || i >= len(m) || strconv.Itoa(i) != k {
			return m
		}
		list[i] = child
	}
	return list
}

func appendPairs(pairs []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return pairs
	case map[string]any:
		for _, k := range sortedKeys(v) {
			pairs = appendPairs(pairs, key+"["+k+"]", v[k])
		}
		return pairs
	case []any:
		for i, child := range v {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", child)
		}
		return pairs
	case []string:
		for i, child := range v {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", child)
		}
		return pairs
	}
	return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(Scalar(value)))
}

// Scalar formats a leaf value the way the catalog API expects it.
func Scalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
