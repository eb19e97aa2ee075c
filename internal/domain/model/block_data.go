// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BlockData is the loosely typed data persisted with a block. Values come
// either from JSON (numbers are float64) or from admin forms (strings).
type BlockData map[string]any

// Clone returns a shallow copy of the data
func (d BlockData) Clone() BlockData {
	clone := make(BlockData, len(d))
	for k, v := range d {
		clone[k] = v
	}
	return clone
}

// WithDefaults returns the data completed with the defaults; block values win
func (d BlockData) WithDefaults(defaults BlockData) BlockData {
	merged := defaults.Clone()
	for k, v := range d {
		merged[k] = v
	}
	return merged
}

// Has reports whether the key is set to a non-nil value
func (d BlockData) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns a scalar value as a string
func (d BlockData) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns an integer value; ok is false when the key is unset or empty
func (d BlockData) Int(key string) (value int, ok bool, err error) {
	return toInt(d[key])
}

// Bool returns a boolean value; form values "1", "true" and "on" are true
func (d BlockData) Bool(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes":
			return true
		}
	}
	return false
}

// Strings returns a list of scalar values
func (d BlockData) Strings(key string) ([]string, error) {
	switch v := d[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []any:
		values := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			values = append(values, s)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
}

// Map returns a mapping value
func (d BlockData) Map(key string) (map[string]any, bool) {
	m, ok := d[key].(map[string]any)
	return m, ok
}

// Records returns a list of mappings, such as attachments
func (d BlockData) Records(key string) ([]BlockData, error) {
	switch v := d[key].(type) {
	case nil:
		return nil, nil
	case []any:
		records := make([]BlockData, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a mapping", key, i)
			}
			records = append(records, BlockData(m))
		}
		return records, nil
	case []map[string]any:
		records := make([]BlockData, 0, len(v))
		for _, m := range v {
			records = append(records, BlockData(m))
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%s must be a list", key)
	}
}

func toInt(value any) (int, bool, error) {
	switch v := value.(type) {
	case nil:
		return 0, false, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, false, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, false, fmt.Errorf("%q is not an integer", v)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("%v is not an integer", v)
	}
}
