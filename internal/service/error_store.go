// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// ErrorStore collects validation messages per field while hydrating blocks
type ErrorStore struct {
	prefix string
	fields map[string][]string
}

// Add records a message for a field
func (s *ErrorStore) Add(field, message string) {
	if s.fields == nil {
		s.fields = make(map[string][]string)
	}
	key := s.prefix + field
	s.fields[key] = append(s.fields[key], message)
}

// AddError records the message of err for a field
func (s *ErrorStore) AddError(field string, err error) {
	s.Add(field, err.Error())
}

// HasErrors reports whether any message was recorded
func (s *ErrorStore) HasErrors() bool {
	return len(s.fields) > 0
}

// Fields returns the recorded messages keyed by field
func (s *ErrorStore) Fields() map[string][]string {
	return s.fields
}

// WithPrefix returns a store sharing the messages of s whose fields are prefixed
func (s *ErrorStore) WithPrefix(prefix string) *ErrorStore {
	if s.fields == nil {
		s.fields = make(map[string][]string)
	}
	return &ErrorStore{prefix: s.prefix + prefix, fields: s.fields}
}

// Err returns a validation error listing every message, nil when there are none
func (s *ErrorStore) Err() error {
	if !s.HasErrors() {
		return nil
	}
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fmt.Sprintf("%s: %s", k, strings.Join(s.fields[k], ", ")))
	}
	return errors.NewValidation(strings.Join(messages, "; "))
}
