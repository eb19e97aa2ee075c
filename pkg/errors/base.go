// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "fmt"

// base holds the fields shared by every error kind of the service.
type base struct {
	message string
	err     error
}

// error formats the message and, when present, the wrapped cause.
// Every error kind embedding base inherits this format.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// unwrap exposes the joined cause to errors.Is and errors.As.
func (b base) unwrap() error {
	return b.err
}
