// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Editor is the authenticated user of the block administration
type Editor struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}
