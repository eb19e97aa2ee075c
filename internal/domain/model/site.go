// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Site owns a list of pages
type Site struct {
	ID       int          `json:"id"`
	Slug     string       `json:"slug"`
	Title    string       `json:"title"`
	Settings SiteSettings `json:"settings"`
	Pages    []Page       `json:"pages"`
}

// SiteSettings are the site-level flags read while rendering blocks
type SiteSettings struct {
	// BrowseAttachedItems restricts listings to the items attached to the site
	BrowseAttachedItems bool `json:"browse_attached_items"`
	// Locale used to translate labels; empty means the service default
	Locale string `json:"locale,omitempty"`
}

// Flags returns the listing flags derived from the site settings
func (s SiteSettings) Flags() SiteFlags {
	return SiteFlags{AttachedItemsOnly: s.BrowseAttachedItems}
}

// Page returns the page with the given slug
func (s *Site) Page(slug string) (*Page, bool) {
	for i := range s.Pages {
		if s.Pages[i].Slug == slug {
			return &s.Pages[i], true
		}
	}
	return nil, false
}

// Page is an ordered list of blocks
type Page struct {
	ID     int     `json:"id"`
	Slug   string  `json:"slug"`
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// Block is a configured, positioned widget on a page
type Block struct {
	Layout string    `json:"layout"`
	Data   BlockData `json:"data"`
}
