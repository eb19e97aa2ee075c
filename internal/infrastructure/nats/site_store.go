// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/port"
	pkgerrors "github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// NATSSiteStore implements the SiteStore interface on a NATS key-value bucket.
// Each site is one JSON document keyed by its slug.
type NATSSiteStore struct {
	client NATSClientInterface
}

// GetSite implements the SiteStore interface
func (s *NATSSiteStore) GetSite(ctx context.Context, slug string) (*model.Site, error) {
	site, _, err := s.read(ctx, slug)
	return site, err
}

func (s *NATSSiteStore) read(ctx context.Context, slug string) (*model.Site, uint64, error) {
	entry, err := s.client.Get(ctx, siteKeyPrefix+slug)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrInvalidKey) {
			return nil, 0, pkgerrors.NewNotFound(fmt.Sprintf("site %q not found", slug))
		}
		return nil, 0, pkgerrors.NewServiceUnavailable("site store unavailable", err)
	}

	var site model.Site
	if err := json.Unmarshal(entry.Value, &site); err != nil {
		slog.ErrorContext(ctx, "failed to decode site", "site", slug, "error", err)
		return nil, 0, pkgerrors.NewUnexpected("failed to decode site", err)
	}
	return &site, entry.Revision, nil
}

// SavePageBlocks implements the SiteStore interface. Concurrent edits of the
// same site are detected by revision and the write is retried.
func (s *NATSSiteStore) SavePageBlocks(ctx context.Context, siteSlug, pageSlug string, blocks []model.Block) error {
	for attempt := 1; ; attempt++ {
		site, revision, err := s.read(ctx, siteSlug)
		if err != nil {
			return err
		}

		page, ok := site.Page(pageSlug)
		if !ok {
			return pkgerrors.NewNotFound(fmt.Sprintf("page %q not found in site %q", pageSlug, siteSlug))
		}
		page.Blocks = blocks

		value, err := json.Marshal(site)
		if err != nil {
			return pkgerrors.NewUnexpected("failed to encode site", err)
		}

		_, err = s.client.Update(ctx, siteKeyPrefix+siteSlug, value, revision)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRevisionConflict) {
			return pkgerrors.NewServiceUnavailable("site store unavailable", err)
		}
		if attempt == maxUpdateAttempts {
			return pkgerrors.NewUnexpected(fmt.Sprintf("site %q kept changing while saving", siteSlug), err)
		}

		slog.DebugContext(ctx, "site changed while saving, retrying",
			"site", siteSlug,
			"attempt", attempt,
		)
	}
}

// IsReady implements the SiteStore interface
func (s *NATSSiteStore) IsReady(ctx context.Context) error {
	if err := s.client.IsReady(ctx); err != nil {
		return pkgerrors.NewServiceUnavailable("site store is not ready", err)
	}
	return nil
}

// Close gracefully closes the NATS connection
func (s *NATSSiteStore) Close() error {
	return s.client.Close()
}

// NewSiteStore creates a new NATS backed site store
func NewSiteStore(client NATSClientInterface) port.SiteStore {
	return &NATSSiteStore{client: client}
}
