// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/linuxfoundation/lfx-v2-blockplus-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-blockplus-service/pkg/errors"
)

// MockCatalog is a mock implementation of Catalog for testing
type MockCatalog struct {
	mu            sync.Mutex
	properties    map[string]model.Property
	templates     map[int]model.ResourceTemplate
	resources     map[model.ResourceType]map[int]model.Resource
	assets        map[int]model.Asset
	propertyError error
	templateError error
	isReadyError  error
	lookups       int
}

// NewMockCatalog creates a new mock catalog with some sample data
func NewMockCatalog() *MockCatalog {
	m := &MockCatalog{
		properties: map[string]model.Property{
			"dcterms:title":   {ID: 1, Term: "dcterms:title", Label: "Title"},
			"dcterms:creator": {ID: 2, Term: "dcterms:creator", Label: "Creator"},
			"dcterms:date":    {ID: 7, Term: "dcterms:date", Label: "Date"},
		},
		templates: map[int]model.ResourceTemplate{
			5: {
				ID:    5,
				Label: "Report",
				Properties: []model.TemplateProperty{
					{PropertyID: 1, AlternateLabel: "Report name"},
					{PropertyID: 7},
				},
			},
		},
		resources: map[model.ResourceType]map[int]model.Resource{},
		assets: map[int]model.Asset{
			3: {ID: 3, Name: "logo.png", URL: "https://catalog.example.org/files/asset/logo.png", MediaType: "image/png"},
		},
	}
	for _, resource := range NewMockResourceSearcher().resources {
		m.AddResource(resource)
	}
	return m
}

// FindProperty implements the PropertyFinder interface
func (m *MockCatalog) FindProperty(ctx context.Context, term string) (*model.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	if m.propertyError != nil {
		return nil, m.propertyError
	}
	property, ok := m.properties[term]
	if !ok {
		return nil, nil
	}
	return &property, nil
}

// ReadResourceTemplate implements the ResourceTemplateReader interface
func (m *MockCatalog) ReadResourceTemplate(ctx context.Context, id int) (*model.ResourceTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	if m.templateError != nil {
		return nil, m.templateError
	}
	resourceTemplate, ok := m.templates[id]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("resource template %d not found", id))
	}
	return &resourceTemplate, nil
}

// ReadResource implements the ResourceReader interface
func (m *MockCatalog) ReadResource(ctx context.Context, resourceType model.ResourceType, id int) (*model.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	resource, ok := m.resources[resourceType][id]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("%s %d not found", resourceType.Singular(), id))
	}
	return &resource, nil
}

// ReadAsset implements the ResourceReader interface
func (m *MockCatalog) ReadAsset(ctx context.Context, id int) (*model.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookups++
	asset, ok := m.assets[id]
	if !ok {
		return nil, errors.NewNotFound(fmt.Sprintf("asset %d not found", id))
	}
	return &asset, nil
}

// IsReady implements the Catalog interface
func (m *MockCatalog) IsReady(ctx context.Context) error {
	return m.isReadyError
}

// AddProperty adds a property to the mock data
func (m *MockCatalog) AddProperty(property model.Property) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[property.Term] = property
}

// AddResourceTemplate adds a resource template to the mock data
func (m *MockCatalog) AddResourceTemplate(resourceTemplate model.ResourceTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[resourceTemplate.ID] = resourceTemplate
}

// AddResource adds a resource to the mock data
func (m *MockCatalog) AddResource(resource model.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resources[resource.Type] == nil {
		m.resources[resource.Type] = map[int]model.Resource{}
	}
	m.resources[resource.Type][resource.ID] = resource
}

// AddAsset adds an asset to the mock data
func (m *MockCatalog) AddAsset(asset model.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[asset.ID] = asset
}

// Lookups returns the number of catalog reads served
func (m *MockCatalog) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// SetPropertyError sets the mock error for FindProperty calls
func (m *MockCatalog) SetPropertyError(err error) {
	m.propertyError = err
}

// SetTemplateError sets the mock error for ReadResourceTemplate calls
func (m *MockCatalog) SetTemplateError(err error) {
	m.templateError = err
}

// SetIsReadyError sets the mock error for IsReady calls
func (m *MockCatalog) SetIsReadyError(err error) {
	m.isReadyError = err
}
