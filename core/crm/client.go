package crm

import (
	"context"
	"encoding/json"
)

// FilterDefinition describes a saved filter as the CRM reports it.
type FilterDefinition struct {
	// ID is the external numeric filter id, kept as a string.
	ID string `json:"id"`
	// Name is the human-readable filter name.
	Name string `json:"name"`
	// Conditions is the raw filter condition tree; the matcher stores it opaquely.
	Conditions json.RawMessage `json:"conditions,omitempty"`
}

// Organization is a single CRM organization row.
type Organization struct {
	// ExternalID is the CRM-assigned organization id.
	ExternalID string `json:"external_id"`
	// Name is the organization name as stored in the CRM.
	Name string `json:"name"`
}

// Client is the contract the matching workflow consumes. Implementations own
// their resilience: rate-limit back-off and bounded retry happen below this
// interface, so callers treat each method as one blocking call.
type Client interface {
	// FetchFilterDefinition resolves a filter id to its definition.
	// Returns apperror.ErrFilterNotFound when the id does not exist.
	FetchFilterDefinition(ctx context.Context, filterID string) (*FilterDefinition, error)

	// FetchOrganizationsForFilter pulls every organization the filter currently
	// resolves to, following pagination to exhaustion.
	FetchOrganizationsForFilter(ctx context.Context, filterID string) ([]Organization, error)

	// FetchAllOrganizations pulls the complete organization list, unbounded by
	// any filter, following pagination to exhaustion.
	FetchAllOrganizations(ctx context.Context) ([]Organization, error)
}
