// Package filters implements the filter registry: resolving user-supplied
// filter references to numeric ids, syncing filter membership pulled from the
// CRM into local tables, and the HTTP surface for listing and deleting synced
// filters.
//
// Reference resolution is deliberately permissive about input shape (full
// URLs, URL fragments, bare ids) but strict about resolution order, so the
// same reference always yields the same id.
package filters
