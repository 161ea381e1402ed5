// Package models defines the persistence and API models for the filter
// registry: the filters table, the membership table, and the listing entry
// returned by the HTTP API.
package models
