// Package models defines the persisted matching summary. The table is an
// append-only history; readers take the latest row per filter identity.
package models
