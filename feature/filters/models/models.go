package models

import (
	"time"
)

// Filter represents a saved CRM filter whose organization membership has been
// synced locally.
type Filter struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"-"`
	FilterID   string    `gorm:"column:filter_id;uniqueIndex;size:64" json:"filter_id"`
	Name       string    `gorm:"column:name" json:"name"`
	URL        string    `gorm:"column:url" json:"url,omitempty"`
	ItemCount  int       `gorm:"column:item_count" json:"item_count"`
	IsActive   bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	LastUsedAt time.Time `gorm:"column:last_used_at" json:"last_used_at"`
}

// TableName overrides the table name.
func (Filter) TableName() string {
	return "filters"
}

// FilterOrganization is one organization belonging to a synced filter.
// Membership rows are fully replaced on every refresh of the parent filter.
type FilterOrganization struct {
	ID       uint   `gorm:"column:id;primaryKey" json:"-"`
	FilterID string `gorm:"column:filter_id;index;size:64" json:"filter_id"`
	OrgID    string `gorm:"column:org_id;size:64" json:"org_id"`
	OrgName  string `gorm:"column:org_name" json:"org_name"`
}

// TableName overrides the table name.
func (FilterOrganization) TableName() string {
	return "filter_organizations"
}

// FilterListEntry is a row in the filter listing, including the implicit
// "All Organizations" pseudo-entry that carries no filter id.
type FilterListEntry struct {
	FilterID  *string    `json:"filter_id"`
	Name      string     `json:"name"`
	ItemCount int        `json:"item_count,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
