package models

import (
	"time"
)

// MatchingSummary is one persisted reconciliation result. Rows are append
// only: a re-run inserts a new row, it never rewrites history.
type MatchingSummary struct {
	ID uint `gorm:"column:id;primaryKey" json:"-"`
	// FilterID is nil for runs against all organizations.
	FilterID        *string   `gorm:"column:filter_id;index;size:64" json:"filter_id"`
	FilterName      string    `gorm:"column:filter_name" json:"filter_name"`
	SideATotal      int       `gorm:"column:side_a_total" json:"side_a_total"`
	SideAUnique     int       `gorm:"column:side_a_unique" json:"side_a_unique"`
	SideBTotal      int       `gorm:"column:side_b_total" json:"side_b_total"`
	SideBUnique     int       `gorm:"column:side_b_unique" json:"side_b_unique"`
	MatchCount      int       `gorm:"column:match_count" json:"match_count"`
	OnlyACount      int       `gorm:"column:only_a_count" json:"only_a_count"`
	OnlyBCount      int       `gorm:"column:only_b_count" json:"only_b_count"`
	MatchPercentage float64   `gorm:"column:match_percentage" json:"match_percentage"`
	SideBCoverage   float64   `gorm:"column:side_b_coverage" json:"side_b_coverage"`
	ComputedAt      time.Time `gorm:"column:computed_at;index" json:"computed_at"`
}

// TableName overrides the table name.
func (MatchingSummary) TableName() string {
	return "matching_summaries"
}
