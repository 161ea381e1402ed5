package matching

import (
	"errors"

	"crm-matcher/core/apperror"
	"crm-matcher/feature/matching/models"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Cache reads and writes the append-only matching summary history.
// Concurrent cold reads for the same filter identity are collapsed into a
// single computation.
type Cache struct {
	db    *gorm.DB
	group singleflight.Group
}

// NewCache creates a cache over the given database.
func NewCache(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

// Migrate creates the summary table if it does not exist.
func (c *Cache) Migrate() error {
	if err := c.db.AutoMigrate(&models.MatchingSummary{}); err != nil {
		return apperror.Wrap(apperror.KindStorage, err, "migrating matching summaries")
	}
	return nil
}

// GetLatest returns the most recent summary for the filter identity, or nil
// when none has ever been computed. A nil filterID addresses the no-filter
// (all organizations) identity. Ties on computed_at break by insertion id,
// so the last written row wins.
func (c *Cache) GetLatest(filterID *string) (*models.MatchingSummary, error) {
	q := c.db.Model(&models.MatchingSummary{})
	if filterID == nil {
		q = q.Where("filter_id IS NULL")
	} else {
		q = q.Where("filter_id = ?", *filterID)
	}

	var s models.MatchingSummary
	err := q.Order("computed_at DESC, id DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "reading latest summary")
	}
	return &s, nil
}

// Put appends a summary row. Existing rows are never updated.
func (c *Cache) Put(s *models.MatchingSummary) error {
	if err := c.db.Create(s).Error; err != nil {
		return apperror.Wrap(apperror.KindStorage, err, "persisting summary")
	}
	return nil
}

// GetOrCompute returns the latest cached summary for the identity keyed by
// key, or runs compute exactly once across concurrent callers when the cache
// is cold. The computed summary is persisted before being returned.
func (c *Cache) GetOrCompute(key string, filterID *string, compute func() (*models.MatchingSummary, error)) (*models.MatchingSummary, bool, error) {
	if s, err := c.GetLatest(filterID); err != nil {
		return nil, false, err
	} else if s != nil {
		return s, true, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the cache while we queued.
		if s, err := c.GetLatest(filterID); err != nil {
			return nil, err
		} else if s != nil {
			return s, nil
		}
		s, err := compute()
		if err != nil {
			return nil, err
		}
		if err := c.Put(s); err != nil {
			return nil, err
		}
		return s, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*models.MatchingSummary), false, nil
}
