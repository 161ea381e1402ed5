package filters

import (
	"errors"
	"time"

	"crm-matcher/core/apperror"
	"crm-matcher/core/crm"
	"crm-matcher/feature/filters/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AllOrganizationsName labels the implicit no-filter entry in listings.
const AllOrganizationsName = "All Organizations"

// Service owns the filter registry: synced filters and their membership.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new filter registry service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates the registry tables if they do not exist.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&models.Filter{}, &models.FilterOrganization{}); err != nil {
		return apperror.Wrap(apperror.KindStorage, err, "migrating filter tables")
	}
	return nil
}

// Get returns the stored filter for the given external id, or
// apperror.ErrFilterNotFound when it has never been synced.
func (s *Service) Get(filterID string) (*models.Filter, error) {
	var f models.Filter
	err := s.db.Where("filter_id = ?", filterID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.KindFilterNotFound, "filter %s not synced", filterID)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "loading filter %s", filterID)
	}
	return &f, nil
}

// Organizations returns the stored membership of a filter.
func (s *Service) Organizations(filterID string) ([]crm.Organization, error) {
	var rows []models.FilterOrganization
	if err := s.db.Where("filter_id = ?", filterID).Find(&rows).Error; err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "loading membership of filter %s", filterID)
	}
	orgs := make([]crm.Organization, 0, len(rows))
	for _, r := range rows {
		orgs = append(orgs, crm.Organization{ExternalID: r.OrgID, Name: r.OrgName})
	}
	return orgs, nil
}

// Upsert creates or refreshes a filter and fully replaces its membership.
// Callers serialize concurrent upserts of the same filter id.
func (s *Service) Upsert(filterID, name, url string, orgs []crm.Organization) (*models.Filter, error) {
	now := time.Now().UTC()

	var result *models.Filter
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var f models.Filter
		err := tx.Where("filter_id = ?", filterID).First(&f).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			f = models.Filter{
				FilterID:  filterID,
				CreatedAt: now,
				IsActive:  true,
			}
		case err != nil:
			return err
		}

		f.Name = name
		if url != "" {
			f.URL = url
		}
		f.ItemCount = len(orgs)
		f.LastUsedAt = now
		if err := tx.Save(&f).Error; err != nil {
			return err
		}

		// Membership is replaced wholesale, never merged.
		if err := tx.Where("filter_id = ?", filterID).Delete(&models.FilterOrganization{}).Error; err != nil {
			return err
		}
		for i := range orgs {
			row := models.FilterOrganization{
				FilterID: filterID,
				OrgID:    orgs[i].ExternalID,
				OrgName:  orgs[i].Name,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		result = &f
		return nil
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "upserting filter %s", filterID)
	}

	s.logger.Info("Filter synced",
		zap.String("filter_id", filterID),
		zap.String("name", name),
		zap.Int("organizations", len(orgs)),
	)
	return result, nil
}

// Touch bumps a filter's last_used_at without changing membership.
func (s *Service) Touch(filterID string) error {
	err := s.db.Model(&models.Filter{}).
		Where("filter_id = ?", filterID).
		Update("last_used_at", time.Now().UTC()).Error
	if err != nil {
		return apperror.Wrap(apperror.KindStorage, err, "touching filter %s", filterID)
	}
	return nil
}

// List returns all known filters, newest first, prefixed by the implicit
// "All Organizations" entry that represents matching without a filter.
func (s *Service) List() ([]models.FilterListEntry, error) {
	var rows []models.Filter
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, apperror.Wrap(apperror.KindStorage, err, "listing filters")
	}

	entries := make([]models.FilterListEntry, 0, len(rows)+1)
	entries = append(entries, models.FilterListEntry{Name: AllOrganizationsName})
	for i := range rows {
		created := rows[i].CreatedAt
		fid := rows[i].FilterID
		entries = append(entries, models.FilterListEntry{
			FilterID:  &fid,
			Name:      rows[i].Name,
			ItemCount: rows[i].ItemCount,
			CreatedAt: &created,
		})
	}
	return entries, nil
}

// Delete removes a filter and its membership. Cached matching summaries are
// left in place; they are historical results, not registry state.
func (s *Service) Delete(filterID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("filter_id = ?", filterID).Delete(&models.Filter{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.New(apperror.KindFilterNotFound, "filter %s not synced", filterID)
		}
		return tx.Where("filter_id = ?", filterID).Delete(&models.FilterOrganization{}).Error
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindFilterNotFound {
			return err
		}
		return apperror.Wrap(apperror.KindStorage, err, "deleting filter %s", filterID)
	}
	s.logger.Info("Filter deleted", zap.String("filter_id", filterID))
	return nil
}
