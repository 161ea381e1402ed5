package matching

import (
	"time"

	"crm-matcher/core/crm"
	"crm-matcher/feature/filters"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cache   *Cache
	service *Service
	handler *Handler
}

// NewFeature creates the matching feature. exporter may be nil when object
// storage is not configured.
func NewFeature(db *gorm.DB, registry *filters.Service, client crm.Client, exporter *Exporter, logger *zap.Logger, fetchTimeout time.Duration) *Feature {
	cache := NewCache(db)
	svc := NewService(cache, registry, client, exporter, logger, fetchTimeout)
	h := NewHandler(svc)
	return &Feature{cache: cache, service: svc, handler: h}
}

// Service exposes the orchestrator for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "matching"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the summary table and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.cache.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
