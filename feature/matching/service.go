package matching

import (
	"context"
	"time"

	"crm-matcher/core/apperror"
	"crm-matcher/core/crm"
	"crm-matcher/core/keylock"
	"crm-matcher/core/match"
	"crm-matcher/core/normalize"
	"crm-matcher/feature/filters"
	"crm-matcher/feature/matching/models"

	"go.uber.org/zap"
)

// allOrganizationsKey is the lock and cache key for runs without a filter.
const allOrganizationsKey = "all"

// RunInput carries everything a matching run needs besides the filter identity.
type RunInput struct {
	// Lines are the raw comparison-side company names.
	Lines []string
	// Options controls normalization of both sides.
	Options normalize.Options
	// ForceRefresh bypasses the summary cache and re-pulls filter membership
	// from the CRM.
	ForceRefresh bool
	// Export uploads the detail lists to object storage after a fresh run.
	Export bool
}

// RunResult is the outcome of a matching run.
type RunResult struct {
	Summary   *models.MatchingSummary `json:"summary"`
	FromCache bool                    `json:"from_cache"`
	// ExportPrefix is set when detail lists were uploaded.
	ExportPrefix string `json:"export_prefix,omitempty"`
}

// Service orchestrates matching runs: filter resolution, organization
// fetching, reconciliation and summary persistence.
type Service struct {
	cache    *Cache
	registry *filters.Service
	crm      crm.Client
	locks    *keylock.Table
	exporter *Exporter
	logger   *zap.Logger

	// fetchTimeout bounds each external CRM pull.
	fetchTimeout time.Duration
}

// NewService creates a matching service. exporter may be nil when object
// storage is not configured.
func NewService(cache *Cache, registry *filters.Service, client crm.Client, exporter *Exporter, logger *zap.Logger, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = 60 * time.Second
	}
	return &Service{
		cache:        cache,
		registry:     registry,
		crm:          client,
		locks:        keylock.New(),
		exporter:     exporter,
		logger:       logger,
		fetchTimeout: fetchTimeout,
	}
}

// ProcessFilterReference resolves a user-supplied reference to a filter id and
// reports whether that filter is already synced locally.
func (s *Service) ProcessFilterReference(ctx context.Context, reference string) (string, bool, error) {
	filterID, err := filters.ResolveReference(reference)
	if err != nil {
		return "", false, err
	}
	if _, err := s.registry.Get(filterID); err != nil {
		if apperror.KindOf(err) == apperror.KindFilterNotFound {
			return filterID, false, nil
		}
		return "", false, err
	}
	return filterID, true, nil
}

// RunMatching executes one matching run for the given filter identity. A nil
// filterID matches against all organizations. Without ForceRefresh a cached
// summary is returned when one exists; the run itself is computed at most once
// per filter identity at a time.
func (s *Service) RunMatching(ctx context.Context, filterID *string, input RunInput) (*RunResult, error) {
	key := allOrganizationsKey
	if filterID != nil {
		key = *filterID
	}

	if !input.ForceRefresh && !input.Export {
		summary, fromCache, err := s.cache.GetOrCompute(key, filterID, func() (*models.MatchingSummary, error) {
			summary, _, err := s.compute(ctx, key, filterID, input)
			return summary, err
		})
		if err != nil {
			return nil, err
		}
		return &RunResult{Summary: summary, FromCache: fromCache}, nil
	}

	summary, prefix, err := s.compute(ctx, key, filterID, input)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(summary); err != nil {
		return nil, err
	}
	return &RunResult{Summary: summary, FromCache: false, ExportPrefix: prefix}, nil
}

// compute runs the full workflow under the per-filter lock. Nothing is
// persisted when any stage fails.
func (s *Service) compute(ctx context.Context, key string, filterID *string, input RunInput) (*models.MatchingSummary, string, error) {
	if !s.locks.TryLock(key) {
		return nil, "", apperror.New(apperror.KindConcurrencyConflict, "a run for %q is already in progress", key)
	}
	defer s.locks.Unlock(key)

	started := time.Now()
	l := s.logger.With(zap.String("filter_key", key))

	orgs, filterName, err := s.organizations(ctx, filterID, input.ForceRefresh, l)
	if err != nil {
		return nil, "", err
	}

	sideA := normalize.NewNameSet()
	for _, o := range orgs {
		sideA.Add(o.Name, input.Options)
	}
	sideB := normalize.BuildNameSet(input.Lines, input.Options)

	result := match.Reconcile(sideA, sideB)
	agg := result.Summarize()

	summary := &models.MatchingSummary{
		FilterID:        filterID,
		FilterName:      filterName,
		SideATotal:      agg.SideATotal,
		SideAUnique:     agg.SideAUnique,
		SideBTotal:      agg.SideBTotal,
		SideBUnique:     agg.SideBUnique,
		MatchCount:      agg.MatchCount,
		OnlyACount:      agg.OnlyACount,
		OnlyBCount:      agg.OnlyBCount,
		MatchPercentage: agg.MatchPercentage,
		SideBCoverage:   agg.SideBCoverage,
		ComputedAt:      time.Now().UTC(),
	}

	var prefix string
	if input.Export {
		if s.exporter == nil {
			return nil, "", apperror.New(apperror.KindStorage, "export requested but object storage is not configured")
		}
		prefix, err = s.exporter.ExportDetails(ctx, key, result)
		if err != nil {
			return nil, "", err
		}
	}

	l.Info("Matching run completed",
		zap.Int("matches", agg.MatchCount),
		zap.Int("only_crm", agg.OnlyACount),
		zap.Int("only_leads", agg.OnlyBCount),
		zap.Float64("match_percentage", agg.MatchPercentage),
		zap.Duration("took", time.Since(started)),
	)
	return summary, prefix, nil
}

// organizations produces the CRM side of the run. Stored membership is reused
// for known filters; the CRM is consulted only for new filters, forced
// refreshes, and the unfiltered identity.
func (s *Service) organizations(ctx context.Context, filterID *string, force bool, l *zap.Logger) ([]crm.Organization, string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	if filterID == nil {
		orgs, err := s.crm.FetchAllOrganizations(fetchCtx)
		if err != nil {
			return nil, "", err
		}
		return orgs, filters.AllOrganizationsName, nil
	}

	if !force {
		if f, err := s.registry.Get(*filterID); err == nil {
			orgs, err := s.registry.Organizations(*filterID)
			if err != nil {
				return nil, "", err
			}
			if err := s.registry.Touch(*filterID); err != nil {
				return nil, "", err
			}
			l.Debug("Reusing stored filter membership", zap.Int("organizations", len(orgs)))
			return orgs, f.Name, nil
		} else if apperror.KindOf(err) != apperror.KindFilterNotFound {
			return nil, "", err
		}
	}

	def, err := s.crm.FetchFilterDefinition(fetchCtx, *filterID)
	if err != nil {
		return nil, "", err
	}
	orgs, err := s.crm.FetchOrganizationsForFilter(fetchCtx, *filterID)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.registry.Upsert(*filterID, def.Name, "", orgs); err != nil {
		return nil, "", err
	}
	return orgs, def.Name, nil
}
