package services

import (
	"context"
	"sort"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	awspkg "github.com/Harshit-patil56/Land-deals-manager-sub000/pkg/aws"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/repository"
	"go.uber.org/zap"
)

// HomeState is listed before every other state.
const HomeState = "Maharashtra"

// LocationService serves the state and district pickers. Lookups never
// fail: a backend error yields an empty list.
type LocationService interface {
	States(ctx context.Context) []models.State
	Districts(ctx context.Context, state string) []models.District
}

type locationServiceImpl struct {
	backend LocationsBackend
	cache   repository.LocationCache
	metrics awspkg.MetricsRecorder
	logger  *zap.Logger
}

// NewLocationService creates a new LocationService. cache may be nil.
func NewLocationService(backend LocationsBackend, cache repository.LocationCache, metrics awspkg.MetricsRecorder, logger *zap.Logger) LocationService {
	return &locationServiceImpl{backend: backend, cache: cache, metrics: metrics, logger: logger}
}

// SortStates puts HomeState first and the rest alphabetically.
func SortStates(states []models.State) {
	sort.SliceStable(states, func(i, j int) bool {
		a, b := states[i].Name, states[j].Name
		if a == HomeState || b == HomeState {
			return a == HomeState && b != HomeState
		}
		return a < b
	})
}

func (s *locationServiceImpl) States(ctx context.Context) []models.State {
	if s.cache != nil {
		cached, err := s.cache.GetStates(ctx)
		if err != nil {
			s.logger.Warn("location cache read failed", zap.Error(err))
		} else if cached != nil {
			count(ctx, s.metrics, awspkg.MetricCacheHits, map[string]string{"Cache": "states"})
			return cached
		}
		count(ctx, s.metrics, awspkg.MetricCacheMisses, map[string]string{"Cache": "states"})
	}

	states, err := s.backend.States(ctx)
	if err != nil {
		s.logger.Error("Error fetching states from backend", zap.Error(err))
		return []models.State{}
	}
	SortStates(states)

	if s.cache != nil {
		if err := s.cache.SetStates(ctx, states); err != nil {
			s.logger.Warn("location cache write failed", zap.Error(err))
		}
	}
	return states
}

func (s *locationServiceImpl) Districts(ctx context.Context, state string) []models.District {
	if state == "" {
		return []models.District{}
	}
	if s.cache != nil {
		cached, err := s.cache.GetDistricts(ctx, state)
		if err != nil {
			s.logger.Warn("location cache read failed", zap.Error(err))
		} else if cached != nil {
			count(ctx, s.metrics, awspkg.MetricCacheHits, map[string]string{"Cache": "districts"})
			return cached
		}
		count(ctx, s.metrics, awspkg.MetricCacheMisses, map[string]string{"Cache": "districts"})
	}

	districts, err := s.backend.Districts(ctx, state)
	if err != nil {
		s.logger.Error("Error fetching districts from backend", zap.String("state", state), zap.Error(err))
		return []models.District{}
	}
	if districts == nil {
		districts = []models.District{}
	}

	if s.cache != nil {
		if err := s.cache.SetDistricts(ctx, state, districts); err != nil {
			s.logger.Warn("location cache write failed", zap.Error(err))
		}
	}
	return districts
}
