package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func names(states []models.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.Name)
	}
	return out
}

func TestSortStates_HomeStateFirst(t *testing.T) {
	states := []models.State{{Name: "Punjab"}, {Name: "Goa"}, {Name: "Maharashtra"}, {Name: "Assam"}}
	services.SortStates(states)
	assert.Equal(t, []string{"Maharashtra", "Assam", "Goa", "Punjab"}, names(states))
}

func TestStates_FetchSortAndCache(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json(http.MethodGet, "/locations/states", http.StatusOK, []models.State{{ID: "1", Name: "Karnataka"}, {ID: "2", Name: "Maharashtra"}})
	cache := &mockLocationCache{}
	metrics := newMockMetrics()
	svc := services.NewLocationService(client.Locations(), cache, metrics, zap.NewNop())

	first := svc.States(context.Background())
	second := svc.States(context.Background())

	assert.Equal(t, []string{"Maharashtra", "Karnataka"}, names(first))
	assert.Equal(t, first, second)
	assert.Len(t, fb.Calls(), 1)
	assert.Equal(t, 1, metrics.count("CacheHits"))
	assert.Equal(t, 1, metrics.count("CacheMisses"))
}

func TestStates_BackendFailureIsEmptyAndNotCached(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.json(http.MethodGet, "/locations/states", http.StatusInternalServerError, map[string]string{"error": "down"})
	cache := &mockLocationCache{}
	svc := services.NewLocationService(client.Locations(), cache, nil, zap.NewNop())

	states := svc.States(context.Background())
	assert.NotNil(t, states)
	assert.Empty(t, states)
	assert.Equal(t, 0, cache.sets)
}

func TestDistricts_CacheErrorFallsBackToBackend(t *testing.T) {
	fb, client := newFakeBackend(t)
	fb.on(http.MethodGet, "/locations/districts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Maharashtra", r.URL.Query().Get("state"))
		w.Write([]byte(`[{"id":1,"name":"Pune"}]`))
	})
	cache := &mockLocationCache{getErr: errors.New("redis down")}
	svc := services.NewLocationService(client.Locations(), cache, nil, zap.NewNop())

	districts := svc.Districts(context.Background(), "Maharashtra")
	assert.Equal(t, []models.District{{ID: "1", Name: "Pune"}}, districts)
}

func TestDistricts_NoStateNoCall(t *testing.T) {
	fb, client := newFakeBackend(t)
	svc := services.NewLocationService(client.Locations(), nil, nil, zap.NewNop())

	assert.Empty(t, svc.Districts(context.Background(), ""))
	assert.Empty(t, fb.Calls())
}
