package usecases_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// --- Mock RouteProvider ---

type mockRouteProvider struct {
	fetchRouteFn func(ctx context.Context, start, end domain.GeoPoint) (string, error)
	calls        int
}

func (m *mockRouteProvider) FetchRoute(ctx context.Context, start, end domain.GeoPoint) (string, error) {
	m.calls++
	if m.fetchRouteFn != nil {
		return m.fetchRouteFn(ctx, start, end)
	}
	return "", nil
}

// --- Mock ElevationProvider ---

type mockElevationProvider struct {
	fetchFn func(ctx context.Context, geometry string) ([]domain.ElevationPoint, error)
	calls   int
}

func (m *mockElevationProvider) FetchElevationProfile(ctx context.Context, geometry string) ([]domain.ElevationPoint, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, geometry)
	}
	return nil, nil
}

// --- Mock CacheService ---

var errMiss = errors.New("miss")

type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	ttls   map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, errMiss
	}
	return b, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttlSeconds
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	events []*domain.RouteComputed
	err    error
}

func (m *mockPublisher) PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error {
	m.events = append(m.events, event)
	return m.err
}

// --- Mock ElevationLookup ---

type mockLookup struct {
	lookupFn func(ctx context.Context, points []domain.GeoPoint) ([]*float64, error)
	queried  [][]domain.GeoPoint
}

func (m *mockLookup) Lookup(ctx context.Context, points []domain.GeoPoint) ([]*float64, error) {
	m.queried = append(m.queried, points)
	if m.lookupFn != nil {
		return m.lookupFn(ctx, points)
	}
	return make([]*float64, len(points)), nil
}

// --- Mock ElevationSampleStore ---

type mockSampleStore struct {
	stored    map[domain.GeoPoint]float64
	getErr    error
	upsertErr error
	upserted  map[domain.GeoPoint]float64
	cutoff    time.Time
	pruned    int64
}

func (m *mockSampleStore) GetMany(ctx context.Context, points []domain.GeoPoint) (map[domain.GeoPoint]float64, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := map[domain.GeoPoint]float64{}
	for _, p := range points {
		if v, ok := m.stored[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

func (m *mockSampleStore) UpsertBatch(ctx context.Context, samples map[domain.GeoPoint]float64) error {
	m.upserted = samples
	return m.upsertErr
}

func (m *mockSampleStore) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	m.cutoff = cutoff
	return m.pruned, nil
}

func fp(v float64) *float64 { return &v }
