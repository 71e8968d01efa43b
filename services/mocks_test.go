package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Harshit-patil56/Land-deals-manager-sub000/clients"
	"github.com/Harshit-patil56/Land-deals-manager-sub000/models"
)

// ---- fake backend ----

type backendCall struct {
	Method string
	Path   string
	Query  string
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *clients.APIClient) {
	t.Helper()
	fb := &fakeBackend{routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery})
		h, ok := fb.routes[r.Method+" "+r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, clients.NewAPIClient(srv.URL+"/api", 5*time.Second)
}

func (fb *fakeBackend) on(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" /api"+path] = h
}

func (fb *fakeBackend) json(method, path string, status int, body interface{}) {
	fb.on(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (fb *fakeBackend) Calls() []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]backendCall(nil), fb.calls...)
}

// ---- mock audit repository ----

type mockAuditRepo struct {
	mu          sync.Mutex
	submissions []models.SubmissionAudit
	uploads     []models.UploadAudit
	err         error
}

func (m *mockAuditRepo) RecordSubmission(_ context.Context, a *models.SubmissionAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, *a)
	return m.err
}

func (m *mockAuditRepo) RecordUploads(_ context.Context, rows []models.UploadAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, rows...)
	return m.err
}

func (m *mockAuditRepo) ListSubmissions(_ context.Context, _ string, _ int) ([]models.SubmissionAudit, error) {
	return m.submissions, m.err
}

// ---- mock SNS publisher ----

type mockSNS struct {
	mu         sync.Mutex
	messages   [][]byte
	publishErr error
}

func (m *mockSNS) Publish(_ context.Context, _ string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return m.publishErr
}

func (m *mockSNS) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, b := range m.messages {
		var e struct {
			EventType string `json:"event_type"`
		}
		_ = json.Unmarshal(b, &e)
		out = append(out, e.EventType)
	}
	return out
}

// ---- mock metrics ----

type mockMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMockMetrics() *mockMetrics { return &mockMetrics{counts: map[string]int{}} }

func (m *mockMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

func (m *mockMetrics) RecordLatency(context.Context, string, time.Duration, map[string]string) error {
	return nil
}

func (m *mockMetrics) IsEnabled() bool { return true }

func (m *mockMetrics) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[name]
}

// ---- mock object store ----

type mockStore struct {
	puts       map[string][]byte
	putErr     error
	presignErr error
}

func (m *mockStore) Put(_ context.Context, key, _ string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	if m.puts == nil {
		m.puts = map[string][]byte{}
	}
	m.puts[key] = data
	return nil
}

func (m *mockStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://bucket.example/" + key + "?sig=1", m.presignErr
}

// ---- mock location cache ----

type mockLocationCache struct {
	states    []models.State
	districts map[string][]models.District
	getErr    error
	sets      int
}

func (m *mockLocationCache) GetStates(context.Context) ([]models.State, error) {
	return m.states, m.getErr
}

func (m *mockLocationCache) SetStates(_ context.Context, s []models.State) error {
	m.sets++
	m.states = s
	return nil
}

func (m *mockLocationCache) GetDistricts(_ context.Context, state string) ([]models.District, error) {
	return m.districts[state], m.getErr
}

func (m *mockLocationCache) SetDistricts(_ context.Context, state string, d []models.District) error {
	m.sets++
	if m.districts == nil {
		m.districts = map[string][]models.District{}
	}
	m.districts[state] = d
	return nil
}
