// Package testutil provides shared fixtures for handler and store
// tests: an in-memory store with the full shared semantics, request
// builders, and response assertions.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amjadhq/commission/cliparse"
	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/store"
)

// SetupTestStore returns a fresh in-memory store with the full
// reaction/vote semantics, closed automatically when the test ends.
func SetupTestStore(t *testing.T) *store.SQLite {
	t.Helper()

	s, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8034,
		Backend:      cliparse.BackendSQLite,
		AdminKey:     "test-admin-key",
		FeedCacheTTL: time.Minute,
	}
}

// CreateTestTake inserts a take and returns it
func CreateTestTake(t *testing.T, s *store.SQLite, text, authorID string) models.Take {
	t.Helper()

	take, err := s.AddTake(context.Background(), text, authorID)
	if err != nil {
		t.Fatalf("Failed to create test take: %v", err)
	}
	return take
}

// SaveTestRanking stores a full 32-team ranking for a user. Offset
// rotates the canonical order so different users disagree.
func SaveTestRanking(t *testing.T, s *store.SQLite, userID string, offset int) []string {
	t.Helper()

	order := make([]string, 0, len(models.Teams))
	for i := range models.Teams {
		order = append(order, models.Teams[(i+offset)%len(models.Teams)].Abbr)
	}
	if err := s.SaveRanking(context.Background(), userID, order); err != nil {
		t.Fatalf("Failed to save test ranking: %v", err)
	}
	return order
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AsUser returns headers identifying a roster member
func AsUser(name string) map[string]string {
	return map[string]string{identity.UserHeader: name}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
