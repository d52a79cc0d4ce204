// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/cliparse"
	"github.com/danielhkuo/contest-hub/db"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
)

// TestSecret signs every token issued in tests
const TestSecret = "test-access-token-secret"

// SetupTestStore returns a fresh in-memory SQLite document store with the
// full schema. It is closed when the test ends.
func SetupTestStore(t *testing.T) store.Store {
	t.Helper()

	conn, err := db.Open(db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db.NewStore(conn, db.SQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
		DBName:       "ContestDB",
		TokenSecret:  TestSecret,
		TokenTTL:     time.Hour,
	}
}

// NewTokenService returns a token service using the test config
func NewTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	cfg := GetTestConfig()
	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token service: %v", err)
	}
	return tokens
}

// CreateTestUser inserts a user with the given role and returns its id
func CreateTestUser(t *testing.T, st store.Store, email, name, role string) string {
	t.Helper()

	return insert(t, st.Users, store.Document{
		models.FieldEmail: email,
		models.FieldName:  name,
		models.FieldRole:  role,
	})
}

// CreateTestContest inserts a contest and returns its id. Extra fields
// override the defaults.
func CreateTestContest(t *testing.T, st store.Store, creatorEmail, name, tag string, extra store.Document) string {
	t.Helper()

	doc := store.Document{
		models.FieldName:         name,
		models.FieldImage:        "https://img.example.com/" + name + ".png",
		"price":                  int64(10),
		"prize":                  int64(100),
		models.FieldTag:          tag,
		"date":                   "2026-12-01",
		"description":            name + " description",
		"task":                   name + " task",
		models.FieldStatus:       models.StatusPending,
		models.FieldCreatorEmail: creatorEmail,
	}
	return insert(t, st.Contests, store.Merge(doc, extra))
}

// CreateTestParticipation inserts a participation record and returns its id
func CreateTestParticipation(t *testing.T, st store.Store, creatorEmail, participantEmail, contestID string) string {
	t.Helper()

	return insert(t, st.Participates, store.Document{
		models.FieldCreatorEmail:     creatorEmail,
		models.FieldParticipateEmail: participantEmail,
		"contestId":                  contestID,
		models.FieldRole:             models.RoleParticipant,
	})
}

func insert(t *testing.T, c store.Collection, doc store.Document) string {
	t.Helper()

	res, err := c.InsertOne(context.Background(), doc)
	if err != nil {
		t.Fatalf("Failed to insert test document: %v", err)
	}
	return res.InsertedID
}

// GetTestDocument reads a document by id, failing the test if it is missing
func GetTestDocument(t *testing.T, c store.Collection, id string) store.Document {
	t.Helper()

	doc, err := c.FindOne(context.Background(), store.ByID(id))
	if err != nil {
		t.Fatalf("Failed to read test document %s: %v", id, err)
	}
	return doc
}

// AuthHeader returns an Authorization header carrying a token for email
func AuthHeader(t *testing.T, tokens *auth.TokenService, email string) map[string]string {
	t.Helper()

	token, err := tokens.Issue(auth.Claims{Email: email})
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
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
