// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/contest-hub/auth"
	"github.com/danielhkuo/contest-hub/models"
	"github.com/danielhkuo/contest-hub/store"
	"github.com/danielhkuo/contest-hub/testutil"
)

func setupRouter(t *testing.T) (*http.ServeMux, store.Store, *auth.TokenService) {
	t.Helper()
	st := testutil.SetupTestStore(t)
	tokens := testutil.NewTokenService(t)
	return NewRouter(st, tokens), st, tokens
}

func do(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux, _, _ := setupRouter(t)

	w := do(mux, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "Contest-Hub is running...." {
		t.Errorf("Unexpected body '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _, _ := setupRouter(t)

	w := do(mux, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "Contest-Hub Server Started"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnmatchedRoute(t *testing.T) {
	mux, _, _ := setupRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/nope"},
		{"GET", "/contests/search/extra"},
		{"POST", "/health"},
		{"DELETE", "/Contests/" + store.NewID()},
		{"GET", "/does/not/exist?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(mux, httptest.NewRequest(tt.method, tt.path, nil))

			testutil.AssertStatus(t, w, http.StatusNotFound)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, "Can't find "+tt.path+" on the server", resp.Message)
		})
	}
}

func TestRouteGuards(t *testing.T) {
	mux, st, tokens := setupRouter(t)
	testutil.CreateTestUser(t, st, "admin@example.com", "Root", models.RoleAdmin)
	testutil.CreateTestUser(t, st, "maker@example.com", "Maker", models.RoleCreator)
	testutil.CreateTestUser(t, st, "guest@example.com", "Guest", models.RoleGuest)
	contestID := testutil.CreateTestContest(t, st, "maker@example.com", "Logo", "Design", nil)
	recordID := testutil.CreateTestParticipation(t, st, "maker@example.com", "guest@example.com", contestID)

	anyID := store.NewID()

	// Status codes per caller: anonymous, guest, creator, admin. Handler
	// outcomes (200/201/404) only matter in that the guard let the call
	// through.
	tests := []struct {
		method string
		path   string
		body   any
		want   [4]int
	}{
		{"GET", "/users", nil, [4]int{401, 403, 403, 200}},
		{"PATCH", "/users/updateRole/" + anyID, models.UpdateRoleRequest{Role: "admin"}, [4]int{401, 403, 403, 404}},
		{"DELETE", "/users/" + anyID, nil, [4]int{401, 403, 403, 404}},
		{"PATCH", "/users/" + anyID, map[string]any{"name": "x"}, [4]int{401, 404, 404, 404}},
		{"GET", "/contests", nil, [4]int{200, 200, 200, 200}},
		{"GET", "/contests/search?query=des", nil, [4]int{200, 200, 200, 200}},
		{"GET", "/contests/" + contestID, nil, [4]int{200, 200, 200, 200}},
		{"POST", "/contests", map[string]any{"name": "New"}, [4]int{401, 403, 201, 403}},
		{"PATCH", "/contests/" + anyID, map[string]any{"name": "x"}, [4]int{401, 403, 404, 403}},
		{"PATCH", "/contests/approved/" + anyID, nil, [4]int{401, 403, 403, 404}},
		{"DELETE", "/contests/" + anyID, nil, [4]int{401, 403, 404, 404}},
		{"GET", "/participates", nil, [4]int{401, 200, 200, 200}},
		{"POST", "/participates", map[string]any{"contestId": contestID}, [4]int{401, 201, 201, 201}},
		{"PATCH", "/participates/winner/" + recordID, nil, [4]int{401, 403, 200, 403}},
	}

	callers := []string{"", "guest@example.com", "maker@example.com", "admin@example.com"}

	for _, tt := range tests {
		for i, caller := range callers {
			name := tt.method + " " + tt.path + " as " + caller
			if caller == "" {
				name = tt.method + " " + tt.path + " anonymous"
			}
			t.Run(name, func(t *testing.T) {
				var headers map[string]string
				if caller != "" {
					headers = testutil.AuthHeader(t, tokens, caller)
				}
				w := do(mux, testutil.MakeRequest(tt.method, tt.path, tt.body, headers))
				testutil.AssertStatus(t, w, tt.want[i])
			})
		}
	}
}

func TestRoleDowngradeRevokesAccess(t *testing.T) {
	mux, st, tokens := setupRouter(t)
	adminID := testutil.CreateTestUser(t, st, "boss@example.com", "Boss", models.RoleAdmin)

	// Token carries role admin and stays valid after the downgrade.
	token, err := tokens.Issue(auth.Claims{Email: "boss@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	headers := map[string]string{"Authorization": "Bearer " + token}

	w := do(mux, testutil.MakeRequest("GET", "/users", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	_, err = st.Users.UpdateOne(context.Background(), store.ByID(adminID), store.Document{"role": models.RoleGuest})
	require.NoError(t, err)

	w = do(mux, testutil.MakeRequest("GET", "/users", nil, headers))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = do(mux, testutil.MakeRequest("GET", "/users/admin/boss@example.com", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"admin":false}`, w.Body.String())
}

func TestSelfCheckRequiresMatchingEmail(t *testing.T) {
	mux, st, tokens := setupRouter(t)
	testutil.CreateTestUser(t, st, "admin@example.com", "Root", models.RoleAdmin)
	headers := testutil.AuthHeader(t, tokens, "guest@example.com")

	for _, path := range []string{"/users/admin/admin@example.com", "/users/creator/admin@example.com"} {
		w := do(mux, testutil.MakeRequest("GET", path, nil, headers))
		testutil.AssertStatus(t, w, http.StatusForbidden)
		assert.Contains(t, w.Body.String(), "forbidden access")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	mux, st, _ := setupRouter(t)

	// Register, get a token, then use it.
	w := do(mux, testutil.MakeRequest("POST", "/users", map[string]any{"email": "new@example.com", "name": "New User"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do(mux, testutil.MakeRequest("POST", "/jwt", models.TokenRequest{Email: "new@example.com", Name: "New User"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var tok models.TokenResponse
	testutil.AssertJSON(t, w, &tok)
	require.NotEmpty(t, tok.Token)

	w = do(mux, testutil.MakeRequest("GET", "/users/admin/new@example.com", nil, map[string]string{
		"Authorization": "Bearer " + tok.Token,
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"admin":false}`, w.Body.String())

	users, err := st.Users.Find(context.Background(), store.Query{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, models.RoleGuest, users[0].String("role"))
}

func TestTamperedToken(t *testing.T) {
	mux, st, tokens := setupRouter(t)
	testutil.CreateTestUser(t, st, "admin@example.com", "Root", models.RoleAdmin)

	token, err := tokens.Issue(auth.Claims{Email: "admin@example.com"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	w := do(mux, testutil.MakeRequest("GET", "/users", nil, map[string]string{"Authorization": "Bearer " + tampered}))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestRequestIDEchoed(t *testing.T) {
	mux, _, _ := setupRouter(t)

	req := httptest.NewRequest("GET", "/contests", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := do(mux, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestLivenessRoutesAreLogged(t *testing.T) {
	mux, _, _ := setupRouter(t)

	for _, path := range []string{"/", "/health"} {
		w := do(mux, httptest.NewRequest("GET", path, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestGuestCannotGrantThemselvesAdmin(t *testing.T) {
	mux, st, tokens := setupRouter(t)
	id := testutil.CreateTestUser(t, st, "guest@example.com", "Guest", models.RoleGuest)
	guest := testutil.AuthHeader(t, tokens, "guest@example.com")

	w := do(mux, testutil.MakeRequest("GET", "/users", nil, guest))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Through the profile update.
	w = do(mux, testutil.MakeRequest("PATCH", "/users/"+id, map[string]any{"role": models.RoleAdmin}, guest))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(mux, testutil.MakeRequest("GET", "/users", nil, guest))
	testutil.AssertStatus(t, w, http.StatusForbidden)
	assert.Equal(t, models.RoleGuest, testutil.GetTestDocument(t, st.Users, id).String("role"))

	// Through registration.
	w = do(mux, testutil.MakeRequest("POST", "/users", map[string]any{
		"email": "new@example.com",
		"role":  models.RoleAdmin,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = do(mux, testutil.MakeRequest("GET", "/users", nil, testutil.AuthHeader(t, tokens, "new@example.com")))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Admin access still arrives through the role route.
	testutil.CreateTestUser(t, st, "admin@example.com", "Admin", models.RoleAdmin)
	w = do(mux, testutil.MakeRequest("PATCH", "/users/updateRole/"+id, models.UpdateRoleRequest{Role: models.RoleAdmin},
		testutil.AuthHeader(t, tokens, "admin@example.com")))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(mux, testutil.MakeRequest("GET", "/users", nil, guest))
	testutil.AssertStatus(t, w, http.StatusOK)
}
