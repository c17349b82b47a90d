package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KevinKupervaser/demoflores/models"
)

func TestRegisterSuccess(t *testing.T) {
	db := freshDB()
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]string{
		"email":    "ana@test.com",
		"password": "password123",
		"name":     "Ana García",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("expected token in response")
	}
	if resp["refresh_token"] == nil || resp["refresh_token"] == "" {
		t.Error("expected refresh_token in response")
	}
	user, ok := resp["user"].(map[string]interface{})
	if !ok {
		t.Fatal("expected user object in response")
	}
	if user["email"] != "ana@test.com" {
		t.Errorf("expected email ana@test.com, got %v", user["email"])
	}
	if user["role"] != "user" {
		t.Errorf("expected role user, got %v", user["role"])
	}

	var count int64
	db.Model(&models.RefreshToken{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 stored refresh token, got %d", count)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := freshDB()
	seedTestUser(db, "ana@test.com", "user")
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]string{
		"email":    "ana@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterShortPassword(t *testing.T) {
	db := freshDB()
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]string{
		"email":    "ana@test.com",
		"password": "short",
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	db := freshDB()
	seedTestUser(db, "ana@test.com", "user")
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "ana@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("expected token in response")
	}
	if resp["refresh_token"] == nil || resp["refresh_token"] == "" {
		t.Error("expected refresh_token in response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := freshDB()
	seedTestUser(db, "ana@test.com", "user")
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "ana@test.com",
		"password": "wrong-password",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := freshDB()
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]string{
		"email":    "nobody@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetProfile(t *testing.T) {
	db := freshDB()
	user, token := seedTestUser(db, "ana@test.com", "user")
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authRequest("GET", "/api/auth/profile", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["id"] != user.ID.String() {
		t.Errorf("expected id %s, got %v", user.ID, resp["id"])
	}
	if resp["email"] != "ana@test.com" {
		t.Errorf("expected email ana@test.com, got %v", resp["email"])
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db := freshDB()
	r := setupAuthRouter(db)

	// Register to obtain an initial token pair.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]string{
		"email":    "ana@test.com",
		"password": "password123",
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d: %s", w.Code, w.Body.String())
	}
	refresh := parseResponse(w)["refresh_token"].(string)

	// Exchange the refresh token for a new pair.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/refresh", map[string]string{
		"refresh_token": refresh,
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	newRefresh, _ := resp["refresh_token"].(string)
	if newRefresh == "" || newRefresh == refresh {
		t.Error("expected a rotated refresh token")
	}

	// The old token is revoked and cannot be reused.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/refresh", map[string]string{
		"refresh_token": refresh,
	}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 on reused refresh token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	db := freshDB()
	r := setupAuthRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/api/auth/refresh", map[string]string{
		"refresh_token": "not-a-real-token",
	}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
