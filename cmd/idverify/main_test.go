package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idverify/internal/identity"
	jwttoken "idverify/internal/jwt_token"
	"idverify/internal/platform/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	claimed := writeFile(t, dir, "claimed.json",
		`{"first_name":"JOHN","last_name":"Doe","phone":"+2348031234567","email":"Test@Example.com","date_of_birth":"15-05-1990"}`)
	known := writeFile(t, dir, "known.json",
		`{"first_name":"John","last_name":"Doe","phone":"08031234567","email":"test@example.com","date_of_birth":"1990-05-15"}`)

	out := execute(t, "score", claimed, known)

	var result identity.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 100.0, result.OverallConfidence)
	assert.Equal(t, 5, result.ChecksPerformed)
	assert.Equal(t, identity.RecommendAutoApprove, result.Recommendation)
	assert.Equal(t, map[string]float64{
		"first_name_match":    100,
		"last_name_match":     100,
		"phone_match":         100,
		"date_of_birth_match": 100,
		"email_match":         100,
	}, result.Breakdown)
}

func TestScoreCommand_MissingFile(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"score", "/nonexistent/a.json", "/nonexistent/b.json"})
	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read /nonexistent/a.json")
}

func TestTokenCommand(t *testing.T) {
	userID := uuid.New()
	out := execute(t, "token", "--user", userID.String(), "--role", "admin", "--ttl", "5m")

	svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, []string{"admin"}, claims.Roles)
}

func TestBuildApp_InMemory(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := buildApp(context.Background(), c, logger)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.router)
	t.Cleanup(srv.Close)

	jwt := jwttoken.NewJWTService(c.Server.JWTSigningKey, c.Server.JWTIssuer, c.Server.JWTAudience)
	userID := uuid.New()
	token, err := jwt.GenerateAccessToken(userID, nil, time.Hour)
	require.NoError(t, err)

	do := func(method, path, body, bearer string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	t.Run("health", func(t *testing.T) {
		resp := do(http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := do(http.MethodGet, "/verifications/status", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("status before profile", func(t *testing.T) {
		resp := do(http.MethodGet, "/verifications/status", "", token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("profile then status", func(t *testing.T) {
		resp := do(http.MethodPut, "/verifications/agent/profile",
			`{"first_name":"John","last_name":"Doe","date_of_birth":"1990-05-15"}`, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(http.MethodGet, "/verifications/status", "", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, false, body["can_post_properties"])
		assert.Contains(t, body, "agent")
	})

	t.Run("admin route needs role", func(t *testing.T) {
		resp := do(http.MethodPost, "/admin/verifications/agent/"+userID.String()+"/review",
			`{"decision":"approve"}`, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
