package kora

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idverify/internal/evidence/providers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, SecretKey: "sk_test_kora"}, WithHTTPClient(srv.Client()))
}

func TestLookup_Request(t *testing.T) {
	tests := []struct {
		idType   providers.IDType
		wantPath string
	}{
		{providers.IDTypeNIN, "/identities/ng/nin"},
		{providers.IDTypeBVN, "/identities/ng/bvn"},
		{providers.IDTypeVNIN, "/identities/ng/vnin"},
		{"NIN", "/identities/ng/nin"},
	}

	for _, tt := range tests {
		t.Run(string(tt.idType), func(t *testing.T) {
			var gotPath, gotAuth string
			var gotBody request
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				_, _ = w.Write([]byte(`{"status":true,"data":{}}`))
			})

			_, err := client.Lookup(context.Background(), providers.LookupRequest{Type: tt.idType, IDNumber: "12345678901"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, "Bearer sk_test_kora", gotAuth)
			assert.Equal(t, request{ID: "12345678901", VerificationConsent: true}, gotBody)
		})
	}
}

func TestLookup_Normalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"reference":"ref_1","firstname":"Ada","surname":"Obi","middlename":"N","dob":"1990-05-15","mobile":"08031234567","email":"ada@example.com"}}`))
	})

	result, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypeNIN, IDNumber: "1"})
	require.NoError(t, err)

	assert.Equal(t, DefaultID, result.ProviderID)
	assert.True(t, result.Passed)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "ref_1", result.ReferenceID)
	assert.Equal(t, "Ada", result.Identity.FirstName)
	assert.Equal(t, "Obi", result.Identity.LastName)
	assert.Equal(t, "N", result.Identity.MiddleName)
	assert.Equal(t, "1990-05-15", result.Identity.DateOfBirth)
	assert.Equal(t, "08031234567", result.Identity.Phone)
	assert.Equal(t, "ada@example.com", result.Identity.Email)
	assert.False(t, result.CheckedAt.IsZero())
}

func TestLookup_StatusFalseIsNotAPass(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"no match","data":{"first_name":"Ada","id":"k_9"}}`))
	})

	result, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypeBVN, IDNumber: "1"})
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "failed", result.Status)
	assert.Equal(t, "k_9", result.ReferenceID)
	assert.Equal(t, "Ada", result.Identity.FirstName)
}

func TestLookup_NumericFieldsKept(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":48213,"first_name":"Ada","phone_number":8031234567}}`))
	})

	result, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypeNIN, IDNumber: "1"})
	require.NoError(t, err)
	assert.Equal(t, "48213", result.ReferenceID)
	assert.Equal(t, "8031234567", result.Identity.Phone)
}

func TestLookup_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory providers.ErrorCategory
		wantMessage  string
	}{
		{name: "not found", status: 404, body: `{"status":false,"message":"Identity not found"}`, wantCategory: providers.ErrorNotFound, wantMessage: "Identity not found"},
		{name: "bad key", status: 401, body: `{"status":false,"message":"Invalid authorization key"}`, wantCategory: providers.ErrorAuthentication, wantMessage: "Invalid authorization key"},
		{name: "validation", status: 422, body: `{"status":false,"message":"id is required"}`, wantCategory: providers.ErrorBadData, wantMessage: "id is required"},
		{name: "outage", status: 502, body: `bad gateway`, wantCategory: providers.ErrorProviderOutage, wantMessage: "Verification failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypeNIN, IDNumber: "1"})
			require.Error(t, err)
			assert.Equal(t, tt.wantCategory, providers.GetCategory(err))
			assert.Equal(t, tt.wantMessage, providers.UserMessage(err, ""))
		})
	}
}

func TestLookup_UnsupportedTypeMakesNoCall(t *testing.T) {
	called := false
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypePhone, IDNumber: "0803"})
	require.Error(t, err)
	assert.ErrorIs(t, err, providers.ErrUnsupportedType)
	assert.False(t, called)
}

func TestLookup_MissingSecretKey(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := client.Lookup(context.Background(), providers.LookupRequest{Type: providers.IDTypeNIN, IDNumber: "1"})
	assert.Equal(t, providers.ErrorAuthentication, providers.GetCategory(err))
}
