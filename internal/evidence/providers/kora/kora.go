// Package kora resolves Nigerian identifiers through Kora's identity API.
package kora

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"idverify/internal/evidence/providers"
	"idverify/internal/identity"
)

const (
	DefaultID      = "kora"
	DefaultBaseURL = "https://api.korapay.com/merchant/api/v1"
	apiVersion     = "v1"
)

var supported = []providers.IDType{
	providers.IDTypeNIN,
	providers.IDTypeVNIN,
	providers.IDTypeBVN,
	providers.IDTypeCAC,
}

// Config configures a Kora client.
type Config struct {
	ID        string
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client is a providers.Provider backed by Kora.
type Client struct {
	id         string
	baseURL    string
	secretKey  string
	httpClient *http.Client
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(k *Client) { k.httpClient = c }
}

// WithClock replaces the time source used for CheckedAt.
func WithClock(now func() time.Time) Option {
	return func(k *Client) { k.now = now }
}

func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		id:         cfg.ID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
	if c.id == "" {
		c.id = DefaultID
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ID() string { return c.id }

func (c *Client) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol: providers.ProtocolHTTP,
		Version:  apiVersion,
		IDTypes:  supported,
	}
}

func (c *Client) Health(context.Context) error {
	if c.secretKey == "" {
		return providers.NewProviderError(providers.ErrorAuthentication, c.id, "Kora secret key not configured", nil)
	}
	return nil
}

type request struct {
	ID                  string `json:"id"`
	VerificationConsent bool   `json:"verification_consent"`
}

type response struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// Lookup posts to /identities/ng/{type}. A 200 with status=false is a
// completed, non-passing lookup.
func (c *Client) Lookup(ctx context.Context, req providers.LookupRequest) (*providers.LookupResult, error) {
	if c.secretKey == "" {
		return nil, providers.NewProviderError(providers.ErrorAuthentication, c.id, "Verification system is temporarily unavailable.", nil)
	}
	idType := providers.IDType(strings.ToLower(string(req.Type)))
	if !c.Capabilities().Supports(idType) {
		return nil, providers.NewProviderError(providers.ErrorBadData, c.id, "Unsupported identifier type", providers.ErrUnsupportedType)
	}
	country := req.CountryCode
	if country == "" {
		country = providers.DefaultCountryCode
	}

	url := c.baseURL + "/identities/" + country + "/" + string(idType)
	headers := map[string]string{"Authorization": "Bearer " + c.secretKey}
	status, raw, err := providers.PostJSON(ctx, c.httpClient, c.id, url, headers, request{ID: req.IDNumber, VerificationConsent: true})
	if err != nil {
		return nil, err
	}

	var resp response
	decodeErr := json.Unmarshal(raw, &resp)
	if status != http.StatusOK {
		msg := "Verification failed"
		if decodeErr == nil && resp.Message != "" {
			msg = resp.Message
		}
		return nil, providers.NewProviderError(providers.CategoryForStatus(status), c.id, msg, nil)
	}
	if decodeErr != nil {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, c.id, "Unreadable verification response", decodeErr)
	}

	result := normalize(resp)
	result.ProviderID = c.id
	result.Raw = json.RawMessage(raw)
	result.CheckedAt = c.now()
	return result, nil
}

func normalize(resp response) *providers.LookupResult {
	d := resp.Data
	status := "failed"
	if resp.Status {
		status = "success"
	}
	return &providers.LookupResult{
		Status: status,
		Passed: resp.Status,
		Identity: identity.ClaimedIdentity{
			FirstName:   providers.FirstString(d, "first_name", "firstname"),
			LastName:    providers.FirstString(d, "last_name", "lastname", "surname"),
			MiddleName:  providers.FirstString(d, "middle_name", "middlename"),
			DateOfBirth: providers.FirstString(d, "date_of_birth", "dob", "birthdate"),
			Phone:       providers.FirstString(d, "phone_number", "phone", "mobile"),
			Email:       providers.FirstString(d, "email"),
		},
		CompanyName: providers.FirstString(d, "company_name", "name"),
		ReferenceID: providers.FirstString(d, "reference", "id"),
	}
}
