// Package persona resolves identifiers through Persona's database
// verification API.
package persona

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
	DefaultID      = "persona"
	DefaultBaseURL = "https://withpersona.com/api/v1"
	DefaultVersion = "2023-01-05"
)

// idClasses maps identifier types to Persona id-class values. Unlisted types
// are sent as-is.
var idClasses = map[providers.IDType]string{
	providers.IDTypeNIN: "ng_nin",
	providers.IDTypeBVN: "ng_bvn",
	providers.IDTypeCAC: "ng_cac",
}

// Config configures a Persona client.
type Config struct {
	ID      string
	BaseURL string
	APIKey  string
	Version string
	Timeout time.Duration
}

// Client is a providers.Provider backed by Persona.
type Client struct {
	id         string
	baseURL    string
	apiKey     string
	version    string
	httpClient *http.Client
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Client) { p.httpClient = c }
}

// WithClock replaces the time source used for CheckedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Client) { p.now = now }
}

// New builds a Persona client. Empty fields take package defaults.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		id:         cfg.ID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		version:    cfg.Version,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	if c.id == "" {
		c.id = DefaultID
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.version == "" {
		c.version = DefaultVersion
	}
	if cfg.Timeout <= 0 {
		c.httpClient.Timeout = 30 * time.Second
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
		Version:  c.version,
		IDTypes: []providers.IDType{
			providers.IDTypeNIN,
			providers.IDTypeBVN,
			providers.IDTypeCAC,
			providers.IDTypePhone,
			providers.IDTypeEmail,
			providers.IDTypeBankAccount,
		},
	}
}

// Health fails when no API key is configured. Persona exposes no cheap
// unauthenticated ping.
func (c *Client) Health(context.Context) error {
	if c.apiKey == "" {
		return providers.NewProviderError(providers.ErrorAuthentication, c.id, "Persona API key not configured", nil)
	}
	return nil
}

// Lookup creates a database verification and normalizes the result.
func (c *Client) Lookup(ctx context.Context, req providers.LookupRequest) (*providers.LookupResult, error) {
	if c.apiKey == "" {
		return nil, providers.NewProviderError(providers.ErrorAuthentication, c.id, "Verification system is temporarily unavailable.", nil)
	}

	headers := map[string]string{
		"Authorization":   "Bearer " + c.apiKey,
		"Persona-Version": c.version,
	}
	status, raw, err := providers.PostJSON(ctx, c.httpClient, c.id, c.baseURL+"/verifications/database", headers, buildPayload(req))
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return nil, providers.NewProviderError(providers.CategoryForStatus(status), c.id, extractErrorMessage(raw), nil)
	}

	result, err := parseResponse(raw)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, c.id, "Unreadable verification response", err)
	}
	result.ProviderID = c.id
	result.CheckedAt = c.now()
	return result, nil
}

type payload struct {
	Data payloadData `json:"data"`
}

type payloadData struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

func buildPayload(req providers.LookupRequest) payload {
	country := req.CountryCode
	if country == "" {
		country = providers.DefaultCountryCode
	}
	attrs := map[string]string{
		"country-code": country,
		"id-number":    req.IDNumber,
		"id-class":     idClass(req.Type),
	}
	for k, v := range req.Extra {
		attrs[k] = v
	}
	return payload{Data: payloadData{Type: "verification/database", Attributes: attrs}}
}

func idClass(t providers.IDType) string {
	lower := providers.IDType(strings.ToLower(string(t)))
	if class, ok := idClasses[lower]; ok {
		return class
	}
	return string(lower)
}

type response struct {
	Data *struct {
		ID         string         `json:"id"`
		Attributes map[string]any `json:"attributes"`
	} `json:"data"`
}

// parseResponse normalizes a successful body. A body without "data" yields
// an empty, non-passing result.
func parseResponse(raw []byte) (*providers.LookupResult, error) {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	result := &providers.LookupResult{Raw: json.RawMessage(raw)}
	if resp.Data == nil {
		return result, nil
	}

	attrs := resp.Data.Attributes
	result.ReferenceID = resp.Data.ID
	result.Status = strings.ToLower(providers.FirstString(attrs, "status"))
	result.Passed = providers.IsPassedStatus(result.Status)
	result.Identity = identity.ClaimedIdentity{
		FirstName:   providers.FirstString(attrs, "name-first", "first-name"),
		LastName:    providers.FirstString(attrs, "name-last", "last-name"),
		MiddleName:  providers.FirstString(attrs, "name-middle", "middle-name"),
		DateOfBirth: providers.FirstString(attrs, "birthdate", "date-of-birth"),
		Phone:       providers.FirstString(attrs, "phone-number"),
		Email:       providers.FirstString(attrs, "email-address"),
	}
	result.CompanyName = providers.FirstString(attrs, "company-name")
	return result, nil
}

// extractErrorMessage reads a JSON:API error title or detail, then a plain
// "error" or "message" field.
func extractErrorMessage(raw []byte) string {
	const fallback = "Verification failed"

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if errs, ok := body["errors"].([]any); ok && len(errs) > 0 {
		if first, ok := errs[0].(map[string]any); ok {
			if msg := providers.FirstString(first, "title", "detail"); msg != "" {
				return msg
			}
		}
		return fallback
	}
	if msg := providers.FirstString(body, "error", "message"); msg != "" {
		return msg
	}
	return fallback
}
