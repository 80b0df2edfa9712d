// Package contract holds reusable checks every provider implementation must
// pass.
package contract

import (
	"context"
	"testing"

	"idverify/internal/evidence/providers"
)

// ContractTest defines a test case for provider contract validation
type ContractTest struct {
	Name         string
	Provider     providers.Provider
	Request      providers.LookupRequest
	ValidateFunc func(result *providers.LookupResult) error
}

// ContractSuite is a collection of contract tests for a provider
type ContractSuite struct {
	ProviderID string
	Tests      []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			result, err := test.Provider.Lookup(context.Background(), test.Request)
			if err != nil {
				t.Fatalf("provider lookup failed: %v", err)
			}

			if result.ProviderID != s.ProviderID {
				t.Errorf("expected provider ID %s, got %s", s.ProviderID, result.ProviderID)
			}
			if result.CheckedAt.IsZero() {
				t.Error("CheckedAt not set")
			}
			if len(result.Raw) == 0 {
				t.Error("raw response not retained")
			}
			if result.Passed != providers.IsPassedStatus(result.Status) {
				t.Errorf("passed=%v disagrees with status %q", result.Passed, result.Status)
			}

			if test.ValidateFunc != nil {
				if err := test.ValidateFunc(result); err != nil {
					t.Errorf("custom validation failed: %v", err)
				}
			}
		})
	}
}

// CapabilityTest validates that provider capabilities are correctly declared
type CapabilityTest struct {
	Provider providers.Provider
}

// Run executes a capability test
func (ct *CapabilityTest) Run(t *testing.T) {
	caps := ct.Provider.Capabilities()

	if caps.Protocol == "" {
		t.Error("protocol not set")
	}
	if caps.Version == "" {
		t.Error("version not set")
	}
	if len(caps.IDTypes) == 0 {
		t.Error("no id types declared")
	}
	if ct.Provider.ID() == "" {
		t.Error("provider id not set")
	}
}

// ErrorContractTest validates that provider errors follow the taxonomy
type ErrorContractTest struct {
	Name          string
	Provider      providers.Provider
	Request       providers.LookupRequest
	ExpectedError providers.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	t.Run(ect.Name, func(t *testing.T) {
		_, err := ect.Provider.Lookup(context.Background(), ect.Request)
		if err == nil {
			t.Fatal("expected error but got none")
		}

		if category := providers.GetCategory(err); category != ect.ExpectedError {
			t.Errorf("expected error category %s, got %s", ect.ExpectedError, category)
		}
		if isRetryable := providers.IsRetryable(err); isRetryable != ect.ExpectedRetry {
			t.Errorf("expected retryable=%v, got %v", ect.ExpectedRetry, isRetryable)
		}
	})
}
