// Package memory keeps verification profiles and logs in process memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	"idverify/pkg/platform/sentinel"
)

// InMemoryStore implements ports.Store. Profiles are copied on the way in and
// out so callers never share state with the store.
type InMemoryStore struct {
	mu        sync.RWMutex
	agents    map[id.UserID]*models.AgentProfile
	companies map[id.UserID]*models.CompanyProfile
	logs      map[id.UserID][]*models.VerificationLog
}

func New() *InMemoryStore {
	return &InMemoryStore{
		agents:    make(map[id.UserID]*models.AgentProfile),
		companies: make(map[id.UserID]*models.CompanyProfile),
		logs:      make(map[id.UserID][]*models.VerificationLog),
	}
}

func (s *InMemoryStore) FindAgent(_ context.Context, userID id.UserID) (*models.AgentProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if agent, ok := s.agents[userID]; ok {
		return cloneAgent(agent), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) SaveAgent(_ context.Context, profile *models.AgentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[profile.UserID] = cloneAgent(profile)
	return nil
}

func (s *InMemoryStore) FindCompany(_ context.Context, userID id.UserID) (*models.CompanyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if company, ok := s.companies[userID]; ok {
		return cloneCompany(company), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) SaveCompany(_ context.Context, profile *models.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[profile.UserID] = cloneCompany(profile)
	return nil
}

func (s *InMemoryStore) AppendLog(_ context.Context, entry *models.VerificationLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	cp.RequestData = maps.Clone(entry.RequestData)
	s.logs[entry.UserID] = append(s.logs[entry.UserID], &cp)
	return nil
}

// ListLogs returns the user's logs newest first.
func (s *InMemoryStore) ListLogs(_ context.Context, userID id.UserID) ([]*models.VerificationLog, error) {
	s.mu.RLock()
	logs := slices.Clone(s.logs[userID])
	s.mu.RUnlock()

	slices.SortStableFunc(logs, func(a, b *models.VerificationLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return logs, nil
}

func cloneAgent(p *models.AgentProfile) *models.AgentProfile {
	cp := *p
	if p.VerificationData != nil {
		data := *p.VerificationData
		data.Breakdown = maps.Clone(p.VerificationData.Breakdown)
		cp.VerificationData = &data
	}
	if p.VerifiedAt != nil {
		at := *p.VerifiedAt
		cp.VerifiedAt = &at
	}
	return &cp
}

func cloneCompany(p *models.CompanyProfile) *models.CompanyProfile {
	cp := *p
	if p.CACData != nil {
		data := *p.CACData
		cp.CACData = &data
	}
	if p.VerifiedAt != nil {
		at := *p.VerifiedAt
		cp.VerifiedAt = &at
	}
	return &cp
}
