package memory

import (
	"context"
	"sync"

	"eq-assessment-service/internal/app"
	"eq-assessment-service/internal/domain"

	"github.com/google/uuid"
)

type responseKey struct {
	userID     uuid.UUID
	questionID int
}

// ResponseStore keeps persisted answers in memory with the same uniqueness
// semantics as the Postgres table: one row per (user, question), last write
// wins. Useful when the service runs without external stores, and in tests.
type ResponseStore struct {
	mu   sync.RWMutex
	rows map[responseKey]domain.ResponseRow
}

func NewResponseStore() *ResponseStore {
	return &ResponseStore{rows: make(map[responseKey]domain.ResponseRow)}
}

func (s *ResponseStore) UpsertResponses(_ context.Context, rows []domain.ResponseRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.rows[responseKey{userID: row.UserID, questionID: row.QuestionID}] = row
	}
	return nil
}

// ResponsesFor returns the stored rows for a user, in no particular order.
func (s *ResponseStore) ResponsesFor(userID uuid.UUID) []domain.ResponseRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ResponseRow
	for key, row := range s.rows {
		if key.userID == userID {
			out = append(out, row)
		}
	}
	return out
}

// Profile mirrors the aggregate columns of the durable profile row.
type Profile struct {
	UserID              uuid.UUID
	TotalEQScore        int
	PillarScores        map[domain.Pillar]int
	OnboardingCompleted bool
}

// ProfileStore is the in-memory counterpart of the profiles table. Rows must
// be seeded before scores can be written, matching the update-not-insert
// contract of the real store. Demo deployments without a real account
// provisioner can opt into auto-provisioning instead.
type ProfileStore struct {
	mu            sync.RWMutex
	profiles      map[uuid.UUID]*Profile
	autoProvision bool
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[uuid.UUID]*Profile)}
}

// NewAutoProvisionProfileStore creates rows on first write, standing in for
// the out-of-scope account provisioner when running storeless.
func NewAutoProvisionProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[uuid.UUID]*Profile), autoProvision: true}
}

// Seed creates an empty profile row, standing in for account provisioning.
func (s *ProfileStore) Seed(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		s.profiles[userID] = &Profile{UserID: userID, PillarScores: make(map[domain.Pillar]int)}
	}
}

func (s *ProfileStore) WriteScores(_ context.Context, user domain.UserContext, pillars domain.PillarScores, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[user.UserID]
	if !ok {
		if !s.autoProvision {
			return domain.ErrProfileNotFound
		}
		profile = &Profile{UserID: user.UserID, PillarScores: make(map[domain.Pillar]int)}
		s.profiles[user.UserID] = profile
	}
	profile.TotalEQScore = total
	for _, p := range domain.Pillars() {
		profile.PillarScores[p] = app.RoundScore(pillars[p])
	}
	profile.OnboardingCompleted = true
	return nil
}

// ProfileFor returns a copy of the stored profile.
func (s *ProfileStore) ProfileFor(userID uuid.UUID) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return Profile{}, false
	}
	copied := *profile
	copied.PillarScores = make(map[domain.Pillar]int, len(profile.PillarScores))
	for p, v := range profile.PillarScores {
		copied.PillarScores[p] = v
	}
	return copied, true
}
