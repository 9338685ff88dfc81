package memory

import (
	"context"
	"testing"
	"time"

	"eq-assessment-service/internal/domain"

	"github.com/google/uuid"
)

func TestResponseStoreUpsertIsIdempotent(t *testing.T) {
	store := NewResponseStore()
	userID := uuid.New()

	first := domain.ResponseRow{UserID: userID, QuestionID: 1, Score: 40, Pillar: "empathy", CreatedAt: time.Now()}
	if err := store.UpsertResponses(context.Background(), []domain.ResponseRow{first}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second := first
	second.Score = 90
	if err := store.UpsertResponses(context.Background(), []domain.ResponseRow{second}); err != nil {
		t.Fatalf("upsert 2: %v", err)
	}

	rows := store.ResponsesFor(userID)
	if len(rows) != 1 {
		t.Fatalf("expected one row per (user, question), got %d", len(rows))
	}
	if rows[0].Score != 90 {
		t.Fatalf("expected second score to win, got %d", rows[0].Score)
	}
}

func TestProfileStoreRequiresExistingRow(t *testing.T) {
	store := NewProfileStore()
	user := domain.UserContext{UserID: uuid.New()}
	scores := domain.PillarScores{domain.PillarEmpathy: 66.7}

	if err := store.WriteScores(context.Background(), user, scores, 67); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	store.Seed(user.UserID)
	if err := store.WriteScores(context.Background(), user, scores, 67); err != nil {
		t.Fatalf("write after seed: %v", err)
	}

	profile, ok := store.ProfileFor(user.UserID)
	if !ok {
		t.Fatalf("profile missing")
	}
	if profile.PillarScores[domain.PillarEmpathy] != 67 {
		t.Fatalf("expected pillar rounded to 67, got %d", profile.PillarScores[domain.PillarEmpathy])
	}
	if !profile.OnboardingCompleted {
		t.Fatalf("expected onboarding flag set")
	}
}
