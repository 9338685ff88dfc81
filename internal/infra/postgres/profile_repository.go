package postgres

import (
	"context"
	"fmt"

	"eq-assessment-service/internal/app"
	"eq-assessment-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProfileRepository writes the rounded aggregate scores onto the existing
// profile row. The row is created during account provisioning, not here:
// this is strictly an update, and a missing row is an error.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) WriteScores(ctx context.Context, user domain.UserContext, pillars domain.PillarScores, total int) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE profiles SET
    total_eq_score = $2,
    self_awareness = $3,
    self_regulation = $4,
    motivation = $5,
    empathy = $6,
    social_skills = $7,
    onboarding_completed = TRUE
WHERE user_id = $1;
`,
		user.UserID,
		total,
		app.RoundScore(pillars[domain.PillarSelfAwareness]),
		app.RoundScore(pillars[domain.PillarSelfRegulation]),
		app.RoundScore(pillars[domain.PillarMotivation]),
		app.RoundScore(pillars[domain.PillarEmpathy]),
		app.RoundScore(pillars[domain.PillarSocialSkills]),
	)
	if err != nil {
		return fmt.Errorf("write profile scores: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
