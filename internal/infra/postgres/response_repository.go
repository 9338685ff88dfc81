package postgres

import (
	"context"
	"fmt"

	"eq-assessment-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResponseRepository upserts raw answers into assessment_responses.
// The table declares UNIQUE(user_id, question_id), so retakes overwrite the
// prior answer for the same question instead of accumulating duplicates.
type ResponseRepository struct {
	pool *pgxpool.Pool
}

func NewResponseRepository(pool *pgxpool.Pool) *ResponseRepository {
	return &ResponseRepository{pool: pool}
}

// UpsertResponses writes every row inside one transaction; a failure rolls
// the whole batch back so callers never see partial persistence.
func (r *ResponseRepository) UpsertResponses(ctx context.Context, rows []domain.ResponseRow) error {
	if len(rows) == 0 {
		return nil
	}

	return r.pool.BeginTxFunc(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, row := range rows {
			_, err := tx.Exec(ctx, `
INSERT INTO assessment_responses (user_id, question_id, score, pillar, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, question_id) DO UPDATE SET
    score = EXCLUDED.score,
    pillar = EXCLUDED.pillar,
    created_at = EXCLUDED.created_at;
`,
				row.UserID, row.QuestionID, row.Score, row.Pillar, row.CreatedAt)
			if err != nil {
				return fmt.Errorf("upsert response q%d: %w", row.QuestionID, err)
			}
		}
		return nil
	})
}
