package postgres

import (
	"context"
	"fmt"

	"eq-assessment-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question banks from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, text, pillar FROM questions WHERE bank_id=$1 ORDER BY position`, bankID)
	if err != nil {
		return domain.QuestionBank{}, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	bank := domain.QuestionBank{ID: bankID}
	for rows.Next() {
		var q domain.Question
		var pillar string
		if err := rows.Scan(&q.ID, &q.Text, &pillar); err != nil {
			return domain.QuestionBank{}, fmt.Errorf("scan question: %w", err)
		}
		q.Pillar = domain.Pillar(pillar)
		bank.Questions = append(bank.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return domain.QuestionBank{}, fmt.Errorf("load bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return domain.QuestionBank{}, domain.ErrBankNotFound
	}
	return bank, nil
}
