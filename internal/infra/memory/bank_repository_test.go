package memory

import (
	"context"
	"testing"
	"time"

	"eq-assessment-service/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewDefaultBankLoader(),
	}
	repo := NewBankRepository(loader, time.Minute)

	if _, err := repo.GetBank(context.Background(), domain.DefaultBankID); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetBank(context.Background(), domain.DefaultBankID); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticBankLoaderUnknownBank(t *testing.T) {
	loader := NewDefaultBankLoader()
	if _, err := loader.LoadBank(context.Background(), "nope"); err != domain.ErrBankNotFound {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestDefaultBankComposition(t *testing.T) {
	bank := domain.DefaultBank()
	if len(bank.Questions) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(bank.Questions))
	}
	perPillar := make(map[domain.Pillar]int)
	for _, q := range bank.Questions {
		perPillar[q.Pillar]++
	}
	for _, p := range domain.Pillars() {
		if perPillar[p] != 3 {
			t.Fatalf("pillar %s has %d questions, want 3", p, perPillar[p])
		}
	}
}

type countingLoader struct {
	BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, bankID)
}
