package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"eq-assessment-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches question bank content from a backing store (e.g., Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
}

// BankRepository caches question banks in Redis (three hashes per bank) and
// falls back to a loader on cache miss.
// Pillars are stored as:   HSET bank:{bankID}:pillars   {questionID} {pillar}
// Texts are stored as:     HSET bank:{bankID}:texts     {questionID} {text}
// Positions are stored as: HSET bank:{bankID}:positions {questionID} {position}
// so a rebuild restores the loader's catalog order, not ID order.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	pillarKey := r.pillarsKey(bankID)
	textKey := r.textsKey(bankID)
	positionKey := r.positionsKey(bankID)

	pillars, err := r.client.HGetAll(ctx, pillarKey).Result()
	if err == nil && len(pillars) > 0 {
		texts, _ := r.client.HGetAll(ctx, textKey).Result()
		positions, _ := r.client.HGetAll(ctx, positionKey).Result()
		return buildBankFromCache(bankID, pillars, texts, positions), nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		pillars, err := r.client.HGetAll(ctx, pillarKey).Result()
		if err == nil && len(pillars) > 0 {
			texts, _ := r.client.HGetAll(ctx, textKey).Result()
			positions, _ := r.client.HGetAll(ctx, positionKey).Result()
			return buildBankFromCache(bankID, pillars, texts, positions), nil
		}

		bank, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return domain.QuestionBank{}, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for i, q := range bank.Questions {
			field := strconv.Itoa(q.ID)
			pipe.HSet(ctx, pillarKey, field, string(q.Pillar))
			pipe.HSet(ctx, textKey, field, q.Text)
			pipe.HSet(ctx, positionKey, field, i)
		}
		if ttl > 0 {
			pipe.Expire(ctx, pillarKey, ttl)
			pipe.Expire(ctx, textKey, ttl)
			pipe.Expire(ctx, positionKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return bank, nil
	})
	if err != nil {
		return domain.QuestionBank{}, err
	}
	return result.(domain.QuestionBank), nil
}

func (r *BankRepository) pillarsKey(bankID string) string {
	return "bank:" + bankID + ":pillars"
}

func (r *BankRepository) textsKey(bankID string) string {
	return "bank:" + bankID + ":texts"
}

func (r *BankRepository) positionsKey(bankID string) string {
	return "bank:" + bankID + ":positions"
}

func buildBankFromCache(bankID string, pillars, texts, positions map[string]string) domain.QuestionBank {
	questions := make([]domain.Question, 0, len(pillars))
	order := make(map[int]int, len(pillars))
	for field, pillar := range pillars {
		id, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		// Banks cached before positions were stored fall back to ID order.
		position := id
		if raw, ok := positions[field]; ok {
			if p, err := strconv.Atoi(raw); err == nil {
				position = p
			}
		}
		order[id] = position
		questions = append(questions, domain.Question{
			ID:     id,
			Text:   strings.TrimSpace(texts[field]),
			Pillar: domain.Pillar(pillar),
		})
	}
	// Hash iteration order is arbitrary; restore the catalog order.
	sort.Slice(questions, func(i, j int) bool { return order[questions[i].ID] < order[questions[j].ID] })
	return domain.QuestionBank{ID: bankID, Questions: questions}
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
