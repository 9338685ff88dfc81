package app_test

import (
	"math"
	"testing"

	"eq-assessment-service/internal/app"
	"eq-assessment-service/internal/domain"
)

const tolerance = 1e-9

func TestAggregateFullBankPerfect(t *testing.T) {
	bank := domain.DefaultBank()
	responses := make(map[int]int, len(bank.Questions))
	for _, q := range bank.Questions {
		responses[q.ID] = 100
	}

	pillars, total := app.Aggregate(responses, bank.Questions)

	for _, p := range domain.Pillars() {
		if math.Abs(pillars[p]-100) > tolerance {
			t.Fatalf("pillar %s = %v, want 100", p, pillars[p])
		}
	}
	if total != 500 {
		t.Fatalf("total = %d, want 500", total)
	}
}

func TestAggregateAllZero(t *testing.T) {
	bank := domain.DefaultBank()
	responses := make(map[int]int, len(bank.Questions))
	for _, q := range bank.Questions {
		responses[q.ID] = 0
	}

	pillars, total := app.Aggregate(responses, bank.Questions)

	for _, p := range domain.Pillars() {
		if pillars[p] != 0 {
			t.Fatalf("pillar %s = %v, want 0", p, pillars[p])
		}
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
}

// A partially answered assessment under-reports only the unanswered pillars;
// answered pillars are independent per-pillar sums.
func TestAggregateSinglePillar(t *testing.T) {
	bank := domain.DefaultBank()
	responses := make(map[int]int)
	for _, q := range bank.Questions {
		if q.Pillar == domain.PillarSelfAwareness {
			responses[q.ID] = 60
		}
	}

	pillars, total := app.Aggregate(responses, bank.Questions)

	if math.Abs(pillars[domain.PillarSelfAwareness]-60) > tolerance {
		t.Fatalf("self_awareness = %v, want 60", pillars[domain.PillarSelfAwareness])
	}
	for _, p := range domain.Pillars() {
		if p == domain.PillarSelfAwareness {
			continue
		}
		if pillars[p] != 0 {
			t.Fatalf("pillar %s = %v, want 0", p, pillars[p])
		}
	}
	if total != 60 {
		t.Fatalf("total = %d, want 60", total)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	bank := domain.DefaultBank()
	responses := map[int]int{1: 37, 2: 88, 4: 12, 7: 99, 10: 55, 13: 1}

	first, firstTotal := app.Aggregate(responses, bank.Questions)
	second, secondTotal := app.Aggregate(responses, bank.Questions)

	if firstTotal != secondTotal {
		t.Fatalf("totals differ: %d vs %d", firstTotal, secondTotal)
	}
	for _, p := range domain.Pillars() {
		if first[p] != second[p] {
			t.Fatalf("pillar %s differs: %v vs %v", p, first[p], second[p])
		}
	}
}

// Float addition is not associative, so the accumulation order must be the
// bank's stable order rather than map iteration order. Three addends in one
// pillar would otherwise drift in the last bit across calls; two would not,
// since two-float addition commutes exactly.
func TestAggregateBitIdenticalAcrossCalls(t *testing.T) {
	questions := []domain.Question{
		{ID: 1, Pillar: domain.PillarSelfAwareness},
		{ID: 2, Pillar: domain.PillarSelfAwareness},
		{ID: 3, Pillar: domain.PillarSelfAwareness},
	}
	responses := map[int]int{1: 1, 2: 1, 3: 3}

	first, firstTotal := app.Aggregate(responses, questions)
	for i := 0; i < 5000; i++ {
		again, total := app.Aggregate(responses, questions)
		if total != firstTotal {
			t.Fatalf("iteration %d: total %d vs %d", i, total, firstTotal)
		}
		for _, p := range domain.Pillars() {
			if again[p] != first[p] {
				t.Fatalf("iteration %d: pillar %s drifted %.17g vs %.17g", i, p, again[p], first[p])
			}
		}
	}
}

func TestAggregateIgnoresUnknownQuestions(t *testing.T) {
	bank := domain.DefaultBank()
	responses := map[int]int{1: 50, 999: 100}

	pillars, total := app.Aggregate(responses, bank.Questions)

	withoutStray, totalWithout := app.Aggregate(map[int]int{1: 50}, bank.Questions)
	if total != totalWithout {
		t.Fatalf("stray question changed total: %d vs %d", total, totalWithout)
	}
	for _, p := range domain.Pillars() {
		if pillars[p] != withoutStray[p] {
			t.Fatalf("stray question changed pillar %s: %v vs %v", p, pillars[p], withoutStray[p])
		}
	}
}

func TestAggregateRange(t *testing.T) {
	bank := domain.DefaultBank()
	responses := make(map[int]int, len(bank.Questions))
	for i, q := range bank.Questions {
		responses[q.ID] = (i * 37) % 101
	}

	pillars, total := app.Aggregate(responses, bank.Questions)

	for _, p := range domain.Pillars() {
		if pillars[p] < 0 || pillars[p] > 100 {
			t.Fatalf("pillar %s = %v out of [0,100]", p, pillars[p])
		}
	}
	if total < 0 || total > 500 {
		t.Fatalf("total = %d out of [0,500]", total)
	}
}

// The per-pillar weight comes from the bank composition, not a hardcoded
// divisor; a two-question pillar weighs each answer at 50. With answers 33
// and 34 the accumulator lands exactly on 33.5, pinning the half-up rule.
func TestAggregateWeightFromBankComposition(t *testing.T) {
	questions := []domain.Question{
		{ID: 1, Pillar: domain.PillarSelfAwareness},
		{ID: 2, Pillar: domain.PillarSelfAwareness},
	}
	responses := map[int]int{1: 33, 2: 34}

	pillars, total := app.Aggregate(responses, questions)

	if math.Abs(pillars[domain.PillarSelfAwareness]-33.5) > tolerance {
		t.Fatalf("accumulator = %v, want 33.5", pillars[domain.PillarSelfAwareness])
	}
	if got := app.RoundScore(pillars[domain.PillarSelfAwareness]); got != 34 {
		t.Fatalf("persisted pillar rounds to %d, want 34 (half-up)", got)
	}
	if total != 34 {
		t.Fatalf("total = %d, want 34", total)
	}
}

// The total is the rounded sum of the UNROUNDED accumulators. With every
// pillar summing to 50/3 the independently rounded pillars add to 85 while
// the true sum rounds to 83; the total must track the true sum.
func TestTotalRoundsUnroundedSum(t *testing.T) {
	bank := domain.DefaultBank()
	perPillarValues := []int{20, 15, 15}
	responses := make(map[int]int, len(bank.Questions))
	seen := make(map[domain.Pillar]int)
	for _, q := range bank.Questions {
		responses[q.ID] = perPillarValues[seen[q.Pillar]]
		seen[q.Pillar]++
	}

	pillars, total := app.Aggregate(responses, bank.Questions)

	sumRounded := 0
	for _, p := range domain.Pillars() {
		sumRounded += app.RoundScore(pillars[p])
	}
	if sumRounded != 85 {
		t.Fatalf("sum of rounded pillars = %d, want 85", sumRounded)
	}
	if total != 83 {
		t.Fatalf("total = %d, want 83 (round of unrounded sum)", total)
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{49.4, 49},
		{49.5, 50},
		{100, 100},
		{104.9, 100},
	}
	for _, c := range cases {
		if got := app.ClampScore(c.in); got != c.want {
			t.Fatalf("ClampScore(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
