package app

import (
	"math"

	"eq-assessment-service/internal/domain"
)

// Aggregate converts raw per-question responses into the five pillar
// accumulators and the rounded total. Each answered question contributes
// (raw/100) * (100/questionsPerPillar) to its pillar, so a fully answered
// pillar tops out at 100 and the total at 500. Responses referencing
// question ids absent from the bank are ignored.
//
// Pillar scores are returned unrounded; the total is round(sum of the
// unrounded accumulators). Rounding of individual pillars happens at the
// persistence boundary (see RoundScore), not here.
func Aggregate(responses map[int]int, questions []domain.Question) (domain.PillarScores, int) {
	perPillar := make(map[domain.Pillar]int)
	for _, q := range questions {
		perPillar[q.Pillar]++
	}

	scores := make(domain.PillarScores, len(domain.Pillars()))
	for _, p := range domain.Pillars() {
		scores[p] = 0
	}

	// Accumulate in the bank's stable order, never map order: float addition
	// is not associative, and repeat calls must be bit-identical.
	for _, q := range questions {
		raw, ok := responses[q.ID]
		if !ok {
			continue
		}
		weight := 100.0 / float64(perPillar[q.Pillar])
		scores[q.Pillar] += float64(raw) / 100.0 * weight
	}

	var sum float64
	for _, p := range domain.Pillars() {
		sum += scores[p]
	}
	return scores, RoundScore(sum)
}

// RoundScore pins the rounding rule for scores to half-away-from-zero
// (half-up for the non-negative values this service produces). Both the
// total and the persisted per-pillar values go through it.
func RoundScore(v float64) int {
	return int(math.Round(v))
}

// ClampScore normalizes a raw slider value into the persistable [0,100] range.
func ClampScore(v float64) int {
	rounded := RoundScore(v)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
