package domain

import (
	"time"

	"github.com/google/uuid"
)

// Pillar names one of the five emotional-intelligence dimensions.
type Pillar string

const (
	PillarSelfAwareness  Pillar = "self_awareness"
	PillarSelfRegulation Pillar = "self_regulation"
	PillarMotivation     Pillar = "motivation"
	PillarEmpathy        Pillar = "empathy"
	PillarSocialSkills   Pillar = "social_skills"
)

// Pillars returns every pillar in display order.
func Pillars() []Pillar {
	return []Pillar{
		PillarSelfAwareness,
		PillarSelfRegulation,
		PillarMotivation,
		PillarEmpathy,
		PillarSocialSkills,
	}
}

// Question is a single assessment item, tagged with the pillar it measures.
type Question struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Pillar Pillar `json:"pillar"`
}

// QuestionBank is the ordered catalog of assessment items.
type QuestionBank struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// UserContext carries the authenticated user through the submission call
// chain. It is always passed explicitly, never read from ambient state.
type UserContext struct {
	UserID uuid.UUID
}

// Authenticated reports whether the context carries a real user id.
func (u UserContext) Authenticated() bool {
	return u.UserID != uuid.Nil
}

// ResponseRow is the durable form of a single answer. Exactly one row exists
// per (UserID, QuestionID); retakes overwrite it.
type ResponseRow struct {
	UserID     uuid.UUID `json:"userId"`
	QuestionID int       `json:"questionId"`
	Score      int       `json:"score"`
	Pillar     string    `json:"pillar"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PillarScores holds the unrounded per-pillar accumulators.
type PillarScores map[Pillar]float64

// AssessmentResult is the immutable outcome of a completed assessment.
// PillarScores are unrounded; rounding happens at the persistence and
// display boundaries.
type AssessmentResult struct {
	UserID       uuid.UUID    `json:"userId"`
	PillarScores PillarScores `json:"pillarScores"`
	TotalScore   int          `json:"totalScore"`
	CompletedAt  time.Time    `json:"completedAt"`
}

// ProgressSnapshot is a point-in-time view of an in-flight assessment,
// broadcast to session subscribers after every answer or navigation step.
type ProgressSnapshot struct {
	UserID    string            `json:"userId"`
	Index     int               `json:"index"`
	Total     int               `json:"total"`
	Answered  int               `json:"answered"`
	Complete  bool              `json:"complete"`
	Result    *AssessmentResult `json:"result,omitempty"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
