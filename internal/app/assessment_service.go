package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eq-assessment-service/internal/domain"
)

// SessionRepository abstracts how assessment sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(userID string, questions []domain.Question) *Session
	Get(userID string) (*Session, bool)
	Delete(userID string)
}

// BankRepository loads the question bank (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
}

// ResponseRepository durably upserts raw answers keyed by (user, question).
type ResponseRepository interface {
	UpsertResponses(ctx context.Context, rows []domain.ResponseRow) error
}

// ProfileRepository writes the rounded aggregates onto the existing profile row.
type ProfileRepository interface {
	WriteScores(ctx context.Context, user domain.UserContext, pillars domain.PillarScores, total int) error
}

// AssessmentService contains the assessment use cases: walking the shuffled
// question sequence, aggregating a completed run, and the two-phase
// submission (raw responses first, profile aggregates second).
type AssessmentService struct {
	sessions  SessionRepository
	bank      BankRepository
	bankID    string
	responses ResponseRepository
	profiles  ProfileRepository
}

func NewAssessmentService(sessions SessionRepository, bank BankRepository, bankID string, responses ResponseRepository, profiles ProfileRepository) *AssessmentService {
	return &AssessmentService{
		sessions:  sessions,
		bank:      bank,
		bankID:    bankID,
		responses: responses,
		profiles:  profiles,
	}
}

// QuestionView is what the transport shows for the question at the cursor.
type QuestionView struct {
	Question    domain.Question `json:"question"`
	StoredValue int             `json:"storedValue"`
	Answered    bool            `json:"answered"`
	Index       int             `json:"index"`
	Total       int             `json:"total"`
	Complete    bool            `json:"complete"`
}

// Start opens (or resumes) the user's assessment session and returns the
// current question. The shuffle happens once, when the session is created.
func (s *AssessmentService) Start(ctx context.Context, user domain.UserContext) (QuestionView, error) {
	if !user.Authenticated() {
		return QuestionView{}, domain.ErrNotAuthenticated
	}

	bank, err := s.bank.GetBank(ctx, s.bankID)
	if err != nil {
		return QuestionView{}, err
	}
	if len(bank.Questions) == 0 {
		return QuestionView{}, domain.ErrEmptyBank
	}

	session := s.sessions.GetOrCreate(user.UserID.String(), bank.Questions)
	return session.view(), nil
}

// Answer records a value for the current question and advances the cursor.
func (s *AssessmentService) Answer(_ context.Context, user domain.UserContext, value float64, interacted bool) (QuestionView, error) {
	session, err := s.sessionFor(user)
	if err != nil {
		return QuestionView{}, err
	}
	if err := session.respond(value, interacted); err != nil {
		return QuestionView{}, err
	}
	return session.view(), nil
}

// Previous steps back one question, re-showing the stored answer.
func (s *AssessmentService) Previous(_ context.Context, user domain.UserContext) (QuestionView, error) {
	session, err := s.sessionFor(user)
	if err != nil {
		return QuestionView{}, err
	}
	if err := session.previous(); err != nil {
		return QuestionView{}, err
	}
	return session.view(), nil
}

// Submit runs the completed assessment through the two-phase write: raw
// responses are upserted first, and only after that durably succeeds are the
// rounded aggregates written to the profile. A failure at either phase
// releases the single-flight guard and leaves the attempt retryable; the
// upsert keying makes retries idempotent.
func (s *AssessmentService) Submit(ctx context.Context, user domain.UserContext) (domain.AssessmentResult, error) {
	if !user.Authenticated() {
		return domain.AssessmentResult{}, domain.ErrNotAuthenticated
	}
	session, ok := s.sessions.Get(user.UserID.String())
	if !ok {
		return domain.AssessmentResult{}, domain.ErrSessionNotFound
	}

	bank, err := s.bank.GetBank(ctx, s.bankID)
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	responses, err := session.beginSubmit()
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	rows := buildRows(user, responses, bank.Questions, session.now())
	if err := s.responses.UpsertResponses(ctx, rows); err != nil {
		session.endSubmit()
		return domain.AssessmentResult{}, fmt.Errorf("persist responses: %w", err)
	}

	pillars, total := Aggregate(responses, bank.Questions)
	if err := s.profiles.WriteScores(ctx, user, pillars, total); err != nil {
		session.endSubmit()
		return domain.AssessmentResult{}, fmt.Errorf("write profile scores: %w", err)
	}

	result := domain.AssessmentResult{
		UserID:       user.UserID,
		PillarScores: pillars,
		TotalScore:   total,
		CompletedAt:  session.now(),
	}
	session.finishSubmit(result)
	s.sessions.Delete(user.UserID.String())
	return result, nil
}

// Subscribe returns a channel that receives progress updates for the user's
// session. The caller must invoke the returned cancel function to avoid leaks.
func (s *AssessmentService) Subscribe(_ context.Context, user domain.UserContext) (<-chan domain.ProgressSnapshot, func(), error) {
	session, ok := s.sessions.Get(user.UserID.String())
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Abandon drops the user's in-flight session without persisting anything.
func (s *AssessmentService) Abandon(_ context.Context, user domain.UserContext) {
	s.sessions.Delete(user.UserID.String())
}

func (s *AssessmentService) sessionFor(user domain.UserContext) (*Session, error) {
	if !user.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	session, ok := s.sessions.Get(user.UserID.String())
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// buildRows turns the response map into durable rows: scores clamped into
// [0,100], pillar resolved from the bank (empty string when the id is
// unknown, never an error).
func buildRows(user domain.UserContext, responses map[int]int, questions []domain.Question, now time.Time) []domain.ResponseRow {
	byID := make(map[int]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	rows := make([]domain.ResponseRow, 0, len(responses))
	for questionID, score := range responses {
		pillar := ""
		if q, ok := byID[questionID]; ok {
			pillar = string(q.Pillar)
		}
		rows = append(rows, domain.ResponseRow{
			UserID:     user.UserID,
			QuestionID: questionID,
			Score:      ClampScore(float64(score)),
			Pillar:     pillar,
			CreatedAt:  now,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].QuestionID < rows[j].QuestionID })
	return rows
}
