package app

import (
	"math/rand"
	"sync"
	"time"

	"eq-assessment-service/internal/domain"
)

// Session is the in-memory state of one user's assessment run: the shuffled
// question order, the answers recorded so far, and the cursor position.
// The shuffle happens exactly once, at session creation, so revisiting or
// reconnecting mid-assessment never reorders the remaining questions.
type Session struct {
	id        string
	createdAt time.Time
	now       func() time.Time

	mu          sync.RWMutex
	order       []domain.Question
	responses   map[int]int
	index       int
	complete    bool
	submitting  bool
	subscribers map[chan domain.ProgressSnapshot]struct{}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, questions []domain.Question) *Session {
	return newSessionWithClock(id, questions, time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionWithClock is test-only for deterministic timestamps and ordering.
func NewSessionWithClock(id string, questions []domain.Question, now func() time.Time, rnd *rand.Rand) *Session {
	return newSessionWithClock(id, questions, now, rnd)
}

func newSessionWithClock(id string, questions []domain.Question, now func() time.Time, rnd *rand.Rand) *Session {
	order := make([]domain.Question, len(questions))
	copy(order, questions)
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &Session{
		id:          id,
		createdAt:   now(),
		now:         now,
		order:       order,
		responses:   make(map[int]int),
		subscribers: make(map[chan domain.ProgressSnapshot]struct{}),
	}
}

// respond records a clamped answer for the current question and advances the
// cursor. Without prior interaction the default slider position is rejected;
// a question that already has a recorded answer may be re-confirmed as-is.
func (s *Session) respond(value float64, interacted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.ErrSubmissionInFlight
	}
	if s.complete {
		return domain.ErrAssessmentComplete
	}

	q := s.order[s.index]
	if _, answered := s.responses[q.ID]; !answered && !interacted {
		return domain.ErrInteractionRequired
	}

	s.responses[q.ID] = ClampScore(value)
	if s.index+1 < len(s.order) {
		s.index++
	} else {
		s.complete = true
	}
	s.broadcastLocked()
	return nil
}

// previous steps the cursor back one question without discarding anything.
// At the first question it is a no-op; from the completed state it reopens
// the last question.
func (s *Session) previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return domain.ErrSubmissionInFlight
	}
	if s.complete {
		s.complete = false
	} else if s.index > 0 {
		s.index--
	}
	s.broadcastLocked()
	return nil
}

// beginSubmit acquires the single-flight submission guard and hands back a
// copy of the recorded answers.
func (s *Session) beginSubmit() (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return nil, domain.ErrSubmissionInFlight
	}
	if !s.complete {
		return nil, domain.ErrAssessmentIncomplete
	}
	s.submitting = true

	responses := make(map[int]int, len(s.responses))
	for id, score := range s.responses {
		responses[id] = score
	}
	return responses, nil
}

// endSubmit releases the guard after a failed attempt so the user can retry.
func (s *Session) endSubmit() {
	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
}

// finishSubmit releases the guard and pushes the result to subscribers.
func (s *Session) finishSubmit(result domain.AssessmentResult) {
	s.mu.Lock()
	s.submitting = false
	snap := s.snapshotLocked()
	snap.Result = &result
	for ch := range s.subscribers {
		deliverLocked(ch, snap)
	}
	s.mu.Unlock()
}

func (s *Session) subscribe() (<-chan domain.ProgressSnapshot, func()) {
	ch := make(chan domain.ProgressSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		deliverLocked(ch, snap)
	}
}

// deliverLocked drops the stalest buffered update when a subscriber is slow,
// so one stuck client cannot block progress broadcasts.
func deliverLocked(ch chan domain.ProgressSnapshot, snap domain.ProgressSnapshot) {
	select {
	case ch <- snap:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Session) snapshotLocked() domain.ProgressSnapshot {
	return domain.ProgressSnapshot{
		UserID:    s.id,
		Index:     s.index,
		Total:     len(s.order),
		Answered:  len(s.responses),
		Complete:  s.complete,
		UpdatedAt: s.now(),
	}
}

func (s *Session) view() QuestionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := QuestionView{
		Index:    s.index,
		Total:    len(s.order),
		Complete: s.complete,
	}
	if !s.complete {
		q := s.order[s.index]
		view.Question = q
		view.StoredValue, view.Answered = s.responses[q.ID]
	}
	return view
}

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.complete
}
