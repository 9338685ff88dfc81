package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when an operation requires a user id
	// and the context carries none.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrEmptyBank indicates a loaded question bank has no items.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrSessionNotFound is returned when no assessment session exists for the user.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrInteractionRequired rejects an answer recorded without the user ever
	// touching the input; the default slider position is not a real answer.
	ErrInteractionRequired = errors.New("explicit interaction required before answering")
	// ErrAssessmentComplete is returned on answering after all questions are done.
	ErrAssessmentComplete = errors.New("assessment already complete")
	// ErrAssessmentIncomplete is returned on submitting before every question is answered.
	ErrAssessmentIncomplete = errors.New("assessment not complete")
	// ErrSubmissionInFlight rejects calls while a submission attempt is running.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrProfileNotFound indicates the user's profile row does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)
