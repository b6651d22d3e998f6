package models

import (
	"errors"
	"fmt"
)

// Domain errors. Every rejected transition surfaces one of these verbatim;
// callers decide what to do (redirect to payment, show the count, lock the
// screen). None are retried automatically.
var (
	ErrPaymentRequired      = errors.New("no available quiz credit for user")
	ErrNoQuestionsAvailable = errors.New("no questions available for the requested categories")
	ErrInvalidQuestionIndex = errors.New("question or option index out of range")
	ErrSecurityViolation    = errors.New("session locked by security violation")
	ErrSessionNotActive     = errors.New("quiz session is not active")
	ErrMalformedInput       = errors.New("malformed input")
	ErrConcurrencyConflict  = errors.New("conflicting concurrent update")
	ErrNotFound             = errors.New("not found")
)

// IncompleteAnswersError rejects a manual submission that still has unset
// answer slots. Timer-forced submission bypasses this check.
type IncompleteAnswersError struct {
	Missing int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("%d questions unanswered", e.Missing)
}
