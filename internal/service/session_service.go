package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"assessment-service/internal/event"
	"assessment-service/internal/feedback"
	"assessment-service/internal/models"
	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"
	"assessment-service/internal/store"
)

// SessionDuration is the wall-clock limit per attempt. When it expires the
// session is force-submitted with whatever answers were recorded.
const SessionDuration = 30 * time.Minute

// SessionService owns the quiz-attempt lifecycle: NoSession -> Active ->
// Completed, plus the Abandoned terminal state when expiry hits a session
// whose security latch is already tripped.
//
// StartQuiz and credit consumption form one critical section per user, so
// two racing starts can never both claim a user's single credit. Manual and
// timer-forced submission funnel through the same finalize path, guarded by
// a check-and-set on session status in the store, so at most one QuizResult
// exists per session.
type SessionService struct {
	sessions store.SessionStore
	results  store.ResultStore
	payments *PaymentService
	selector *selection.Selector
	events   *event.Publisher

	duration time.Duration

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
	timers    map[string]*time.Timer
}

func NewSessionService(
	sessions store.SessionStore,
	results store.ResultStore,
	payments *PaymentService,
	selector *selection.Selector,
	events *event.Publisher,
	duration time.Duration,
) *SessionService {
	if duration <= 0 {
		duration = SessionDuration
	}
	return &SessionService{
		sessions:  sessions,
		results:   results,
		payments:  payments,
		selector:  selector,
		events:    events,
		duration:  duration,
		userLocks: make(map[string]*sync.Mutex),
		timers:    make(map[string]*time.Timer),
	}
}

func (s *SessionService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// StartQuiz opens a session for the user: requires an available credit,
// draws the question set, snapshots it onto the session, consumes the
// credit and arms the expiry timer.
func (s *SessionService) StartQuiz(
	ctx context.Context,
	userID string,
	profile *models.StudentProfile,
	criteria selection.Criteria,
) (*models.QuizSession, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if existing, err := s.sessions.FindActiveByUser(ctx, userID); err == nil && existing != nil {
		return nil, fmt.Errorf("user already has active session %s: %w", existing.ID, models.ErrConcurrencyConflict)
	} else if err != nil && err != models.ErrNotFound {
		return nil, err
	}

	available, err := s.payments.HasAvailableCredit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, models.ErrPaymentRequired
	}

	questions, err := s.selector.Select(ctx, criteria)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.ErrNoQuestionsAvailable
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = models.UnansweredSlot
	}

	session := &models.QuizSession{
		UserID:    userID,
		Questions: questions,
		Answers:   answers,
		Profile:   profile,
		StartTime: time.Now(),
		Status:    models.SessionActive,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if _, err := s.payments.ConsumeCredit(ctx, userID, session.ID); err != nil {
		// A concurrent start claimed the last credit between the check and
		// the consume. The fresh session never becomes visible as active.
		_ = s.sessions.MarkAbandoned(ctx, session.ID, time.Now())
		return nil, err
	}

	s.armTimer(session.ID, userID)

	s.events.Publish(event.SessionStarted, map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
		"questions":  len(questions),
	})
	return session, nil
}

// RecordAnswer stores the option chosen for one question. Last write wins
// per index; the user can revisit questions in any order.
func (s *SessionService) RecordAnswer(ctx context.Context, sessionID string, questionIndex, optionIndex int) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.SecurityViolation {
		return models.ErrSecurityViolation
	}
	if !session.IsActive() {
		return models.ErrSessionNotActive
	}
	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return models.ErrInvalidQuestionIndex
	}
	if optionIndex < 0 || optionIndex >= len(session.Questions[questionIndex].Options) {
		return models.ErrInvalidQuestionIndex
	}
	return s.sessions.SaveAnswer(ctx, sessionID, questionIndex, optionIndex)
}

// SubmitQuiz grades the session and produces its result. Every slot must be
// answered; a partial submission is rejected with the count of unanswered
// questions and the session stays open.
func (s *SessionService) SubmitQuiz(ctx context.Context, sessionID string, answers []int) (*models.QuizResult, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(session.UserID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock; the timer may have fired in between.
	session, err = s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.SecurityViolation {
		return nil, models.ErrSecurityViolation
	}
	if !session.IsActive() {
		return nil, models.ErrSessionNotActive
	}
	if len(answers) != len(session.Questions) {
		return nil, models.ErrMalformedInput
	}

	missing := 0
	for _, a := range answers {
		if a == models.UnansweredSlot {
			missing++
		}
	}
	if missing > 0 {
		return nil, &models.IncompleteAnswersError{Missing: missing}
	}

	return s.finalize(ctx, session, answers)
}

// finalize runs the scorer and feedback synthesizer, persists the result and
// completes the session. Callers hold the user lock.
func (s *SessionService) finalize(ctx context.Context, session *models.QuizSession, answers []int) (*models.QuizResult, error) {
	score, err := scoring.Score(session.Questions, answers)
	if err != nil {
		return nil, err
	}
	fb, err := feedback.Synthesize(session.Questions, answers, session.Profile)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.sessions.Complete(ctx, session.ID, answers, now); err != nil {
		return nil, err
	}
	s.disarmTimer(session.ID)

	result := &models.QuizResult{
		UserID:         session.UserID,
		QuizSessionID:  session.ID,
		Score:          score,
		TotalQuestions: len(session.Questions),
		CompletedAt:    now,
		Feedback:       *fb,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	s.events.Publish(event.SessionCompleted, map[string]interface{}{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"result_id":  result.ID,
		"score":      score,
	})
	return result, nil
}

// ReportHidden trips the security latch for an active session. The latch is
// one-way: once set, RecordAnswer and SubmitQuiz are refused for good and
// the user is directed to support.
func (s *SessionService) ReportHidden(ctx context.Context, sessionID string) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsActive() {
		return models.ErrSessionNotActive
	}
	if session.SecurityViolation {
		return nil
	}
	return s.sessions.MarkViolation(ctx, sessionID)
}

// GetSecurityStatus is the caller-facing view of the latch.
func (s *SessionService) GetSecurityStatus(ctx context.Context, sessionID string) models.SecurityStatus {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return models.SecurityStatus{IsSecure: false, Message: "No active quiz session"}
	}
	if session.SecurityViolation {
		return models.SecurityStatus{IsSecure: false, Message: "Quiz session has been compromised"}
	}
	if session.IsCompleted() {
		return models.SecurityStatus{IsSecure: false, Message: "Quiz has already been completed"}
	}
	if !session.IsActive() {
		return models.SecurityStatus{IsSecure: false, Message: "Quiz session is no longer active"}
	}
	return models.SecurityStatus{IsSecure: true}
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	return s.sessions.FindByID(ctx, sessionID)
}

func (s *SessionService) armTimer(sessionID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[sessionID] = time.AfterFunc(s.duration, func() {
		s.expire(sessionID, userID)
	})
}

func (s *SessionService) disarmTimer(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[sessionID]; ok {
		t.Stop()
		delete(s.timers, sessionID)
	}
}

// expire force-submits a session whose time ran out, accepting partial
// answers; unanswered slots never match a correct option and score as
// incorrect. A session with a tripped latch cannot complete and becomes
// abandoned instead. The credit is not refunded in either case.
func (s *SessionService) expire(sessionID, userID string) {
	ctx := context.Background()

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		log.Printf("expire: session %s: %v", sessionID, err)
		return
	}
	if !session.IsActive() {
		return
	}

	if session.SecurityViolation {
		if err := s.sessions.MarkAbandoned(ctx, sessionID, time.Now()); err != nil {
			log.Printf("expire: abandon session %s: %v", sessionID, err)
			return
		}
		s.disarmTimer(sessionID)
		s.events.Publish(event.SessionAbandoned, map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		})
		return
	}

	if _, err := s.finalize(ctx, session, session.Answers); err != nil {
		log.Printf("expire: force submit session %s: %v", sessionID, err)
	}
}

// Shutdown stops all pending expiry timers.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
