package store

import (
	"context"
	"testing"
	"time"

	"assessment-service/internal/models"
)

func activeSession(t *testing.T, sessions *MemorySessions) *models.QuizSession {
	t.Helper()
	s := &models.QuizSession{
		UserID: "user-1",
		Questions: []models.Question{
			{CategoryID: models.CategoryAptitude, Text: "q", Options: []string{"a", "b"}, CorrectOption: 0},
		},
		Answers:   []int{models.UnansweredSlot},
		StartTime: time.Now(),
		Status:    models.SessionActive,
	}
	if err := sessions.Create(context.Background(), s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return s
}

func TestSessionCompleteIsCheckAndSet(t *testing.T) {
	sessions := NewMemory().Sessions()
	ctx := context.Background()
	s := activeSession(t, sessions)

	if err := sessions.Complete(ctx, s.ID, []int{0}, time.Now()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// A second completion loses the race by definition.
	if err := sessions.Complete(ctx, s.ID, []int{1}, time.Now()); err != models.ErrConcurrencyConflict {
		t.Errorf("Expected ErrConcurrencyConflict, got %v", err)
	}

	reloaded, err := sessions.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reloaded.Answers[0] != 0 {
		t.Errorf("Expected first completion's answers to stick, got %v", reloaded.Answers)
	}
}

func TestSaveAnswerIsCheckAndSet(t *testing.T) {
	sessions := NewMemory().Sessions()
	ctx := context.Background()
	s := activeSession(t, sessions)

	if err := sessions.SaveAnswer(ctx, s.ID, 0, 0); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := sessions.Complete(ctx, s.ID, []int{0}, time.Now()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// A write that lost the race against completion must not touch the
	// frozen answers.
	if err := sessions.SaveAnswer(ctx, s.ID, 0, 1); err != models.ErrSessionNotActive {
		t.Errorf("Expected ErrSessionNotActive, got %v", err)
	}

	reloaded, err := sessions.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reloaded.Answers[0] != 0 {
		t.Errorf("Expected frozen answer 0, got %d", reloaded.Answers[0])
	}
}

func TestMarkAbandonedRequiresActiveSession(t *testing.T) {
	sessions := NewMemory().Sessions()
	ctx := context.Background()
	s := activeSession(t, sessions)

	if err := sessions.Complete(ctx, s.ID, []int{0}, time.Now()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := sessions.MarkAbandoned(ctx, s.ID, time.Now()); err != models.ErrConcurrencyConflict {
		t.Errorf("Expected ErrConcurrencyConflict, got %v", err)
	}
}

func TestFindActiveByUser(t *testing.T) {
	sessions := NewMemory().Sessions()
	ctx := context.Background()
	s := activeSession(t, sessions)

	found, err := sessions.FindActiveByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found.ID != s.ID {
		t.Errorf("Expected session %s, got %s", s.ID, found.ID)
	}

	if err := sessions.Complete(ctx, s.ID, []int{0}, time.Now()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := sessions.FindActiveByUser(ctx, "user-1"); err != models.ErrNotFound {
		t.Errorf("Expected ErrNotFound after completion, got %v", err)
	}
}

func TestSessionReadsAreCopies(t *testing.T) {
	sessions := NewMemory().Sessions()
	ctx := context.Background()
	s := activeSession(t, sessions)

	first, err := sessions.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	first.Answers[0] = 1
	first.Questions[0].Options[0] = "mutated"

	second, err := sessions.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if second.Answers[0] != models.UnansweredSlot {
		t.Errorf("Expected stored answers untouched, got %v", second.Answers)
	}
	if second.Questions[0].Options[0] != "a" {
		t.Errorf("Expected stored options untouched, got %v", second.Questions[0].Options)
	}
}

func TestConsumeCreditClaimsExactlyOne(t *testing.T) {
	payments := NewMemory().Payments()
	ctx := context.Background()

	p := &models.Payment{UserID: "user-1", Amount: 9.99, Status: models.PaymentCompleted, CreatedAt: time.Now()}
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claimed, err := payments.ConsumeCredit(ctx, "user-1", "session-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if claimed.QuizSessionID != "session-1" {
		t.Errorf("Expected claim for session-1, got %q", claimed.QuizSessionID)
	}
	if _, err := payments.ConsumeCredit(ctx, "user-1", "session-2"); err != models.ErrPaymentRequired {
		t.Errorf("Expected ErrPaymentRequired, got %v", err)
	}
}

func TestPendingPaymentIsNotACredit(t *testing.T) {
	payments := NewMemory().Payments()
	ctx := context.Background()

	p := &models.Payment{UserID: "user-1", Amount: 9.99, Status: models.PaymentPending, CreatedAt: time.Now()}
	if err := payments.Create(ctx, p); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := payments.FindAvailableByUser(ctx, "user-1"); err != models.ErrNotFound {
		t.Errorf("Expected ErrNotFound for pending payment, got %v", err)
	}
}
