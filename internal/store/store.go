// Package store defines the persistence interfaces the quiz engine depends
// on. MongoDB implementations live in internal/repository; an in-memory
// implementation below backs demo mode and the tests.
package store

import (
	"context"
	"time"

	"assessment-service/internal/models"
)

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	// AdjustQuestionCount moves the denormalized question counter by delta.
	AdjustQuestionCount(ctx context.Context, id string, delta int) error
}

type QuestionStore interface {
	List(ctx context.Context) ([]models.Question, error)
	FindByID(ctx context.Context, id string) (*models.Question, error)
	// FindByCategory returns questions in their natural storage order.
	FindByCategory(ctx context.Context, categoryID string) ([]models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}

type SessionStore interface {
	FindByID(ctx context.Context, id string) (*models.QuizSession, error)
	FindActiveByUser(ctx context.Context, userID string) (*models.QuizSession, error)
	Create(ctx context.Context, session *models.QuizSession) error
	// SaveAnswer writes one answer slot, last write wins. Like Complete it
	// matches only while the session is active; once the session leaves the
	// active state it yields models.ErrSessionNotActive so completed answers
	// stay frozen even when a write races the completion.
	SaveAnswer(ctx context.Context, id string, questionIndex, optionIndex int) error
	// Complete transitions active -> completed with the final answers. It is
	// a check-and-set: a session that is no longer active yields
	// models.ErrConcurrencyConflict so at most one submission wins.
	Complete(ctx context.Context, id string, answers []int, endTime time.Time) error
	// MarkViolation trips the one-way security latch.
	MarkViolation(ctx context.Context, id string) error
	MarkAbandoned(ctx context.Context, id string, endTime time.Time) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByUser(ctx context.Context, userID string) ([]models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	FindAvailableByUser(ctx context.Context, userID string) (*models.Payment, error)
	// ConsumeCredit atomically claims one available credit for the session.
	// models.ErrPaymentRequired when no credit matched, including when a
	// concurrent claim won the race.
	ConsumeCredit(ctx context.Context, userID, sessionID string) (*models.Payment, error)
}

type ResultStore interface {
	Create(ctx context.Context, result *models.QuizResult) error
	FindByID(ctx context.Context, id string) (*models.QuizResult, error)
	FindByUser(ctx context.Context, userID string) ([]models.QuizResult, error)
	List(ctx context.Context) ([]models.QuizResult, error)
}

type StudentStore interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Student, error)
}

type QuizStore interface {
	List(ctx context.Context) ([]models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
}
