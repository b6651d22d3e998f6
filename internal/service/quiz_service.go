package service

import (
	"context"
	"fmt"
	"time"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// QuizService administers the admin-created quiz products: a name, a price
// and a category distribution whose percentages must sum to 100.
type QuizService struct {
	quizzes store.QuizStore
}

func NewQuizService(quizzes store.QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

func validateDistribution(distribution []models.CategoryPercentage) error {
	if len(distribution) == 0 {
		return fmt.Errorf("category distribution is required: %w", models.ErrMalformedInput)
	}
	total := 0
	seen := make(map[string]bool)
	for _, d := range distribution {
		if d.Percentage <= 0 {
			return fmt.Errorf("percentage for category %s must be positive: %w", d.CategoryID, models.ErrMalformedInput)
		}
		if seen[d.CategoryID] {
			return fmt.Errorf("duplicate category %s in distribution: %w", d.CategoryID, models.ErrMalformedInput)
		}
		seen[d.CategoryID] = true
		total += d.Percentage
	}
	if total != 100 {
		return fmt.Errorf("distribution percentages sum to %d, want 100: %w", total, models.ErrMalformedInput)
	}
	return nil
}

func (s *QuizService) GetQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.quizzes.List(ctx)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.quizzes.FindByID(ctx, id)
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if quiz.Name == "" {
		return fmt.Errorf("quiz name is required: %w", models.ErrMalformedInput)
	}
	if err := validateDistribution(quiz.CategoryDistribution); err != nil {
		return err
	}
	now := time.Now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now
	return s.quizzes.Create(ctx, quiz)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quiz *models.Quiz) error {
	existing, err := s.quizzes.FindByID(ctx, quiz.ID)
	if err != nil {
		return err
	}
	if err := validateDistribution(quiz.CategoryDistribution); err != nil {
		return err
	}
	quiz.CreatedAt = existing.CreatedAt
	quiz.UpdatedAt = time.Now()
	return s.quizzes.Update(ctx, quiz)
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.quizzes.Delete(ctx, id)
}
