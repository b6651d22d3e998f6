package service

import (
	"context"
	"fmt"

	"assessment-service/internal/models"
	"assessment-service/internal/scoring"
	"assessment-service/internal/store"
)

// QuestionService administers the question bank and keeps each category's
// questionCount equal to the number of questions referencing it.
type QuestionService struct {
	questions  store.QuestionStore
	categories store.CategoryStore
}

func NewQuestionService(questions store.QuestionStore, categories store.CategoryStore) *QuestionService {
	return &QuestionService{questions: questions, categories: categories}
}

func (s *QuestionService) GetQuestions(ctx context.Context) ([]models.Question, error) {
	return s.questions.List(ctx)
}

func (s *QuestionService) GetQuestionsByCategory(ctx context.Context, categoryID string) ([]models.Question, error) {
	return s.questions.FindByCategory(ctx, categoryID)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.questions.FindByID(ctx, id)
}

func validateQuestion(q *models.Question) error {
	if q.Text == "" {
		return fmt.Errorf("question text is required: %w", models.ErrMalformedInput)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("at least 2 options required: %w", models.ErrMalformedInput)
	}
	if scoring.GradableCategories[q.CategoryID] {
		if !q.HasCorrectOption() {
			return fmt.Errorf("correct option is required for category %s: %w", q.CategoryID, models.ErrMalformedInput)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return fmt.Errorf("correct option out of range: %w", models.ErrMalformedInput)
		}
	} else {
		// Profiling categories have no correct answer.
		q.CorrectOption = models.NoCorrectOption
	}
	switch q.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fmt.Errorf("unknown difficulty %q: %w", q.Difficulty, models.ErrMalformedInput)
	}
	return nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := validateQuestion(question); err != nil {
		return err
	}
	if _, err := s.categories.FindByID(ctx, question.CategoryID); err != nil {
		return fmt.Errorf("category %s: %w", question.CategoryID, err)
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return err
	}
	return s.categories.AdjustQuestionCount(ctx, question.CategoryID, 1)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, question *models.Question) error {
	if err := validateQuestion(question); err != nil {
		return err
	}
	existing, err := s.questions.FindByID(ctx, question.ID)
	if err != nil {
		return err
	}
	if err := s.questions.Update(ctx, question); err != nil {
		return err
	}
	// Moving a question between categories shifts both counters.
	if existing.CategoryID != question.CategoryID {
		if err := s.categories.AdjustQuestionCount(ctx, existing.CategoryID, -1); err != nil {
			return err
		}
		return s.categories.AdjustQuestionCount(ctx, question.CategoryID, 1)
	}
	return nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	existing, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}
	return s.categories.AdjustQuestionCount(ctx, existing.CategoryID, -1)
}
