package service

import (
	"context"
	"fmt"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// CategoryService administers the question categories. Deleting a category
// cascades to its questions.
type CategoryService struct {
	categories store.CategoryStore
	questions  store.QuestionStore
}

func NewCategoryService(categories store.CategoryStore, questions store.QuestionStore) *CategoryService {
	return &CategoryService{categories: categories, questions: questions}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name, description, createdBy string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", models.ErrMalformedInput)
	}
	category := &models.Category{
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.Category) error {
	existing, err := s.categories.FindByID(ctx, category.ID)
	if err != nil {
		return err
	}
	// The counter is owned by the question service, never by the caller.
	category.QuestionCount = existing.QuestionCount
	return s.categories.Update(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.questions.DeleteByCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to cascade delete questions: %w", err)
	}
	return s.categories.Delete(ctx, id)
}
