package service

import (
	"context"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// ResultService reads the append-only result history. Results are written
// only by the session manager's finalize path.
type ResultService struct {
	results store.ResultStore
}

func NewResultService(results store.ResultStore) *ResultService {
	return &ResultService{results: results}
}

func (s *ResultService) GetResult(ctx context.Context, id string) (*models.QuizResult, error) {
	return s.results.FindByID(ctx, id)
}

func (s *ResultService) GetResultsByUser(ctx context.Context, userID string) ([]models.QuizResult, error) {
	return s.results.FindByUser(ctx, userID)
}

func (s *ResultService) GetAllResults(ctx context.Context) ([]models.QuizResult, error) {
	return s.results.List(ctx)
}
