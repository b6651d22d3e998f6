package cache

import (
	"context"
	"testing"
	"time"

	"assessment-service/internal/models"
	"assessment-service/internal/store"

	"github.com/redis/go-redis/v9"
)

// deadRedis points at a port nothing listens on, so every cache call fails
// and the decorators must fall through to the inner store.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func seedInner(t *testing.T) *store.Memory {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	for _, id := range models.DefaultCategoryIDs {
		c := models.Category{ID: id, Name: models.CategoryNames[id]}
		if err := mem.Categories().Create(ctx, &c); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	q := models.Question{
		CategoryID:    models.CategoryAptitude,
		Text:          "2 + 2?",
		Options:       []string{"3", "4"},
		CorrectOption: 1,
		Difficulty:    models.DifficultyEasy,
	}
	if err := mem.Questions().Create(ctx, &q); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return mem
}

func TestQuestionReadsFallThroughWhenRedisDown(t *testing.T) {
	mem := seedInner(t)
	cached := NewQuestionStore(mem.Questions(), deadRedis(), DefaultTTL)
	ctx := context.Background()

	questions, err := cached.List(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("Expected 1 question from the inner store, got %d", len(questions))
	}

	byCategory, err := cached.FindByCategory(ctx, models.CategoryAptitude)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(byCategory) != 1 {
		t.Errorf("Expected 1 question for the category, got %d", len(byCategory))
	}
}

func TestQuestionWritesReachInnerStoreWhenRedisDown(t *testing.T) {
	mem := seedInner(t)
	cached := NewQuestionStore(mem.Questions(), deadRedis(), DefaultTTL)
	ctx := context.Background()

	q := models.Question{
		CategoryID:    models.CategoryLogicalReasoning,
		Text:          "All A are B; all B are C; so?",
		Options:       []string{"All A are C", "No A are C"},
		CorrectOption: 0,
		Difficulty:    models.DifficultyMedium,
	}
	if err := cached.Create(ctx, &q); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, err := cached.FindByCategory(ctx, models.CategoryLogicalReasoning)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != q.ID {
		t.Errorf("Expected the created question in the inner store, got %v", stored)
	}

	if err := cached.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := cached.FindByID(ctx, q.ID); err != models.ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategoryStoreFallsThroughWhenRedisDown(t *testing.T) {
	mem := seedInner(t)
	cached := NewCategoryStore(mem.Categories(), deadRedis(), DefaultTTL)
	ctx := context.Background()

	categories, err := cached.List(ctx)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(categories) != len(models.DefaultCategoryIDs) {
		t.Errorf("Expected %d categories, got %d", len(models.DefaultCategoryIDs), len(categories))
	}

	if err := cached.AdjustQuestionCount(ctx, models.CategoryAptitude, 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	category, err := cached.FindByID(ctx, models.CategoryAptitude)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if category.QuestionCount != 1 {
		t.Errorf("Expected question count 1, got %d", category.QuestionCount)
	}
}

func TestInnerStoreErrorsPropagate(t *testing.T) {
	mem := store.NewMemory()
	cached := NewQuestionStore(mem.Questions(), deadRedis(), DefaultTTL)

	if _, err := cached.FindByID(context.Background(), "missing"); err != models.ErrNotFound {
		t.Errorf("Expected ErrNotFound from the inner store, got %v", err)
	}
}
