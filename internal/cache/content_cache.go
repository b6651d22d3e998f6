// Package cache adds a short-TTL Redis read-through in front of the content
// stores. Content is read on every session start but edited rarely; 60
// seconds of staleness is acceptable for quiz assembly.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"assessment-service/internal/models"
	"assessment-service/internal/store"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 60 * time.Second

const (
	categoriesKey        = "content:categories"
	questionsKey         = "content:questions"
	questionsCategoryKey = "content:questions:category:"
)

// QuestionStore caches reads and invalidates on every write.
type QuestionStore struct {
	store.QuestionStore
	rdb *redis.Client
	ttl time.Duration
}

func NewQuestionStore(inner store.QuestionStore, rdb *redis.Client, ttl time.Duration) *QuestionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuestionStore{QuestionStore: inner, rdb: rdb, ttl: ttl}
}

func (s *QuestionStore) List(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if ok := getCached(ctx, s.rdb, questionsKey, &questions); ok {
		return questions, nil
	}
	questions, err := s.QuestionStore.List(ctx)
	if err != nil {
		return nil, err
	}
	setCached(ctx, s.rdb, questionsKey, questions, s.ttl)
	return questions, nil
}

func (s *QuestionStore) FindByCategory(ctx context.Context, categoryID string) ([]models.Question, error) {
	key := questionsCategoryKey + categoryID
	var questions []models.Question
	if ok := getCached(ctx, s.rdb, key, &questions); ok {
		return questions, nil
	}
	questions, err := s.QuestionStore.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	setCached(ctx, s.rdb, key, questions, s.ttl)
	return questions, nil
}

func (s *QuestionStore) Create(ctx context.Context, question *models.Question) error {
	if err := s.QuestionStore.Create(ctx, question); err != nil {
		return err
	}
	s.invalidate(ctx, question.CategoryID)
	return nil
}

func (s *QuestionStore) Update(ctx context.Context, question *models.Question) error {
	if err := s.QuestionStore.Update(ctx, question); err != nil {
		return err
	}
	// The question may have moved categories; drop every category key.
	s.invalidateAll(ctx)
	return nil
}

func (s *QuestionStore) Delete(ctx context.Context, id string) error {
	if err := s.QuestionStore.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *QuestionStore) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	n, err := s.QuestionStore.DeleteByCategory(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, categoryID)
	return n, nil
}

func (s *QuestionStore) invalidate(ctx context.Context, categoryID string) {
	s.rdb.Del(ctx, questionsKey, questionsCategoryKey+categoryID)
}

func (s *QuestionStore) invalidateAll(ctx context.Context) {
	keys := []string{questionsKey}
	for _, id := range models.DefaultCategoryIDs {
		keys = append(keys, questionsCategoryKey+id)
	}
	s.rdb.Del(ctx, keys...)
}

// CategoryStore caches the category list.
type CategoryStore struct {
	store.CategoryStore
	rdb *redis.Client
	ttl time.Duration
}

func NewCategoryStore(inner store.CategoryStore, rdb *redis.Client, ttl time.Duration) *CategoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CategoryStore{CategoryStore: inner, rdb: rdb, ttl: ttl}
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if ok := getCached(ctx, s.rdb, categoriesKey, &categories); ok {
		return categories, nil
	}
	categories, err := s.CategoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	setCached(ctx, s.rdb, categoriesKey, categories, s.ttl)
	return categories, nil
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	if err := s.CategoryStore.Create(ctx, category); err != nil {
		return err
	}
	s.rdb.Del(ctx, categoriesKey)
	return nil
}

func (s *CategoryStore) Update(ctx context.Context, category *models.Category) error {
	if err := s.CategoryStore.Update(ctx, category); err != nil {
		return err
	}
	s.rdb.Del(ctx, categoriesKey)
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	if err := s.CategoryStore.Delete(ctx, id); err != nil {
		return err
	}
	s.rdb.Del(ctx, categoriesKey)
	return nil
}

func (s *CategoryStore) AdjustQuestionCount(ctx context.Context, id string, delta int) error {
	if err := s.CategoryStore.AdjustQuestionCount(ctx, id, delta); err != nil {
		return err
	}
	s.rdb.Del(ctx, categoriesKey)
	return nil
}

// Cache misses and marshal failures fall through to the inner store; the
// cache never turns a readable store into an error.

func getCached(ctx context.Context, rdb *redis.Client, key string, out interface{}) bool {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func setCached(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	rdb.Set(ctx, key, data, ttl)
}
