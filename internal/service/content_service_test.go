package service

import (
	"context"
	"errors"
	"testing"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

func newContentServices(t *testing.T) (*CategoryService, *QuestionService) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	for _, id := range models.DefaultCategoryIDs {
		c := models.Category{ID: id, Name: models.CategoryNames[id], CreatedBy: "admin"}
		if err := mem.Categories().Create(ctx, &c); err != nil {
			t.Fatalf("Unexpected error seeding categories: %v", err)
		}
	}
	return NewCategoryService(mem.Categories(), mem.Questions()),
		NewQuestionService(mem.Questions(), mem.Categories())
}

func TestValidateQuestion(t *testing.T) {
	testCases := []struct {
		name     string
		question models.Question
		wantErr  bool
	}{
		{
			name: "valid gradable question",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Text:          "2 + 2?",
				Options:       []string{"3", "4"},
				CorrectOption: 1,
				Difficulty:    models.DifficultyEasy,
			},
		},
		{
			name: "missing text",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Options:       []string{"3", "4"},
				CorrectOption: 1,
				Difficulty:    models.DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "too few options",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Text:          "2 + 2?",
				Options:       []string{"4"},
				CorrectOption: 0,
				Difficulty:    models.DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "correct option out of range",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Text:          "2 + 2?",
				Options:       []string{"3", "4"},
				CorrectOption: 2,
				Difficulty:    models.DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "gradable question missing correct option",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Text:          "2 + 2?",
				Options:       []string{"3", "4"},
				CorrectOption: models.NoCorrectOption,
				Difficulty:    models.DifficultyEasy,
			},
			wantErr: true,
		},
		{
			name: "unknown difficulty",
			question: models.Question{
				CategoryID:    models.CategoryAptitude,
				Text:          "2 + 2?",
				Options:       []string{"3", "4"},
				CorrectOption: 1,
				Difficulty:    "brutal",
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.question
			err := validateQuestion(&q)
			if tc.wantErr {
				if !errors.Is(err, models.ErrMalformedInput) {
					t.Errorf("Expected ErrMalformedInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidateQuestionForcesProfilingCategories(t *testing.T) {
	q := models.Question{
		CategoryID:    models.CategoryPersonality,
		Text:          "How do you recharge?",
		Options:       []string{"With people", "Alone"},
		CorrectOption: 1,
		Difficulty:    models.DifficultyEasy,
	}
	if err := validateQuestion(&q); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if q.CorrectOption != models.NoCorrectOption {
		t.Errorf("Expected correct option forced to %d, got %d", models.NoCorrectOption, q.CorrectOption)
	}
}

func TestQuestionCountTracksLifecycle(t *testing.T) {
	categories, questions := newContentServices(t)
	ctx := context.Background()

	q := models.Question{
		CategoryID:    models.CategoryAptitude,
		Text:          "2 + 2?",
		Options:       []string{"3", "4"},
		CorrectOption: 1,
		Difficulty:    models.DifficultyEasy,
	}
	if err := questions.CreateQuestion(ctx, &q); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	category, err := categories.GetCategory(ctx, models.CategoryAptitude)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if category.QuestionCount != 1 {
		t.Errorf("Expected question count 1, got %d", category.QuestionCount)
	}

	// Moving the question shifts both counters.
	q.CategoryID = models.CategoryLogicalReasoning
	if err := questions.UpdateQuestion(ctx, &q); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	category, _ = categories.GetCategory(ctx, models.CategoryAptitude)
	if category.QuestionCount != 0 {
		t.Errorf("Expected aptitude count 0 after move, got %d", category.QuestionCount)
	}
	category, _ = categories.GetCategory(ctx, models.CategoryLogicalReasoning)
	if category.QuestionCount != 1 {
		t.Errorf("Expected logical reasoning count 1 after move, got %d", category.QuestionCount)
	}

	if err := questions.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	category, _ = categories.GetCategory(ctx, models.CategoryLogicalReasoning)
	if category.QuestionCount != 0 {
		t.Errorf("Expected count 0 after delete, got %d", category.QuestionCount)
	}
}

func TestCreateQuestionUnknownCategory(t *testing.T) {
	_, questions := newContentServices(t)

	q := models.Question{
		CategoryID:    "99",
		Text:          "q",
		Options:       []string{"a", "b"},
		CorrectOption: models.NoCorrectOption,
		Difficulty:    models.DifficultyEasy,
	}
	if err := questions.CreateQuestion(context.Background(), &q); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown category, got %v", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	categories, questions := newContentServices(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q := models.Question{
			CategoryID:    models.CategoryAptitude,
			Text:          "q",
			Options:       []string{"a", "b"},
			CorrectOption: 0,
			Difficulty:    models.DifficultyEasy,
		}
		if err := questions.CreateQuestion(ctx, &q); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if err := categories.DeleteCategory(ctx, models.CategoryAptitude); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, err := categories.GetCategory(ctx, models.CategoryAptitude); err != models.ErrNotFound {
		t.Errorf("Expected ErrNotFound for deleted category, got %v", err)
	}
	remaining, err := questions.GetQuestionsByCategory(ctx, models.CategoryAptitude)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected cascade delete to remove questions, got %d left", len(remaining))
	}
}

func TestValidateDistribution(t *testing.T) {
	testCases := []struct {
		name         string
		distribution []models.CategoryPercentage
		wantErr      bool
	}{
		{
			name: "valid",
			distribution: []models.CategoryPercentage{
				{CategoryID: "1", Percentage: 60},
				{CategoryID: "2", Percentage: 40},
			},
		},
		{
			name:         "empty",
			distribution: nil,
			wantErr:      true,
		},
		{
			name: "does not sum to 100",
			distribution: []models.CategoryPercentage{
				{CategoryID: "1", Percentage: 60},
				{CategoryID: "2", Percentage: 30},
			},
			wantErr: true,
		},
		{
			name: "non-positive percentage",
			distribution: []models.CategoryPercentage{
				{CategoryID: "1", Percentage: 100},
				{CategoryID: "2", Percentage: 0},
			},
			wantErr: true,
		},
		{
			name: "duplicate category",
			distribution: []models.CategoryPercentage{
				{CategoryID: "1", Percentage: 50},
				{CategoryID: "1", Percentage: 50},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDistribution(tc.distribution)
			if tc.wantErr {
				if !errors.Is(err, models.ErrMalformedInput) {
					t.Errorf("Expected ErrMalformedInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCreateQuizSetsTimestamps(t *testing.T) {
	quizzes := NewQuizService(store.NewMemory().Quizzes())
	ctx := context.Background()

	quiz := models.Quiz{
		Name:  "Reasoning Deep Dive",
		Price: 35.0,
		CategoryDistribution: []models.CategoryPercentage{
			{CategoryID: "1", Percentage: 50},
			{CategoryID: "2", Percentage: 50},
		},
	}
	if err := quizzes.CreateQuiz(ctx, &quiz); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if quiz.ID == "" {
		t.Error("Expected quiz to get an id")
	}
	if quiz.CreatedAt.IsZero() || quiz.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}
