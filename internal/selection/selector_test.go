package selection

import (
	"context"
	"fmt"
	"testing"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// seedQuestions inserts n questions per listed category, in category order,
// so pool order inside a category is predictable.
func seedQuestions(t *testing.T, counts map[string]int) store.QuestionStore {
	t.Helper()
	questions := store.NewMemory().Questions()
	for _, categoryID := range models.DefaultCategoryIDs {
		for i := 0; i < counts[categoryID]; i++ {
			correct := 0
			if categoryID == models.CategoryPersonality || categoryID == models.CategorySubjectInterest {
				correct = models.NoCorrectOption
			}
			q := models.Question{
				CategoryID:    categoryID,
				Text:          fmt.Sprintf("category %s question %d", categoryID, i),
				Options:       []string{"a", "b", "c", "d"},
				CorrectOption: correct,
				Difficulty:    models.DifficultyMedium,
			}
			if err := questions.Create(context.Background(), &q); err != nil {
				t.Fatalf("Unexpected error seeding questions: %v", err)
			}
		}
	}
	return questions
}

func countByCategory(questions []models.Question) map[string]int {
	counts := make(map[string]int)
	for _, q := range questions {
		counts[q.CategoryID]++
	}
	return counts
}

func TestSelectDefaultDrawsTwoPerCategory(t *testing.T) {
	questions := seedQuestions(t, map[string]int{"1": 5, "2": 5, "3": 5, "4": 5, "5": 5})
	selector := NewSelector(questions)

	selected, err := selector.Select(context.Background(), Criteria{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(selected) != DefaultMaxQuestions {
		t.Fatalf("Expected %d questions, got %d", DefaultMaxQuestions, len(selected))
	}
	for categoryID, n := range countByCategory(selected) {
		if n != DefaultQuestionsPerCategory {
			t.Errorf("Expected %d questions for category %s, got %d", DefaultQuestionsPerCategory, categoryID, n)
		}
	}

	// Ascending category order, natural order within each category.
	expectedOrder := []string{"1", "1", "2", "2", "3", "3", "4", "4", "5", "5"}
	for i, q := range selected {
		if q.CategoryID != expectedOrder[i] {
			t.Errorf("Expected category %s at position %d, got %s", expectedOrder[i], i, q.CategoryID)
		}
	}
}

func TestSelectDefaultSkipsEmptyCategories(t *testing.T) {
	questions := seedQuestions(t, map[string]int{"1": 3, "2": 0, "3": 1, "4": 0, "5": 2})
	selector := NewSelector(questions)

	selected, err := selector.Select(context.Background(), Criteria{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	counts := countByCategory(selected)
	expected := map[string]int{"1": 2, "3": 1, "5": 2}
	for categoryID, n := range expected {
		if counts[categoryID] != n {
			t.Errorf("Expected %d questions for category %s, got %d", n, categoryID, counts[categoryID])
		}
	}
	if len(selected) != 5 {
		t.Errorf("Expected 5 questions total, got %d", len(selected))
	}
}

func TestSelectDefaultAllEmptyReturnsNothing(t *testing.T) {
	questions := seedQuestions(t, map[string]int{})
	selector := NewSelector(questions)

	selected, err := selector.Select(context.Background(), Criteria{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(selected) != 0 {
		t.Errorf("Expected empty selection, got %d questions", len(selected))
	}
}

func TestSelectDistributed(t *testing.T) {
	testCases := []struct {
		name         string
		counts       map[string]int
		criteria     Criteria
		expected     map[string]int
		expectedSize int
	}{
		{
			name:   "even split",
			counts: map[string]int{"1": 10, "2": 10},
			criteria: Criteria{
				SelectedCategories: []string{"1", "2"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 50},
					{CategoryID: "2", Percentage: 50},
				},
				MaxQuestions: 10,
			},
			expected:     map[string]int{"1": 5, "2": 5},
			expectedSize: 10,
		},
		{
			name:   "largest remainder settles uneven thirds",
			counts: map[string]int{"1": 10, "2": 10, "5": 10},
			criteria: Criteria{
				SelectedCategories: []string{"1", "2", "5"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 34},
					{CategoryID: "2", Percentage: 33},
					{CategoryID: "5", Percentage: 33},
				},
				MaxQuestions: 10,
			},
			// Floors are 3/3/3; the leftover slot goes to the largest
			// remainder, which is category 1 at 40 vs 30.
			expected:     map[string]int{"1": 4, "2": 3, "5": 3},
			expectedSize: 10,
		},
		{
			name:   "remainder tie breaks by ascending category id",
			counts: map[string]int{"1": 10, "2": 10},
			criteria: Criteria{
				SelectedCategories: []string{"2", "1"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 50},
					{CategoryID: "2", Percentage: 50},
				},
				MaxQuestions: 5,
			},
			expected:     map[string]int{"1": 3, "2": 2},
			expectedSize: 5,
		},
		{
			name:   "shortfall refilled from categories with spare questions",
			counts: map[string]int{"1": 2, "2": 10},
			criteria: Criteria{
				SelectedCategories: []string{"1", "2"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 50},
					{CategoryID: "2", Percentage: 50},
				},
				MaxQuestions: 10,
			},
			expected:     map[string]int{"1": 2, "2": 8},
			expectedSize: 10,
		},
		{
			name:   "total pool smaller than requested",
			counts: map[string]int{"1": 2, "2": 3},
			criteria: Criteria{
				SelectedCategories: []string{"1", "2"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 50},
					{CategoryID: "2", Percentage: 50},
				},
				MaxQuestions: 10,
			},
			expected:     map[string]int{"1": 2, "2": 3},
			expectedSize: 5,
		},
		{
			name:   "zero max questions falls back to default cap",
			counts: map[string]int{"1": 10, "2": 10},
			criteria: Criteria{
				SelectedCategories: []string{"1", "2"},
				Distribution: []models.CategoryPercentage{
					{CategoryID: "1", Percentage: 60},
					{CategoryID: "2", Percentage: 40},
				},
			},
			expected:     map[string]int{"1": 6, "2": 4},
			expectedSize: DefaultMaxQuestions,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			selector := NewSelector(seedQuestions(t, tc.counts))
			selected, err := selector.Select(context.Background(), tc.criteria)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if len(selected) != tc.expectedSize {
				t.Fatalf("Expected %d questions, got %d", tc.expectedSize, len(selected))
			}
			counts := countByCategory(selected)
			for categoryID, n := range tc.expected {
				if counts[categoryID] != n {
					t.Errorf("Expected %d questions for category %s, got %d", n, categoryID, counts[categoryID])
				}
			}
		})
	}
}

func TestSelectDistributedKeepsAscendingCategoryOrder(t *testing.T) {
	selector := NewSelector(seedQuestions(t, map[string]int{"1": 5, "2": 5, "5": 5}))

	selected, err := selector.Select(context.Background(), Criteria{
		SelectedCategories: []string{"5", "1", "2"},
		Distribution: []models.CategoryPercentage{
			{CategoryID: "1", Percentage: 40},
			{CategoryID: "2", Percentage: 30},
			{CategoryID: "5", Percentage: 30},
		},
		MaxQuestions: 10,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	last := ""
	for _, q := range selected {
		if q.CategoryID < last {
			t.Fatalf("Expected ascending category order, saw %s after %s", q.CategoryID, last)
		}
		last = q.CategoryID
	}
}

func TestLargestRemainderQuotas(t *testing.T) {
	quotas := largestRemainderQuotas(
		[]string{"1", "2", "5"},
		map[string]int{"1": 45, "2": 35, "5": 20},
		10,
	)
	// 4.5/3.5/2.0 floors to 4/3/2 leaving one slot; categories 1 and 2 tie on
	// remainder and the slot goes to the lower category id.
	expected := map[string]int{"1": 5, "2": 3, "5": 2}
	if quotas["1"] != expected["1"] || quotas["2"] != expected["2"] || quotas["5"] != expected["5"] {
		t.Errorf("Expected quotas %v, got %v", expected, quotas)
	}

	total := 0
	for _, q := range quotas {
		total += q
	}
	if total != 10 {
		t.Errorf("Expected quotas to sum to 10, got %d", total)
	}
}
