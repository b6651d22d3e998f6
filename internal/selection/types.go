package selection

import "assessment-service/internal/models"

const (
	// DefaultQuestionsPerCategory caps the standard draw at 2 per category.
	DefaultQuestionsPerCategory = 2
	// DefaultMaxQuestions caps the standard quiz at 10 questions total.
	DefaultMaxQuestions = 10
)

// Criteria describes which questions to draw for a new session.
//
// With no SelectedCategories the selector draws up to
// DefaultQuestionsPerCategory from each of the five fixed categories in
// ascending category-id order. With SelectedCategories and a Distribution it
// apportions MaxQuestions across the categories by percentage. Percentages
// are validated where the quiz product is created, not here.
type Criteria struct {
	SelectedCategories []string
	Distribution       []models.CategoryPercentage
	MaxQuestions       int
}

func (c Criteria) maxQuestions() int {
	if c.MaxQuestions > 0 {
		return c.MaxQuestions
	}
	return DefaultMaxQuestions
}
