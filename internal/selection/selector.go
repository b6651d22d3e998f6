package selection

import (
	"context"
	"fmt"
	"sort"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// Selector builds the category-balanced question set for a session. It never
// errors on empty categories; those simply contribute nothing. A fully empty
// draw is the caller's signal to refuse the session.
type Selector struct {
	questions store.QuestionStore
}

func NewSelector(questions store.QuestionStore) *Selector {
	return &Selector{questions: questions}
}

// Select returns the ordered question set for the criteria. Order is
// ascending by category id, preserving each category's natural storage order
// within it.
func (s *Selector) Select(ctx context.Context, criteria Criteria) ([]models.Question, error) {
	if len(criteria.SelectedCategories) == 0 {
		return s.selectDefault(ctx)
	}
	return s.selectDistributed(ctx, criteria)
}

func (s *Selector) selectDefault(ctx context.Context) ([]models.Question, error) {
	selected := make([]models.Question, 0, DefaultMaxQuestions)
	for _, categoryID := range models.DefaultCategoryIDs {
		pool, err := s.questions.FindByCategory(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for category %s: %w", categoryID, err)
		}
		take := DefaultQuestionsPerCategory
		if take > len(pool) {
			take = len(pool)
		}
		selected = append(selected, pool[:take]...)
	}
	return selected, nil
}

// selectDistributed apportions criteria.MaxQuestions across the selected
// categories by percentage using the largest-remainder method: each category
// gets the floor of its exact share, and leftover slots go to the largest
// fractional remainders (ties broken by ascending category id). Categories
// whose pool is smaller than their quota contribute what they have; the
// shortfall is filled from categories with spare questions, in ascending
// category-id order.
func (s *Selector) selectDistributed(ctx context.Context, criteria Criteria) ([]models.Question, error) {
	categories := append([]string(nil), criteria.SelectedCategories...)
	sort.Strings(categories)

	percentages := make(map[string]int, len(criteria.Distribution))
	for _, d := range criteria.Distribution {
		percentages[d.CategoryID] = d.Percentage
	}

	pools := make(map[string][]models.Question, len(categories))
	for _, categoryID := range categories {
		pool, err := s.questions.FindByCategory(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions for category %s: %w", categoryID, err)
		}
		pools[categoryID] = pool
	}

	quotas := largestRemainderQuotas(categories, percentages, criteria.maxQuestions())

	taken := make(map[string]int, len(categories))
	total := 0
	for _, categoryID := range categories {
		take := quotas[categoryID]
		if take > len(pools[categoryID]) {
			take = len(pools[categoryID])
		}
		taken[categoryID] = take
		total += take
	}

	// Fill the shortfall from categories with spare questions.
	for _, categoryID := range categories {
		for total < criteria.maxQuestions() && taken[categoryID] < len(pools[categoryID]) {
			taken[categoryID]++
			total++
		}
	}

	selected := make([]models.Question, 0, total)
	for _, categoryID := range categories {
		selected = append(selected, pools[categoryID][:taken[categoryID]]...)
	}
	return selected, nil
}

func largestRemainderQuotas(categories []string, percentages map[string]int, total int) map[string]int {
	type share struct {
		categoryID string
		remainder  int // scaled by 100 to stay integral
	}

	quotas := make(map[string]int, len(categories))
	allocated := 0
	shares := make([]share, 0, len(categories))
	for _, categoryID := range categories {
		exact := percentages[categoryID] * total
		quotas[categoryID] = exact / 100
		allocated += exact / 100
		shares = append(shares, share{categoryID, exact % 100})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].categoryID < shares[j].categoryID
	})

	for i := 0; allocated < total && i < len(shares); i++ {
		quotas[shares[i].categoryID]++
		allocated++
	}
	return quotas
}
