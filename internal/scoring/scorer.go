// Package scoring grades a completed question set. Only the objectively
// gradable categories count toward the score; personality and interest
// questions are informational.
package scoring

import (
	"math"

	"assessment-service/internal/models"
)

// GradableCategories are the categories with an objectively correct option.
var GradableCategories = map[string]bool{
	models.CategoryAptitude:             true,
	models.CategoryLogicalReasoning:     true,
	models.CategorySituationalJudgement: true,
}

// Score computes round(correct/gradable*100) over the gradable questions.
// A set with no gradable questions scores 0 by definition. Pure: identical
// inputs always yield the identical result.
func Score(questions []models.Question, answers []int) (int, error) {
	if len(answers) != len(questions) {
		return 0, models.ErrMalformedInput
	}

	gradable := 0
	correct := 0
	for i, q := range questions {
		if !GradableCategories[q.CategoryID] {
			continue
		}
		gradable++
		if answers[i] != models.UnansweredSlot && answers[i] == q.CorrectOption {
			correct++
		}
	}

	if gradable == 0 {
		return 0, nil
	}
	return int(math.Round(float64(correct) / float64(gradable) * 100)), nil
}

// CategoryAccuracy returns per-category correct and total counts for the
// gradable categories present in the set. The feedback synthesizer turns
// these into strength and weak-area labels.
func CategoryAccuracy(questions []models.Question, answers []int) (map[string][2]int, error) {
	if len(answers) != len(questions) {
		return nil, models.ErrMalformedInput
	}

	accuracy := make(map[string][2]int)
	for i, q := range questions {
		if !GradableCategories[q.CategoryID] {
			continue
		}
		counts := accuracy[q.CategoryID]
		counts[1]++
		if answers[i] != models.UnansweredSlot && answers[i] == q.CorrectOption {
			counts[0]++
		}
		accuracy[q.CategoryID] = counts
	}
	return accuracy, nil
}
