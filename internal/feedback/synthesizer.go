// Package feedback derives the strengths/weak-areas/career report from a
// scored session and the student's self-reported profile. Everything here is
// table-driven and deterministic; adding a category means adding table rows,
// not code.
package feedback

import (
	"sort"
	"strings"

	"assessment-service/internal/models"
	"assessment-service/internal/scoring"
)

// categoryLabels maps each gradable category to its strength and weak-area
// labels. A category at or above strengthThreshold contributes the strength
// label, below it the weak-area label.
var categoryLabels = map[string]struct {
	Strength string
	WeakArea string
}{
	models.CategoryAptitude: {
		Strength: "Strong analytical and numerical aptitude",
		WeakArea: "Numerical and analytical reasoning",
	},
	models.CategoryLogicalReasoning: {
		Strength: "Clear logical reasoning",
		WeakArea: "Logical reasoning",
	},
	models.CategorySituationalJudgement: {
		Strength: "Sound practical judgement",
		WeakArea: "Situational judgement",
	},
}

const strengthThreshold = 0.5

// personalityClauses maps a chosen option index on a personality question to
// a summary clause. Unlisted indices contribute nothing.
var personalityClauses = map[int]string{
	0: "You come across as outgoing and energized by working with others.",
	2: "You take a reflective, considered approach before acting.",
	3: "You take a reflective, considered approach before acting.",
}

const defaultSummary = "Your responses show a balanced personality across the traits we measure."

// performanceCareers suggests careers for each gradable category the student
// performed well in.
var performanceCareers = map[string][]string{
	models.CategoryAptitude:             {"Engineering", "Data Analysis"},
	models.CategoryLogicalReasoning:     {"Software Engineering", "Systems Analysis"},
	models.CategorySituationalJudgement: {"Management", "Consulting"},
}

// personalityCareers suggests careers from response patterns on personality
// questions, keyed by chosen option index.
var personalityCareers = map[int][]string{
	0: {"Sales", "Teaching"},
	2: {"Scientific Research", "Technical Writing"},
	3: {"Scientific Research", "Technical Writing"},
}

// interestCareers suggests careers from response patterns on subject-interest
// questions, keyed by chosen option index.
var interestCareers = map[int][]string{
	0: {"Medicine", "Laboratory Science"},
	1: {"Graphic Design", "Creative Arts"},
	2: {"Business Management", "Finance"},
	3: {"Software Engineering", "Quality Assurance"},
}

// interestKeywords maps substrings of self-reported interests to careers.
var interestKeywords = []struct {
	Keyword string
	Career  string
}{
	{"Technology", "Software Engineering"},
	{"Science", "Scientific Research"},
	{"Math", "Data Analysis"},
	{"Art", "Graphic Design"},
	{"Business", "Business Management"},
	{"Writing", "Technical Writing"},
}

const maxCareerSuggestions = 5

// Synthesize builds the feedback report. Empty lists are valid output; the
// only error is a length mismatch between answers and questions, which
// signals a bug upstream.
func Synthesize(questions []models.Question, answers []int, profile *models.StudentProfile) (*models.Feedback, error) {
	accuracy, err := scoring.CategoryAccuracy(questions, answers)
	if err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		Strengths:         []string{},
		WeakAreas:         []string{},
		CareerSuggestions: []string{},
	}

	careers := newDedupList(maxCareerSuggestions)

	// Gradable categories in ascending id order for stable output.
	categoryIDs := make([]string, 0, len(accuracy))
	for id := range accuracy {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Strings(categoryIDs)

	for _, id := range categoryIDs {
		counts := accuracy[id]
		labels, ok := categoryLabels[id]
		if !ok {
			continue
		}
		fraction := float64(counts[0]) / float64(counts[1])
		if fraction >= strengthThreshold {
			fb.Strengths = append(fb.Strengths, labels.Strength)
			careers.addAll(performanceCareers[id])
		} else {
			fb.WeakAreas = append(fb.WeakAreas, labels.WeakArea)
		}
	}

	fb.PersonalitySummary = summarizePersonality(questions, answers)

	for i, q := range questions {
		if answers[i] == models.UnansweredSlot {
			continue
		}
		switch q.CategoryID {
		case models.CategoryPersonality:
			careers.addAll(personalityCareers[answers[i]])
		case models.CategorySubjectInterest:
			careers.addAll(interestCareers[answers[i]])
		}
	}

	if profile != nil {
		fb.Strengths = mergeUnique(fb.Strengths, profile.Strengths)
		fb.WeakAreas = mergeUnique(fb.WeakAreas, profile.WeakSubjects)
		for _, interest := range profile.Interests {
			for _, kw := range interestKeywords {
				if strings.Contains(interest, kw.Keyword) {
					careers.add(kw.Career)
				}
			}
		}
	}

	fb.CareerSuggestions = careers.items
	return fb, nil
}

// summarizePersonality concatenates the clauses triggered by the pattern of
// selected options on personality questions. Correctness plays no part;
// these questions have no correct answer.
func summarizePersonality(questions []models.Question, answers []int) string {
	var clauses []string
	seen := make(map[string]bool)
	for i, q := range questions {
		if q.CategoryID != models.CategoryPersonality || answers[i] == models.UnansweredSlot {
			continue
		}
		clause, ok := personalityClauses[answers[i]]
		if !ok || seen[clause] {
			continue
		}
		seen[clause] = true
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return defaultSummary
	}
	return strings.Join(clauses, " ")
}

// mergeUnique appends extras not already present, case-sensitively,
// preserving order.
func mergeUnique(base, extras []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extras {
		if !seen[s] {
			seen[s] = true
			base = append(base, s)
		}
	}
	return base
}

// dedupList accumulates unique strings in first-seen order up to a cap.
type dedupList struct {
	items []string
	seen  map[string]bool
	limit int
}

func newDedupList(limit int) *dedupList {
	return &dedupList{items: []string{}, seen: make(map[string]bool), limit: limit}
}

func (l *dedupList) add(s string) {
	if len(l.items) >= l.limit || l.seen[s] {
		return
	}
	l.seen[s] = true
	l.items = append(l.items, s)
}

func (l *dedupList) addAll(items []string) {
	for _, s := range items {
		l.add(s)
	}
}
