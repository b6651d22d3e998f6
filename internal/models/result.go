package models

import "time"

// Feedback is the deterministic report derived from a scored session and the
// student's self-reported profile.
type Feedback struct {
	Strengths          []string `bson:"strengths" json:"strengths"`
	WeakAreas          []string `bson:"weak_areas" json:"weakAreas"`
	PersonalitySummary string   `bson:"personality_summary" json:"personalitySummary"`
	CareerSuggestions  []string `bson:"career_suggestions" json:"careerSuggestions"`
}

// QuizResult is created exactly once per completed session and is immutable
// thereafter.
type QuizResult struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	QuizSessionID  string    `bson:"quiz_session_id" json:"quizSessionId"`
	Score          int       `bson:"score" json:"score"`
	TotalQuestions int       `bson:"total_questions" json:"totalQuestions"`
	CompletedAt    time.Time `bson:"completed_at" json:"completedAt"`
	Feedback       Feedback  `bson:"feedback" json:"feedback"`
}
