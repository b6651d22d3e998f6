package models

import "time"

// Session statuses. A session is mutable only while active. Abandoned is
// reached when the expiry timer fires on a session whose security latch is
// already tripped; the funding credit is not refunded.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// UnansweredSlot is the sentinel stored for a question the user has not
// answered yet. It never matches a correct option.
const UnansweredSlot = -1

// QuizSession is one quiz attempt. Questions are a snapshot taken at start
// time so later edits to the question bank never affect grading. At most one
// active session exists per user.
type QuizSession struct {
	ID                string          `bson:"_id,omitempty" json:"id"`
	UserID            string          `bson:"user_id" json:"userId"`
	Questions         []Question      `bson:"questions" json:"questions"`
	Answers           []int           `bson:"answers" json:"answers"`
	Profile           *StudentProfile `bson:"profile,omitempty" json:"profile,omitempty"`
	StartTime         time.Time       `bson:"start_time" json:"startTime"`
	EndTime           time.Time       `bson:"end_time,omitempty" json:"endTime,omitempty"`
	Status            string          `bson:"status" json:"status"`
	SecurityViolation bool            `bson:"security_violation" json:"securityViolation"`
}

func (s *QuizSession) IsActive() bool {
	return s.Status == SessionActive
}

func (s *QuizSession) IsCompleted() bool {
	return s.Status == SessionCompleted
}

// UnansweredCount reports how many answer slots are still unset.
func (s *QuizSession) UnansweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a == UnansweredSlot {
			n++
		}
	}
	return n
}

// SecurityStatus is the caller-facing view of a session's security latch.
type SecurityStatus struct {
	IsSecure bool   `json:"isSecure"`
	Message  string `json:"message,omitempty"`
}
