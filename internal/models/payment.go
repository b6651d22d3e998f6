package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment funds exactly one quiz session. A completed payment with no
// session id attached is an available credit; consuming it sets
// QuizSessionID exactly once.
type Payment struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	UserID        string    `bson:"user_id" json:"userId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	QuizSessionID string    `bson:"quiz_session_id,omitempty" json:"quizSessionId,omitempty"`
}

// IsAvailableCredit reports whether this payment can still fund a session.
func (p *Payment) IsAvailableCredit() bool {
	return p.Status == PaymentCompleted && p.QuizSessionID == ""
}
