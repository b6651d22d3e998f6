package service

import (
	"context"
	"time"

	"assessment-service/internal/event"
	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// Pricing. The standard profile-based quiz has a flat price; category-based
// quizzes are priced per selected category.
const (
	DefaultQuizPrice = 9.99
	BasePrice        = 15.0
	PricePerCategory = 10.0
)

// PaymentService is the payment gate: it records charges and hands out quiz
// credits. A credit is a completed payment with no session attached yet, and
// it funds exactly one session.
type PaymentService struct {
	payments store.PaymentStore
	events   *event.Publisher
}

func NewPaymentService(payments store.PaymentStore, events *event.Publisher) *PaymentService {
	return &PaymentService{payments: payments, events: events}
}

// PriceForCategories is the category-based quiz price:
// base + perCategory * selectedCount.
func PriceForCategories(selectedCount int) float64 {
	return BasePrice + PricePerCategory*float64(selectedCount)
}

// ProcessPayment records a completed charge for the user. There is no real
// processor behind this; the charge amount is taken at face value.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID string, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		amount = DefaultQuizPrice
	}
	payment := &models.Payment{
		UserID:    userID,
		Amount:    amount,
		Status:    models.PaymentCompleted,
		CreatedAt: time.Now(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	s.events.Publish(event.PaymentCompleted, map[string]interface{}{
		"payment_id": payment.ID,
		"user_id":    userID,
		"amount":     amount,
	})
	return payment, nil
}

// HasAvailableCredit reports whether the user holds an unconsumed completed
// payment.
func (s *PaymentService) HasAvailableCredit(ctx context.Context, userID string) (bool, error) {
	_, err := s.payments.FindAvailableByUser(ctx, userID)
	if err == models.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ConsumeCredit claims one available credit for the session. The claim is
// atomic in the store: two racing starts can never consume the same credit.
func (s *PaymentService) ConsumeCredit(ctx context.Context, userID, sessionID string) (*models.Payment, error) {
	return s.payments.ConsumeCredit(ctx, userID, sessionID)
}

func (s *PaymentService) GetPaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	return s.payments.FindByUser(ctx, userID)
}

func (s *PaymentService) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}
