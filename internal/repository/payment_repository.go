package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository struct {
	Col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{Col: db.Collection("payments")}
}

// availableCredit matches a completed payment that no session has consumed.
func availableCredit(userID string) bson.M {
	return bson.M{
		"user_id": userID,
		"status":  models.PaymentCompleted,
		"$or": []bson.M{
			{"quiz_session_id": bson.M{"$exists": false}},
			{"quiz_session_id": ""},
		},
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, payment)
	return err
}

func (r *PaymentRepository) FindByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	cursor, err := r.Col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	cursor, err := r.Col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) FindAvailableByUser(ctx context.Context, userID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Col.FindOne(ctx, availableCredit(userID)).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ConsumeCredit claims one credit with a single conditional update, so two
// racing starts can never both consume the same payment.
func (r *PaymentRepository) ConsumeCredit(ctx context.Context, userID, sessionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Col.FindOneAndUpdate(ctx,
		availableCredit(userID),
		bson.M{"$set": bson.M{"quiz_session_id": sessionID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrPaymentRequired
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
