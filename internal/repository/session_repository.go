package repository

import (
	"context"
	"fmt"
	"time"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("sessions")}
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) FindActiveByUser(ctx context.Context, userID string) (*models.QuizSession, error) {
	var session models.QuizSession
	err := r.Col.FindOne(ctx, bson.M{
		"user_id": userID,
		"status":  models.SessionActive,
	}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, session)
	return err
}

// SaveAnswer matches only while the session is still active, the same
// check-and-set as Complete, so an answer racing a timer-forced submission
// can never mutate a frozen session.
func (r *SessionRepository) SaveAnswer(ctx context.Context, id string, questionIndex, optionIndex int) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.SessionActive},
		bson.M{"$set": bson.M{fmt.Sprintf("answers.%d", questionIndex): optionIndex}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrSessionNotActive
	}
	return nil
}

// Complete is the check-and-set that guarantees one submission per session:
// the filter matches only while the session is still active.
func (r *SessionRepository) Complete(ctx context.Context, id string, answers []int, endTime time.Time) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.SessionActive},
		bson.M{"$set": bson.M{
			"status":   models.SessionCompleted,
			"answers":  answers,
			"end_time": endTime,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrConcurrencyConflict
	}
	return nil
}

func (r *SessionRepository) MarkViolation(ctx context.Context, id string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"security_violation": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) MarkAbandoned(ctx context.Context, id string, endTime time.Time) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.SessionActive},
		bson.M{"$set": bson.M{
			"status":   models.SessionAbandoned,
			"end_time": endTime,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrConcurrencyConflict
	}
	return nil
}
