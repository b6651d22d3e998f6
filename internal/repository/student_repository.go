package repository

import (
	"context"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StudentRepository struct {
	Col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{Col: db.Collection("students")}
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	cursor, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, student)
	return err
}

func (r *StudentRepository) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Student, error) {
	set := bson.M{}
	if update.Age != nil {
		set["profile.age"] = *update.Age
	}
	if update.Interests != nil {
		set["profile.interests"] = *update.Interests
	}
	if update.Strengths != nil {
		set["profile.strengths"] = *update.Strengths
	}
	if update.WeakSubjects != nil {
		set["profile.weak_subjects"] = *update.WeakSubjects
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var student models.Student
	err := r.Col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}
