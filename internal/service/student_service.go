package service

import (
	"context"

	"assessment-service/internal/models"
	"assessment-service/internal/store"
)

// StudentService reads and updates self-reported student profiles.
type StudentService struct {
	students store.StudentStore
}

func NewStudentService(students store.StudentStore) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.students.FindByID(ctx, id)
}

func (s *StudentService) GetStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	return s.students.Create(ctx, student)
}

func (s *StudentService) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Student, error) {
	return s.students.UpdateProfile(ctx, id, update)
}
