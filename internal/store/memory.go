package store

import (
	"context"
	"sync"
	"time"

	"assessment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory holds every store backed by in-process slices. It replaces the
// mock data layer of the original frontend in demo mode and backs the test
// suites. All methods copy on read and write so callers never share slices
// with the store.
type Memory struct {
	mu         sync.Mutex
	categories []models.Category
	questions  []models.Question
	sessions   []models.QuizSession
	payments   []models.Payment
	results    []models.QuizResult
	students   []models.Student
	quizzes    []models.Quiz
}

func NewMemory() *Memory {
	return &Memory{}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func copyQuestion(q models.Question) models.Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}

func copySession(s models.QuizSession) models.QuizSession {
	c := s
	c.Questions = make([]models.Question, len(s.Questions))
	for i, q := range s.Questions {
		c.Questions[i] = copyQuestion(q)
	}
	c.Answers = append([]int(nil), s.Answers...)
	if s.Profile != nil {
		p := *s.Profile
		c.Profile = &p
	}
	return c
}

// Each store is a typed view over the shared container so the views can
// reuse one method set name space and one lock.

type MemoryCategories struct{ m *Memory }

func (m *Memory) Categories() *MemoryCategories { return &MemoryCategories{m} }

func (s *MemoryCategories) List(ctx context.Context) ([]models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]models.Category(nil), s.m.categories...), nil
}

func (s *MemoryCategories) FindByID(ctx context.Context, id string) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, c := range s.m.categories {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryCategories) Create(ctx context.Context, category *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if category.ID == "" {
		category.ID = newID()
	}
	s.m.categories = append(s.m.categories, *category)
	return nil
}

func (s *MemoryCategories) Update(ctx context.Context, category *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, c := range s.m.categories {
		if c.ID == category.ID {
			s.m.categories[i] = *category
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryCategories) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, c := range s.m.categories {
		if c.ID == id {
			s.m.categories = append(s.m.categories[:i], s.m.categories[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryCategories) AdjustQuestionCount(ctx context.Context, id string, delta int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.categories {
		if s.m.categories[i].ID == id {
			s.m.categories[i].QuestionCount += delta
			return nil
		}
	}
	return models.ErrNotFound
}

// Questions

type MemoryQuestions struct{ m *Memory }

func (m *Memory) Questions() *MemoryQuestions { return &MemoryQuestions{m} }

func (s *MemoryQuestions) List(ctx context.Context) ([]models.Question, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Question, len(s.m.questions))
	for i, q := range s.m.questions {
		out[i] = copyQuestion(q)
	}
	return out, nil
}

func (s *MemoryQuestions) FindByID(ctx context.Context, id string) (*models.Question, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, q := range s.m.questions {
		if q.ID == id {
			out := copyQuestion(q)
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryQuestions) FindByCategory(ctx context.Context, categoryID string) ([]models.Question, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Question
	for _, q := range s.m.questions {
		if q.CategoryID == categoryID {
			out = append(out, copyQuestion(q))
		}
	}
	return out, nil
}

func (s *MemoryQuestions) Create(ctx context.Context, question *models.Question) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if question.ID == "" {
		question.ID = newID()
	}
	s.m.questions = append(s.m.questions, copyQuestion(*question))
	return nil
}

func (s *MemoryQuestions) Update(ctx context.Context, question *models.Question) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, q := range s.m.questions {
		if q.ID == question.ID {
			s.m.questions[i] = copyQuestion(*question)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryQuestions) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, q := range s.m.questions {
		if q.ID == id {
			s.m.questions = append(s.m.questions[:i], s.m.questions[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryQuestions) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var kept []models.Question
	var removed int64
	for _, q := range s.m.questions {
		if q.CategoryID == categoryID {
			removed++
			continue
		}
		kept = append(kept, q)
	}
	s.m.questions = kept
	return removed, nil
}

// Sessions

type MemorySessions struct{ m *Memory }

func (m *Memory) Sessions() *MemorySessions { return &MemorySessions{m} }

func (s *MemorySessions) FindByID(ctx context.Context, id string) (*models.QuizSession, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, sess := range s.m.sessions {
		if sess.ID == id {
			out := copySession(sess)
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemorySessions) FindActiveByUser(ctx context.Context, userID string) (*models.QuizSession, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, sess := range s.m.sessions {
		if sess.UserID == userID && sess.Status == models.SessionActive {
			out := copySession(sess)
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemorySessions) Create(ctx context.Context, session *models.QuizSession) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if session.ID == "" {
		session.ID = newID()
	}
	s.m.sessions = append(s.m.sessions, copySession(*session))
	return nil
}

func (s *MemorySessions) SaveAnswer(ctx context.Context, id string, questionIndex, optionIndex int) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.sessions {
		if s.m.sessions[i].ID == id {
			if s.m.sessions[i].Status != models.SessionActive {
				return models.ErrSessionNotActive
			}
			if questionIndex < 0 || questionIndex >= len(s.m.sessions[i].Answers) {
				return models.ErrInvalidQuestionIndex
			}
			s.m.sessions[i].Answers[questionIndex] = optionIndex
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemorySessions) Complete(ctx context.Context, id string, answers []int, endTime time.Time) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.sessions {
		if s.m.sessions[i].ID == id {
			if s.m.sessions[i].Status != models.SessionActive {
				return models.ErrConcurrencyConflict
			}
			s.m.sessions[i].Status = models.SessionCompleted
			s.m.sessions[i].Answers = append([]int(nil), answers...)
			s.m.sessions[i].EndTime = endTime
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemorySessions) MarkViolation(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.sessions {
		if s.m.sessions[i].ID == id {
			s.m.sessions[i].SecurityViolation = true
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemorySessions) MarkAbandoned(ctx context.Context, id string, endTime time.Time) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.sessions {
		if s.m.sessions[i].ID == id {
			if s.m.sessions[i].Status != models.SessionActive {
				return models.ErrConcurrencyConflict
			}
			s.m.sessions[i].Status = models.SessionAbandoned
			s.m.sessions[i].EndTime = endTime
			return nil
		}
	}
	return models.ErrNotFound
}

// Payments

type MemoryPayments struct{ m *Memory }

func (m *Memory) Payments() *MemoryPayments { return &MemoryPayments{m} }

func (s *MemoryPayments) Create(ctx context.Context, payment *models.Payment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if payment.ID == "" {
		payment.ID = newID()
	}
	s.m.payments = append(s.m.payments, *payment)
	return nil
}

func (s *MemoryPayments) FindByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Payment
	for _, p := range s.m.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryPayments) List(ctx context.Context) ([]models.Payment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]models.Payment(nil), s.m.payments...), nil
}

func (s *MemoryPayments) FindAvailableByUser(ctx context.Context, userID string) (*models.Payment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, p := range s.m.payments {
		if p.UserID == userID && p.IsAvailableCredit() {
			out := p
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryPayments) ConsumeCredit(ctx context.Context, userID, sessionID string) (*models.Payment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.payments {
		p := &s.m.payments[i]
		if p.UserID == userID && p.IsAvailableCredit() {
			p.QuizSessionID = sessionID
			out := *p
			return &out, nil
		}
	}
	return nil, models.ErrPaymentRequired
}

// Results

type MemoryResults struct{ m *Memory }

func (m *Memory) Results() *MemoryResults { return &MemoryResults{m} }

func (s *MemoryResults) Create(ctx context.Context, result *models.QuizResult) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if result.ID == "" {
		result.ID = newID()
	}
	s.m.results = append(s.m.results, *result)
	return nil
}

func (s *MemoryResults) FindByID(ctx context.Context, id string) (*models.QuizResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, r := range s.m.results {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryResults) FindByUser(ctx context.Context, userID string) ([]models.QuizResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.QuizResult
	for _, r := range s.m.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryResults) List(ctx context.Context) ([]models.QuizResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]models.QuizResult(nil), s.m.results...), nil
}

// Students

type MemoryStudents struct{ m *Memory }

func (m *Memory) Students() *MemoryStudents { return &MemoryStudents{m} }

func (s *MemoryStudents) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, st := range s.m.students {
		if st.ID == id {
			out := st
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryStudents) List(ctx context.Context) ([]models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]models.Student(nil), s.m.students...), nil
}

func (s *MemoryStudents) Create(ctx context.Context, student *models.Student) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if student.ID == "" {
		student.ID = newID()
	}
	s.m.students = append(s.m.students, *student)
	return nil
}

func (s *MemoryStudents) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.Student, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.students {
		if s.m.students[i].ID != id {
			continue
		}
		p := &s.m.students[i].Profile
		if update.Age != nil {
			p.Age = *update.Age
		}
		if update.Interests != nil {
			p.Interests = append([]string(nil), *update.Interests...)
		}
		if update.Strengths != nil {
			p.Strengths = append([]string(nil), *update.Strengths...)
		}
		if update.WeakSubjects != nil {
			p.WeakSubjects = append([]string(nil), *update.WeakSubjects...)
		}
		out := s.m.students[i]
		return &out, nil
	}
	return nil, models.ErrNotFound
}

// Quizzes

type MemoryQuizzes struct{ m *Memory }

func (m *Memory) Quizzes() *MemoryQuizzes { return &MemoryQuizzes{m} }

func (s *MemoryQuizzes) List(ctx context.Context) ([]models.Quiz, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return append([]models.Quiz(nil), s.m.quizzes...), nil
}

func (s *MemoryQuizzes) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, q := range s.m.quizzes {
		if q.ID == id {
			out := q
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryQuizzes) Create(ctx context.Context, quiz *models.Quiz) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if quiz.ID == "" {
		quiz.ID = newID()
	}
	s.m.quizzes = append(s.m.quizzes, *quiz)
	return nil
}

func (s *MemoryQuizzes) Update(ctx context.Context, quiz *models.Quiz) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, q := range s.m.quizzes {
		if q.ID == quiz.ID {
			s.m.quizzes[i] = *quiz
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *MemoryQuizzes) Delete(ctx context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i, q := range s.m.quizzes {
		if q.ID == id {
			s.m.quizzes = append(s.m.quizzes[:i], s.m.quizzes[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
