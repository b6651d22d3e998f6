package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/config"
	"assessment-service/internal/db"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"
	"assessment-service/internal/store"
	"assessment-service/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	// Stores: MongoDB when configured, otherwise the in-memory demo backend.
	var (
		categoryStore store.CategoryStore
		questionStore store.QuestionStore
		sessionStore  store.SessionStore
		paymentStore  store.PaymentStore
		resultStore   store.ResultStore
		studentStore  store.StudentStore
		quizStore     store.QuizStore
	)
	if cfg.MongoDB.URI != "" {
		db.InitMongo(cfg.MongoDB.URI)
		database := db.Client.Database(cfg.MongoDB.Database)
		categoryStore = repository.NewCategoryRepository(database)
		questionStore = repository.NewQuestionRepository(database)
		sessionStore = repository.NewSessionRepository(database)
		paymentStore = repository.NewPaymentRepository(database)
		resultStore = repository.NewResultRepository(database)
		studentStore = repository.NewStudentRepository(database)
		quizStore = repository.NewQuizRepository(database)
	} else {
		log.Println("MONGO_URI not set, running with in-memory stores")
		mem := store.NewMemory()
		categoryStore = mem.Categories()
		questionStore = mem.Questions()
		sessionStore = mem.Sessions()
		paymentStore = mem.Payments()
		resultStore = mem.Results()
		studentStore = mem.Students()
		quizStore = mem.Quizzes()
	}

	// Short-TTL content cache in front of the category/question stores.
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		categoryStore = cache.NewCategoryStore(categoryStore, rdb, cfg.Quiz.ContentCacheTTL)
		questionStore = cache.NewQuestionStore(questionStore, rdb, cfg.Quiz.ContentCacheTTL)
	} else {
		log.Println("REDIS_ADDR not set, content cache disabled")
	}

	// RabbitMQ event publisher; nil drops events.
	var publisher *event.Publisher
	if cfg.RabbitMQ.URI != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Services
	paymentService := service.NewPaymentService(paymentStore, publisher)
	selector := selection.NewSelector(questionStore)
	sessionService := service.NewSessionService(
		sessionStore,
		resultStore,
		paymentService,
		selector,
		publisher,
		cfg.Quiz.SessionDuration,
	)
	defer sessionService.Shutdown()
	categoryService := service.NewCategoryService(categoryStore, questionStore)
	questionService := service.NewQuestionService(questionStore, categoryStore)
	quizService := service.NewQuizService(quizStore)
	resultService := service.NewResultService(resultStore)
	studentService := service.NewStudentService(studentStore)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(sessionService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)
	studentHandler := handlers.NewStudentHandler(studentService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": cfg.Server.ServiceName})
	})

	session := r.Group("/quiz/sessions")
	{
		session.POST("/", sessionHandler.StartQuiz)
		session.GET("/:id", sessionHandler.GetSession)
		session.POST("/:id/answers", sessionHandler.RecordAnswer)
		session.POST("/:id/submit", sessionHandler.SubmitQuiz)
		session.GET("/:id/security", sessionHandler.GetSecurityStatus)
		session.POST("/:id/violations", sessionHandler.ReportViolation)
	}

	payments := r.Group("/payments")
	{
		payments.POST("/", paymentHandler.ProcessPayment)
		payments.GET("/", paymentHandler.GetAllPayments)
		payments.GET("/mine", paymentHandler.GetMyPayments)
	}

	categories := r.Group("/categories")
	{
		categories.GET("/", categoryHandler.GetCategories)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.POST("/", categoryHandler.CreateCategory)
		categories.PUT("/:id", categoryHandler.UpdateCategory)
		categories.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	questions := r.Group("/questions")
	{
		questions.GET("/", questionHandler.GetQuestions)
		questions.GET("/:id", questionHandler.GetQuestion)
		questions.POST("/", questionHandler.CreateQuestion)
		questions.PUT("/:id", questionHandler.UpdateQuestion)
		questions.DELETE("/:id", questionHandler.DeleteQuestion)
	}

	quizzes := r.Group("/quizzes")
	{
		quizzes.GET("/", quizHandler.GetQuizzes)
		quizzes.GET("/:id", quizHandler.GetQuiz)
		quizzes.POST("/", quizHandler.CreateQuiz)
		quizzes.PUT("/:id", quizHandler.UpdateQuiz)
		quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
	}

	results := r.Group("/results")
	{
		results.GET("/", resultHandler.GetAllResults)
		results.GET("/mine", resultHandler.GetMyResults)
		results.GET("/:id", resultHandler.GetResult)
	}

	students := r.Group("/students")
	{
		students.GET("/", studentHandler.GetStudents)
		students.GET("/:id", studentHandler.GetStudent)
		students.POST("/", studentHandler.CreateStudent)
		students.PUT("/:id/profile", studentHandler.UpdateProfile)
	}

	// Consul registration, deregistered on shutdown.
	if cfg.Consul.Address != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to create service registry: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sig
			registry.Deregister()
			os.Exit(0)
		}()
	}

	if err := r.Run(cfg.Server.Host + ":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
