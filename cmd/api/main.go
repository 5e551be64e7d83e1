package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/claritycrm/crm-backend/internal/infra/database"
	"github.com/claritycrm/crm-backend/internal/infra/http/handlers"
	"github.com/claritycrm/crm-backend/internal/infra/http/middleware"
	"github.com/claritycrm/crm-backend/internal/infra/mail"
	"github.com/claritycrm/crm-backend/internal/infra/queue"
	"github.com/claritycrm/crm-backend/internal/infra/worker"
	"github.com/claritycrm/crm-backend/internal/usecase"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	db, err := database.NewConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// RabbitMQ is optional: without it the API still serves, it just
	// stops producing notifications.
	var (
		rabbitConn *amqp091.Connection
		producer   *queue.RabbitMQProducer
	)
	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, notifications disabled: %v", err)
	} else {
		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
	}

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	companyRepo := database.NewCompanyRepository(db)
	interactionRepo := database.NewInteractionRepository(db)
	meetingRepo := database.NewMeetingRepository(db)
	taskRepo := database.NewTaskRepository(db)
	notificationRepo := database.NewNotificationRepository(db)

	// 2. Adapters. Reminder mail is optional; the queue worker checks
	// for a nil mailer.
	var mailSender queue.ReminderMailer
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailSender = mail.NewEmailSender(host, 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"))
	}

	// 3. Workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var eventProducer usecase.EventProducer
	if producer != nil {
		eventProducer = producer

		queueWorker := queue.NewWorker(rabbitMQ.Ch, notificationRepo, mailSender)
		go queueWorker.Start(queue.QueueName)
	}

	overdueWorker := worker.NewOverdueTaskWorker(taskRepo, producerOrNil(producer))
	go overdueWorker.Start(ctx)

	// 4. UseCases
	logInteractionUC := usecase.NewLogInteractionUseCase(
		interactionRepo, meetingRepo, contactRepo, companyRepo, eventProducer,
	)
	pipelineUC := usecase.NewPipelineUseCase(contactRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	reportUC := usecase.NewReportUseCase(interactionRepo)

	// 5. Handlers
	contactHandler := handlers.NewContactHandler(contactRepo, pipelineUC)
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	interactionHandler := handlers.NewInteractionHandler(logInteractionUC, interactionRepo)
	meetingHandler := handlers.NewMeetingHandler(meetingRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationUC)
	salesHandler := handlers.NewSalesHandler(pipelineUC)
	reportHandler := handlers.NewReportHandler(reportUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/api/health", healthHandler.Handle)

	r.Route("/api/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Get("/{id}", contactHandler.Get)
		r.Put("/{id}", contactHandler.Update)
		r.Delete("/{id}", contactHandler.Delete)
		r.Put("/{id}/stage", contactHandler.MoveStage)
	})

	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", companyHandler.List)
		r.Post("/", companyHandler.Create)
		r.Get("/{id}", companyHandler.Get)
		r.Put("/{id}", companyHandler.Update)
		r.Delete("/{id}", companyHandler.Delete)
	})

	r.Route("/api/interactions", func(r chi.Router) {
		r.Get("/", interactionHandler.List)
		r.Post("/", interactionHandler.Create)
		r.Get("/count", interactionHandler.Count)
		r.Delete("/{id}", interactionHandler.Delete)
	})

	r.Route("/api/meetings", func(r chi.Router) {
		r.Get("/", meetingHandler.List)
		r.Post("/", meetingHandler.Create)
		r.Get("/{id}", meetingHandler.Get)
		r.Put("/{id}", meetingHandler.Update)
		r.Delete("/{id}", meetingHandler.Delete)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/count", taskHandler.Count)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/", notificationHandler.List)
		r.Get("/unread-count", notificationHandler.UnreadCount)
		r.Put("/{id}/read", notificationHandler.MarkRead)
	})

	r.Get("/api/sales/pipeline", salesHandler.GetPipeline)
	r.Get("/api/reports/interactions-by-type", reportHandler.InteractionsByType)

	port := ":" + getenv("PORT", "8080")
	log.Printf("🔥 ClarityCRM API running on %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}

// producerOrNil keeps the worker's nil check meaningful: a typed nil
// wrapped in the interface would not compare equal to nil.
func producerOrNil(p *queue.RabbitMQProducer) worker.EventProducer {
	if p == nil {
		return nil
	}
	return p
}
