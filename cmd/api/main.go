package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadflowhq/leadflow/internal/config"
	"github.com/leadflowhq/leadflow/internal/infra/database"
	"github.com/leadflowhq/leadflow/internal/infra/http/handlers"
	"github.com/leadflowhq/leadflow/internal/infra/http/middleware"
	"github.com/leadflowhq/leadflow/internal/infra/mail"
	"github.com/leadflowhq/leadflow/internal/infra/queue"
	"github.com/leadflowhq/leadflow/internal/infra/worker"
	"github.com/leadflowhq/leadflow/internal/usecase"
)

func main() {
	cfg, err := config.NewLoadedConfig()
	if err != nil {
		log.Fatalf("failed to load config: %+v", err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	historyRepo := database.NewHistoryRepository(db)
	interactionRepo := database.NewInteractionRepository(db)

	// Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	// Background workers
	summaryWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go summaryWorker.Start(queue.QueueName)

	escalationWorker := worker.NewFollowUpEscalationWorker(db)
	go escalationWorker.Start(context.Background())

	// Use cases
	createUC := usecase.NewCreateLeadUseCase(leadRepo, historyRepo)
	getUC := usecase.NewGetLeadUseCase(leadRepo, interactionRepo, historyRepo)
	listUC := usecase.NewListLeadsUseCase(leadRepo)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo, historyRepo)
	deleteUC := usecase.NewDeleteLeadUseCase(leadRepo, historyRepo)
	addIntUC := usecase.NewAddInteractionUseCase(leadRepo, interactionRepo, historyRepo)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, historyRepo, producer)
	statsUC := usecase.NewLeadStatsUseCase(leadRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, []byte(cfg.JwtSecret))
	leadHandler := handlers.NewLeadHandler(createUC, getUC, listUC, updateUC, deleteUC, addIntUC)
	importHandler := handlers.NewImportHandler(importUC)
	statsHandler := handlers.NewStatsHandler(statsUC)
	exportHandler := handlers.NewExportHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth([]byte(cfg.JwtSecret)))

		r.Get("/leads", leadHandler.List)
		r.Post("/leads", leadHandler.Create)
		r.Post("/leads/import", importHandler.Import)
		r.Post("/leads/extract", importHandler.Extract)
		r.Post("/leads/bulk-delete", leadHandler.DeleteMany)
		r.Get("/leads/stats", statsHandler.Handle)
		r.Get("/leads/export", exportHandler.Handle)

		r.Get("/leads/{id}", leadHandler.Get)
		r.Put("/leads/{id}", leadHandler.Update)
		r.Patch("/leads/{id}", leadHandler.Update)
		r.Delete("/leads/{id}", leadHandler.Delete)
		r.Post("/leads/{id}/interactions", leadHandler.AddInteraction)
	})

	log.Printf("leadflow API listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
