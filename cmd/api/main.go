package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gfconsig/propostas-api/internal/infra/database"
	"github.com/gfconsig/propostas-api/internal/infra/http/handlers"
	"github.com/gfconsig/propostas-api/internal/infra/http/middleware"
	"github.com/gfconsig/propostas-api/internal/infra/mail"
	"github.com/gfconsig/propostas-api/internal/infra/queue"
	"github.com/gfconsig/propostas-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositório
	proposalRepo := database.NewProposalRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Worker (consome a fila e envia o relatório por e-mail)
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender, envOr("REPORT_EMAIL", "operacao@gfconsig.com.br"))
	go worker.Start(queue.QueueName)

	// 4. UseCases
	importUC := usecase.NewImportProposalsUseCase(proposalRepo, producer)
	updateStatusUC := usecase.NewUpdateStatusUseCase(proposalRepo)
	updateObsUC := usecase.NewUpdateObservationUseCase(proposalRepo)
	dashboardUC := usecase.NewGetDashboardUseCase(proposalRepo)

	// 5. Handlers
	importHandler := handlers.NewImportHandler(importUC)
	proposalHandler := handlers.NewProposalHandler(proposalRepo, updateStatusUC, updateObsUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/import", importHandler.Handle)
	r.Get("/proposals", proposalHandler.HandleList)
	r.Put("/proposals/{id}/status", proposalHandler.HandleUpdateStatus)
	r.Put("/proposals/{id}/observation", proposalHandler.HandleUpdateObservation)
	r.Delete("/proposals", proposalHandler.HandleReset)
	r.Get("/dashboard", dashboardHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 API de Propostas rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
