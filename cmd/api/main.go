package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/pipecrm/pipecrm/internal/config"
	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/infra/http/handlers"
	"github.com/pipecrm/pipecrm/internal/infra/http/middleware"
	"github.com/pipecrm/pipecrm/internal/infra/mail"
	"github.com/pipecrm/pipecrm/internal/infra/queue"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
	"github.com/pipecrm/pipecrm/internal/seed"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	// 1. Directory (the in-memory system of record)
	clk := clock.NewRealClock()
	dir := directory.New(clk)
	dir.SetAutoConvertScoreThreshold(cfg.PipelineCfg.AutoConvertScoreThreshold)

	if cfg.PipelineCfg.SeedDemoData {
		seed.LoadDemoData(dir)
	}

	// 2. Messaging (optional; conversions succeed without it)
	var rabbitConn *amqp.Connection
	var publisher usecase.ConversionPublisher
	if cfg.RabbitCfg.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitCfg.URL)
		if err != nil {
			logrus.Fatalf("❌ failed to set up RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		publisher = queue.NewProducer(rabbitMQ.Ch)

		// 3. Worker (consumes conversion events and sends welcome emails)
		if cfg.MailConfigured() {
			sender := mail.NewEmailSender(cfg.MailCfg.Host, cfg.MailCfg.Port, cfg.MailCfg.User, cfg.MailCfg.Password, cfg.MailCfg.From)
			worker := queue.NewWorker(rabbitMQ.Ch, sender)
			go worker.Start(queue.QueueName)
		} else {
			logrus.Warn("SMTP not configured, conversion events will queue up without welcome emails")
		}
	} else {
		logrus.Warn("RABBITMQ_URL not set, conversion events disabled")
	}

	// 4. UseCases
	converter := usecase.NewConvertLeadUseCase(dir, publisher)
	queries := usecase.NewLeadQueries(dir, clk)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(dir, converter, queries)
	userHandler := handlers.NewUserHandler(dir)
	customerHandler := handlers.NewCustomerHandler(dir)
	reportHandler := handlers.NewReportHandler(queries)
	policyHandler := handlers.NewPolicyHandler(dir)
	healthHandler := handlers.NewHealthHandler(dir, rabbitConn, cfg.MailConfigured())

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTPCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/users", userHandler.Create)
	r.Get("/users", userHandler.List)

	r.Post("/leads", leadHandler.Create)
	r.Get("/leads", leadHandler.List)
	r.Get("/leads/{id}", leadHandler.Get)
	r.Put("/leads/{id}/status", leadHandler.UpdateStatus)
	r.Post("/leads/{id}/convert", leadHandler.Convert)
	r.Get("/leads/search/contact", leadHandler.SearchByContact)
	r.Get("/leads/search/company", leadHandler.SearchByCompany)
	r.Get("/leads/search/phone", leadHandler.SearchByPhone)
	r.Get("/leads/status/{status}", leadHandler.ListByStatus)
	r.Get("/leads/min-score/{min}", leadHandler.ListByMinScore)

	r.Post("/customers", customerHandler.Create)
	r.Get("/customers", customerHandler.List)
	r.Get("/customers/{id}", customerHandler.Get)
	r.Post("/customers/{id}/contracts", customerHandler.AddContract)

	r.Get("/reports/leads-per-owner", reportHandler.LeadsPerOwner)
	r.Get("/reports/conversions", reportHandler.Conversions)

	r.Get("/policy/auto-convert-threshold", policyHandler.GetThreshold)
	r.Put("/policy/auto-convert-threshold", policyHandler.UpdateThreshold)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTPCfg.Port)
	logrus.Infof("🔥 PipeCRM API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
