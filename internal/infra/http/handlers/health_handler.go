package handlers

import (
	"net/http"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/pipecrm/pipecrm/internal/directory"
)

type HealthHandler struct {
	Directory      *directory.Directory
	RabbitMQ       *amqp091.Connection
	MailConfigured bool
	StartTime      time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	Entities     map[string]int    `json:"entities"`
}

func NewHealthHandler(dir *directory.Directory, rabbitMQ *amqp091.Connection, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		Directory:      dir,
		RabbitMQ:       rabbitMQ,
		MailConfigured: mailConfigured,
		StartTime:      time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Check SMTP
	if h.MailConfigured {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	// Determine overall status
	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	users, leads, customers := h.Directory.Counts()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
		Entities: map[string]int{
			"users":     users,
			"leads":     leads,
			"customers": customers,
		},
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
