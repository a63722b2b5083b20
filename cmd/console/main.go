package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/pipecrm/pipecrm/internal/config"
	"github.com/pipecrm/pipecrm/internal/directory"
	"github.com/pipecrm/pipecrm/internal/infra/queue"
	"github.com/pipecrm/pipecrm/internal/pkg/clock"
	"github.com/pipecrm/pipecrm/internal/seed"
	"github.com/pipecrm/pipecrm/internal/usecase"
)

func main() {
	godotenv.Load()

	seedDemo := flag.Bool("seed", false, "start with demo data")
	flag.Parse()

	cfg, err := config.Build()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	clk := clock.NewRealClock()
	dir := directory.New(clk)
	dir.SetAutoConvertScoreThreshold(cfg.PipelineCfg.AutoConvertScoreThreshold)

	if *seedDemo || cfg.PipelineCfg.SeedDemoData {
		seed.LoadDemoData(dir)
	}

	// Conversions publish events when a broker is around, same as the API.
	var publisher usecase.ConversionPublisher
	if cfg.RabbitCfg.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitCfg.URL)
		if err != nil {
			logrus.Fatalf("❌ failed to set up RabbitMQ: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
	}

	converter := usecase.NewConvertLeadUseCase(dir, publisher)
	queries := usecase.NewLeadQueries(dir, clk)

	NewConsole(dir, converter, queries, os.Stdin, os.Stdout).Run()
}
